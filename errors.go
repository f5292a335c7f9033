package main

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a workflow failure.
type ErrorKind string

const (
	ErrInvalidInput      ErrorKind = "InvalidInputError"
	ErrNoTranscript      ErrorKind = "NoTranscriptError"
	ErrTranscriptFetch   ErrorKind = "TranscriptFetchError"
	ErrKeywordExtraction ErrorKind = "KeywordExtractionError"
	ErrWebResearch       ErrorKind = "WebResearchError"
	ErrContentGeneration ErrorKind = "ContentGenerationError"
	ErrUnexpected        ErrorKind = "UnexpectedError"
)

// WorkflowError tags an underlying error with its kind so the Supervisor can
// report the failure without inspecting collaborator internals.
type WorkflowError struct {
	Kind ErrorKind
	Err  error
}

func (e *WorkflowError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

// workflowErr builds a WorkflowError from a format string.
func workflowErr(kind ErrorKind, format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// asWorkflowError extracts the WorkflowError from err, or wraps err as
// UnexpectedError when a collaborator failed outside its documented contract.
func asWorkflowError(err error) *WorkflowError {
	var werr *WorkflowError
	if errors.As(err, &werr) {
		return werr
	}
	return &WorkflowError{Kind: ErrUnexpected, Err: err}
}

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}
