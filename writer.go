package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Writer generates the final article from the transcript and research
// digest. A single failed generation attempt fails the stage; the Writer
// does not retry.
type Writer struct {
	model    LanguageModel
	settings *Settings
}

// NewWriter creates a Writer with its language model collaborator
func NewWriter(model LanguageModel, settings *Settings) *Writer {
	return &Writer{
		model:    model,
		settings: settings,
	}
}

// Write produces a structured article for the transcript, digest and task.
func (w *Writer) Write(transcript string, digest *ResearchDigest, task string) (*ArticleResult, error) {
	userPrompt := w.buildUserPrompt(transcript, digest, task)

	response, err := w.model.Complete(writerSystemPrompt, userPrompt, CompletionOptions{
		Model:       w.settings.Model.Name,
		MaxTokens:   w.settings.Model.MaxTokens,
		Temperature: w.settings.Model.Temperature,
		Schema:      writerSchema,
	})
	if err != nil {
		return nil, workflowErr(ErrContentGeneration, "writer generation: %w", err)
	}

	var article ArticleResult
	if err := json.Unmarshal([]byte(stripFences(response)), &article); err != nil {
		return nil, workflowErr(ErrContentGeneration, "parsing article JSON: %w", err)
	}

	if err := w.validate(&article); err != nil {
		return nil, workflowErr(ErrContentGeneration, "invalid article: %w", err)
	}

	return &article, nil
}

func (w *Writer) buildUserPrompt(transcript string, digest *ResearchDigest, task string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Task: %s\n\n", task)
	fmt.Fprintf(&b, "Transcript:\n%s\n\n", transcript)

	fmt.Fprintf(&b, "Keywords: %s\n\n", strings.Join(digest.Keywords, ", "))

	if len(digest.Results) > 0 {
		b.WriteString("Web research:\n")
		for _, r := range digest.Results {
			fmt.Fprintf(&b, "- %s (%s): %s\n", r.Title, r.URL, r.Excerpt)
		}
	} else {
		b.WriteString("Web research: no additional web content found for this topic.\n")
	}

	return b.String()
}

// validate checks the minimal structural requirements of a generated article.
func (w *Writer) validate(article *ArticleResult) error {
	if strings.TrimSpace(article.Title) == "" {
		return fmt.Errorf("missing title")
	}
	if len(article.Sections) == 0 {
		return fmt.Errorf("no sections")
	}
	if maxLen := w.settings.Processing.MetaDescriptionMaxLen; len(article.MetaDescription) > maxLen {
		return fmt.Errorf("meta description too long: %d chars, max %d", len(article.MetaDescription), maxLen)
	}
	return nil
}

// stripFences removes markdown code fences from model output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
