package main

import (
	"log"
	"strings"
)

const defaultTask = "Create a blog from this video"

// researcher and articleWriter are the agent contracts the Supervisor drives.
type researcher interface {
	Analyze(transcript, task string) (*ResearchDigest, error)
}

type articleWriter interface {
	Write(transcript string, digest *ResearchDigest, task string) (*ArticleResult, error)
}

// Supervisor runs the fixed four-stage pipeline: transcribe, analyze, write,
// assemble. Stage order never varies, transitions are strictly forward, and
// any agent failure stops the run and converts into a failure response. The
// Supervisor never retries a stage.
type Supervisor struct {
	transcripts TranscriptProvider
	analyzer    researcher
	writer      articleWriter
	settings    *Settings
}

// NewSupervisor creates a Supervisor over the three agents
func NewSupervisor(settings *Settings, transcripts TranscriptProvider, analyzer researcher, writer articleWriter) *Supervisor {
	return &Supervisor{
		transcripts: transcripts,
		analyzer:    analyzer,
		writer:      writer,
		settings:    settings,
	}
}

// ProcessVideo runs the pipeline for one video URL and returns exactly one
// WorkflowResponse. Invalid URLs fail before any collaborator is invoked.
func (s *Supervisor) ProcessVideo(videoURL, task string) WorkflowResponse {
	req := WorkflowRequest{VideoURL: videoURL, Task: task}
	if strings.TrimSpace(req.Task) == "" {
		req.Task = defaultTask
	}

	videoID, err := extractVideoID(req.VideoURL)
	if err != nil {
		return failureResponse(StagePending, workflowErr(ErrInvalidInput, "invalid YouTube URL %q: %w", req.VideoURL, err))
	}

	state := &WorkflowState{
		VideoID: videoID,
		Task:    req.Task,
		Stage:   StagePending,
	}

	state.Stage = StageTranscribing
	log.Printf("→ Fetching transcript for %s", videoID)
	transcript, err := s.transcripts.Fetch(videoID)
	if err != nil {
		return s.fail(state, err)
	}
	state.Transcript = s.prepareTranscript(transcript)
	log.Printf("✓ Transcript ready (%d characters)", len(state.Transcript))

	state.Stage = StageAnalyzing
	log.Printf("→ Analyzing transcript")
	digest, err := s.analyzer.Analyze(state.Transcript, state.Task)
	if err != nil {
		return s.fail(state, err)
	}
	state.Digest = digest

	state.Stage = StageWriting
	log.Printf("→ Writing article")
	article, err := s.writer.Write(state.Transcript, state.Digest, state.Task)
	if err != nil {
		return s.fail(state, err)
	}
	state.Article = article

	state.Stage = StageDone
	log.Printf("✓ Article written: %s", article.Title)

	return WorkflowResponse{
		Status:  StatusSuccess,
		Article: state.Article,
	}
}

// prepareTranscript cleans the raw transcript and truncates it to the
// configured maximum. Truncation is a fixed prefix, so repeated runs on the
// same transcript truncate identically.
func (s *Supervisor) prepareTranscript(transcript string) string {
	transcript = cleanText(transcript)
	if max := s.settings.Processing.MaxTranscriptLength; max > 0 && len(transcript) > max {
		transcript = transcript[:max]
	}
	return transcript
}

// fail records the error on the state and builds the failure response from
// the stage that was active when the agent failed.
func (s *Supervisor) fail(state *WorkflowState, err error) WorkflowResponse {
	werr := asWorkflowError(err)
	failedAt := state.Stage

	state.Err = werr
	state.Stage = StageFailed

	log.Printf("✗ %s failed: %v", failedAt, werr)
	return failureResponse(failedAt, werr)
}

func failureResponse(stage Stage, werr *WorkflowError) WorkflowResponse {
	return WorkflowResponse{
		Status:  StatusFailure,
		Stage:   stage,
		Error:   werr.Kind,
		Message: werr.Error(),
	}
}

// cleanText collapses runs of whitespace in transcript text.
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
