package main

// Stage marks how far a workflow has progressed.
type Stage string

const (
	StagePending      Stage = "pending"
	StageTranscribing Stage = "transcribing"
	StageAnalyzing    Stage = "analyzing"
	StageWriting      Stage = "writing"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// WorkflowStatus represents the outcome status of a workflow run
type WorkflowStatus string

const (
	StatusSuccess WorkflowStatus = "success"
	StatusFailure WorkflowStatus = "failure"
)

// WorkflowRequest is the immutable input for one pipeline run
type WorkflowRequest struct {
	VideoURL string
	Task     string
}

// WorkflowState is the single mutable record threaded through one pipeline
// run. The Supervisor owns it exclusively; agents receive their inputs and
// return new values instead of mutating it.
type WorkflowState struct {
	VideoID    string
	Task       string
	Transcript string
	Digest     *ResearchDigest
	Article    *ArticleResult
	Stage      Stage
	Err        *WorkflowError // set only when Stage is StageFailed
}

// SearchResult is a single web search hit
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Excerpt string `json:"excerpt"`
}

// ResearchDigest bundles the keywords and search results produced by the
// Analyzer. Results keep the order the search collaborator returned them in.
type ResearchDigest struct {
	Keywords []string       `json:"keywords"`
	Results  []SearchResult `json:"results"`
}

// ArticleSection is one heading+body block of the generated article
type ArticleSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// ArticleResult is the structured article produced by the Writer
type ArticleResult struct {
	Title           string           `json:"title"`
	MetaDescription string           `json:"meta_description"`
	Sections        []ArticleSection `json:"sections"`
	Tags            []string         `json:"tags"`
}

// WorkflowResponse is the value returned to the caller for one invocation.
// On failure, Stage and Error identify where and why the pipeline stopped;
// Article is never partially populated.
type WorkflowResponse struct {
	Status  WorkflowStatus `json:"status"`
	Article *ArticleResult `json:"article,omitempty"`
	Stage   Stage          `json:"stage,omitempty"`
	Error   ErrorKind      `json:"error,omitempty"`
	Message string         `json:"message,omitempty"`
}
