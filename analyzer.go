package main

import (
	"fmt"
	"log"
	"strings"
)

const maxKeywords = 5

// Analyzer extracts keywords from a transcript and researches them on the
// web, producing a ResearchDigest for the Writer. Keyword extraction and web
// research form a single atomic stage: if extraction yields nothing or every
// search fails, the whole stage fails.
type Analyzer struct {
	model    LanguageModel
	search   SearchProvider
	settings *Settings
}

// NewAnalyzer creates an Analyzer with its collaborators
func NewAnalyzer(model LanguageModel, search SearchProvider, settings *Settings) *Analyzer {
	return &Analyzer{
		model:    model,
		search:   search,
		settings: settings,
	}
}

// Analyze produces the research digest for a transcript and task.
func (a *Analyzer) Analyze(transcript, task string) (*ResearchDigest, error) {
	keywords, err := a.extractKeywords(transcript, task)
	if err != nil {
		return nil, err
	}
	log.Printf("✓ Extracted keywords: %v", keywords)

	results, err := a.research(keywords)
	if err != nil {
		return nil, err
	}
	log.Printf("✓ Research complete: %d results", len(results))

	return &ResearchDigest{
		Keywords: keywords,
		Results:  results,
	}, nil
}

// extractKeywords asks the model for search keywords based on a bounded
// transcript prefix and the task description.
func (a *Analyzer) extractKeywords(transcript, task string) ([]string, error) {
	limit := a.settings.Processing.KeywordExtractionLimit
	if limit > 0 && len(transcript) > limit {
		transcript = transcript[:limit]
	}

	userPrompt := fmt.Sprintf("Task: %s\n\nTranscript:\n%s", task, transcript)

	response, err := a.model.Complete(keywordSystemPrompt, userPrompt, CompletionOptions{
		Model:       a.settings.Model.Name,
		MaxTokens:   200,
		Temperature: 0.0,
	})
	if err != nil {
		return nil, workflowErr(ErrKeywordExtraction, "keyword extraction: %w", err)
	}

	keywords := parseKeywords(response)
	if len(keywords) == 0 {
		return nil, workflowErr(ErrKeywordExtraction, "keyword extraction returned no keywords")
	}

	return keywords, nil
}

// parseKeywords splits a comma-separated model response into a deduplicated
// keyword list. Dedup is case-insensitive; blanks are discarded.
func parseKeywords(response string) []string {
	var keywords []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(response, "\n") {
		for _, candidate := range strings.Split(line, ",") {
			keyword := strings.TrimSpace(candidate)
			if keyword == "" {
				continue
			}
			key := strings.ToLower(keyword)
			if seen[key] {
				continue
			}
			seen[key] = true
			keywords = append(keywords, keyword)
			if len(keywords) == maxKeywords {
				return keywords
			}
		}
	}

	return keywords
}

// research queries the search collaborator for each keyword, keeping at most
// MaxSearchResults results across all keywords combined. A keyword whose
// search fails is logged and skipped; the stage fails only when every search
// fails.
func (a *Analyzer) research(keywords []string) ([]SearchResult, error) {
	var results []SearchResult
	var lastErr error
	failures := 0

	remaining := a.settings.Processing.MaxSearchResults
	for _, keyword := range keywords {
		if remaining <= 0 {
			break
		}

		found, err := a.search.Search(keyword, remaining)
		if err != nil {
			log.Printf("  search failed for %q: %v", keyword, err)
			lastErr = err
			failures++
			continue
		}

		if len(found) > remaining {
			found = found[:remaining]
		}
		results = append(results, found...)
		remaining -= len(found)
	}

	if failures == len(keywords) {
		return nil, workflowErr(ErrWebResearch, "all %d keyword searches failed: %w", failures, lastErr)
	}

	return results, nil
}
