package main

import (
	"fmt"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
)

// CompletionOptions configure a single model call
type CompletionOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Schema      string // JSON schema for structured output, empty for plain text
}

// LanguageModel is the content-generation collaborator.
type LanguageModel interface {
	Complete(systemPrompt, userPrompt string, opts CompletionOptions) (string, error)
}

// AnthropicModel implements LanguageModel on top of the Anthropic API
type AnthropicModel struct {
	apiKey string
}

// NewAnthropicModel creates an Anthropic-backed language model
func NewAnthropicModel(apiKey string) (*AnthropicModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	return &AnthropicModel{apiKey: apiKey}, nil
}

// Complete sends one prompt and returns the response text.
func (m *AnthropicModel) Complete(systemPrompt, userPrompt string, opts CompletionOptions) (string, error) {
	settings := types.RequestSettings{
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	response, err := anthropic.PromptWithSettings(systemPrompt, userPrompt, opts.Schema, m.apiKey, settings)
	if err != nil {
		return "", fmt.Errorf("anthropic prompt: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return response.Content[0].Text, nil
}
