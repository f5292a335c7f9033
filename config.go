package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".tube-writer/"

// Embedded configuration files, written to the config directory on first run
// so users can customize them.
//
//go:embed config/settings.yaml
var defaultSettings string

//go:embed config/keyword-system-prompt.md
var keywordSystemPrompt string

//go:embed config/writer-system-prompt.md
var writerSystemPrompt string

//go:embed config/writer-output-schema.json
var writerSchema string

//go:embed config/article-template.md
var defaultTemplate string

// ModelSettings configure the language model collaborator
type ModelSettings struct {
	Name        string  `yaml:"name"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// ProcessingSettings bound how much content flows between stages
type ProcessingSettings struct {
	MaxTranscriptLength    int `yaml:"max_transcript_length"`
	MaxSearchResults       int `yaml:"max_search_results"`
	KeywordExtractionLimit int `yaml:"keyword_extraction_limit"`
	MetaDescriptionMaxLen  int `yaml:"meta_description_max_len"`
}

// YouTubeSettings configure the transcript API collaborator
type YouTubeSettings struct {
	TranscriptAPIURL string `yaml:"transcript_api_url"`
	TranscriptAPIKey string `yaml:"transcript_api_key"`
	Retries          int    `yaml:"retries"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	OutputDirectory string             `yaml:"output_directory"`
	Model           ModelSettings      `yaml:"model"`
	Processing      ProcessingSettings `yaml:"processing"`
	YouTube         YouTubeSettings    `yaml:"youtube"`
}

// GetConfigPath returns the full path to a config file
func GetConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// defaultSettingsValues returns the in-code defaults used when no settings
// file exists.
func defaultSettingsValues() *Settings {
	return &Settings{
		OutputDirectory: "output",
		Model: ModelSettings{
			Name:        "claude-sonnet-4-20250514",
			MaxTokens:   4000,
			Temperature: 0.7,
		},
		Processing: ProcessingSettings{
			MaxTranscriptLength:    10000,
			MaxSearchResults:       3,
			KeywordExtractionLimit: 500,
			MetaDescriptionMaxLen:  160,
		},
		YouTube: YouTubeSettings{
			Retries: 5,
		},
	}
}

// loadSettings loads settings from YAML file with fallback to defaults
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		// Return default settings if file doesn't exist
		return defaultSettingsValues(), nil
	}

	var settings Settings
	err = yaml.Unmarshal(data, &settings)
	if err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	applySettingsDefaults(&settings)
	return &settings, nil
}

// applySettingsDefaults fills zero-valued processing bounds so a sparse
// settings file cannot disable truncation or result capping.
func applySettingsDefaults(settings *Settings) {
	defaults := defaultSettingsValues()

	if settings.OutputDirectory == "" {
		settings.OutputDirectory = defaults.OutputDirectory
	}
	if settings.Model.Name == "" {
		settings.Model.Name = defaults.Model.Name
	}
	if settings.Model.MaxTokens == 0 {
		settings.Model.MaxTokens = defaults.Model.MaxTokens
	}
	if settings.Processing.MaxTranscriptLength == 0 {
		settings.Processing.MaxTranscriptLength = defaults.Processing.MaxTranscriptLength
	}
	if settings.Processing.MaxSearchResults == 0 {
		settings.Processing.MaxSearchResults = defaults.Processing.MaxSearchResults
	}
	if settings.Processing.KeywordExtractionLimit == 0 {
		settings.Processing.KeywordExtractionLimit = defaults.Processing.KeywordExtractionLimit
	}
	if settings.Processing.MetaDescriptionMaxLen == 0 {
		settings.Processing.MetaDescriptionMaxLen = defaults.Processing.MetaDescriptionMaxLen
	}
	if settings.YouTube.Retries == 0 {
		settings.YouTube.Retries = defaults.YouTube.Retries
	}
}

// ensureConfigExists creates config directory and writes settings.yaml if needed
func ensureConfigExists() error {
	err := os.MkdirAll(defaultConfigDir, 0755)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write settings.yaml - this should be customized by users
	settingsFile := GetConfigPath("settings.yaml")
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		err = os.WriteFile(settingsFile, []byte(defaultSettings), 0644)
		if err != nil {
			return fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	return nil
}
