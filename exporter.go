package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

// Exporter writes a finished article to the output directory as markdown.
type Exporter struct {
	settings *Settings
}

// NewExporter creates an Exporter
func NewExporter(settings *Settings) *Exporter {
	return &Exporter{settings: settings}
}

// exportData is the template context for the article template
type exportData struct {
	Article   *ArticleResult
	SourceURL string
	CreatedAt time.Time
}

// Export renders the article through the template and saves it as
// blog_<videoID>.md. Returns the written file path.
func (e *Exporter) Export(article *ArticleResult, videoID, sourceURL string) (string, error) {
	if err := os.MkdirAll(e.settings.OutputDirectory, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	tmpl, err := template.New("article").Parse(defaultTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, exportData{
		Article:   article,
		SourceURL: sourceURL,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	filename := filepath.Join(e.settings.OutputDirectory, sanitizeFilename(fmt.Sprintf("blog_%s", videoID))+".md")
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing article file: %w", err)
	}

	return filename, nil
}

// sanitizeFilename replaces characters that are invalid in filenames.
func sanitizeFilename(filename string) string {
	const invalidChars = `<>:"/\|?*`
	result := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidChars, r) {
			return '_'
		}
		return r
	}, filename)
	return strings.Trim(result, ". ")
}
