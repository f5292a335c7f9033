package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExport(t *testing.T) {
	settings := defaultSettingsValues()
	settings.OutputDirectory = t.TempDir()
	e := NewExporter(settings)

	filename, err := e.Export(testArticle(), "abc123", "https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if filepath.Base(filename) != "blog_abc123.md" {
		t.Errorf("filename = %q, want blog_abc123.md", filepath.Base(filename))
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read exported file: %v", err)
	}

	content := string(data)
	for _, want := range []string{
		`title: "How AI Drives Automation"`,
		"## Introduction",
		"## Conclusion",
		`- "ai"`,
		"https://www.youtube.com/watch?v=abc123",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("exported file missing %q", want)
		}
	}
}

func TestExportCreatesOutputDirectory(t *testing.T) {
	settings := defaultSettingsValues()
	settings.OutputDirectory = filepath.Join(t.TempDir(), "nested", "output")
	e := NewExporter(settings)

	if _, err := e.Export(testArticle(), "abc123", "https://youtu.be/abc123"); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if _, err := os.Stat(settings.OutputDirectory); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean", "blog_abc123", "blog_abc123"},
		{"invalid chars", `blog<>:"/\|?*x`, "blog_________x"},
		{"trims dots and spaces", " blog. ", "blog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
