package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

const ddgHTMLFixture = `
<html><body>
<div class="result">
  <h2 class="result__title"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fai&rut=abc">AI trends in 2025</a></h2>
  <div class="result__snippet">AI is reshaping every industry.</div>
</div>
<div class="result">
  <h2 class="result__title"><a class="result__a" href="https://example.com/automation">Automation guide</a></h2>
  <div class="result__snippet">A practical automation guide.</div>
</div>
<div class="result">
  <h2 class="result__title"><a class="result__a" href="">Broken entry</a></h2>
</div>
</body></html>`

func newTestDDG(htmlURL, djsURL string) *DuckDuckGo {
	return &DuckDuckGo{
		client:       &http.Client{},
		converter:    md.NewConverter("", true, nil),
		htmlEndpoint: htmlURL,
		djsEndpoint:  djsURL,
	}
}

func TestParseDDGHTML(t *testing.T) {
	results, err := parseDDGHTML(strings.NewReader(ddgHTMLFixture))
	if err != nil {
		t.Fatalf("parseDDGHTML() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("parseDDGHTML() returned %d results, want 2", len(results))
	}

	if results[0].Title != "AI trends in 2025" {
		t.Errorf("title = %q, want 'AI trends in 2025'", results[0].Title)
	}
	if results[0].URL != "https://example.com/ai" {
		t.Errorf("redirect not unwrapped: url = %q", results[0].URL)
	}
	if results[0].Excerpt != "AI is reshaping every industry." {
		t.Errorf("excerpt = %q", results[0].Excerpt)
	}
	if results[1].URL != "https://example.com/automation" {
		t.Errorf("direct url = %q", results[1].URL)
	}
}

func TestDDGUnwrapURL(t *testing.T) {
	tests := []struct {
		name     string
		href     string
		expected string
	}{
		{"redirect wrapper", "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fpage&rut=x", "https://example.com/page"},
		{"direct url", "https://example.com/page", "https://example.com/page"},
		{"relative href", "/html?q=foo", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ddgUnwrapURL(tt.href); got != tt.expected {
				t.Errorf("ddgUnwrapURL(%q) = %q, want %q", tt.href, got, tt.expected)
			}
		})
	}
}

func TestSearchCapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ddgHTMLFixture))
	}))
	defer server.Close()

	ddg := newTestDDG(server.URL, server.URL)

	results, err := ddg.Search("ai", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Search() returned %d results, want 1", len(results))
	}
	if results[0].Title != "AI trends in 2025" {
		t.Errorf("cap must keep the leading results, got %q", results[0].Title)
	}
}

func TestSearchFallsBackToDJS(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/html/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/d.js", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`DDGjsonp_1([
			{"t": "Go concurrency", "a": "Goroutines are lightweight threads", "u": "https://example.com/go"},
			{"t": "Ad entry", "a": "ignored", "u": "https://duckduckgo.com/y.js"},
			{"t": "", "a": "no title", "u": "https://example.com/skip"}
		]);`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	ddg := newTestDDG(server.URL+"/html/", server.URL+"/d.js")

	results, err := ddg.Search("go", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Search() returned %d results, want 1", len(results))
	}
	if results[0].Title != "Go concurrency" {
		t.Errorf("title = %q", results[0].Title)
	}
	if results[0].URL != "https://example.com/go" {
		t.Errorf("url = %q", results[0].URL)
	}
	if results[0].Excerpt != "Goroutines are lightweight threads" {
		t.Errorf("excerpt = %q", results[0].Excerpt)
	}
}

func TestSearchBothEndpointsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ddg := newTestDDG(server.URL, server.URL)

	if _, err := ddg.Search("ai", 3); err == nil {
		t.Fatal("Expected an error when both endpoints fail, got nil")
	}
}
