package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// SearchProvider is the web search collaborator.
type SearchProvider interface {
	Search(query string, maxResults int) ([]SearchResult, error)
}

// DuckDuckGo implements SearchProvider against the DuckDuckGo HTML lite
// endpoint, with the d.js JSON API as fallback. No API key required.
type DuckDuckGo struct {
	client       *http.Client
	converter    *md.Converter
	htmlEndpoint string
	djsEndpoint  string
}

// ddgResult represents a single DuckDuckGo search result from d.js
type ddgResult struct {
	T string `json:"t"` // title
	A string `json:"a"` // abstract (HTML)
	U string `json:"u"` // URL
	C string `json:"c"` // content URL (alternative)
}

// NewDuckDuckGo creates a DuckDuckGo search provider
func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		client:       &http.Client{Timeout: 20 * time.Second},
		converter:    md.NewConverter("", true, nil),
		htmlEndpoint: "https://html.duckduckgo.com/html/",
		djsEndpoint:  "https://links.duckduckgo.com/d.js",
	}
}

// Search queries DuckDuckGo and returns at most maxResults results in the
// order the engine returned them.
func (d *DuckDuckGo) Search(query string, maxResults int) ([]SearchResult, error) {
	results, err := d.searchHTML(query)
	if err == nil && len(results) > 0 {
		debugLog("ddg results (html): %d for %q", len(results), query)
		return capResults(results, maxResults), nil
	}
	if err != nil {
		debugLog("ddg html failed for %q, trying d.js: %v", query, err)
	}

	results, err = d.searchDJS(query)
	if err != nil {
		return nil, fmt.Errorf("ddg search %q: %w", query, err)
	}
	debugLog("ddg results (d.js): %d for %q", len(results), query)
	return capResults(results, maxResults), nil
}

func capResults(results []SearchResult, maxResults int) []SearchResult {
	if maxResults >= 0 && len(results) > maxResults {
		return results[:maxResults]
	}
	return results
}

// searchHTML queries the HTML lite endpoint and parses the result page.
func (d *DuckDuckGo) searchHTML(query string) ([]SearchResult, error) {
	formBody := fmt.Sprintf("q=%s&kl=wt-wt&df=", url.QueryEscape(query))

	req, err := http.NewRequest("POST", d.htmlEndpoint, strings.NewReader(formBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "https://html.duckduckgo.com/")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: d.htmlEndpoint}
	}

	return parseDDGHTML(resp.Body)
}

// parseDDGHTML extracts search results from the DDG HTML lite response.
func parseDDGHTML(body io.Reader) ([]SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing search HTML: %w", err)
	}

	var results []SearchResult

	doc.Find(".result, .web-result").Each(func(i int, s *goquery.Selection) {
		link := s.Find("a.result__a, .result__title a, a.result-link").First()
		title := strings.TrimSpace(link.Text())
		href, exists := link.Attr("href")
		if !exists || title == "" {
			return
		}

		// DDG wraps URLs in redirects; extract the actual URL
		href = ddgUnwrapURL(href)
		if href == "" {
			return
		}

		snippet := s.Find(".result__snippet, .result__body").First()
		excerpt := strings.TrimSpace(snippet.Text())

		results = append(results, SearchResult{
			Title:   title,
			URL:     href,
			Excerpt: excerpt,
		})
	})

	return results, nil
}

// ddgUnwrapURL extracts the actual URL from DDG redirect wrappers.
// DDG HTML wraps links as: //duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com&rut=...
func ddgUnwrapURL(href string) string {
	if strings.Contains(href, "duckduckgo.com/l/") || strings.Contains(href, "uddg=") {
		if u, err := url.Parse(href); err == nil {
			if uddg := u.Query().Get("uddg"); uddg != "" {
				return uddg
			}
		}
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return ""
}

// searchDJS queries the d.js JSON API (fallback).
func (d *DuckDuckGo) searchDJS(query string) ([]SearchResult, error) {
	params := url.Values{
		"q":  {query},
		"kl": {"wt-wt"},
		"df": {""},
		"l":  {"us-en"},
		"o":  {"json"},
	}

	req, err := http.NewRequest("GET", d.djsEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Referer", "https://duckduckgo.com/")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: d.djsEndpoint}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return d.parseDDGResponse(data)
}

// parseDDGResponse extracts search results from the d.js response, which may
// be JSONP or a raw JSON array. Abstracts arrive as HTML fragments and are
// flattened to markdown text.
func (d *DuckDuckGo) parseDDGResponse(data []byte) ([]SearchResult, error) {
	body := strings.TrimSpace(string(data))

	// Strip JSONP wrapper if present: DDGjsonp_xxx([...])
	if idx := strings.Index(body, "["); idx >= 0 {
		end := strings.LastIndex(body, "]")
		if end > idx {
			body = body[idx : end+1]
		}
	}

	var raw []ddgResult
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("parsing search JSON: %w", err)
	}

	var results []SearchResult
	for _, r := range raw {
		resultURL := r.U
		if resultURL == "" {
			resultURL = r.C
		}
		if resultURL == "" || r.T == "" {
			continue
		}
		// Skip DDG internal/ad entries
		if strings.HasPrefix(resultURL, "https://duckduckgo.com/") {
			continue
		}

		results = append(results, SearchResult{
			Title:   r.T,
			URL:     resultURL,
			Excerpt: d.flattenHTML(r.A),
		})
	}

	return results, nil
}

// flattenHTML converts an HTML snippet to plain markdown text.
func (d *DuckDuckGo) flattenHTML(snippet string) string {
	if snippet == "" {
		return ""
	}
	text, err := d.converter.ConvertString(snippet)
	if err != nil {
		return strings.TrimSpace(snippet)
	}
	return strings.TrimSpace(text)
}
