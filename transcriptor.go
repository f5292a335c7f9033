package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var debugEnabled bool

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// TranscriptProvider fetches the raw transcript text for a video.
// Implementations classify their failures as NoTranscriptError or
// TranscriptFetchError; retries and caching are their own concern.
type TranscriptProvider interface {
	Fetch(videoID string) (string, error)
}

// extractVideoID validates a YouTube watch URL and returns its video ID.
func extractVideoID(videoURL string) (string, error) {
	parsedURL, err := url.Parse(videoURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", fmt.Errorf("not an http(s) URL: %s", videoURL)
	}

	host := strings.TrimPrefix(parsedURL.Host, "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		videoID := parsedURL.Query().Get("v")
		if videoID == "" {
			return "", fmt.Errorf("no video ID found in URL")
		}
		return videoID, nil
	case "youtu.be":
		videoID := strings.Trim(parsedURL.Path, "/")
		if videoID == "" {
			return "", fmt.Errorf("no video ID found in URL")
		}
		return videoID, nil
	default:
		return "", fmt.Errorf("not a YouTube URL: %s", videoURL)
	}
}

// TranscriptAPI fetches transcripts through an external transcript service.
// Successful fetches are cached on disk keyed by video ID.
type TranscriptAPI struct {
	settings YouTubeSettings
	cacheDir string

	// Rate limiting between API calls
	mu       sync.Mutex
	lastCall time.Time
}

const transcriptCallDelay = 2 * time.Second

// NewTranscriptAPI creates a transcript provider backed by the transcript API
func NewTranscriptAPI(settings YouTubeSettings) (*TranscriptAPI, error) {
	if settings.TranscriptAPIURL == "" || settings.TranscriptAPIKey == "" {
		return nil, fmt.Errorf("transcript API configuration missing: set youtube.transcript_api_url and youtube.transcript_api_key")
	}
	return &TranscriptAPI{
		settings: settings,
		cacheDir: filepath.Join(".cache", "youtube"),
	}, nil
}

// Fetch returns the transcript text for a video, from cache when available.
func (t *TranscriptAPI) Fetch(videoID string) (string, error) {
	cachePath := filepath.Join(t.cacheDir, videoID)
	if content, err := os.ReadFile(cachePath); err == nil {
		debugLog("transcript cache hit for %s", videoID)
		return string(content), nil
	}

	transcript, err := t.fetchWithRetries(videoID)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(transcript) == "" {
		return "", workflowErr(ErrNoTranscript, "no transcript found for video %s", videoID)
	}

	os.MkdirAll(t.cacheDir, 0755)
	os.WriteFile(cachePath, []byte(transcript), 0644)

	return transcript, nil
}

func (t *TranscriptAPI) fetchWithRetries(videoID string) (string, error) {
	retries := t.settings.Retries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		transcript, err := t.fetchTranscript(videoID)
		if err == nil {
			return transcript, nil
		}
		lastErr = err

		httpErr, ok := err.(*HTTPError)
		if !ok {
			return "", workflowErr(ErrTranscriptFetch, "fetching transcript: %w", err)
		}

		switch {
		case httpErr.StatusCode == http.StatusNotFound:
			// The service reports 404 when the video has no transcript
			return "", workflowErr(ErrNoTranscript, "transcript unavailable for video %s", videoID)
		case httpErr.StatusCode == http.StatusTooManyRequests && i < retries-1:
			// Exponential backoff on rate limits
			time.Sleep(time.Duration(1<<uint(i)) * time.Second)
		default:
			return "", workflowErr(ErrTranscriptFetch, "fetching transcript: %w", err)
		}
	}
	return "", workflowErr(ErrTranscriptFetch, "exceeded max retries after %d attempts: %w", retries, lastErr)
}

func (t *TranscriptAPI) fetchTranscript(videoID string) (string, error) {
	t.throttle()

	videoURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)

	req, err := http.NewRequest("GET", t.settings.TranscriptAPIURL, nil)
	if err != nil {
		return "", err
	}

	q := req.URL.Query()
	q.Add("url", videoURL)
	q.Add("api_key", t.settings.TranscriptAPIKey)
	q.Add("text", "true")
	req.URL.RawQuery = q.Encode()

	client := &http.Client{
		Timeout: 30 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	debugLog("transcript API response: status=%d", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{StatusCode: resp.StatusCode, URL: videoURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// throttle enforces a minimum delay between transcript API calls.
func (t *TranscriptAPI) throttle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if since := time.Since(t.lastCall); since < transcriptCallDelay {
		time.Sleep(transcriptCallDelay - since)
	}
	t.lastCall = time.Now()
}
