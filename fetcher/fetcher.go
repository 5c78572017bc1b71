// Package fetcher downloads teletext pages over HTTP, with optional headless
// browser rendering.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

// FetchResult contains the fetched HTML and metadata.
type FetchResult struct {
	HTML        string
	FinalURL    string // URL after following redirects
	RequestID   string
	UsedBrowser bool
	FetchTime   time.Duration
}

// Options configures the fetcher behavior.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
	ChromePath     string // Path to Chrome binary (empty = auto-detect)
	UseBrowser     bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "teletext/1.0 (Terminal Teletext Viewer)",
		TimeoutSeconds: 15,
	}
}

// Package-level options (set via Configure)
var opts = DefaultOptions()

// Configure sets the package-level options.
func Configure(o Options) {
	if o.UserAgent != "" {
		opts.UserAgent = o.UserAgent
	}
	if o.TimeoutSeconds > 0 {
		opts.TimeoutSeconds = o.TimeoutSeconds
	}
	opts.ChromePath = o.ChromePath // Can be empty
	opts.UseBrowser = o.UseBrowser
}

// Timeout returns the currently configured timeout duration.
func Timeout() time.Duration {
	return time.Duration(opts.TimeoutSeconds) * time.Second
}

// PageURL fills a channel URL template with a page number.
// The template marks the page with {page}.
func PageURL(template, page string) (string, error) {
	if !strings.Contains(template, "{page}") {
		return "", fmt.Errorf("url template %q has no {page} placeholder", template)
	}
	return strings.ReplaceAll(template, "{page}", page), nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Fetch downloads url with the configured mode.
func Fetch(ctx context.Context, url string) (*FetchResult, error) {
	if opts.UseBrowser {
		return WithBrowser(ctx, url)
	}
	return Simple(ctx, url)
}

// Simple fetches a URL using standard HTTP.
func Simple(ctx context.Context, url string) (*FetchResult, error) {
	start := time.Now()
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("X-Request-Id", requestID)

	client := &http.Client{
		Timeout: Timeout(),
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.WarnContext(ctx, "fetch failed", "request_id", requestID, "url", url, "status", resp.StatusCode)
		return nil, &StatusError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	result := &FetchResult{
		HTML:      string(body),
		FinalURL:  resp.Request.URL.String(),
		RequestID: requestID,
		FetchTime: time.Since(start),
	}
	slog.DebugContext(ctx, "fetched page",
		"request_id", requestID, "url", result.FinalURL, "bytes", len(body), "duration", result.FetchTime)
	return result, nil
}

// userDataDir returns a persistent directory for Chrome user data.
func userDataDir() string {
	dir, _ := os.UserCacheDir()
	return filepath.Join(dir, "teletext-chrome-profile")
}

// WithBrowser fetches a URL using headless Chrome. Slower, but gets past
// pages that are assembled by scripts or sit behind a consent wall.
func WithBrowser(ctx context.Context, targetURL string) (*FetchResult, error) {
	start := time.Now()
	requestID := uuid.NewString()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(opts.UserAgent),
		chromedp.UserDataDir(userDataDir()),
	)
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	// Browser fetches get extra time for startup
	timeout := Timeout() + 15*time.Second
	tctx, cancel := context.WithTimeout(allocCtx, timeout)
	defer cancel()

	bctx, cancel := chromedp.NewContext(tctx)
	defer cancel()

	var html string
	var finalURL string
	err := chromedp.Run(bctx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers(map[string]interface{}{
			"X-Request-Id": requestID,
		})),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&finalURL),
	)
	if err != nil {
		return nil, fmt.Errorf("browser fetch: %w", err)
	}

	result := &FetchResult{
		HTML:        html,
		FinalURL:    finalURL,
		RequestID:   requestID,
		UsedBrowser: true,
		FetchTime:   time.Since(start),
	}
	slog.DebugContext(ctx, "fetched page with browser",
		"request_id", requestID, "url", finalURL, "bytes", len(html), "duration", result.FetchTime)
	return result, nil
}
