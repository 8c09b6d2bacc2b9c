// Package fetch retrieves the current public copy of a document page
// and reduces it to the same normalized line representation the corpus
// feeds use, so disputed diff lines can be corroborated against it.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/lexdrift/lexdrift/internal/cache"
	"github.com/lexdrift/lexdrift/internal/model"
	"github.com/lexdrift/lexdrift/internal/normalize"
	"github.com/lexdrift/lexdrift/internal/util"
	"github.com/lexdrift/lexdrift/internal/worker"
)

// sleepFunc is the sleep used between retries (injectable for tests).
var sleepFunc = time.Sleep

// maxCrawlDelay caps how long a robots.txt Crawl-delay can stall a
// single fetch.
const maxCrawlDelay = 10 * time.Second

// Fetcher fetches live pages with retries, rate limiting and per-run
// URL deduplication through the cache.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	maxRetries int
	cache      cache.Cache
	limiter    *worker.Limiter
	robots     *util.RobotsChecker
}

// NewFetcher creates a fetcher from the HTTP and rate-limit config.
// pageCache may be nil to disable deduplication; robots checking is
// skipped when cfg.RespectRobots is false.
func NewFetcher(cfg model.HTTPConfig, rl model.RateLimitConfig, pageCache cache.Cache) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		maxRetries: cfg.MaxRetries,
		cache:      pageCache,
		limiter:    worker.NewLimiter(rl.RequestsPerSecond, rl.BurstSize),
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return f
}

// FetchLines retrieves the page at originURL and returns its visible
// text as normalized lines. Repeated calls for the same URL within a
// run are served from the cache.
func (f *Fetcher) FetchLines(ctx context.Context, originURL string) ([]string, error) {
	key := cache.PageKey(originURL)
	if f.cache != nil {
		if data, found := f.cache.Get(key); found {
			return normalize.Lines(string(data)), nil
		}
	}

	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, originURL)
		if err == nil && !allowed {
			return nil, fmt.Errorf("robots.txt disallows %s", originURL)
		}
		if delay > maxCrawlDelay {
			delay = maxCrawlDelay
		}
		if delay > 0 {
			sleepFunc(delay)
		}
	}

	text, err := f.fetchWithRetry(ctx, originURL)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		_ = f.cache.Set(key, []byte(text), 0)
	}
	return normalize.Lines(text), nil
}

// fetchWithRetry retries transient failures with exponential backoff.
// Non-retryable failures (404, malformed URL) return immediately.
func (f *Fetcher) fetchWithRetry(ctx context.Context, originURL string) (string, error) {
	attempts := f.maxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			sleepFunc(backoff)
		}

		text, retryable, err := f.fetchOnce(ctx, originURL)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, originURL string) (text string, retryable bool, err error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, originURL); err != nil {
			return "", false, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, originURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", isRetryableNetworkError(err.Error()), fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", true, fmt.Errorf("read body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/plain") {
		return string(body), false, nil
	}
	return VisibleText(string(body)), false, nil
}

func isRetryableNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}

// VisibleText extracts the rendered text of an HTML document, skipping
// script, style and navigation chrome, with block elements producing
// line breaks so the result diffs against feed bodies.
func VisibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "header", "footer":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && isBlockElement(n.Data) {
			buf.WriteString("\n")
		}
	}
	walk(doc)

	return buf.String()
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "section", "article", "li", "tr", "br",
		"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "table":
		return true
	}
	return false
}
