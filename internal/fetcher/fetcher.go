package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"linkedin-jobs-export/internal/config"
	"linkedin-jobs-export/internal/observability"
)

var (
	ErrMaxRetries = errors.New("max retries exceeded")
	ErrDisallowed = errors.New("disallowed by robots.txt")
)

// StatusError is returned for responses with a 4xx or 5xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s for url: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// RetryError is the terminal failure after every attempt failed. It matches
// ErrMaxRetries and the last attempt's cause.
type RetryError struct {
	URL      string
	Label    string
	Attempts int
	Err      error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("max retries exceeded for %s URL: %s after %d attempts: %v", e.Label, e.URL, e.Attempts, e.Err)
}

func (e *RetryError) Unwrap() []error {
	return []error{ErrMaxRetries, e.Err}
}

type Fetcher struct {
	client      *http.Client
	cfg         *config.Config
	logger      *observability.Logger
	robotsCache *RobotsCache
	rateLimiter *RateLimiter
	progress    io.Writer
}

type FetchResponse struct {
	StatusCode int
	Body       []byte
	URL        string
	Headers    http.Header
}

func NewFetcher(cfg *config.Config, logger *observability.Logger) *Fetcher {
	client := &http.Client{
		Timeout: cfg.GetRequestTimeout(),
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        cfg.HTTP.MaxIdleConnections,
			MaxIdleConnsPerHost: cfg.HTTP.MaxIdleConnectionsPerHost,
			IdleConnTimeout:     cfg.GetIdleConnectionTimeout(),
		},
	}
	if !cfg.HTTP.FollowRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	f := &Fetcher{
		client:      client,
		cfg:         cfg,
		logger:      logger,
		progress:    io.Discard,
		rateLimiter: NewRateLimiter(cfg.RateLimit.MaxConcurrentPerHost, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	}
	if cfg.HTTP.RespectRobots {
		f.robotsCache = NewRobotsCache(cfg.GetRobotsCacheTTL(), cfg.HTTP.UserAgent)
	}
	return f
}

// SetProgress sets where console lines for failed attempts and retries go.
// Writes must be safe for concurrent use when details are fetched in parallel.
func (f *Fetcher) SetProgress(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	f.progress = w
}

// Fetch issues GET requests until one succeeds or http.max_retries+1 attempts
// have failed, sleeping http.retry_delay_ms between attempts. label names the
// request in logs and in the terminal error.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string, label string) (*FetchResponse, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid URL: missing host: %q", urlStr)
	}

	if f.robotsCache != nil {
		allowed, err := f.robotsCache.IsAllowed(ctx, parsedURL, f.client)
		if err != nil {
			return nil, fmt.Errorf("robots.txt check failed: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, urlStr)
		}
	}

	maxRetries := f.cfg.HTTP.MaxRetries
	delay := f.cfg.GetRetryDelay()

	var lastErr error
	for attempt := 1; attempt <= maxRetries+1; attempt++ {
		resp, err := f.fetchOnce(ctx, parsedURL.Host, urlStr)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err

		f.logger.Warn("Request attempt failed",
			"label", label,
			"url", urlStr,
			"attempt", attempt,
			"error", err.Error(),
		)
		fmt.Fprintf(f.progress, "[#] - Attempt %d failed on processing %s Request: %v\n", attempt, label, err)
		if attempt > maxRetries {
			break
		}

		f.logger.Info("Retrying request",
			"label", label,
			"next_attempt", attempt+1,
			"delay", delay.String(),
		)
		fmt.Fprintf(f.progress, "[#] - Retrying the request, after %s!\n", delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, &RetryError{URL: urlStr, Label: label, Attempts: maxRetries + 1, Err: lastErr}
}

func (f *Fetcher) fetchOnce(ctx context.Context, host string, urlStr string) (*FetchResponse, error) {
	release, err := f.rateLimiter.Acquire(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}
	defer release()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", f.cfg.HTTP.UserAgent)
	req.Header.Set("Accept-Language", f.cfg.HTTP.AcceptLanguage)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Warn("Failed to close response body", "url", urlStr, "error", err.Error())
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: resp.Request.URL.String()}
	}

	reader := resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Response received",
		"url", urlStr,
		"final_url", resp.Request.URL.String(),
		"status", resp.StatusCode,
		"content_encoding", resp.Header.Get("Content-Encoding"),
		"content_type", resp.Header.Get("Content-Type"),
		"body_bytes", len(body),
	)

	return &FetchResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
		URL:        resp.Request.URL.String(),
		Headers:    resp.Header,
	}, nil
}
