package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultMaxBytes     = 10_000_000
	userAgent           = "transcriptkit/1.0"
)

var ErrTooLarge = errors.New("response body too large")

// Fetcher downloads caption documents with a timeout and a byte cap
type Fetcher struct {
	Client   *http.Client
	Timeout  time.Duration
	MaxBytes int64
}

// NewFetcher creates a fetcher; zero values fall back to the defaults
func NewFetcher(client *http.Client, timeout time.Duration) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{Client: client, Timeout: timeout, MaxBytes: DefaultMaxBytes}
}

// Bytes downloads rawURL and returns the whole body
func (f *Fetcher) Bytes(ctx context.Context, rawURL string) ([]byte, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("fetch: invalid url %q: %w", rawURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch: unexpected http status %s", resp.Status)
	}

	maxBytes := f.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("fetch: content-length %d exceeds limit %d: %w", resp.ContentLength, maxBytes, ErrTooLarge)
	}

	// One extra byte detects an oversized body
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// JSON downloads rawURL and decodes it into dst
func (f *Fetcher) JSON(ctx context.Context, rawURL string, dst any) error {
	data, err := f.Bytes(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("fetch: decode: %w", err)
	}
	return nil
}
