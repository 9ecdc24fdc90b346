// Package fetch performs single outbound GET requests with a fixed timeout
// and browser-like headers. Some upstream sites reject Go's default agent,
// so every request carries a realistic Chrome User-Agent.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/webscope/siteinfo/internal/utils"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// AcceptHTML and AcceptJSON are the Accept headers used by the two callers
// of this package: the markup extractor and the rate API clients.
const (
	AcceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	AcceptJSON = "application/json"
)

// maxBodySize caps response bodies at 10 MB.
const maxBodySize = 10 << 20

// Error describes a failed fetch. Status is 0 for transport-level failures
// (DNS, connect, timeout) and the HTTP status code for non-2xx responses.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client is a thin wrapper around http.Client with a fixed per-client timeout.
type Client struct {
	http   *http.Client
	accept string
}

// New creates a fetch client. Callers choose the Accept header once at
// construction since each client talks to one kind of upstream.
func New(timeout time.Duration, accept string) *Client {
	return &Client{
		http:   &http.Client{Timeout: timeout},
		accept: accept,
	}
}

// Get performs a single GET request and returns the response body.
// Any non-2xx status is returned as a *Error, same as transport failures.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", c.accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	return body, nil
}
