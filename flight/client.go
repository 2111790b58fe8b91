package flight

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Client fetches documents from a URL or a local file.
type Client struct {
	httpClient *http.Client
	cachebust  bool
}

// NewClient creates a client whose HTTP requests time out after timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cachebust:  true,
	}
}

// WithoutCachebust returns a copy that requests URLs unchanged, for static
// documents such as route files.
func (c *Client) WithoutCachebust() *Client {
	cp := *c
	cp.cachebust = false
	return &cp
}

// Fetch returns the raw document. HTTP sources get a cachebust parameter
// unless disabled.
func (c *Client) Fetch(ctx context.Context, urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, fmt.Errorf("no source given")
	}

	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		return os.ReadFile(urlOrPath)
	}

	u, err := url.Parse(urlOrPath)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", urlOrPath, err)
	}
	if c.cachebust {
		q := u.Query()
		q.Set("cachebust", strconv.FormatInt(time.Now().UnixNano(), 10))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlOrPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, urlOrPath)
	}

	return io.ReadAll(resp.Body)
}

// FetchStatus fetches and decodes a flight-status document.
func (c *Client) FetchStatus(ctx context.Context, urlOrPath string) (*Status, error) {
	data, err := c.Fetch(ctx, urlOrPath)
	if err != nil {
		return nil, err
	}
	s, err := ParseStatus(data)
	if err != nil {
		return nil, err
	}
	s.FetchedAt = time.Now().UTC()
	return s, nil
}
