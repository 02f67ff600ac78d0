// Package unsplash fetches random stock photos from the Unsplash API.
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/outfitshare/outfit-api/internal/core/ports"
)

const (
	// DefaultQuery is searched when the caller supplies none.
	DefaultQuery   = "fashion, streetwear, outfit, casual outfit"
	DefaultBaseURL = "https://api.unsplash.com"

	photoCount     = 30
	requestTimeout = 10 * time.Second
)

// Config holds the Unsplash credentials and endpoint.
type Config struct {
	AccessKey string
	BaseURL   string
}

// Client implements ports.ImageSearcher against /photos/random.
type Client struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger
}

var _ ports.ImageSearcher = (*Client)(nil)

// NewClient builds a Client. A nil httpClient gets a dedicated client with
// bounded timeouts.
func NewClient(cfg Config, httpClient *http.Client, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if httpClient == nil {
		httpClient = NewHTTPClient(requestTimeout)
	}
	return &Client{cfg: cfg, client: httpClient, log: log}
}

// NewHTTPClient returns an http.Client tuned for outbound API calls.
// http.DefaultClient has no timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// Search returns the upstream JSON array of photos unchanged.
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		query = DefaultQuery
	}

	q := url.Values{}
	q.Set("count", strconv.Itoa(photoCount))
	q.Set("query", query)
	q.Set("client_id", c.cfg.AccessKey)
	u := fmt.Sprintf("%s/photos/random?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("unsplash request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Version", "v1")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash request: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			c.log.Warn().Err(err).Msg("failed to close unsplash response body")
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("unsplash read body: %w", err)
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("unsplash http %d", res.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("unsplash: response is not valid JSON")
	}
	return json.RawMessage(body), nil
}
