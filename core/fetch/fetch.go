package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"asset-sync/core/cachestore"

	"golang.org/x/sync/errgroup"
)

// ErrNotOK is returned by FetchAll when a response status is outside 2xx.
var ErrNotOK = errors.New("response status is not ok")

// Request describes one resource to retrieve.
type Request struct {
	URL string
	// Reload bypasses HTTP caches between the daemon and the origin.
	Reload bool
}

// Fetcher retrieves resources from the network.
type Fetcher interface {
	// Fetch retrieves a single resource. Non-2xx responses are returned without error.
	Fetch(ctx context.Context, req Request) (*cachestore.Response, error)
	// FetchAll retrieves every request or none. Responses follow request order.
	FetchAll(ctx context.Context, reqs []Request) ([]*cachestore.Response, error)
}

// Client is the HTTP implementation of Fetcher.
type Client struct {
	http        *http.Client
	concurrency int
	userAgent   string
}

// NewClient creates a client with strict transport timeouts.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	return &Client{
		http:        &http.Client{Transport: transport},
		concurrency: concurrency,
		userAgent:   cfg.UserAgent,
	}
}

func (c *Client) Fetch(ctx context.Context, req Request) (*cachestore.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request %s: %w", req.URL, err)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if req.Reload {
		httpReq.Header.Set("Cache-Control", "no-cache")
		httpReq.Header.Set("Pragma", "no-cache")
	}

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", req.URL, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.URL, err)
	}

	return &cachestore.Response{
		URL:      req.URL,
		Status:   res.StatusCode,
		Header:   res.Header.Clone(),
		Body:     body,
		StoredAt: time.Now().UTC(),
	}, nil
}

func (c *Client) FetchAll(ctx context.Context, reqs []Request) ([]*cachestore.Response, error) {
	responses := make([]*cachestore.Response, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			resp, err := c.Fetch(gctx, req)
			if err != nil {
				return err
			}
			if !resp.OK() {
				return fmt.Errorf("%w: %s returned %d", ErrNotOK, req.URL, resp.Status)
			}
			responses[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}
