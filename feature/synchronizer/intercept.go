package synchronizer

import (
	"context"
	"net/http"
	"strings"

	"asset-sync/core/cachestore"
	"asset-sync/core/fetch"
	"asset-sync/core/manifest"

	"go.uber.org/zap"
)

// Source tells where an intercepted response came from.
type Source string

const (
	// SourceHit is a Content Cache hit.
	SourceHit Source = "hit"
	// SourceFill is a network response fetched on a cache miss.
	SourceFill Source = "fill"
	// SourceOnline is a network response for the document root.
	SourceOnline Source = "online"
	// SourceOffline is the cached document root served after a network failure.
	SourceOffline Source = "offline"
)

// Interception is the outcome of Intercept. When Handled is false the
// request must go to the network untouched.
type Interception struct {
	Handled  bool
	Key      string
	Source   Source
	Response *cachestore.Response
}

// Intercept serves a read for rawURL. Only GET requests for paths of the
// controlling build's Resource Map are handled.
func (s *Synchronizer) Intercept(ctx context.Context, method, rawURL string) (*Interception, error) {
	if method != http.MethodGet {
		return &Interception{}, nil
	}
	build := s.life.Controller()
	if build == nil {
		return &Interception{}, nil
	}

	key := manifest.RequestKey(s.origin, rawURL)
	if !build.Resources.Has(key) {
		return &Interception{Key: key}, nil
	}

	target := s.networkURL(key, rawURL)
	if key == manifest.RootKey {
		return s.onlineFirst(ctx, key, target)
	}
	return s.cacheFirst(ctx, key, target)
}

// networkURL keeps the caller's URL (including any cache-busting query) when
// it belongs to the origin. Fragments are never sent.
func (s *Synchronizer) networkURL(key, rawURL string) string {
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		rawURL = rawURL[:i]
	}
	if rawURL == s.origin || strings.HasPrefix(rawURL, s.origin+"/") {
		return rawURL
	}
	return manifest.CacheURL(s.origin, key)
}

func (s *Synchronizer) cacheFirst(ctx context.Context, key, target string) (*Interception, error) {
	content, err := s.ContentCache(ctx)
	if err != nil {
		return nil, err
	}
	cacheKey := manifest.CacheURL(s.origin, key)

	cached, err := content.Match(ctx, cacheKey)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return &Interception{Handled: true, Key: key, Source: SourceHit, Response: cached}, nil
	}

	// The shared fill outlives any single waiter; each waiter stops on its own ctx.
	fillCtx := context.WithoutCancel(ctx)
	ch := s.fills.DoChan(cacheKey, func() (any, error) {
		resp, err := s.fetcher.Fetch(fillCtx, fetch.Request{URL: target})
		if err != nil {
			return nil, err
		}
		if resp.OK() {
			s.storeFill(fillCtx, content, cacheKey, resp)
		}
		return resp, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return &Interception{Handled: true, Key: key, Source: SourceFill, Response: res.Val.(*cachestore.Response)}, nil
	}
}

func (s *Synchronizer) onlineFirst(ctx context.Context, key, target string) (*Interception, error) {
	cacheKey := manifest.CacheURL(s.origin, key)

	resp, fetchErr := s.fetcher.Fetch(ctx, fetch.Request{URL: target})
	if fetchErr == nil {
		if resp.OK() {
			if content, err := s.ContentCache(ctx); err == nil {
				s.storeFill(ctx, content, cacheKey, resp)
			} else {
				s.logger.Warn("Failed to open content cache", zap.Error(err))
			}
		}
		return &Interception{Handled: true, Key: key, Source: SourceOnline, Response: resp}, nil
	}

	content, err := s.ContentCache(ctx)
	if err != nil {
		return nil, fetchErr
	}
	cached, err := content.Match(ctx, cacheKey)
	if err != nil || cached == nil {
		return nil, fetchErr
	}
	s.logger.Debug("Serving cached document root", zap.Error(fetchErr))
	return &Interception{Handled: true, Key: key, Source: SourceOffline, Response: cached}, nil
}

// storeFill writes a filled response. Failures are logged and otherwise ignored.
func (s *Synchronizer) storeFill(ctx context.Context, content cachestore.Cache, cacheKey string, resp *cachestore.Response) {
	if err := content.Put(ctx, cacheKey, resp); err != nil {
		s.logger.Warn("Failed to store response", zap.String("key", cacheKey), zap.Error(err))
	}
}
