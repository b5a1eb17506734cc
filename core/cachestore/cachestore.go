package cachestore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Store manages named caches.
type Store interface {
	// Open returns the cache with the given name, creating it when absent.
	Open(ctx context.Context, name string) (Cache, error)
	// Delete removes the cache and every entry in it. Deleting a missing cache is not an error.
	Delete(ctx context.Context, name string) error
	// Has reports whether the cache exists.
	Has(ctx context.Context, name string) (bool, error)
}

// Cache is a single named key/value store of responses.
type Cache interface {
	// Match returns the stored response or nil when the key is absent.
	Match(ctx context.Context, key string) (*Response, error)
	// Put stores resp under key, replacing any previous value.
	Put(ctx context.Context, key string, resp *Response) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists every key in the cache.
	Keys(ctx context.Context) ([]string, error)
}

// Response is a cached HTTP response.
type Response struct {
	URL      string      `json:"url"`
	Status   int         `json:"status"`
	Header   http.Header `json:"header,omitempty"`
	Body     []byte      `json:"body"`
	StoredAt time.Time   `json:"stored_at"`
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Clone returns a deep copy of r.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	c := *r
	c.Header = r.Header.Clone()
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	return &c
}

// Marshal encodes a response for backends that persist opaque values.
func Marshal(r *Response) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("cannot store a nil response")
	}
	return json.Marshal(r)
}

// Unmarshal decodes a value written by Marshal.
func Unmarshal(data []byte) (*Response, error) {
	var r Response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode cached response: %w", err)
	}
	return &r, nil
}
