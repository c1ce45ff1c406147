// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module emit events through hook interfaces instead of
// depending on a metrics backend. Consumers register implementations at
// startup; until then every hook is a no-op.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetIOHooks(&myIOHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.IO().OnReadStart(ctx, source)
//	// ... parse and build systems ...
//	observability.IO().OnReadComplete(ctx, source, systems, objects, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// IO Hooks
// =============================================================================

// IOHooks receives events from reading and writing mmCIF documents.
type IOHooks interface {
	// Read events. objects counts the rows that were handled.
	OnReadStart(ctx context.Context, source string)
	OnReadComplete(ctx context.Context, source string, systems, objects int, duration time.Duration, err error)

	// Write events. categories counts the categories that had rows.
	OnWriteStart(ctx context.Context, systems int)
	OnWriteComplete(ctx context.Context, systems, categories int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopIOHooks is a no-op implementation of IOHooks.
type NoopIOHooks struct{}

func (NoopIOHooks) OnReadStart(context.Context, string)                                    {}
func (NoopIOHooks) OnReadComplete(context.Context, string, int, int, time.Duration, error) {}
func (NoopIOHooks) OnWriteStart(context.Context, int)                                      {}
func (NoopIOHooks) OnWriteComplete(context.Context, int, int, time.Duration, error)        {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	ioHooks    IOHooks    = NoopIOHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetIOHooks registers custom read/write hooks.
// This should be called once at application startup before any file is read.
func SetIOHooks(h IOHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		ioHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// IO returns the registered read/write hooks.
func IO() IOHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return ioHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	ioHooks = NoopIOHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
