// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline execution, cache operations, and store access.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, ringCount, diameterMM)
//	// ... allocate rings ...
//	observability.Pipeline().OnLayoutComplete(ctx, ringCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the board generation pipeline.
type PipelineHooks interface {
	// Build events (topology to ring sequence)
	OnBuildStart(ctx context.Context, nInput, nHidden, nOutput int)
	OnBuildComplete(ctx context.Context, ringCount int, duration time.Duration, err error)

	// Layout events (ring sequence to allocated plan)
	OnLayoutStart(ctx context.Context, ringCount int, diameterMM float64)
	OnLayoutComplete(ctx context.Context, ringCount int, duration time.Duration, err error)

	// Render events (plan to documents)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
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
// Store Hooks
// =============================================================================

// StoreHooks receives events from plan store operations.
type StoreHooks interface {
	// OnSave records a plan being persisted.
	OnSave(ctx context.Context, name string)

	// OnLoad records a plan being retrieved.
	OnLoad(ctx context.Context, name string, duration time.Duration)

	// OnError records a store failure.
	OnError(ctx context.Context, op string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int, int, int)                       {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, time.Duration, error)        {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int, float64)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string)                {}
func (NoopStoreHooks) OnLoad(context.Context, string, time.Duration) {}
func (NoopStoreHooks) OnError(context.Context, string, error)        {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	storeHooks    StoreHooks    = NoopStoreHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
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

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	storeHooks = NoopStoreHooks{}
}
