// Package observability provides hooks for layout and server events.
//
// Instrumentation stays optional: the workspace and the HTTP server report
// through the interfaces below, and nothing is recorded unless a consumer
// registers an implementation at startup.
//
// # Usage
//
// Register hooks before serving:
//
//	func main() {
//	    stats := &observability.Counters{}
//	    observability.SetLayoutHooks(stats)
//	    observability.SetServerHooks(stats)
//	    // ... run application
//	}
//
// Emitters fetch the current implementation on every event:
//
//	observability.Layout().OnDrop(ctx, panelID, key, err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from workspace gestures. Keys and sides are
// passed as strings so that this package does not depend on the layout
// engine.
type LayoutHooks interface {
	// OnDragOver records one hit-test during a drag. Target is empty when
	// the pointer is over no placement.
	OnDragOver(ctx context.Context, target, side string)

	// OnDrop records a panel docked into the layout.
	OnDrop(ctx context.Context, panelID, key string, err error)

	// OnMove records a docked panel moved to another placement.
	OnMove(ctx context.Context, src, key string, err error)

	// OnRemove records a panel undocked from the layout.
	OnRemove(ctx context.Context, key string, err error)

	// OnResize records one divider movement.
	OnResize(ctx context.Context, split string, delta float64, accepted bool, err error)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP surface.
type ServerHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed request.
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnDragOver(context.Context, string, string)             {}
func (NoopLayoutHooks) OnDrop(context.Context, string, string, error)          {}
func (NoopLayoutHooks) OnMove(context.Context, string, string, error)          {}
func (NoopLayoutHooks) OnRemove(context.Context, string, error)                {}
func (NoopLayoutHooks) OnResize(context.Context, string, float64, bool, error) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Counters
// =============================================================================

// Counters is an in-memory implementation of both hook interfaces that
// counts events. The zero value is ready to use and safe for concurrent
// use.
type Counters struct {
	DragOvers atomic.Int64
	Drops     atomic.Int64
	Moves     atomic.Int64
	Removes   atomic.Int64
	Resizes   atomic.Int64
	Rejected  atomic.Int64
	Failures  atomic.Int64
	Requests  atomic.Int64
	Errors    atomic.Int64 // responses with status >= 500
}

var (
	_ LayoutHooks = (*Counters)(nil)
	_ ServerHooks = (*Counters)(nil)
)

func (c *Counters) OnDragOver(context.Context, string, string) { c.DragOvers.Add(1) }

func (c *Counters) OnDrop(_ context.Context, _, _ string, err error) {
	c.count(&c.Drops, err)
}

func (c *Counters) OnMove(_ context.Context, _, _ string, err error) {
	c.count(&c.Moves, err)
}

func (c *Counters) OnRemove(_ context.Context, _ string, err error) {
	c.count(&c.Removes, err)
}

func (c *Counters) OnResize(_ context.Context, _ string, _ float64, accepted bool, err error) {
	if err == nil && !accepted {
		c.Rejected.Add(1)
		return
	}
	c.count(&c.Resizes, err)
}

func (c *Counters) OnRequest(context.Context, string, string) { c.Requests.Add(1) }

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	if status >= 500 {
		c.Errors.Add(1)
	}
}

func (c *Counters) count(n *atomic.Int64, err error) {
	if err != nil {
		c.Failures.Add(1)
		return
	}
	n.Add(1)
}

// Snapshot returns the current counts keyed by event name.
func (c *Counters) Snapshot() map[string]int64 {
	return map[string]int64{
		"dragover": c.DragOvers.Load(),
		"drop":     c.Drops.Load(),
		"move":     c.Moves.Load(),
		"remove":   c.Removes.Load(),
		"resize":   c.Resizes.Load(),
		"rejected": c.Rejected.Load(),
		"failure":  c.Failures.Load(),
		"request":  c.Requests.Load(),
		"error":    c.Errors.Load(),
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	serverHooks ServerHooks = NoopServerHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks. Nil is ignored.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetServerHooks registers custom server hooks. Nil is ignored.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	serverHooks = NoopServerHooks{}
}
