// Package sync implements the replication engine: it mirrors the local
// store's tables to the remote relational endpoint with whole-table
// snapshots, and keeps the local media index aligned with the remote file
// listing.
//
// The engine is a long-lived service object constructed once at startup. It
// owns the debounce timer and the state listeners, and exposes an explicit
// lifecycle (Close cancels the timers, Subscribe returns a removal func)
// instead of ambient globals.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pitwall/paddockpress/internal/client/bridge"
	"github.com/pitwall/paddockpress/internal/client/store"
	"github.com/pitwall/paddockpress/internal/common"
	"github.com/pitwall/paddockpress/internal/logging"
)

// State is the push path's replication state.
type State string

const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateInFlight  State = "in-flight"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

const (
	// DefaultDebounce is the trailing delay after the last local write
	// before a push actually fires. Bursts of edits produce one round-trip.
	DefaultDebounce = 2 * time.Second

	// DefaultSettleDelay keeps the succeeded state visible briefly before
	// returning to idle.
	DefaultSettleDelay = 1500 * time.Millisecond
)

// Engine owns replication policy. Pull, push and media reconciliation are
// mutually exclusive: a pull can never land between a push's collect and its
// POST.
type Engine struct {
	store  *store.Store
	bridge *bridge.Client
	logger logging.Logger

	debounce time.Duration
	settle   time.Duration

	mu          sync.Mutex
	state       State
	lastErr     error
	timer       *time.Timer
	settleTimer *time.Timer
	listeners   map[int]func(State)
	nextID      int
	closed      bool

	// opMu serializes the bodies of push, pull and reconcile.
	opMu sync.Mutex
}

// Option customizes an Engine.
type Option func(*Engine)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.debounce = d }
}

// WithSettleDelay overrides the succeeded-to-idle display delay.
func WithSettleDelay(d time.Duration) Option {
	return func(e *Engine) { e.settle = d }
}

// New constructs the engine. It does not start any background work until a
// local write arrives.
func New(st *store.Store, br *bridge.Client, logger logging.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:     st,
		bridge:    br,
		logger:    logger.With("component", "sync"),
		debounce:  DefaultDebounce,
		settle:    DefaultSettleDelay,
		state:     StateIdle,
		listeners: map[int]func(State){},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current push-path state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// LastError returns the error of the most recent failed push or pull.
func (e *Engine) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Subscribe registers a state-change listener and returns its removal func.
func (e *Engine) Subscribe(fn func(State)) (cancel func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// UpdateConfig swaps the remote endpoints and key for all subsequent calls.
func (e *Engine) UpdateConfig(cfg bridge.Config) {
	e.bridge.UpdateConfig(cfg)
}

// Close stops the timers. A closed engine ignores further writes.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.settleTimer != nil {
		e.settleTimer.Stop()
		e.settleTimer = nil
	}
}

// NotifyWrite records that a tracked table was mutated locally. The engine
// moves to pending and (re)starts the debounce timer: only the last write of
// a burst triggers a push. After a failed push, the next write re-arms.
func (e *Engine) NotifyWrite() {
	if !e.bridge.Configured() {
		return
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	if e.settleTimer != nil {
		e.settleTimer.Stop()
		e.settleTimer = nil
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, e.fireDebounced)
	changed := e.state != StatePending
	e.state = StatePending
	e.mu.Unlock()

	if changed {
		e.notify(StatePending)
	}
}

// fireDebounced runs the debounced push on the timer goroutine.
func (e *Engine) fireDebounced() {
	ctx := context.Background()
	if err := e.push(ctx, nil); err != nil {
		e.logger.Error(ctx, "debounced push failed", "error", err)
	}
}

// PushNow pushes synchronously, bypassing the debounce timer. progress, when
// non-nil, receives human-readable log lines (the "backup now" path).
func (e *Engine) PushNow(ctx context.Context, progress func(string)) error {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.mu.Unlock()
	return e.push(ctx, progress)
}

// push serializes every tracked table and issues one authenticated POST.
// A failed push leaves local data untouched; the local store stays the
// authoritative copy and no retry happens until the next local write.
func (e *Engine) push(ctx context.Context, progress func(string)) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	e.setState(StateInFlight)
	report(progress, "collecting tables")

	payload, err := e.collect(ctx)
	if err != nil {
		e.fail(fmt.Errorf("collect tables: %w", err))
		return err
	}

	report(progress, fmt.Sprintf("pushing %d tables", len(payload)))
	if err := e.bridge.PushTables(ctx, payload); err != nil {
		e.fail(err)
		report(progress, "push failed: "+err.Error())
		return err
	}

	report(progress, "push acknowledged")
	e.succeed()
	return nil
}

// collect reads every tracked table inside one transaction so the payload is
// a consistent snapshot.
func (e *Engine) collect(ctx context.Context) (map[string][]json.RawMessage, error) {
	payload := make(map[string][]json.RawMessage, len(common.TrackedTables))
	err := e.store.WithTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		for _, name := range common.TrackedTables {
			rows, err := tx.Table(name).ToArray(ctx)
			if err != nil {
				return err
			}
			if rows == nil {
				rows = []json.RawMessage{}
			}
			payload[name] = rows
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (e *Engine) succeed() {
	e.mu.Lock()
	if e.state != StateInFlight {
		// a write landed mid-flight and re-armed pending; leave it be
		e.mu.Unlock()
		return
	}
	e.state = StateSucceeded
	e.lastErr = nil
	if !e.closed {
		e.settleTimer = time.AfterFunc(e.settle, e.settleToIdle)
	}
	e.mu.Unlock()
	e.notify(StateSucceeded)
}

func (e *Engine) settleToIdle() {
	e.mu.Lock()
	if e.state != StateSucceeded {
		e.mu.Unlock()
		return
	}
	e.state = StateIdle
	e.settleTimer = nil
	e.mu.Unlock()
	e.notify(StateIdle)
}

func (e *Engine) fail(err error) {
	e.mu.Lock()
	if e.state != StateInFlight {
		e.mu.Unlock()
		return
	}
	e.state = StateFailed
	e.lastErr = err
	e.mu.Unlock()
	e.notify(StateFailed)
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	changed := e.state != s
	e.state = s
	e.mu.Unlock()
	if changed {
		e.notify(s)
	}
}

// notify calls listeners outside the engine lock.
func (e *Engine) notify(s State) {
	e.mu.Lock()
	fns := make([]func(State), 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func report(progress func(string), msg string) {
	if progress != nil {
		progress(msg)
	}
}
