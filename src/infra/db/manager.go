package db

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"itemsapi/src/core/domain"
	"itemsapi/src/infra/metrics"
)

const (
	defaultConnectTimeout = 5 * time.Second
	connectKey            = "connect"
)

// ErrClosedDuringHandshake is the cause reported to callers whose handshake
// completed after Close.
var ErrClosedDuringHandshake = errors.New("connection manager closed during handshake")

// Source hands out the shared database handle.
type Source[H any] interface {
	Acquire(ctx context.Context) (H, error)
}

// ConnectFunc performs one handshake and returns a ready handle.
type ConnectFunc[H any] func(ctx context.Context) (H, error)

// Gate reports required variables that are absent from the environment.
type Gate interface {
	Missing() []string
}

// Options tune a Manager.
type Options struct {
	// ConnectTimeout bounds a single handshake (default: 5s).
	ConnectTimeout time.Duration
	Log            *slog.Logger
	Metrics        *metrics.Metrics
}

// Manager lazily establishes a single shared handle of type H.
//
// Concurrent callers arriving while a handshake is pending wait for that same
// attempt. A successful handle is cached for the process lifetime; a failure is
// not, so the next Acquire tries again.
type Manager[H any] struct {
	gate    Gate
	connect ConnectFunc[H]
	closeFn func(H)
	timeout time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics

	group singleflight.Group

	mu     sync.RWMutex
	handle H
	ready  bool
	state  domain.ConnectionState
	// gen is bumped by Close; a handshake started under an older gen is discarded.
	gen uint64
}

// NewManager creates a Manager. closeFn releases a handle on Close and may be nil.
func NewManager[H any](gate Gate, connect ConnectFunc[H], closeFn func(H), opts Options) *Manager[H] {
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Manager[H]{
		gate:    gate,
		connect: connect,
		closeFn: closeFn,
		timeout: timeout,
		log:     log,
		metrics: opts.Metrics,
		state:   domain.ConnUnconfigured,
	}
}

// Acquire returns the shared handle, connecting first if needed.
//
// It fails with a *domain.NotConfiguredError without dialing when required
// variables are missing, and with a domain ConnectFailed error when the
// handshake fails, times out, or ctx ends while waiting for it.
func (m *Manager[H]) Acquire(ctx context.Context) (H, error) {
	var zero H

	if missing := m.gate.Missing(); len(missing) > 0 {
		m.mu.Lock()
		if !m.ready {
			m.setStateLocked(domain.ConnUnconfigured)
		}
		m.mu.Unlock()
		return zero, domain.NewNotConfiguredError(missing)
	}

	if h, ok := m.cached(); ok {
		return h, nil
	}

	ch := m.group.DoChan(connectKey, func() (any, error) {
		return m.handshake(ctx)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		h, _ := res.Val.(H)
		return h, nil
	case <-ctx.Done():
		return zero, domain.NewConnectFailedError(ctx.Err())
	}
}

// State returns the current connection state.
func (m *Manager[H]) State() domain.ConnectionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Close releases the cached handle, if any, and returns to the initial state.
func (m *Manager[H]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ready && m.closeFn != nil {
		m.closeFn(m.handle)
		m.log.Info("database connection closed")
	}
	var zero H
	m.handle = zero
	m.ready = false
	m.gen++
	m.setStateLocked(domain.ConnUnconfigured)
}

func (m *Manager[H]) cached() (H, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.handle, m.ready
}

// handshake runs inside the singleflight group, so at most one is in flight.
func (m *Manager[H]) handshake(ctx context.Context) (any, error) {
	// A previous flight may have finished between the fast path and DoChan.
	if h, ok := m.cached(); ok {
		return h, nil
	}

	m.mu.Lock()
	gen := m.gen
	m.setStateLocked(domain.ConnInitializing)
	m.mu.Unlock()

	// The attempt is shared, so one caller going away must not cancel it.
	hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()

	start := time.Now()
	h, err := m.connect(hctx)
	if err != nil {
		m.mu.Lock()
		if m.gen == gen {
			m.setStateLocked(domain.ConnFailed)
		}
		m.mu.Unlock()
		m.metrics.ObserveHandshake("failure")
		m.log.Warn("database handshake failed",
			"error", err,
			"duration", time.Since(start),
		)
		return nil, domain.NewConnectFailedError(err)
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		if m.closeFn != nil {
			m.closeFn(h)
		}
		m.log.Warn("database handshake finished after close, handle released")
		return nil, domain.NewConnectFailedError(ErrClosedDuringHandshake)
	}
	m.handle = h
	m.ready = true
	m.setStateLocked(domain.ConnReady)
	m.mu.Unlock()
	m.metrics.ObserveHandshake("success")
	m.log.Info("database handshake succeeded", "duration", time.Since(start))
	return h, nil
}

func (m *Manager[H]) setStateLocked(s domain.ConnectionState) {
	m.state = s
	m.metrics.SetConnectionState(s)
}
