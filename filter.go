// Package streamring wraps a seekable byte stream in a bounded in-memory
// ring buffer, read ahead by a background producer goroutine, and exposes
// the same byte-stream contract to a downstream consumer. See spec.md for
// the full design; SPEC_FULL.md for the ambient stack around it.
package streamring

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/streamring/streamring/config"
	"github.com/streamring/streamring/logging"
)

// Filter is the downstream-facing object: the consumer API of spec.md §4.3.
// It is safe for the host to call from any single goroutine; concurrent
// calls from multiple goroutines are undefined, matching the single-consumer
// contract in spec.md §5.
type Filter struct {
	ring         *ring
	source       Source
	size         int64
	canSeek      bool
	shortcutName string
	logger       *logging.Logger

	scratch []byte // Peek's growable, single-owner view buffer

	cancel    context.CancelFunc
	group     *errgroup.Group
	closeOnce sync.Once
	closed    atomic.Bool
}

// Open validates the source and configuration, allocates the ring, and
// spawns the producer goroutine. It returns ErrDisabled if the config's
// Enable flag is false, ErrNoSourceSize if the source reports an unknown or
// non-positive size, or a config validation error.
func Open(ctx context.Context, source Source, cfg config.Config, logger *logging.Logger) (*Filter, error) {
	if !cfg.Enable {
		return nil, ErrDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	size, err := source.Size()
	if err != nil {
		return nil, fmt.Errorf("streamring: source size: %w", err)
	}
	if size <= 0 {
		return nil, ErrNoSourceSize
	}

	startOffset, err := source.Tell()
	if err != nil {
		return nil, fmt.Errorf("streamring: source tell: %w", err)
	}

	r := newRing(cfg.Ring.BlockSize, cfg.Ring.BlockCount, startOffset)

	f := &Filter{
		ring:         r,
		source:       source,
		size:         size,
		canSeek:      source.CanSeek(),
		shortcutName: cfg.ShortcutName,
		logger:       logger,
	}

	groupCtx, cancel := context.WithCancel(ctx)
	g, groupCtx := errgroup.WithContext(groupCtx)
	f.cancel = cancel
	f.group = g

	g.Go(func() error { return f.runProducer(groupCtx) })
	g.Go(func() error {
		r.pollBroadcast(groupCtx.Done())
		return nil
	})

	logger.Info("ringbuf: loaded", "shortcut", f.shortcutName, "size", size, "can_seek", f.canSeek)
	return f, nil
}

// Close aborts the producer, wakes every blocked waiter, and joins the
// background goroutines. It is safe to call more than once.
func (f *Filter) Close() error {
	var waitErr error
	f.closeOnce.Do(func() {
		f.closed.Store(true)
		f.ring.closeDown()
		f.cancel()
		waitErr = f.group.Wait()
	})
	if waitErr != nil && !errors.Is(waitErr, context.Canceled) && !errors.Is(waitErr, ErrAborted) {
		return waitErr
	}
	return nil
}

// Read copies buffered bytes into p, blocking until len(p) bytes are
// buffered, end of stream is reached (then it returns what remains, possibly
// fewer than len(p)), or the filter is aborted or fails.
func (f *Filter) Read(p []byte) (int, error) {
	if f.closed.Load() {
		return 0, ErrFilterClosed
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := f.ring.readFromRing(p)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Peek returns a read-only view of the next n unread bytes without
// advancing the read position. n == 0 returns an empty view immediately
// (spec.md §9 open question resolution).
func (f *Filter) Peek(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if f.closed.Load() {
		return nil, ErrFilterClosed
	}
	if err := f.growScratch(n); err != nil {
		return nil, err
	}

	m, err := f.ring.peekFromRing(f.scratch[:n])
	if err != nil {
		return nil, err
	}
	return f.scratch[:m], nil
}

// growScratch ensures the scratch buffer has capacity >= n, matching the
// original's realloc-on-demand Peek buffer. An allocation failure (mapped
// here from a runtime panic on an unreasonable size) is returned to the
// caller with state untouched, per spec.md §7.
func (f *Filter) growScratch(n int) (err error) {
	if cap(f.scratch) >= n {
		f.scratch = f.scratch[:n]
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("streamring: peek scratch allocation failed: %v", r)
		}
	}()
	f.scratch = make([]byte, n)
	return nil
}

// CanFastSeek always reports false; this filter never advertises fast-seek
// to the consumer (spec.md §1 non-goal).
func (f *Filter) CanFastSeek() bool { return false }

// CanSeek reports the source's seekability, captured at Open.
func (f *Filter) CanSeek() bool { return f.canSeek }

// Position returns seek_pos if a seek is pending, else stream_offset.
func (f *Filter) Position() int64 { return f.ring.position() }

// SetPosition posts a seek request; it does not block. It requires the
// source support seeking.
func (f *Filter) SetPosition(p int64) error {
	if !f.canSeek {
		return ErrSeekUnsupported
	}
	if f.closed.Load() {
		return ErrFilterClosed
	}
	f.ring.requestSeek(p)
	return nil
}

// Size returns the source size captured at Open.
func (f *Filter) Size() int64 { return f.size }

// CachedSize returns stream_offset + buffer_size: the highest offset the
// consumer can reach without blocking.
func (f *Filter) CachedSize() int64 { return f.ring.cachedSize() }

// ShortcutName returns the identity this filter was configured under.
func (f *Filter) ShortcutName() string { return f.shortcutName }
