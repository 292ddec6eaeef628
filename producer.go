package streamring

import (
	"context"
	"fmt"
)

// runProducer is the single background loop that keeps the ring filled from
// Source, ahead of the consumer, and resolves seek requests. It aims to be
// cancellation-safe: every iteration has at least one cancellation check
// outside the mutex, and every locked section is bounded (spec.md §4.2).
func (f *Filter) runProducer(ctx context.Context) error {
	r := f.ring
	buf := make([]byte, StepSize)

	// After a source failure, wake every waiter so it observes errored
	// instead of staying parked on a condition nobody will broadcast.
	defer func() {
		if r.errored.Load() {
			r.mu.Lock()
			r.readCond.Broadcast()
			r.writeCond.Broadcast()
			r.mu.Unlock()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if r.abort.Load() {
			return nil
		}
		if r.errored.Load() {
			return nil
		}

		offset, err := f.source.Tell()
		if err != nil {
			r.errored.Store(true)
			return fmt.Errorf("streamring: tell source: %w", err)
		}
		if offset >= f.size {
			f.logger.Debug("buffered to end of stream", "offset", offset)
			r.bufferedEOS.Store(true)
		}

		if r.bufferedEOS.Load() {
			if err := r.parkForEOS(); err != nil {
				return err
			}
		}

		if r.isSeekPending() {
			_, err := f.resolveSeek()
			if err != nil {
				return err
			}
			// A middle classification only clears the live window; it
			// falls through to the read step below in this same iteration
			// so the cache window actually grows toward the target instead
			// of re-classifying the same pending seek forever.
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := f.source.Read(buf)
		if err != nil {
			r.errored.Store(true)
			return fmt.Errorf("streamring: read source: %w", err)
		}
		if n > 0 {
			if _, err := r.writeToRing(buf[:n]); err != nil {
				return err
			}
		}
		if n < len(buf) {
			f.logger.Debug("short read from source, marking end of stream", "n", n)
			r.bufferedEOS.Store(true)
		}
	}
}

type seekOutcome int

const (
	seekDone seekOutcome = iota
	seekRetryMiddle
)

// resolveSeek implements spec.md §4.2 step 3. Classification and any
// buffer-clearing happen under the lock; the source reseek for a long seek
// happens outside it, matching the original's cancellation-safe structure.
func (f *Filter) resolveSeek() (seekOutcome, error) {
	r := f.ring

	r.mu.Lock()
	target := r.seekPos
	class := classifySeek(target, r.cacheOffset, r.cacheSize)
	if class == seekMiddle {
		// Drop unread data so a later WaitForWrite can't deadlock against
		// this still-pending seek (spec.md §4.1/§5).
		r.readIndex = r.writeIndex
		r.bufferSize = 0
		r.mu.Unlock()
		f.logger.Debug("seek classified middle, reading through", "target", target)
		return seekRetryMiddle, nil
	}
	r.mu.Unlock()

	longSeek := class == seekLong
	if longSeek {
		f.logger.Info("seek classified long, reseeking source", "target", target)
		if err := f.source.Seek(target); err != nil {
			r.errored.Store(true)
			return seekDone, fmt.Errorf("%w: %v", ErrSourceFailed, err)
		}
	} else {
		f.logger.Debug("seek classified short, served from cache", "target", target)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.streamOffset = target
	if longSeek {
		r.cacheIndex = 0
		r.cacheSize = 0
		r.cacheOffset = target
		r.readIndex = target % r.capacity
		r.writeIndex = target % r.capacity
		r.bufferSize = 0
	} else {
		r.readIndex = (r.cacheIndex + (target - r.cacheOffset)) % r.capacity
		r.bufferSize = ((r.writeIndex-r.readIndex)%r.capacity + r.capacity) % r.capacity
	}

	r.seekPending = false
	r.seekPos = 0
	r.readCond.Broadcast()

	return seekDone, nil
}
