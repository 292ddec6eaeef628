package streamring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamring/streamring/logging"
)

// These tests drive resolveSeek directly against a hand-set ring state
// rather than through the live producer loop: classifySeek's short/middle/
// long bands are defined in terms of cache_offset/cache_size, which are far
// easier to pin down exactly this way than by racing a background goroutine
// to a particular buffering point.
func newResolveSeekFilter(t *testing.T, src Source, cacheOffset, cacheSize, streamOffset int64) *Filter {
	t.Helper()
	r := newRingWithGaps(1<<16, 8, 0, 1<<10, 1<<16) // capacity 512KiB, realistic gap proportions

	r.mu.Lock()
	r.cacheOffset = cacheOffset
	r.cacheSize = cacheSize
	r.streamOffset = streamOffset
	r.writeIndex = streamOffset % r.capacity
	r.readIndex = streamOffset % r.capacity
	r.mu.Unlock()

	size, err := src.Size()
	require.NoError(t, err)

	return &Filter{
		ring:    r,
		source:  src,
		size:    size,
		canSeek: src.CanSeek(),
		logger:  logging.Discard(),
	}
}

func TestResolveSeekLongReseeksSource(t *testing.T) {
	src := newFakeSource(10<<20, true)
	f := newResolveSeekFilter(t, src, 0, 1000, 1000)

	target := int64(1000 + SeekThreshold + 1) // past cacheEnd+SeekThreshold -> long
	f.ring.requestSeek(target)

	outcome, err := f.resolveSeek()
	require.NoError(t, err)
	assert.Equal(t, seekDone, outcome)
	assert.Equal(t, 1, src.seekCount())
	assert.Equal(t, target, f.ring.position())
	assert.False(t, f.ring.isSeekPending())
}

func TestResolveSeekShortServesFromCacheWithoutReseeking(t *testing.T) {
	src := newFakeSource(10<<20, true)
	f := newResolveSeekFilter(t, src, 0, 1000, 1000)

	target := int64(500) // inside [0, 1000)
	f.ring.requestSeek(target)

	outcome, err := f.resolveSeek()
	require.NoError(t, err)
	assert.Equal(t, seekDone, outcome)
	assert.Equal(t, 0, src.seekCount(), "a short seek must not reseek the source")
	assert.Equal(t, target, f.ring.position())
}

func TestResolveSeekMiddleRequestsRetryAndDrainsBuffer(t *testing.T) {
	src := newFakeSource(10<<20, true)
	f := newResolveSeekFilter(t, src, 0, 1000, 800)

	f.ring.mu.Lock()
	f.ring.bufferSize = 200 // streamOffset(800) + bufferSize(200) == cacheEnd(1000)
	f.ring.mu.Unlock()

	target := int64(1000 + 10) // just past cacheEnd, inside the middle band
	f.ring.requestSeek(target)

	outcome, err := f.resolveSeek()
	require.NoError(t, err)
	assert.Equal(t, seekRetryMiddle, outcome)
	assert.Equal(t, 0, src.seekCount(), "middle seeks read through rather than reseeking")
	assert.True(t, f.ring.isSeekPending(), "middle seek stays pending for the next producer iteration")

	f.ring.mu.Lock()
	assert.Equal(t, int64(0), f.ring.bufferSize, "middle seek drains unread data so the wait-for-write guard can't deadlock")
	f.ring.mu.Unlock()
}

func TestResolveSeekLongPropagatesSourceSeekError(t *testing.T) {
	src := newFakeSource(10<<20, true)
	src.seekErr = assert.AnError
	f := newResolveSeekFilter(t, src, 0, 1000, 1000)

	target := int64(1000 + SeekThreshold + 1)
	f.ring.requestSeek(target)

	_, err := f.resolveSeek()
	assert.ErrorIs(t, err, ErrSourceFailed)
	assert.True(t, f.ring.errored.Load())
}
