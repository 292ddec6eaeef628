package streamring

import "io"

// Source is the seekable byte-stream provider the filter wraps. Absolute
// offsets throughout this package refer to Source's own offset space.
//
// Read follows normal io.Reader short-read semantics. Seek repositions the
// underlying stream; it is only ever called by the producer goroutine, never
// concurrently with Read or Tell.
type Source interface {
	// Size returns the total size of the stream. A source with unknown or
	// zero size cannot be wrapped.
	Size() (int64, error)

	// CanSeek reports whether Seek is supported. Captured once at Open.
	CanSeek() bool

	// Tell returns the source's current absolute read offset.
	Tell() (int64, error)

	// Read reads up to len(p) bytes, per io.Reader semantics.
	Read(p []byte) (int, error)

	// Seek repositions the stream to the given absolute offset.
	Seek(offset int64) error
}

// StreamFilter is the byte-stream contract the filter exposes downstream:
// sequential reads, non-advancing peeks with a contiguous-view guarantee,
// and the query surface of spec.md §4.3 rendered as discrete methods.
type StreamFilter interface {
	io.Reader

	// Peek returns a read-only view of the next n unread bytes without
	// advancing the read position. The view is valid until the next call
	// to Read, Peek, or SetPosition.
	Peek(n int) ([]byte, error)

	CanFastSeek() bool
	CanSeek() bool
	Position() int64
	SetPosition(p int64) error
	Size() int64
	CachedSize() int64

	Close() error
}

var _ StreamFilter = &Filter{}
var _ io.Reader = &Filter{}
