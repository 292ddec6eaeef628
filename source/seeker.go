package source

import (
	"io"

	"github.com/streamring/streamring"
)

var _ streamring.Source = &Seeker{}

// Seeker adapts any io.ReadSeeker plus an explicit size to
// streamring.Source. Useful for in-memory buffers and tests, mirroring the
// growable in-memory seek buffer idiom used elsewhere in the pack
// (gonoto's seekBuffer) rather than reaching for a third-party buffer type.
type Seeker struct {
	rs   io.ReadSeeker
	size int64
}

// NewSeeker wraps rs, which must report size bytes total.
func NewSeeker(rs io.ReadSeeker, size int64) *Seeker {
	return &Seeker{rs: rs, size: size}
}

func (s *Seeker) Size() (int64, error) { return s.size, nil }
func (s *Seeker) CanSeek() bool        { return true }

func (s *Seeker) Tell() (int64, error) {
	return s.rs.Seek(0, io.SeekCurrent)
}

func (s *Seeker) Read(p []byte) (int, error) {
	return s.rs.Read(p)
}

func (s *Seeker) Seek(offset int64) error {
	_, err := s.rs.Seek(offset, io.SeekStart)
	return err
}
