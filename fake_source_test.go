package streamring

import (
	"sync"
)

// fakeSource is a deterministic in-memory Source for tests: byte i has
// value i mod 256, matching the end-to-end scenarios in spec.md §8.
type fakeSource struct {
	mu       sync.Mutex
	data     []byte
	pos      int64
	canSeek  bool
	readErr  error
	seekErr  error
	seeks    []int64
	tellErr  error
	blockCh  chan struct{} // if non-nil, Read blocks until receive
	readGate func(n int)   // optional hook invoked before each Read for test control
}

func newFakeSource(size int, canSeek bool) *fakeSource {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 256)
	}
	return &fakeSource{data: data, canSeek: canSeek}
}

func (s *fakeSource) Size() (int64, error) { return int64(len(s.data)), nil }
func (s *fakeSource) CanSeek() bool        { return s.canSeek }

func (s *fakeSource) Tell() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tellErr != nil {
		return 0, s.tellErr
	}
	return s.pos, nil
}

func (s *fakeSource) Read(p []byte) (int, error) {
	if s.blockCh != nil {
		<-s.blockCh
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readGate != nil {
		s.readGate(len(p))
	}
	if s.readErr != nil {
		return 0, s.readErr
	}
	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *fakeSource) Seek(offset int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeks = append(s.seeks, offset)
	if s.seekErr != nil {
		return s.seekErr
	}
	s.pos = offset
	return nil
}

func (s *fakeSource) seekCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seeks)
}
