package mp4source

import (
	"fmt"
	"io"

	"github.com/user/thumbgrab/pkg/media"
)

// frameSource serves frame bytes from the file's media data, honoring the
// configured chunk granularity. A file backed source always has data, so it
// never reports media.ErrAgain.
type frameSource struct {
	r         io.ReaderAt
	chunkSize int

	frame *media.Frame
	limit uint64
	pos   uint32
	buf   []byte
}

func newFrameSource(r io.ReaderAt, chunkSize int) *frameSource {
	return &frameSource{r: r, chunkSize: chunkSize}
}

func (s *frameSource) StartFrame(frame *media.Frame, limit uint64) error {
	s.frame = frame
	s.limit = limit
	s.pos = 0
	return nil
}

func (s *frameSource) Read() ([]byte, bool, error) {
	if s.frame == nil {
		return nil, false, fmt.Errorf("mp4source: read without a started frame")
	}

	size := s.frame.Size
	if uint64(size) > s.limit {
		size = uint32(s.limit)
	}
	remaining := size - s.pos
	if remaining == 0 {
		return nil, true, nil
	}

	n := remaining
	if s.chunkSize > 0 && uint32(s.chunkSize) < n {
		n = uint32(s.chunkSize)
	}
	if cap(s.buf) < int(n) {
		s.buf = make([]byte, n)
	}
	buf := s.buf[:n]
	if _, err := s.r.ReadAt(buf, int64(s.frame.Offset)+int64(s.pos)); err != nil {
		return nil, false, fmt.Errorf("mp4source: read frame bytes: %w", err)
	}
	s.pos += n
	return buf, s.pos == size, nil
}

var _ media.FrameSource = (*frameSource)(nil)
