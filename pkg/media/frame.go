// Package media defines the frame index, track metadata and codec data
// shapes shared by the grabber core and its adapters.
package media

import "errors"

// ErrAgain is returned by FrameSource.Read when no bytes are available yet
// for the current frame. It is a suspension signal, not a failure: the caller
// should retry once the source has more data.
var ErrAgain = errors.New("media: frame data not available yet")

// NoSizeLimit disables the per-frame byte limit passed to StartFrame.
const NoSizeLimit = ^uint64(0)

// Frame describes a single compressed video frame. Descriptors are immutable
// once the index is built and are consumed strictly in index order.
type Frame struct {
	// Offset is the position of the frame's bytes within its part's source.
	Offset uint64
	// Size is the frame's byte size.
	Size uint32
	// Duration is the frame's duration in track time units.
	Duration int64
	// PtsDelay is the presentation-time offset relative to decode order.
	// Nonzero values indicate B-frame style reordering.
	PtsDelay int64
	// KeyFrame marks a valid decode restart point.
	KeyFrame bool
}

// FrameSource delivers the bytes of one frame at a time, possibly in several
// chunks. StartFrame positions the source at a frame; Read then returns
// chunks until frameDone reports true. Read returns ErrAgain when the next
// chunk is not available yet.
type FrameSource interface {
	StartFrame(frame *Frame, limit uint64) error
	Read() (data []byte, frameDone bool, err error)
}

// FrameListPart is one contiguous run of frames bound to a single byte
// source. Frames is a window into a shared descriptor array; truncation
// advances the window rather than copying descriptors.
type FrameListPart struct {
	Frames []Frame
	Source FrameSource
}

// FrameList is the track's frame index: one or more parts whose frames,
// concatenated in order, form a single monotonically time-ordered sequence.
type FrameList struct {
	Parts []*FrameListPart
}

// FrameCount returns the total number of frames across all parts.
func (l *FrameList) FrameCount() int {
	n := 0
	for _, part := range l.Parts {
		n += len(part.Frames)
	}
	return n
}
