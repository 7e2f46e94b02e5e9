package mocks

import (
	"image"

	"github.com/user/thumbgrab/pkg/media"
	"github.com/user/thumbgrab/pkg/ports"
)

// DecodeResult is one scripted outcome of VideoDecoder.Decode. A nil Picture
// with a nil Err models decoder output latency.
type DecodeResult struct {
	Picture *media.Picture
	Err     error
}

// VideoDecoder is a scripted mock of ports.VideoDecoder. Each Decode call
// pops the next DecodeResult from Results; an exhausted script emits a
// 2x2 picture per call.
type VideoDecoder struct {
	DecodeFunc func(pkt *media.Packet) (*media.Picture, error)
	CloseFunc  func() error

	Results []DecodeResult

	// Recorded calls for verification
	DecodeCalls []DecodeCall
	CloseCalls  int
}

// DecodeCall records a call to Decode. Data is a copy of the packet bytes,
// taken before the grabber reuses its scratch buffer. Flush marks an
// end-of-stream call (nil packet).
type DecodeCall struct {
	Data     []byte
	DTS      int64
	PTS      int64
	Duration int64
	KeyFrame bool
	Flush    bool
}

func (m *VideoDecoder) Decode(pkt *media.Packet) (*media.Picture, error) {
	call := DecodeCall{Flush: pkt == nil}
	if pkt != nil {
		call.Data = append([]byte(nil), pkt.Data...)
		call.DTS = pkt.DTS
		call.PTS = pkt.PTS
		call.Duration = pkt.Duration
		call.KeyFrame = pkt.KeyFrame
	}
	m.DecodeCalls = append(m.DecodeCalls, call)

	if m.DecodeFunc != nil {
		return m.DecodeFunc(pkt)
	}
	if len(m.Results) == 0 {
		return &media.Picture{Image: image.NewRGBA(image.Rect(0, 0, 2, 2))}, nil
	}
	next := m.Results[0]
	m.Results = m.Results[1:]
	return next.Picture, next.Err
}

func (m *VideoDecoder) Close() error {
	m.CloseCalls++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.VideoDecoder = (*VideoDecoder)(nil)
