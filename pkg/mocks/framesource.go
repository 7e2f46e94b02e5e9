// Package mocks provides hand written mocks of the grabber's capability
// interfaces for tests.
package mocks

import (
	"github.com/user/thumbgrab/pkg/media"
)

// ReadResult is one scripted outcome of FrameSource.Read.
type ReadResult struct {
	Data      []byte
	FrameDone bool
	Err       error
}

// FrameSource is a scripted mock of media.FrameSource. Each Read call pops
// the next ReadResult from Results; reading past the script returns ErrAgain.
type FrameSource struct {
	StartFrameFunc func(frame *media.Frame, limit uint64) error
	ReadFunc       func() ([]byte, bool, error)

	Results []ReadResult

	// Recorded calls for verification
	StartFrameCalls []StartFrameCall
	ReadCalls       int
}

// StartFrameCall records a call to StartFrame.
type StartFrameCall struct {
	Frame *media.Frame
	Limit uint64
}

func (m *FrameSource) StartFrame(frame *media.Frame, limit uint64) error {
	m.StartFrameCalls = append(m.StartFrameCalls, StartFrameCall{Frame: frame, Limit: limit})
	if m.StartFrameFunc != nil {
		return m.StartFrameFunc(frame, limit)
	}
	return nil
}

func (m *FrameSource) Read() ([]byte, bool, error) {
	m.ReadCalls++
	if m.ReadFunc != nil {
		return m.ReadFunc()
	}
	if len(m.Results) == 0 {
		return nil, false, media.ErrAgain
	}
	next := m.Results[0]
	m.Results = m.Results[1:]
	return next.Data, next.FrameDone, next.Err
}

var _ media.FrameSource = (*FrameSource)(nil)
