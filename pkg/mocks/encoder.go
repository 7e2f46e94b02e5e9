package mocks

import (
	"github.com/user/thumbgrab/pkg/media"
	"github.com/user/thumbgrab/pkg/ports"
)

// StillEncoder is a mock of ports.StillEncoder. Without an EncodeFunc it
// returns a small fixed packet for every picture.
type StillEncoder struct {
	EncodeFunc func(pic *media.Picture) (*media.Packet, error)
	CloseFunc  func() error

	// Recorded calls for verification
	EncodeCalls []*media.Picture
	CloseCalls  int
}

func (m *StillEncoder) Encode(pic *media.Picture) (*media.Packet, error) {
	m.EncodeCalls = append(m.EncodeCalls, pic)
	if m.EncodeFunc != nil {
		return m.EncodeFunc(pic)
	}
	// Minimal JPEG marker bytes
	return &media.Packet{Data: []byte{0xFF, 0xD8, 0xFF, 0xD9}}, nil
}

func (m *StillEncoder) Close() error {
	m.CloseCalls++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.StillEncoder = (*StillEncoder)(nil)
