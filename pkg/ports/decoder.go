package ports

import "github.com/user/thumbgrab/pkg/media"

// DecoderConfig carries everything needed to open a decoder for one track.
type DecoderConfig struct {
	Codec     media.Codec
	CodecTag  string
	TimeScale uint32
	Width     int
	Height    int
	ExtraData []byte
}

// VideoDecoder abstracts a stateful video decoder.
//
// Decode feeds one compressed packet and returns the next decoded picture.
// A nil picture with a nil error means the decoder consumed the packet but
// has not emitted a picture yet (output latency). Passing a nil packet
// signals end of stream and asks the decoder to drain a buffered picture.
type VideoDecoder interface {
	Decode(pkt *media.Packet) (*media.Picture, error)

	// Close releases decoder resources.
	Close() error
}
