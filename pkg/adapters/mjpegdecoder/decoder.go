// Package mjpegdecoder decodes Motion JPEG video frames. Every MJPEG frame
// is a standalone baseline JPEG image, so the decoder is stateless and has
// no output latency.
package mjpegdecoder

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/user/thumbgrab/pkg/media"
	"github.com/user/thumbgrab/pkg/ports"
)

// Decoder implements ports.VideoDecoder for MJPEG tracks.
type Decoder struct {
	cfg ports.DecoderConfig
}

// New creates a decoder for the given track configuration.
func New(cfg ports.DecoderConfig) (*Decoder, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("mjpegdecoder: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return &Decoder{cfg: cfg}, nil
}

// Factory adapts New to the registry's factory signature.
func Factory(cfg ports.DecoderConfig) (ports.VideoDecoder, error) {
	return New(cfg)
}

// Decode decodes one JPEG frame. End-of-stream packets return no picture:
// an intra-only codec never buffers output.
func (d *Decoder) Decode(pkt *media.Packet) (*media.Picture, error) {
	if pkt == nil {
		return nil, nil
	}
	img, err := jpeg.Decode(bytes.NewReader(pkt.Data))
	if err != nil {
		return nil, fmt.Errorf("mjpegdecoder: decode frame: %w", err)
	}
	return &media.Picture{Image: img, PTS: pkt.PTS}, nil
}

// Close releases decoder resources.
func (d *Decoder) Close() error {
	return nil
}

var _ ports.VideoDecoder = (*Decoder)(nil)
