// Package webpencoder encodes a decoded picture as a lossy WebP still image.
package webpencoder

import (
	"bytes"
	"fmt"

	"github.com/chai2010/webp"

	"github.com/user/thumbgrab/pkg/adapters/jpegencoder"
	"github.com/user/thumbgrab/pkg/media"
	"github.com/user/thumbgrab/pkg/ports"
)

// DefaultQuality is used when the config leaves Quality unset.
const DefaultQuality = 80

// Encoder implements ports.StillEncoder producing WebP bytes.
type Encoder struct {
	cfg ports.EncoderConfig
}

// New creates an encoder for the given output configuration.
func New(cfg ports.EncoderConfig) (*Encoder, error) {
	if cfg.Quality == 0 {
		cfg.Quality = DefaultQuality
	}
	if cfg.Quality < 1 || cfg.Quality > 100 {
		return nil, fmt.Errorf("webpencoder: quality %d out of range", cfg.Quality)
	}
	return &Encoder{cfg: cfg}, nil
}

// Factory adapts New to the registry's factory signature.
func Factory(cfg ports.EncoderConfig) (ports.StillEncoder, error) {
	return New(cfg)
}

// Encode compresses one picture into a WebP packet.
func (e *Encoder) Encode(pic *media.Picture) (*media.Packet, error) {
	if pic == nil || pic.Image == nil {
		return nil, fmt.Errorf("webpencoder: no picture to encode")
	}

	img := jpegencoder.FitImage(pic.Image, e.cfg.MaxWidth, e.cfg.MaxHeight)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(e.cfg.Quality)}); err != nil {
		return nil, fmt.Errorf("webpencoder: encode: %w", err)
	}
	return &media.Packet{Data: buf.Bytes(), PTS: pic.PTS}, nil
}

// Close releases encoder resources.
func (e *Encoder) Close() error {
	return nil
}

var _ ports.StillEncoder = (*Encoder)(nil)
