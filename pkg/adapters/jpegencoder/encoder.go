// Package jpegencoder encodes a decoded picture as a baseline JPEG still
// image, optionally scaling it down to bounded dimensions first.
package jpegencoder

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"

	"github.com/user/thumbgrab/pkg/media"
	"github.com/user/thumbgrab/pkg/ports"
)

// DefaultQuality is used when the config leaves Quality unset.
const DefaultQuality = 85

// Encoder implements ports.StillEncoder producing JPEG bytes.
type Encoder struct {
	cfg ports.EncoderConfig
}

// New creates an encoder for the given output configuration.
func New(cfg ports.EncoderConfig) (*Encoder, error) {
	if cfg.Quality == 0 {
		cfg.Quality = DefaultQuality
	}
	if cfg.Quality < 1 || cfg.Quality > 100 {
		return nil, fmt.Errorf("jpegencoder: quality %d out of range", cfg.Quality)
	}
	return &Encoder{cfg: cfg}, nil
}

// Factory adapts New to the registry's factory signature.
func Factory(cfg ports.EncoderConfig) (ports.StillEncoder, error) {
	return New(cfg)
}

// Encode compresses one picture into a JPEG packet.
func (e *Encoder) Encode(pic *media.Picture) (*media.Packet, error) {
	if pic == nil || pic.Image == nil {
		return nil, fmt.Errorf("jpegencoder: no picture to encode")
	}

	img := FitImage(pic.Image, e.cfg.MaxWidth, e.cfg.MaxHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.cfg.Quality}); err != nil {
		return nil, fmt.Errorf("jpegencoder: encode: %w", err)
	}
	return &media.Packet{Data: buf.Bytes(), PTS: pic.PTS}, nil
}

// Close releases encoder resources.
func (e *Encoder) Close() error {
	return nil
}

// FitImage scales img down so it fits within maxW x maxH, preserving aspect
// ratio. Zero bounds are ignored; an image already within bounds is returned
// unchanged.
func FitImage(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return img
	}

	outW, outH := w, h
	if maxW > 0 && outW > maxW {
		outH = outH * maxW / outW
		outW = maxW
	}
	if maxH > 0 && outH > maxH {
		outW = outW * maxH / outH
		outH = maxH
	}
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

var _ ports.StillEncoder = (*Encoder)(nil)
