// Package codecs holds the immutable capability registry mapping codec
// identifiers to decoder factories, plus the single still image encoder
// factory. The registry is built once at startup and shared read-only by
// every grabber instance.
package codecs

import (
	"errors"
	"fmt"

	"github.com/user/thumbgrab/pkg/media"
	"github.com/user/thumbgrab/pkg/ports"
)

var (
	// ErrNoDecoder is returned when no decoder is registered for a codec.
	ErrNoDecoder = errors.New("codecs: no decoder registered for codec")

	// ErrNoEncoder is returned when no still image encoder is registered.
	ErrNoEncoder = errors.New("codecs: no still image encoder registered")
)

// DecoderFactory opens a decoder for one track.
type DecoderFactory func(cfg ports.DecoderConfig) (ports.VideoDecoder, error)

// EncoderFactory opens a still image encoder for one request.
type EncoderFactory func(cfg ports.EncoderConfig) (ports.StillEncoder, error)

// Registry is an immutable table of codec capabilities.
type Registry struct {
	decoders map[media.Codec]DecoderFactory
	encoder  EncoderFactory
}

// NewRegistry builds a registry from the given decoder table and encoder
// factory. The table is copied; later changes to the caller's map do not
// affect the registry.
func NewRegistry(decoders map[media.Codec]DecoderFactory, encoder EncoderFactory) *Registry {
	copied := make(map[media.Codec]DecoderFactory, len(decoders))
	for codec, factory := range decoders {
		if factory != nil {
			copied[codec] = factory
		}
	}
	return &Registry{
		decoders: copied,
		encoder:  encoder,
	}
}

// CanDecode reports whether a decoder is registered for the codec.
func (r *Registry) CanDecode(codec media.Codec) bool {
	_, ok := r.decoders[codec]
	return ok
}

// HasEncoder reports whether a still image encoder is registered.
func (r *Registry) HasEncoder() bool {
	return r.encoder != nil
}

// OpenDecoder opens a decoder for the configured codec.
func (r *Registry) OpenDecoder(cfg ports.DecoderConfig) (ports.VideoDecoder, error) {
	factory, ok := r.decoders[cfg.Codec]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDecoder, cfg.Codec)
	}
	return factory(cfg)
}

// OpenEncoder opens the still image encoder.
func (r *Registry) OpenEncoder(cfg ports.EncoderConfig) (ports.StillEncoder, error) {
	if r.encoder == nil {
		return nil, ErrNoEncoder
	}
	return r.encoder(cfg)
}
