package codecs

import (
	"errors"
	"testing"

	"github.com/user/thumbgrab/pkg/media"
	"github.com/user/thumbgrab/pkg/mocks"
	"github.com/user/thumbgrab/pkg/ports"
)

func TestRegistry_OpenDecoder(t *testing.T) {
	registry := NewRegistry(map[media.Codec]DecoderFactory{
		media.CodecMJPEG: func(cfg ports.DecoderConfig) (ports.VideoDecoder, error) {
			return &mocks.VideoDecoder{}, nil
		},
	}, nil)

	if !registry.CanDecode(media.CodecMJPEG) {
		t.Error("expected CanDecode to report the registered codec")
	}
	if registry.CanDecode(media.CodecAVC) {
		t.Error("expected CanDecode to reject an unregistered codec")
	}

	dec, err := registry.OpenDecoder(ports.DecoderConfig{Codec: media.CodecMJPEG})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec == nil {
		t.Fatal("expected a decoder")
	}

	if _, err := registry.OpenDecoder(ports.DecoderConfig{Codec: media.CodecAVC}); !errors.Is(err, ErrNoDecoder) {
		t.Errorf("expected ErrNoDecoder, got %v", err)
	}
}

func TestRegistry_OpenEncoder(t *testing.T) {
	registry := NewRegistry(nil, func(cfg ports.EncoderConfig) (ports.StillEncoder, error) {
		return &mocks.StillEncoder{}, nil
	})

	if !registry.HasEncoder() {
		t.Error("expected HasEncoder to be true")
	}
	if _, err := registry.OpenEncoder(ports.EncoderConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := NewRegistry(nil, nil)
	if empty.HasEncoder() {
		t.Error("expected HasEncoder to be false")
	}
	if _, err := empty.OpenEncoder(ports.EncoderConfig{}); !errors.Is(err, ErrNoEncoder) {
		t.Errorf("expected ErrNoEncoder, got %v", err)
	}
}

func TestRegistry_CopiesDecoderTable(t *testing.T) {
	table := map[media.Codec]DecoderFactory{
		media.CodecMJPEG: func(cfg ports.DecoderConfig) (ports.VideoDecoder, error) {
			return &mocks.VideoDecoder{}, nil
		},
	}
	registry := NewRegistry(table, nil)

	// mutations after construction must not leak into the registry
	delete(table, media.CodecMJPEG)
	table[media.CodecAVC] = func(cfg ports.DecoderConfig) (ports.VideoDecoder, error) {
		return &mocks.VideoDecoder{}, nil
	}

	if !registry.CanDecode(media.CodecMJPEG) {
		t.Error("registry lost a registered codec after the caller's map changed")
	}
	if registry.CanDecode(media.CodecAVC) {
		t.Error("registry gained a codec after construction")
	}
}
