package mjpegdecoder

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/user/thumbgrab/pkg/media"
	"github.com/user/thumbgrab/pkg/ports"
)

func jpegFrame(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestDecoder_Decode(t *testing.T) {
	dec, err := New(ports.DecoderConfig{Codec: media.CodecMJPEG, Width: 32, Height: 24})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer dec.Close()

	pic, err := dec.Decode(&media.Packet{Data: jpegFrame(t, 32, 24), PTS: 1234})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pic == nil {
		t.Fatal("expected a picture")
	}
	bounds := pic.Image.Bounds()
	if bounds.Dx() != 32 || bounds.Dy() != 24 {
		t.Errorf("decoded %dx%d, want 32x24", bounds.Dx(), bounds.Dy())
	}
	if pic.PTS != 1234 {
		t.Errorf("PTS = %d, want 1234", pic.PTS)
	}
}

func TestDecoder_FlushReturnsNoPicture(t *testing.T) {
	dec, err := New(ports.DecoderConfig{Codec: media.CodecMJPEG, Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer dec.Close()

	pic, err := dec.Decode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pic != nil {
		t.Error("an intra-only decoder must not buffer pictures")
	}
}

func TestDecoder_CorruptFrame(t *testing.T) {
	dec, err := New(ports.DecoderConfig{Codec: media.CodecMJPEG, Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer dec.Close()

	if _, err := dec.Decode(&media.Packet{Data: []byte{0x00, 0x01, 0x02}}); err == nil {
		t.Error("expected an error for corrupt frame bytes")
	}
}

func TestNew_InvalidDimensions(t *testing.T) {
	if _, err := New(ports.DecoderConfig{Codec: media.CodecMJPEG}); err == nil {
		t.Error("expected an error for zero dimensions")
	}
}
