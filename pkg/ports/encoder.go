package ports

import "github.com/user/thumbgrab/pkg/media"

// EncoderConfig configures the still image encoder for one request.
type EncoderConfig struct {
	// Width and Height are the source track's pixel dimensions.
	Width  int
	Height int
	// Quality selects the output compression quality (codec specific scale).
	Quality int
	// MaxWidth and MaxHeight bound the output image when nonzero; the
	// picture is scaled down preserving aspect ratio before encoding.
	MaxWidth  int
	MaxHeight int
}

// StillEncoder abstracts the fixed still image encoder.
//
// Encode compresses a single picture into one output packet. Still encoding
// is synchronous: a nil packet with a nil error means the encoder failed to
// emit, which callers treat as a broken contract.
type StillEncoder interface {
	Encode(pic *media.Picture) (*media.Packet, error)

	// Close releases encoder resources.
	Close() error
}
