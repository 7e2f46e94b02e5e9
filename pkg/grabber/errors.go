package grabber

import "errors"

var (
	// ErrNotSatisfiable is returned when the request cannot be served at
	// all: the track's codec has no registered decoder, or no still image
	// encoder is available. A capability gap, not a data error.
	ErrNotSatisfiable = errors.New("grabber: request not satisfiable")

	// ErrNoFrames is returned when the frame index is empty or contains no
	// key frame before any candidate frame.
	ErrNoFrames = errors.New("grabber: frame index is empty or has no key frame")

	// ErrBadData is returned when frame bytes fail to decode or the input
	// ends before a single frame could be assembled.
	ErrBadData = errors.New("grabber: corrupt frame data")

	// ErrUnexpected is returned when a decoder or encoder behaves outside
	// its contract.
	ErrUnexpected = errors.New("grabber: unexpected codec state")
)
