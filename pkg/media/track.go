package media

import "image"

// Codec identifies a compressed video codec.
type Codec string

const (
	CodecAVC     Codec = "avc"
	CodecHEVC    Codec = "hevc"
	CodecVP8     Codec = "vp8"
	CodecVP9     Codec = "vp9"
	CodecMJPEG   Codec = "mjpeg"
	CodecUnknown Codec = "unknown"
)

// MediaInfo carries the codec-level metadata of a video track.
type MediaInfo struct {
	Codec Codec
	// CodecTag is the container's four character sample entry tag
	// (e.g. "avc1", "jpeg").
	CodecTag string
	Width    int
	Height   int
	// TimeScale is the number of track time units per second.
	TimeScale uint32
	// ExtraData holds codec specific configuration bytes
	// (e.g. the avcC payload for AVC).
	ExtraData []byte
}

// Track is the grabber's input: a frame index plus the metadata and time
// offsets needed to convert frame-relative deltas into absolute decode
// timestamps. The frame index is mutated in place by selection; everything
// else is read-only.
type Track struct {
	Media  MediaInfo
	Frames FrameList
	// ClipStartTime and FirstFrameTimeOffset are accumulated offsets, in
	// track time units, of the first frame's decode timestamp.
	ClipStartTime        int64
	FirstFrameTimeOffset int64
}

// Packet is one compressed input unit handed to a decoder, or the encoded
// still image produced by an encoder.
type Packet struct {
	Data     []byte
	DTS      int64
	PTS      int64
	Duration int64
	KeyFrame bool
}

// Picture is one decoded video frame.
type Picture struct {
	Image image.Image
	PTS   int64
}
