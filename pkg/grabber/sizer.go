package grabber

import "github.com/user/thumbgrab/pkg/media"

// MaxFrameSize returns the largest byte size among the first limit frames of
// the index, crossing part boundaries as needed. The grabber uses it once,
// before decoding starts, to size the scratch buffer that must hold every
// frame it will touch.
func MaxFrameSize(list *media.FrameList, limit int) uint32 {
	var max uint32
	for _, part := range list.Parts {
		for fi := range part.Frames {
			if limit <= 0 {
				return max
			}
			if size := part.Frames[fi].Size; size > max {
				max = size
			}
			limit--
		}
	}
	return max
}
