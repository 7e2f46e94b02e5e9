package grabber

import (
	"math"

	"github.com/user/thumbgrab/pkg/media"
)

// SelectFrame picks the frame whose presentation time is closest to
// requestedTime (in track time units), truncates the track's frame index in
// place so it starts at the key frame preceding the chosen frame, and returns
// the number of frames to skip after that key frame to reach it.
//
// The comparison is strictly less-than, so exact ties keep the earliest
// scanned frame. A requested time beyond the last frame selects the last
// frame. Fails with ErrNoFrames when the index is empty or no key frame
// precedes any candidate.
func SelectFrame(track *media.Track, requestedTime int64) (int, error) {
	parts := track.Frames.Parts
	dts := track.ClipStartTime + track.FirstFrameTimeOffset

	var (
		haveKey    bool
		keyPart    int
		keyOffset  int
		keyOrdinal int

		haveBest   bool
		bestDiff   int64 = math.MaxInt64
		bestSkip   int
		bestPart   int
		bestOffset int
	)

	// The requested time is adjusted by the first frame's pts delay so both
	// sides of the comparison live on the presentation timeline.
	first := true
	ordinal := 0
	for pi, part := range parts {
		for fi := range part.Frames {
			frame := &part.Frames[fi]
			if first {
				requestedTime += frame.PtsDelay
				first = false
			}

			if frame.KeyFrame {
				haveKey = true
				keyPart = pi
				keyOffset = fi
				keyOrdinal = ordinal
			}

			pts := dts + frame.PtsDelay
			diff := pts - requestedTime
			if diff < 0 {
				diff = -diff
			}
			if diff < bestDiff && haveKey {
				haveBest = true
				bestDiff = diff
				bestSkip = ordinal - keyOrdinal
				bestPart = keyPart
				bestOffset = keyOffset
			}

			dts += frame.Duration
			ordinal++
		}
	}

	if !haveBest {
		return 0, ErrNoFrames
	}

	// Drop everything before the winning key frame: leading parts go away
	// entirely, the key frame's part starts at the key frame.
	parts = parts[bestPart:]
	parts[0].Frames = parts[0].Frames[bestOffset:]
	track.Frames.Parts = parts

	return bestSkip, nil
}
