package mp4source

import "fmt"

// expandRuns expands a run length encoded table (stts style: n samples share
// one value) into one value per sample, truncated or padded to sampleCount.
// Missing trailing entries repeat the last value.
func expandRuns(counts []uint32, values []int64, sampleCount int) []int64 {
	out := make([]int64, 0, sampleCount)
	for i := 0; i < len(counts) && len(out) < sampleCount; i++ {
		n := int(counts[i])
		for j := 0; j < n && len(out) < sampleCount; j++ {
			out = append(out, values[i])
		}
	}
	var last int64
	if len(out) > 0 {
		last = out[len(out)-1]
	}
	for len(out) < sampleCount {
		out = append(out, last)
	}
	return out
}

// sampleOffsets computes each sample's absolute file offset from the
// sample-to-chunk mapping (stsc), the chunk offsets (stco/co64) and the
// per-sample sizes. Sample numbers are 1-based in the size callback, as in
// the container format.
func sampleOffsets(
	firstChunk []uint32,
	samplesPerChunk []uint32,
	chunkOffsets []uint64,
	sizeOf func(sampleNr int) uint32,
	sampleCount int,
) ([]uint64, error) {
	if len(firstChunk) == 0 || len(firstChunk) != len(samplesPerChunk) {
		return nil, fmt.Errorf("mp4source: malformed sample-to-chunk table")
	}

	offsets := make([]uint64, sampleCount)
	sampleNr := 1
	entry := 0
	for chunkNr := 1; chunkNr <= len(chunkOffsets) && sampleNr <= sampleCount; chunkNr++ {
		for entry+1 < len(firstChunk) && uint32(chunkNr) >= firstChunk[entry+1] {
			entry++
		}
		offset := chunkOffsets[chunkNr-1]
		for i := uint32(0); i < samplesPerChunk[entry] && sampleNr <= sampleCount; i++ {
			offsets[sampleNr-1] = offset
			offset += uint64(sizeOf(sampleNr))
			sampleNr++
		}
	}
	if sampleNr <= sampleCount {
		return nil, fmt.Errorf("mp4source: chunk table covers %d of %d samples", sampleNr-1, sampleCount)
	}
	return offsets, nil
}
