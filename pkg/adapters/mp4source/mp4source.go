// Package mp4source builds a grabber track from a progressive MP4 file. It
// walks the sample tables of the first video track into a frame index and
// exposes the file's media data as a pull based frame byte source.
package mp4source

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/thumbgrab/pkg/media"
)

// Options configures how the track is opened.
type Options struct {
	// ChunkSize caps the number of bytes delivered per source read;
	// 0 delivers each frame in a single chunk.
	ChunkSize int
}

// File is an opened MP4 with its parsed video track.
type File struct {
	f     *os.File
	track *media.Track
}

// Open parses the MP4 at path and builds the video track's frame index.
func Open(path string, opts Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mp4source: open: %w", err)
	}

	track, err := Parse(f, f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &File{f: f, track: track}, nil
}

// Track returns the parsed video track. The grabber truncates its frame
// index in place, so a File serves a single request.
func (f *File) Track() *media.Track {
	return f.track
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// Parse reads the MP4 structure from rs and builds a track whose frame
// source reads media data from r.
func Parse(rs io.Reader, r io.ReaderAt, opts Options) (*media.Track, error) {
	mf, err := mp4.DecodeFile(rs)
	if err != nil {
		return nil, fmt.Errorf("mp4source: decode mp4: %w", err)
	}
	if mf.IsFragmented() {
		return nil, fmt.Errorf("mp4source: fragmented MP4 is not supported")
	}
	if mf.Moov == nil {
		return nil, fmt.Errorf("mp4source: no moov box")
	}

	var trak *mp4.TrakBox
	for _, t := range mf.Moov.Traks {
		if t.Mdia != nil && t.Mdia.Hdlr != nil && t.Mdia.Hdlr.HandlerType == "vide" {
			trak = t
			break
		}
	}
	if trak == nil {
		return nil, fmt.Errorf("mp4source: no video track found")
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return nil, fmt.Errorf("mp4source: video track has no sample table")
	}
	stbl := trak.Mdia.Minf.Stbl

	info, err := mediaInfo(trak, stbl)
	if err != nil {
		return nil, err
	}

	frames, err := buildFrames(stbl)
	if err != nil {
		return nil, err
	}

	return &media.Track{
		Media: info,
		Frames: media.FrameList{
			Parts: []*media.FrameListPart{{
				Frames: frames,
				Source: newFrameSource(r, opts.ChunkSize),
			}},
		},
	}, nil
}

// mediaInfo extracts codec identity, dimensions, time scale and extra
// configuration bytes from the track headers.
func mediaInfo(trak *mp4.TrakBox, stbl *mp4.StblBox) (media.MediaInfo, error) {
	var info media.MediaInfo

	if trak.Mdia.Mdhd == nil {
		return info, fmt.Errorf("mp4source: video track has no media header")
	}
	info.TimeScale = trak.Mdia.Mdhd.Timescale

	if stbl.Stsd == nil || len(stbl.Stsd.Children) == 0 {
		return info, fmt.Errorf("mp4source: video track has no sample description")
	}
	entry := stbl.Stsd.Children[0]
	info.CodecTag = entry.Type()
	info.Codec = codecFromTag(info.CodecTag)

	if vse, ok := entry.(*mp4.VisualSampleEntryBox); ok {
		info.Width = int(vse.Width)
		info.Height = int(vse.Height)
		switch {
		case vse.AvcC != nil:
			extra, err := boxPayload(vse.AvcC)
			if err != nil {
				return info, err
			}
			info.ExtraData = extra
		case vse.HvcC != nil:
			extra, err := boxPayload(vse.HvcC)
			if err != nil {
				return info, err
			}
			info.ExtraData = extra
		}
	}
	if info.Width == 0 && trak.Tkhd != nil {
		// tkhd dimensions are 16.16 fixed point
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}
	if info.Width == 0 || info.Height == 0 {
		return info, fmt.Errorf("mp4source: video track has no dimensions")
	}
	return info, nil
}

func codecFromTag(tag string) media.Codec {
	switch tag {
	case "avc1", "avc3":
		return media.CodecAVC
	case "hvc1", "hev1":
		return media.CodecHEVC
	case "vp08":
		return media.CodecVP8
	case "vp09":
		return media.CodecVP9
	case "jpeg", "mjpa", "mjpb":
		return media.CodecMJPEG
	default:
		return media.CodecUnknown
	}
}

// buildFrames turns the stbl sample tables into frame descriptors: sizes and
// offsets from stsz/stsc/stco, durations from stts, pts delays from ctts and
// key frames from stss (a missing stss marks every frame as sync).
func buildFrames(stbl *mp4.StblBox) ([]media.Frame, error) {
	if stbl.Stsz == nil || stbl.Stts == nil || stbl.Stsc == nil {
		return nil, fmt.Errorf("mp4source: incomplete sample tables")
	}
	sampleCount := int(stbl.Stsz.SampleNumber)
	if sampleCount == 0 {
		return nil, fmt.Errorf("mp4source: video track has no samples")
	}

	durations := expandRuns(stbl.Stts.SampleCount, toInt64u(stbl.Stts.SampleTimeDelta), sampleCount)

	ptsDelays := make([]int64, sampleCount)
	if stbl.Ctts != nil {
		// ctts stores run boundaries as cumulative end sample numbers
		counts := make([]uint32, stbl.Ctts.NrSampleCount())
		for i := range counts {
			counts[i] = stbl.Ctts.SampleCount(i)
		}
		ptsDelays = expandRuns(counts, toInt64s(stbl.Ctts.SampleOffset), sampleCount)
	}

	var chunkOffsets []uint64
	switch {
	case stbl.Stco != nil:
		chunkOffsets = make([]uint64, len(stbl.Stco.ChunkOffset))
		for i, off := range stbl.Stco.ChunkOffset {
			chunkOffsets[i] = uint64(off)
		}
	case stbl.Co64 != nil:
		chunkOffsets = stbl.Co64.ChunkOffset
	default:
		return nil, fmt.Errorf("mp4source: no chunk offset table")
	}

	firstChunk := make([]uint32, len(stbl.Stsc.Entries))
	samplesPerChunk := make([]uint32, len(stbl.Stsc.Entries))
	for i, entry := range stbl.Stsc.Entries {
		firstChunk[i] = entry.FirstChunk
		samplesPerChunk[i] = entry.SamplesPerChunk
	}

	offsets, err := sampleOffsets(
		firstChunk,
		samplesPerChunk,
		chunkOffsets,
		func(sampleNr int) uint32 { return stbl.Stsz.GetSampleSize(sampleNr) },
		sampleCount,
	)
	if err != nil {
		return nil, err
	}

	frames := make([]media.Frame, sampleCount)
	for i := range frames {
		frames[i] = media.Frame{
			Offset:   offsets[i],
			Size:     stbl.Stsz.GetSampleSize(i + 1),
			Duration: durations[i],
			PtsDelay: ptsDelays[i],
			KeyFrame: stbl.Stss == nil,
		}
	}
	if stbl.Stss != nil {
		for _, nr := range stbl.Stss.SampleNumber {
			if nr >= 1 && int(nr) <= sampleCount {
				frames[nr-1].KeyFrame = true
			}
		}
	}
	return frames, nil
}

func toInt64u(in []uint32) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}

func toInt64s(in []int32) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}

// boxPayload serializes a box and strips its 8 byte header, leaving the raw
// codec configuration payload decoders expect as extra data.
func boxPayload(b mp4.Box) ([]byte, error) {
	var buf bytes.Buffer
	if err := b.Encode(&buf); err != nil {
		return nil, fmt.Errorf("mp4source: encode %s box: %w", b.Type(), err)
	}
	data := buf.Bytes()
	if len(data) < 8 {
		return nil, fmt.Errorf("mp4source: short %s box", b.Type())
	}
	return data[8:], nil
}
