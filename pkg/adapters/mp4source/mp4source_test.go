package mp4source

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/thumbgrab/pkg/media"
)

// authorVideoMP4 builds a small progressive MP4 in memory: one AVC video
// track with 4 samples in 2 chunks, run-length coded durations and pts
// offsets, and sync samples 1 and 3. Returns the file bytes and the offset
// of the first media byte.
func authorVideoMP4(t *testing.T) ([]byte, uint64) {
	t.Helper()

	vse := mp4.NewVisualSampleEntryBox("avc1")
	vse.Width = 64
	vse.Height = 48
	stsd := mp4.NewStsdBox()
	stsd.AddChild(vse)

	ctts := &mp4.CttsBox{}
	if err := ctts.AddSampleCountsAndOffset([]uint32{1, 3}, []int32{0, 50}); err != nil {
		t.Fatalf("author ctts: %v", err)
	}
	stsc := &mp4.StscBox{}
	if err := stsc.AddEntry(1, 2, 1); err != nil {
		t.Fatalf("author stsc: %v", err)
	}
	stco := &mp4.StcoBox{ChunkOffset: []uint32{0, 0}}

	stbl := &mp4.StblBox{}
	stbl.AddChild(stsd)
	stbl.AddChild(&mp4.SttsBox{SampleCount: []uint32{2, 2}, SampleTimeDelta: []uint32{100, 200}})
	stbl.AddChild(ctts)
	stbl.AddChild(stsc)
	stbl.AddChild(&mp4.StszBox{SampleNumber: 4, SampleSize: []uint32{2, 3, 4, 5}})
	stbl.AddChild(&mp4.StssBox{SampleNumber: []uint32{1, 3}})
	stbl.AddChild(stco)

	minf := &mp4.MinfBox{}
	minf.AddChild(stbl)
	hdlr, err := mp4.CreateHdlr("vide")
	if err != nil {
		t.Fatalf("author hdlr: %v", err)
	}
	mdia := &mp4.MdiaBox{}
	mdia.AddChild(&mp4.MdhdBox{Timescale: 1000})
	mdia.AddChild(hdlr)
	mdia.AddChild(minf)
	trak := &mp4.TrakBox{}
	trak.AddChild(mdia)
	moov := &mp4.MoovBox{}
	moov.AddChild(trak)

	// chunk 1 holds samples 1-2 (2+3 bytes), chunk 2 samples 3-4 (4+5
	// bytes); the mdat payload starts right after the moov box
	payload := []byte("AABBBCCCCDDDDD")
	mdatStart := uint32(moov.Size()) + 8
	stco.ChunkOffset[0] = mdatStart
	stco.ChunkOffset[1] = mdatStart + 5

	var buf bytes.Buffer
	if err := moov.Encode(&buf); err != nil {
		t.Fatalf("encode moov: %v", err)
	}
	mdat := &mp4.MdatBox{Data: payload}
	if err := mdat.Encode(&buf); err != nil {
		t.Fatalf("encode mdat: %v", err)
	}
	return buf.Bytes(), uint64(mdatStart)
}

func TestParse_BuildsFrameIndex(t *testing.T) {
	data, mdatStart := authorVideoMP4(t)

	track, err := Parse(bytes.NewReader(data), bytes.NewReader(data), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if track.Media.Codec != media.CodecAVC {
		t.Errorf("codec = %q, want %q", track.Media.Codec, media.CodecAVC)
	}
	if track.Media.CodecTag != "avc1" {
		t.Errorf("codec tag = %q, want avc1", track.Media.CodecTag)
	}
	if track.Media.Width != 64 || track.Media.Height != 48 {
		t.Errorf("dimensions = %dx%d, want 64x48", track.Media.Width, track.Media.Height)
	}
	if track.Media.TimeScale != 1000 {
		t.Errorf("timescale = %d, want 1000", track.Media.TimeScale)
	}

	if len(track.Frames.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(track.Frames.Parts))
	}
	got := track.Frames.Parts[0].Frames
	want := []media.Frame{
		{Offset: mdatStart, Size: 2, Duration: 100, PtsDelay: 0, KeyFrame: true},
		{Offset: mdatStart + 2, Size: 3, Duration: 100, PtsDelay: 50},
		{Offset: mdatStart + 5, Size: 4, Duration: 200, PtsDelay: 50, KeyFrame: true},
		{Offset: mdatStart + 9, Size: 5, Duration: 200, PtsDelay: 50},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("frame index mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestParse_SourceServesMediaBytes(t *testing.T) {
	data, _ := authorVideoMP4(t)

	track, err := Parse(bytes.NewReader(data), bytes.NewReader(data), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the third sample's offset crosses the chunk boundary
	part := track.Frames.Parts[0]
	if err := part.Source.StartFrame(&part.Frames[2], media.NoSizeLimit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chunk, done, err := part.Source.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done || string(chunk) != "CCCC" {
		t.Errorf("got %q done=%v, want \"CCCC\" done=true", chunk, done)
	}
}

func TestParse_RejectsGarbage(t *testing.T) {
	if _, err := Parse(bytes.NewReader([]byte("not an mp4 file at all")), bytes.NewReader(nil), Options{}); err == nil {
		t.Error("expected an error for malformed input")
	}
}
