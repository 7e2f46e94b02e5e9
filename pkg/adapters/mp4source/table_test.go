package mp4source

import (
	"reflect"
	"testing"
)

func TestExpandRuns(t *testing.T) {
	got := expandRuns([]uint32{2, 3}, []int64{10, 20}, 5)
	want := []int64{10, 10, 20, 20, 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandRuns_TruncatesAndPads(t *testing.T) {
	// more run entries than samples
	got := expandRuns([]uint32{2, 3}, []int64{10, 20}, 3)
	if want := []int64{10, 10, 20}; !reflect.DeepEqual(got, want) {
		t.Errorf("truncate: got %v, want %v", got, want)
	}

	// fewer run entries than samples: the last value repeats
	got = expandRuns([]uint32{2}, []int64{10}, 4)
	if want := []int64{10, 10, 10, 10}; !reflect.DeepEqual(got, want) {
		t.Errorf("pad: got %v, want %v", got, want)
	}
}

func TestSampleOffsets(t *testing.T) {
	// 2 samples in chunk 1, 3 samples in chunks 2 and 3
	sizes := []uint32{10, 20, 30, 40, 50, 60, 70, 80}
	offsets, err := sampleOffsets(
		[]uint32{1, 2},
		[]uint32{2, 3},
		[]uint64{1000, 2000, 3000},
		func(sampleNr int) uint32 { return sizes[sampleNr-1] },
		8,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []uint64{
		1000, 1010, // chunk 1: samples 1-2
		2000, 2030, 2070, // chunk 2: samples 3-5
		3000, 3060, 3130, // chunk 3: samples 6-8
	}
	if !reflect.DeepEqual(offsets, want) {
		t.Errorf("got %v, want %v", offsets, want)
	}
}

func TestSampleOffsets_ShortChunkTable(t *testing.T) {
	_, err := sampleOffsets(
		[]uint32{1},
		[]uint32{2},
		[]uint64{1000},
		func(int) uint32 { return 10 },
		5,
	)
	if err == nil {
		t.Error("expected an error when the chunk table covers too few samples")
	}
}

func TestSampleOffsets_MalformedTable(t *testing.T) {
	_, err := sampleOffsets(nil, nil, []uint64{1000}, func(int) uint32 { return 10 }, 1)
	if err == nil {
		t.Error("expected an error for an empty sample-to-chunk table")
	}
}
