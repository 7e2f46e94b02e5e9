package grabber

import (
	"testing"

	"github.com/user/thumbgrab/pkg/media"
)

func TestMaxFrameSize(t *testing.T) {
	list := &media.FrameList{Parts: []*media.FrameListPart{
		{Frames: []media.Frame{{Size: 100}, {Size: 300}, {Size: 200}}},
		{Frames: []media.Frame{{Size: 500}, {Size: 50}}},
	}}

	tests := []struct {
		name  string
		limit int
		want  uint32
	}{
		{"first frame only", 1, 100},
		{"within first part", 2, 300},
		{"whole first part", 3, 300},
		{"crosses part boundary", 4, 500},
		{"all frames", 5, 500},
		{"limit beyond index", 10, 500},
		{"zero limit", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxFrameSize(list, tt.limit); got != tt.want {
				t.Errorf("MaxFrameSize(%d) = %d, want %d", tt.limit, got, tt.want)
			}
		})
	}
}

func TestMaxFrameSize_EmptyIndex(t *testing.T) {
	if got := MaxFrameSize(&media.FrameList{}, 3); got != 0 {
		t.Errorf("expected 0 for empty index, got %d", got)
	}
}
