package use_cases

import (
	"testing"

	"screenplay-worker/domain/ports"
)

func TestPlanChunks(t *testing.T) {
	t.Run("splits with clamped tail", func(t *testing.T) {
		windows := planChunks(400)
		want := []ports.ChunkWindow{
			{Index: 1, Total: 2, StartSec: 0, EndSec: 300},
			{Index: 2, Total: 2, StartSec: 300, EndSec: 400},
		}
		if len(windows) != len(want) {
			t.Fatalf("got %d windows, want %d", len(windows), len(want))
		}
		for i, w := range windows {
			if w != want[i] {
				t.Errorf("window %d = %+v, want %+v", i, w, want[i])
			}
		}
	})

	t.Run("exact multiple has no empty tail", func(t *testing.T) {
		windows := planChunks(600)
		if len(windows) != 2 {
			t.Fatalf("got %d windows, want 2", len(windows))
		}
		if windows[1].EndSec != 600 {
			t.Errorf("last window ends at %d, want 600", windows[1].EndSec)
		}
	})

	t.Run("short video is one window", func(t *testing.T) {
		windows := planChunks(45)
		if len(windows) != 1 {
			t.Fatalf("got %d windows, want 1", len(windows))
		}
		if windows[0].StartSec != 0 || windows[0].EndSec != 45 {
			t.Errorf("window = %+v", windows[0])
		}
	})

	t.Run("zero duration", func(t *testing.T) {
		if windows := planChunks(0); windows != nil {
			t.Errorf("got %v, want nil", windows)
		}
	})
}

func TestEstimateTotalScenes(t *testing.T) {
	cases := []struct {
		name           string
		duration       int
		summaryMinutes int
		variation      bool
		want           int
	}{
		{"standard from duration", 120, 0, false, 15},
		{"standard rounds up", 100, 0, false, 13},
		{"summary from target length", 3600, 2, false, 15},
		{"variation ignores summary", 120, 2, true, 15},
		{"never less than one", 3, 0, false, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := estimateTotalScenes(tc.duration, tc.summaryMinutes, tc.variation)
			if got != tc.want {
				t.Errorf("estimateTotalScenes(%d, %d, %v) = %d, want %d",
					tc.duration, tc.summaryMinutes, tc.variation, got, tc.want)
			}
		})
	}
}

func TestScenesForChunk(t *testing.T) {
	t.Run("standard mode uses window length", func(t *testing.T) {
		w := ports.ChunkWindow{Index: 1, Total: 2, StartSec: 0, EndSec: 300}
		if got := scenesForChunk(w, 400, 50, 0); got != 38 {
			t.Errorf("got %d, want 38", got)
		}
	})

	t.Run("summary mode is proportional", func(t *testing.T) {
		// 15 target scenes over a 600s video; a 300s window gets half.
		w := ports.ChunkWindow{Index: 1, Total: 2, StartSec: 0, EndSec: 300}
		if got := scenesForChunk(w, 600, 15, 2); got != 8 {
			t.Errorf("got %d, want 8", got)
		}
	})

	t.Run("tiny window still asks for one scene", func(t *testing.T) {
		w := ports.ChunkWindow{Index: 1, Total: 1, StartSec: 0, EndSec: 3}
		if got := scenesForChunk(w, 3, 1, 0); got != 1 {
			t.Errorf("got %d, want 1", got)
		}
	})
}
