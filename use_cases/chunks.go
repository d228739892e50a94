package use_cases

import (
	"screenplay-worker/domain/ports"
)

const (
	// chunkDurationSeconds - fixed window size for the detailed-script calls.
	chunkDurationSeconds = 300

	// avgSceneDurationSeconds drives the scene-count estimates.
	avgSceneDurationSeconds = 8
)

// planChunks splits the source duration into consecutive fixed windows. The
// last window is clamped to the duration; a duration that divides evenly
// produces no empty trailing window.
func planChunks(durationSecs int) []ports.ChunkWindow {
	if durationSecs <= 0 {
		return nil
	}
	total := (durationSecs + chunkDurationSeconds - 1) / chunkDurationSeconds
	windows := make([]ports.ChunkWindow, 0, total)
	for i := 0; i < total; i++ {
		start := i * chunkDurationSeconds
		end := start + chunkDurationSeconds
		if end > durationSecs {
			end = durationSecs
		}
		if end <= start {
			continue
		}
		windows = append(windows, ports.ChunkWindow{
			Index:    i + 1,
			Total:    total,
			StartSec: start,
			EndSec:   end,
		})
	}
	return windows
}

// estimateTotalScenes returns the whole-run scene target. Summary mode
// derives it from the requested output length, everything else from the
// source duration.
func estimateTotalScenes(durationSecs, summaryMinutes int, variation bool) int {
	if !variation && summaryMinutes > 0 {
		return ceilDiv(summaryMinutes*60, avgSceneDurationSeconds)
	}
	n := ceilDiv(durationSecs, avgSceneDurationSeconds)
	if n < 1 {
		n = 1
	}
	return n
}

// scenesForChunk allocates a share of the total target to one window. In
// summary mode the share is proportional to the window's slice of the
// source timeline.
func scenesForChunk(w ports.ChunkWindow, durationSecs, totalScenes, summaryMinutes int) int {
	if summaryMinutes > 0 && durationSecs > 0 {
		return ceilDiv(w.Duration()*totalScenes, durationSecs)
	}
	n := ceilDiv(w.Duration(), avgSceneDurationSeconds)
	if n < 1 {
		n = 1
	}
	return n
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
