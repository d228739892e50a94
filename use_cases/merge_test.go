package use_cases

import (
	"testing"

	"screenplay-worker/domain/models"
)

func chunkResult(title string, scenes []models.Scene, assets []models.Asset) *models.AnalysisResult {
	return &models.AnalysisResult{
		VideoMeta: models.VideoMeta{Title: title, DurationSec: 600},
		Scenes:    scenes,
		Assets:    assets,
	}
}

func TestAccumulatorSeedsFromFirstChunk(t *testing.T) {
	acc := newResultAccumulator()
	if !acc.empty() {
		t.Fatal("fresh accumulator should be empty")
	}

	acc.add(chunkResult("Chunk One Title", []models.Scene{{SceneID: 1, T0: "00:10"}}, nil))
	if acc.empty() {
		t.Fatal("accumulator should not be empty after first add")
	}

	out := acc.finalize(nil)
	if out.VideoMeta.Title != "Chunk One Title" {
		t.Errorf("title = %q, want seed title", out.VideoMeta.Title)
	}
	if len(out.Scenes) != 1 {
		t.Errorf("got %d scenes, want 1", len(out.Scenes))
	}
}

func TestAccumulatorMergesScenesAndDedupsAssets(t *testing.T) {
	acc := newResultAccumulator()
	acc.add(chunkResult("First",
		[]models.Scene{{SceneID: 1, T0: "00:00"}, {SceneID: 2, T0: "01:00"}},
		[]models.Asset{
			{ID: "hero", Type: models.AssetCharacter, Description: "from chunk 1"},
			{ID: "", Type: models.AssetProp, Description: "missing id, dropped"},
		},
	))
	acc.add(chunkResult("Second",
		[]models.Scene{{SceneID: 1, T0: "05:30"}},
		[]models.Asset{
			{ID: "hero", Type: models.AssetCharacter, Description: "from chunk 2, discarded"},
			{ID: "harbor", Type: models.AssetLocation, Description: "new"},
		},
	))

	out := acc.finalize(nil)
	if len(out.Scenes) != 3 {
		t.Fatalf("got %d scenes, want 3", len(out.Scenes))
	}
	if len(out.Assets) != 2 {
		t.Fatalf("got %d assets, want 2", len(out.Assets))
	}
	if out.Assets[0].ID != "hero" || out.Assets[0].Description != "from chunk 1" {
		t.Errorf("first occurrence should win: %+v", out.Assets[0])
	}
	if out.Assets[1].ID != "harbor" {
		t.Errorf("insertion order broken: %+v", out.Assets[1])
	}
}

func TestFinalizeSortsAndRenumbersScenes(t *testing.T) {
	acc := newResultAccumulator()
	acc.add(chunkResult("First", []models.Scene{
		{SceneID: 1, T0: "02:00", Summary: "b"},
		{SceneID: 2, T0: "00:30", Summary: "a"},
	}, nil))
	acc.add(chunkResult("Second", []models.Scene{
		{SceneID: 1, T0: "05:10", Summary: "c"},
	}, nil))

	out := acc.finalize(nil)
	wantOrder := []string{"a", "b", "c"}
	for i, s := range out.Scenes {
		if s.Summary != wantOrder[i] {
			t.Errorf("scene %d summary = %q, want %q", i, s.Summary, wantOrder[i])
		}
		if s.SceneID != i+1 {
			t.Errorf("scene %d id = %d, want %d", i, s.SceneID, i+1)
		}
	}
}

func TestFinalizeAttachesOutlineAndOverridesTitle(t *testing.T) {
	outline := &models.StoryOutline{Title: "The Real Title", Logline: "one line"}

	acc := newResultAccumulator()
	acc.add(chunkResult("Placeholder Chunk Title", []models.Scene{{SceneID: 1, T0: "00:00"}}, nil))

	out := acc.finalize(outline)
	if out.StoryOutline != outline {
		t.Error("outline not attached")
	}
	if out.VideoMeta.Title != "The Real Title" {
		t.Errorf("title = %q, want outline title", out.VideoMeta.Title)
	}

	// An outline without a title leaves the chunk title alone.
	acc2 := newResultAccumulator()
	acc2.add(chunkResult("Kept", []models.Scene{{SceneID: 1, T0: "00:00"}}, nil))
	out2 := acc2.finalize(&models.StoryOutline{})
	if out2.VideoMeta.Title != "Kept" {
		t.Errorf("title = %q, want %q", out2.VideoMeta.Title, "Kept")
	}
}

func TestFinalizeNilOnEmpty(t *testing.T) {
	acc := newResultAccumulator()
	if out := acc.finalize(nil); out != nil {
		t.Errorf("got %+v, want nil", out)
	}
	acc.add(nil)
	if !acc.empty() {
		t.Error("adding nil should not seed the accumulator")
	}
}
