package use_cases

import (
	"sort"

	"screenplay-worker/domain/models"
)

// resultAccumulator merges per-chunk results into one screenplay. The first
// chunk seeds the document; later chunks only contribute scenes and assets.
// Asset IDs are deduplicated first-wins in insertion order.
type resultAccumulator struct {
	result  *models.AnalysisResult
	assets  []models.Asset
	seenIDs map[string]bool
}

func newResultAccumulator() *resultAccumulator {
	return &resultAccumulator{seenIDs: make(map[string]bool)}
}

func (a *resultAccumulator) add(chunk *models.AnalysisResult) {
	if chunk == nil {
		return
	}
	if a.result == nil {
		seed := *chunk
		a.result = &seed
	} else {
		a.result.Scenes = append(a.result.Scenes, chunk.Scenes...)
	}
	for _, asset := range chunk.Assets {
		if asset.ID == "" || a.seenIDs[asset.ID] {
			continue
		}
		a.seenIDs[asset.ID] = true
		a.assets = append(a.assets, asset)
	}
}

func (a *resultAccumulator) empty() bool {
	return a.result == nil
}

// finalize orders scenes chronologically by start time, renumbers them from
// 1, attaches the deduplicated assets and the outline, and overrides the
// title with the outline's. The sort is stable so chunk order breaks ties.
func (a *resultAccumulator) finalize(outline *models.StoryOutline) *models.AnalysisResult {
	if a.result == nil {
		return nil
	}

	a.result.Assets = a.assets
	sort.SliceStable(a.result.Scenes, func(i, j int) bool {
		return a.result.Scenes[i].StartSeconds() < a.result.Scenes[j].StartSeconds()
	})
	for i := range a.result.Scenes {
		a.result.Scenes[i].SceneID = i + 1
	}

	a.result.StoryOutline = outline
	if outline != nil && outline.Title != "" {
		a.result.VideoMeta.Title = outline.Title
	}
	return a.result
}
