package models

import (
	"strings"
	"testing"
)

func sampleScene(id int) Scene {
	return Scene{
		SceneID:     id,
		T0:          "00:00",
		T1:          "00:08",
		Summary:     "A figure walks through fog.",
		Camera:      "Dolly Zoom",
		Subject:     "A lone traveler",
		Setting:     "Foggy forest",
		Mood:        "Suspenseful",
		Effects:     "Slow motion",
		Color:       "Desaturated blues",
		Sound:       "Footsteps, low drone",
		EditStyle:   "Long take",
		RenderStyle: "Photorealistic",
		FocalLength: "Wide-angle 24mm",
		TimeOfDay:   "Midnight",
		Title:       "The Approach",
		StyleVideo:  "cinematic",
	}
}

func TestScenePromptExcludesTimingFields(t *testing.T) {
	prompt := ScenePrompt(sampleScene(7))

	for _, excluded := range []string{`"scene_id"`, `"t0"`, `"t1"`, `"summary"`} {
		if strings.Contains(prompt, excluded) {
			t.Errorf("prompt should not contain %s: %s", excluded, prompt)
		}
	}
	for _, included := range []string{`"CAM":"Dolly Zoom"`, `"!FOCAL":"Wide-angle 24mm"`, `"style_video":"cinematic"`} {
		if !strings.Contains(prompt, included) {
			t.Errorf("prompt missing %s: %s", included, prompt)
		}
	}
}

func TestScenePromptFileNumbering(t *testing.T) {
	file := ScenePromptFile([]Scene{sampleScene(1), sampleScene(2), sampleScene(3)})

	blocks := strings.Split(file, "\n\n")
	if len(blocks) != 3 {
		t.Fatalf("expected 3 prompt blocks, got %d", len(blocks))
	}
	for i, block := range blocks {
		wantPrefix := []string{"1. ", "2. ", "3. "}[i]
		if !strings.HasPrefix(block, wantPrefix) {
			t.Errorf("block %d does not start with %q: %q", i, wantPrefix, block)
		}
	}
}

func TestScenePromptFileEmpty(t *testing.T) {
	if got := ScenePromptFile(nil); got != "" {
		t.Errorf("expected empty output for no scenes, got %q", got)
	}
}
