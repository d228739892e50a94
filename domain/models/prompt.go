package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// scenePromptFields mirrors the generation-relevant fields of a scene, in
// the order video tools expect them. Timing and bookkeeping fields are
// deliberately left out.
type scenePromptFields struct {
	Camera      string `json:"CAM"`
	Subject     string `json:"SUBJ"`
	Setting     string `json:"SET"`
	Mood        string `json:"MOOD"`
	Effects     string `json:"FX"`
	Color       string `json:"CLR"`
	Sound       string `json:"SND"`
	EditStyle   string `json:"EDIT"`
	RenderStyle string `json:"RNDR"`
	FocalLength string `json:"!FOCAL"`
	TimeOfDay   string `json:"TIM"`
	Title       string `json:"title"`
	StyleVideo  string `json:"style_video"`
}

// ScenePrompt renders one scene as a standalone JSON prompt for downstream
// video-generation tools.
func ScenePrompt(scene Scene) string {
	fields := scenePromptFields{
		Camera:      scene.Camera,
		Subject:     scene.Subject,
		Setting:     scene.Setting,
		Mood:        scene.Mood,
		Effects:     scene.Effects,
		Color:       scene.Color,
		Sound:       scene.Sound,
		EditStyle:   scene.EditStyle,
		RenderStyle: scene.RenderStyle,
		FocalLength: scene.FocalLength,
		TimeOfDay:   scene.TimeOfDay,
		Title:       scene.Title,
		StyleVideo:  scene.StyleVideo,
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ScenePromptFile renders the full numbered prompt list, one prompt per
// scene, separated by blank lines.
func ScenePromptFile(scenes []Scene) string {
	lines := make([]string, 0, len(scenes))
	for i, scene := range scenes {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, ScenePrompt(scene)))
	}
	return strings.Join(lines, "\n\n")
}
