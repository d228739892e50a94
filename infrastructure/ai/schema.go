package ai

import "github.com/google/generative-ai-go/genai"

// ============================================================================
// Response Schemas
// ============================================================================

// outlineSchema constrains the story-outline call to a title, a logline and
// an ordered list of narrative parts with absolute time bounds.
func outlineSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":   {Type: genai.TypeString},
			"logline": {Type: genai.TypeString},
			"parts": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"part_id":    {Type: genai.TypeInteger},
						"title":      {Type: genai.TypeString},
						"summary":    {Type: genai.TypeString},
						"start_time": {Type: genai.TypeString, Description: "MM:SS"},
						"end_time":   {Type: genai.TypeString, Description: "MM:SS"},
					},
					Required: []string{"part_id", "title", "summary", "start_time", "end_time"},
				},
			},
		},
		Required: []string{"title", "logline", "parts"},
	}
}

// analysisSchema constrains a per-chunk generation call to the screenplay
// document shape: video meta, scene list and recurring assets.
func analysisSchema() *genai.Schema {
	sceneProps := map[string]*genai.Schema{
		"scene_id": {Type: genai.TypeInteger},
		"t0":       {Type: genai.TypeString, Description: "scene start, MM:SS"},
		"t1":       {Type: genai.TypeString, Description: "scene end, MM:SS"},
		"summary":  {Type: genai.TypeString},
		"CAM":      {Type: genai.TypeString, Description: "camera movement and framing"},
		"SUBJ":     {Type: genai.TypeString, Description: "subject and action"},
		"SET":      {Type: genai.TypeString, Description: "setting"},
		"MOOD":     {Type: genai.TypeString},
		"FX":       {Type: genai.TypeString, Description: "visual effects"},
		"CLR":      {Type: genai.TypeString, Description: "color grading"},
		"SND":      {Type: genai.TypeString, Description: "sound design"},
		"EDIT":     {Type: genai.TypeString, Description: "editing style"},
		"RNDR":     {Type: genai.TypeString, Description: "render style"},
		"!FOCAL":   {Type: genai.TypeString, Description: "focal length"},
		"TIM":      {Type: genai.TypeString, Description: "time of day"},
		"title":    {Type: genai.TypeString, Description: "short descriptive scene title"},
		"style_video": {
			Type:        genai.TypeString,
			Description: "overall output style; must match the requested style exactly",
		},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"video_meta": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"url":          {Type: genai.TypeString},
					"title":        {Type: genai.TypeString},
					"duration_sec": {Type: genai.TypeNumber},
					"style": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"mood": {Type: genai.TypeString},
							"palette": {
								Type:  genai.TypeArray,
								Items: &genai.Schema{Type: genai.TypeString},
							},
							"music": {Type: genai.TypeString},
						},
						Required: []string{"mood", "palette", "music"},
					},
				},
				Required: []string{"url", "title", "duration_sec", "style"},
			},
			"scenes": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: sceneProps,
					Required: []string{
						"scene_id", "t0", "t1", "summary",
						"CAM", "SUBJ", "SET", "MOOD", "FX", "CLR", "SND", "EDIT", "RNDR", "!FOCAL", "TIM",
						"title", "style_video",
					},
				},
			},
			"assets": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":          {Type: genai.TypeString, Description: "stable id, e.g. char_1, loc_1"},
						"type":        {Type: genai.TypeString, Description: "character, location or prop"},
						"description": {Type: genai.TypeString},
					},
					Required: []string{"id", "type", "description"},
				},
			},
		},
		Required: []string{"video_meta", "scenes", "assets"},
	}
}
