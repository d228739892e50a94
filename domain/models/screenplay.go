package models

// StoryPart - one act of the whole-video outline.
type StoryPart struct {
	PartID    int    `json:"part_id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	StartTime string `json:"start_time"` // "mm:ss"
	EndTime   string `json:"end_time"`   // "mm:ss"
}

// StoryOutline - coarse 3-5 part narrative breakdown generated once per run
// and consumed read-only by every chunk prompt.
type StoryOutline struct {
	Title   string      `json:"title"`
	Logline string      `json:"logline"`
	Parts   []StoryPart `json:"parts"`
}

// PartFor returns the outline part overlapping the [startSec, endSec) window,
// or nil when none does.
func (o *StoryOutline) PartFor(startSec, endSec int) *StoryPart {
	if o == nil {
		return nil
	}
	for i := range o.Parts {
		partStart := ParseClock(o.Parts[i].StartTime)
		partEnd := ParseClock(o.Parts[i].EndTime)
		if startSec < partEnd && endSec > partStart {
			return &o.Parts[i]
		}
	}
	return nil
}

// Scene - the finest-grained unit of the screenplay. IDs are chunk-local
// until the merge step renumbers them chronologically.
type Scene struct {
	SceneID     int    `json:"scene_id"`
	T0          string `json:"t0"` // "mm:ss"
	T1          string `json:"t1"` // "mm:ss"
	Summary     string `json:"summary"`
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

// StartSeconds parses T0 for chronological ordering.
func (s *Scene) StartSeconds() int {
	return ParseClock(s.T0)
}

// Asset types discovered across chunks.
const (
	AssetCharacter = "character"
	AssetLocation  = "location"
	AssetProp      = "prop"
)

// Asset - a reusable character, location, or prop. Deduplicated by ID
// during merge; the first occurrence wins.
type Asset struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// VideoStyle - the overall look requested from the model.
type VideoStyle struct {
	Mood    string   `json:"mood"`
	Palette []string `json:"palette"`
	Music   string   `json:"music"`
}

// VideoMeta - the screenplay-level header generated alongside scenes.
type VideoMeta struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	DurationSec float64    `json:"duration_sec"`
	Style       VideoStyle `json:"style"`
}

// AnalysisResult - the terminal artifact of one run. Seeded by the first
// parsed chunk, grown by the rest, finalized by the merge step, then
// immutable.
type AnalysisResult struct {
	VideoMeta    VideoMeta     `json:"video_meta"`
	Scenes       []Scene       `json:"scenes"`
	Assets       []Asset       `json:"assets"`
	StoryOutline *StoryOutline `json:"story_outline,omitempty"`
}

// Keyframe - a placeholder frame reference for one estimated scene.
// Frames are synthesized, not extracted; media processing is out of scope.
type Keyframe struct {
	SceneID int    `json:"sceneId"`
	URL     string `json:"url"`
}

// KeyframeSet - the output of the simulated extraction step.
type KeyframeSet struct {
	Log       string     `json:"log"`
	Keyframes []Keyframe `json:"keyframes"`
}
