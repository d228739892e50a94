package models

// StepStatus - lifecycle of a single pipeline step.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepProcessing StepStatus = "processing"
	StepComplete   StepStatus = "complete"
	StepError      StepStatus = "error"
)

// StepTitles - the eight user-facing pipeline stages, fixed order.
var StepTitles = [8]string{
	"Fetch Metadata",
	"Simulated Download",
	"Scene Boundary Detection",
	"Keyframe Extraction",
	"Story Outline Generation (AI)",
	"Detailed Script Generation (AI)",
	"JSON Composition",
	"Per-Scene Prompt Generation",
}

// Step indices, used by the orchestrator.
const (
	StepMetadata = iota
	StepDownload
	StepSceneBounds
	StepKeyframes
	StepOutline
	StepScript
	StepCompose
	StepScenePrompts
)

// PipelineStep - status, latest output text, and error of one stage.
type PipelineStep struct {
	Title  string     `json:"title"`
	Status StepStatus `json:"status"`
	Output string     `json:"output"`
	Error  string     `json:"error,omitempty"`
}

// AnalysisState - transient per-run step tracker. Created fresh at the start
// of every run, mutated step by step, and discarded afterwards; only the
// AnalysisResult outlives the run.
type AnalysisState struct {
	CurrentStep int            `json:"current_step"`
	Steps       []PipelineStep `json:"steps"`
}

// NewAnalysisState returns all eight steps pending with step 0 current.
func NewAnalysisState() *AnalysisState {
	steps := make([]PipelineStep, len(StepTitles))
	for i, title := range StepTitles {
		steps[i] = PipelineStep{Title: title, Status: StepPending}
	}
	return &AnalysisState{CurrentStep: 0, Steps: steps}
}

// StartStep marks a step processing and makes it current.
func (s *AnalysisState) StartStep(i int) {
	s.Steps[i].Status = StepProcessing
	s.Steps[i].Error = ""
	s.CurrentStep = i
}

// SetOutput replaces the processing step's output text, used for live
// retry/progress messages.
func (s *AnalysisState) SetOutput(i int, output string) {
	s.Steps[i].Output = output
}

// CompleteStep finishes a step and advances the next one to processing.
func (s *AnalysisState) CompleteStep(i int, output string) {
	s.Steps[i].Status = StepComplete
	if output != "" {
		s.Steps[i].Output = output
	}
	if i < len(s.Steps)-1 {
		s.CurrentStep = i + 1
		s.Steps[i+1].Status = StepProcessing
	}
}

// FailStep records an error against a step and makes it current.
func (s *AnalysisState) FailStep(i int, message string) {
	s.Steps[i].Status = StepError
	s.Steps[i].Error = message
	s.CurrentStep = i
}

// FailCurrent marks whichever step is processing as failed, or step 0 when
// failure precedes any processing.
func (s *AnalysisState) FailCurrent(message string) {
	for i := range s.Steps {
		if s.Steps[i].Status == StepProcessing {
			s.FailStep(i, message)
			return
		}
	}
	s.FailStep(0, message)
}

// Clone returns an independent snapshot safe to hand to observers.
func (s *AnalysisState) Clone() *AnalysisState {
	steps := make([]PipelineStep, len(s.Steps))
	copy(steps, s.Steps)
	return &AnalysisState{CurrentStep: s.CurrentStep, Steps: steps}
}
