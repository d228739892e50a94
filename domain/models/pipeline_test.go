package models

import "testing"

func TestNewAnalysisState(t *testing.T) {
	state := NewAnalysisState()

	if len(state.Steps) != 8 {
		t.Fatalf("expected 8 steps, got %d", len(state.Steps))
	}
	if state.CurrentStep != 0 {
		t.Errorf("expected current step 0, got %d", state.CurrentStep)
	}
	for i, step := range state.Steps {
		if step.Status != StepPending {
			t.Errorf("step %d: expected pending, got %s", i, step.Status)
		}
		if step.Title != StepTitles[i] {
			t.Errorf("step %d: title %q, want %q", i, step.Title, StepTitles[i])
		}
	}
}

func TestCompleteStepAdvances(t *testing.T) {
	state := NewAnalysisState()
	state.StartStep(StepMetadata)
	state.CompleteStep(StepMetadata, "metadata json")

	if state.Steps[StepMetadata].Status != StepComplete {
		t.Errorf("step 0 should be complete, got %s", state.Steps[StepMetadata].Status)
	}
	if state.Steps[StepMetadata].Output != "metadata json" {
		t.Errorf("step 0 output = %q", state.Steps[StepMetadata].Output)
	}
	if state.CurrentStep != StepDownload {
		t.Errorf("current step should advance to 1, got %d", state.CurrentStep)
	}
	if state.Steps[StepDownload].Status != StepProcessing {
		t.Errorf("next step should be processing, got %s", state.Steps[StepDownload].Status)
	}
}

func TestCompleteLastStepDoesNotAdvance(t *testing.T) {
	state := NewAnalysisState()
	state.StartStep(StepScenePrompts)
	state.CompleteStep(StepScenePrompts, "done")

	if state.CurrentStep != StepScenePrompts {
		t.Errorf("current step moved past the last step: %d", state.CurrentStep)
	}
}

func TestCompleteStepKeepsOutputWhenEmpty(t *testing.T) {
	state := NewAnalysisState()
	state.StartStep(StepScript)
	state.SetOutput(StepScript, "retrying chunk 2/3...")
	state.CompleteStep(StepScript, "")

	if got := state.Steps[StepScript].Output; got != "retrying chunk 2/3..." {
		t.Errorf("empty completion output clobbered the step output: %q", got)
	}
}

func TestFailCurrent(t *testing.T) {
	t.Run("marks processing step", func(t *testing.T) {
		state := NewAnalysisState()
		state.StartStep(StepMetadata)
		state.CompleteStep(StepMetadata, "")
		state.CompleteStep(StepDownload, "")
		state.FailCurrent("model unreachable")

		if state.Steps[StepSceneBounds].Status != StepError {
			t.Errorf("step 2 should carry the error, got %s", state.Steps[StepSceneBounds].Status)
		}
		if state.Steps[StepSceneBounds].Error != "model unreachable" {
			t.Errorf("error message = %q", state.Steps[StepSceneBounds].Error)
		}
		if state.CurrentStep != StepSceneBounds {
			t.Errorf("current step = %d, want %d", state.CurrentStep, StepSceneBounds)
		}
	})

	t.Run("falls back to step zero", func(t *testing.T) {
		state := NewAnalysisState()
		state.FailCurrent("no api keys provided")

		if state.Steps[0].Status != StepError {
			t.Errorf("step 0 should carry the error, got %s", state.Steps[0].Status)
		}
	})
}

func TestCloneIsIndependent(t *testing.T) {
	state := NewAnalysisState()
	snapshot := state.Clone()

	state.StartStep(StepMetadata)
	state.CompleteStep(StepMetadata, "after snapshot")

	if snapshot.Steps[StepMetadata].Status != StepPending {
		t.Errorf("mutating the original leaked into the clone")
	}
	if snapshot.CurrentStep != 0 {
		t.Errorf("clone current step changed to %d", snapshot.CurrentStep)
	}
}
