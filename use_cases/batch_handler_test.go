package use_cases

import (
	"context"
	"strings"
	"testing"

	"screenplay-worker/domain/models"
)

// routingMetadata maps each URL to its own metadata; unknown URLs resolve
// to the degraded placeholder.
type routingMetadata struct {
	byURL map[string]*models.VideoMetadata
}

func (f *routingMetadata) FetchVideoMetadata(ctx context.Context, url string) *models.VideoMetadata {
	if meta, ok := f.byURL[url]; ok {
		return meta
	}
	return &models.VideoMetadata{Title: "Video Title (unavailable)"}
}

// recordingLibrary keeps the latest entry per ID plus every status written.
type recordingLibrary struct {
	entries  map[string]*models.LibraryEntry
	statuses map[string][]models.EntryStatus
	order    []string // distinct IDs in first-Put order
}

func newRecordingLibrary() *recordingLibrary {
	return &recordingLibrary{
		entries:  map[string]*models.LibraryEntry{},
		statuses: map[string][]models.EntryStatus{},
	}
}

func (l *recordingLibrary) Put(ctx context.Context, entry *models.LibraryEntry) error {
	if _, seen := l.entries[entry.ID]; !seen {
		l.order = append(l.order, entry.ID)
	}
	clone := *entry
	l.entries[entry.ID] = &clone
	l.statuses[entry.ID] = append(l.statuses[entry.ID], entry.Status)
	return nil
}

func (l *recordingLibrary) Get(ctx context.Context, id string) (*models.LibraryEntry, error) {
	return l.entries[id], nil
}

func (l *recordingLibrary) GetAll(ctx context.Context) ([]*models.LibraryEntry, error) {
	out := make([]*models.LibraryEntry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	return out, nil
}

func (l *recordingLibrary) Delete(ctx context.Context, id string) error {
	delete(l.entries, id)
	return nil
}

func (l *recordingLibrary) Clear(ctx context.Context) error {
	l.entries = map[string]*models.LibraryEntry{}
	return nil
}

func (l *recordingLibrary) byURL(url string) *models.LibraryEntry {
	for _, e := range l.entries {
		if e.URL == url {
			return e
		}
	}
	return nil
}

// recordingMessenger counts terminal notifications per entry.
type recordingMessenger struct {
	stateCount map[string]int
	completed  []string
	failed     []string
}

func newRecordingMessenger() *recordingMessenger {
	return &recordingMessenger{stateCount: map[string]int{}}
}

func (m *recordingMessenger) SendState(ctx context.Context, entryID string, state *models.AnalysisState) error {
	m.stateCount[entryID]++
	return nil
}

func (m *recordingMessenger) SendCompleted(ctx context.Context, entryID string) error {
	m.completed = append(m.completed, entryID)
	return nil
}

func (m *recordingMessenger) SendFailed(ctx context.Context, entryID string, err error) error {
	m.failed = append(m.failed, entryID)
	return nil
}

func batchMetadata() *routingMetadata {
	return &routingMetadata{byURL: map[string]*models.VideoMetadata{
		"https://youtu.be/aaa": {VideoID: "aaa", Title: "First Video", Duration: 300, DurationFormatted: "05:00", ThumbnailURL: "https://i.ytimg.com/vi/aaa/hqdefault.jpg"},
		"https://youtu.be/bbb": {VideoID: "bbb", Title: "Second Video", Duration: 300, DurationFormatted: "05:00"},
	}}
}

func TestBatchCreatesPlaceholdersUpFront(t *testing.T) {
	gen := workingGenerator()
	lib := newRecordingLibrary()
	msg := newRecordingMessenger()
	runner := NewRunner(batchMetadata(), gen, nil)
	h := NewBatchHandler(runner, batchMetadata(), lib, msg, nil, nil, []string{"key1"})

	job := models.NewAnalysisJob("job-1", []string{
		"https://youtu.be/aaa",
		"https://example.com/broken",
		"https://youtu.be/bbb",
	}, "cinematic")
	if err := h.ProcessJob(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lib.order) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(lib.order))
	}

	broken := lib.byURL("https://example.com/broken")
	if broken == nil {
		t.Fatal("unresolvable URL has no entry")
	}
	if broken.Status != models.EntryError {
		t.Errorf("broken entry status = %s, want error", broken.Status)
	}
	if !strings.HasPrefix(broken.ID, "failed-meta-") {
		t.Errorf("broken entry id = %q", broken.ID)
	}
	if broken.Title != "https://example.com/broken" {
		t.Errorf("broken entry title = %q, want its URL", broken.Title)
	}

	first := lib.byURL("https://youtu.be/aaa")
	if !strings.HasPrefix(first.ID, "aaa-") {
		t.Errorf("entry id = %q, want videoID prefix", first.ID)
	}
	if first.ThumbnailURL == "" {
		t.Error("thumbnail not carried onto the placeholder")
	}

	// Placeholders exist before their analysis begins: the first status
	// written for every resolvable entry is pending.
	for _, url := range []string{"https://youtu.be/aaa", "https://youtu.be/bbb"} {
		entry := lib.byURL(url)
		if got := lib.statuses[entry.ID][0]; got != models.EntryPending {
			t.Errorf("first status for %s = %s, want pending", url, got)
		}
	}
}

func TestBatchFailureDoesNotAbortRemaining(t *testing.T) {
	gen := workingGenerator()
	gen.failVideoIDs = map[string]bool{"aaa": true}
	lib := newRecordingLibrary()
	msg := newRecordingMessenger()
	runner := NewRunner(batchMetadata(), gen, nil)
	h := NewBatchHandler(runner, batchMetadata(), lib, msg, nil, nil, []string{"key1"})

	job := models.NewAnalysisJob("job-2", []string{"https://youtu.be/aaa", "https://youtu.be/bbb"}, "cinematic")
	if err := h.ProcessJob(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failed := lib.byURL("https://youtu.be/aaa")
	if failed.Status != models.EntryError {
		t.Errorf("first entry status = %s, want error", failed.Status)
	}
	if failed.Error == "" {
		t.Error("failed entry is missing its error message")
	}
	if len(msg.failed) != 1 || msg.failed[0] != failed.ID {
		t.Errorf("failed notifications = %v", msg.failed)
	}

	done := lib.byURL("https://youtu.be/bbb")
	if done.Status != models.EntryComplete {
		t.Fatalf("second entry status = %s, want complete", done.Status)
	}
	if done.Result == nil || len(done.Result.Scenes) == 0 {
		t.Error("completed entry has no result")
	}
	if done.Title != "The Long Haul" {
		t.Errorf("completed title = %q, want outline title", done.Title)
	}
	if done.CompletedAt == 0 {
		t.Error("completion timestamp not set")
	}
	if len(msg.completed) != 1 || msg.completed[0] != done.ID {
		t.Errorf("completed notifications = %v", msg.completed)
	}
	if msg.stateCount[done.ID] == 0 {
		t.Error("no state updates relayed for the completed entry")
	}
}

func TestBatchCarriesNewKeyAcrossEntries(t *testing.T) {
	gen := workingGenerator()
	gen.exhausted = map[string]bool{"key1": true}
	prompter := &fakePrompter{answers: []string{"fresh-key"}}
	lib := newRecordingLibrary()
	msg := newRecordingMessenger()
	runner := NewRunner(batchMetadata(), gen, prompter)
	h := NewBatchHandler(runner, batchMetadata(), lib, msg, nil, nil, []string{"key1"})

	job := models.NewAnalysisJob("job-3", []string{"https://youtu.be/aaa", "https://youtu.be/bbb"}, "cinematic")
	if err := h.ProcessJob(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The key learned during the first entry covers the second without a
	// second prompt.
	if prompter.asked != 1 {
		t.Errorf("prompter asked %d times, want 1", prompter.asked)
	}
	for _, url := range []string{"https://youtu.be/aaa", "https://youtu.be/bbb"} {
		if entry := lib.byURL(url); entry.Status != models.EntryComplete {
			t.Errorf("%s status = %s, want complete", url, entry.Status)
		}
	}
}

func TestBatchStopsOnCancelledContext(t *testing.T) {
	gen := workingGenerator()
	lib := newRecordingLibrary()
	runner := NewRunner(batchMetadata(), gen, nil)
	h := NewBatchHandler(runner, batchMetadata(), lib, newRecordingMessenger(), nil, nil, []string{"key1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job := models.NewAnalysisJob("job-4", []string{"https://youtu.be/aaa"}, "cinematic")
	if err := h.ProcessJob(ctx, job); err == nil {
		t.Fatal("expected a context error")
	}
	// The placeholder was still written before the loop noticed.
	if len(lib.order) != 1 {
		t.Errorf("expected 1 placeholder, got %d", len(lib.order))
	}
	if lib.entries[lib.order[0]].Status != models.EntryPending {
		t.Errorf("placeholder status = %s, want pending", lib.entries[lib.order[0]].Status)
	}
}
