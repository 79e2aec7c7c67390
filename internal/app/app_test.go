package app

import (
	"path/filepath"
	"testing"

	"github.com/TheJusticeMan/flick/internal/gesture"
	"github.com/TheJusticeMan/flick/internal/store"
	"github.com/TheJusticeMan/flick/testdata"
)

// newTestApp creates an app over a temp-dir store.
func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	a := New(Config{Store: s})
	t.Cleanup(a.Close)

	return a, s
}

// createTemplate persists a normalized template built from a raw path.
func createTemplate(t *testing.T, s *store.Store, id, name, commandID string, raw gesture.Path) {
	t.Helper()

	normalized := gesture.Normalize(raw, gesture.DefaultResamplePoints)
	record := &store.Template{
		ID:        id,
		Name:      name,
		CommandID: commandID,
		Path:      testdata.EncodedPath(normalized),
	}
	if err := s.Templates().Create(record); err != nil {
		t.Fatalf("failed to create template: %v", err)
	}
}

func TestApp_ClassifyMatchesStoredTemplate(t *testing.T) {
	a, s := newTestApp(t)

	createTemplate(t, s, "t-1", "swipe right", "editor:save", testdata.RightwardLine())

	result := a.Classify(testdata.RightwardLine())

	if result == nil || !result.Matched {
		t.Fatal("expected a match against the stored template")
	}
	if result.Template.CommandID != "editor:save" {
		t.Errorf("CommandID = %q, want %q", result.Template.CommandID, "editor:save")
	}
	if result.Score > 0.05 {
		t.Errorf("score = %f, want ~0", result.Score)
	}
}

func TestApp_ClassifyRejectsTap(t *testing.T) {
	a, s := newTestApp(t)
	createTemplate(t, s, "t-1", "swipe right", "editor:save", testdata.RightwardLine())

	if result := a.Classify(testdata.Tap()); result != nil {
		t.Errorf("expected nil result for a tap, got %+v", result)
	}
}

func TestApp_ClassifySkipsCorruptTemplate(t *testing.T) {
	a, s := newTestApp(t)

	// A corrupt row in the database must not block matching against
	// the valid one
	corrupt := &store.Template{ID: "bad", Name: "corrupt", CommandID: "noop", Path: "{not json"}
	if err := s.Templates().Create(corrupt); err != nil {
		t.Fatalf("failed to create corrupt template: %v", err)
	}
	createTemplate(t, s, "good", "swipe right", "editor:save", testdata.RightwardLine())

	result := a.Classify(testdata.RightwardLine())

	if result == nil || !result.Matched {
		t.Fatal("expected a match despite the corrupt template")
	}
	if result.Template.ID != "good" {
		t.Errorf("matched template = %q, want %q", result.Template.ID, "good")
	}
}

func TestApp_TemplatesReadLive(t *testing.T) {
	a, s := newTestApp(t)

	engine := a.NewEngine(nil)
	a.Registry().Add("fab", engine)

	if result := engine.Classify(testdata.RightwardLine()); result == nil || result.Matched {
		t.Fatal("expected no match before assignment")
	}

	// Assigning a template mid-session makes it matchable immediately
	createTemplate(t, s, "t-1", "swipe right", "editor:save", testdata.RightwardLine())

	if result := engine.Classify(testdata.RightwardLine()); result == nil || !result.Matched {
		t.Fatal("expected a match after assignment")
	}
}

func TestApp_EnabledToggle(t *testing.T) {
	a, _ := newTestApp(t)

	if !a.IsEnabled() {
		t.Error("recognition should start enabled")
	}

	a.SetEnabled(false)
	if a.IsEnabled() {
		t.Error("SetEnabled(false) should disable recognition")
	}

	a.SetEnabled(true)
	if !a.IsEnabled() {
		t.Error("SetEnabled(true) should re-enable recognition")
	}
}

func TestApp_HandleResultNotifiesMatchHook(t *testing.T) {
	a, s := newTestApp(t)
	createTemplate(t, s, "t-1", "swipe right", "editor:save", testdata.RightwardLine())

	var gotName string
	a.OnMatch(func(name string) { gotName = name })

	result := a.Classify(testdata.RightwardLine())
	a.HandleResult(result)

	if gotName != "swipe right" {
		t.Errorf("match hook received %q, want %q", gotName, "swipe right")
	}
}

func TestApp_HandleResultIgnoresUnmatched(t *testing.T) {
	a, _ := newTestApp(t)

	called := false
	a.OnMatch(func(string) { called = true })

	a.HandleResult(nil)
	a.HandleResult(&gesture.Result{Matched: false, Path: gesture.Path{{X: 0, Y: 0}}})

	if called {
		t.Error("match hook should not fire for unmatched results")
	}
}

func TestApp_CloseShutsDownEngines(t *testing.T) {
	a, _ := newTestApp(t)

	engine := a.NewEngine(nil)
	a.Registry().Add("fab", engine)

	a.Close()

	if a.Registry().Len() != 0 {
		t.Error("Close() should empty the registry")
	}
	engine.PointerDown(gesture.Point{X: 0, Y: 0})
	if engine.Dragging() {
		t.Error("engines should be closed after app Close()")
	}
}
