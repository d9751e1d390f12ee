package quiz

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
	"github.com/cleanfocus/cleanfocus/internal/catalog"
	"github.com/cleanfocus/cleanfocus/internal/router"
	"github.com/cleanfocus/cleanfocus/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type fixedFetcher struct{ cat catalog.Catalog }

func (f *fixedFetcher) Fetch(context.Context) (catalog.Catalog, error) {
	return f.cat, nil
}

func testQuestions() []assessment.Question {
	return []assessment.Question{
		{
			ID:   1,
			Text: "first",
			Options: []assessment.Option{
				{ID: "a", Text: "right"},
				{ID: "b", Text: "wrong"},
			},
			CorrectOptionID: "a",
			Explanation:     "because",
		},
		{
			ID:   2,
			Text: "second",
			Options: []assessment.Option{
				{ID: "a", Text: "right"},
				{ID: "b", Text: "wrong"},
			},
			CorrectOptionID: "a",
			Explanation:     "because",
		},
	}
}

func testQuizScreen(t *testing.T) (*QuizScreen, *assessment.Controller) {
	t.Helper()

	ctrl := assessment.NewController()
	gen, err := ctrl.BeginStart(assessment.ModuleMachineLearning, "")
	if err != nil {
		t.Fatalf("begin start: %v", err)
	}
	ctrl.FinishLoad(gen, testQuestions(), nil)

	cat := catalog.Catalog{
		string(assessment.ModuleMachineLearning): testQuestions(),
	}
	source := catalog.NewSource(catalog.NewCache(&fixedFetcher{cat: cat}))

	deps := Deps{
		Source:    source,
		Assembler: assessment.NewAssembler(nil, time.Second),
		NewResults: func() screen.Screen {
			return nil
		},
	}
	return New(ctrl, deps), ctrl
}

func TestQuizScreen_Title(t *testing.T) {
	q, _ := testQuizScreen(t)
	if q.Title() != "Machine Learning" {
		t.Errorf("Title = %q", q.Title())
	}
}

func TestQuizScreen_SelectThenSubmit(t *testing.T) {
	q, ctrl := testQuizScreen(t)

	var scr screen.Screen = q
	scr, _ = scr.Update(keyPress(' '))
	runner := ctrl.Runner()
	if runner.Pending() != "a" {
		t.Fatalf("pending = %q, want %q", runner.Pending(), "a")
	}
	if runner.Locked() {
		t.Fatal("selection alone must not lock")
	}

	scr.Update(specialKey(tea.KeyEnter))
	if !runner.Locked() {
		t.Fatal("submit did not lock")
	}
	if len(runner.Answers()) != 1 || !runner.Answers()[0].IsCorrect {
		t.Fatalf("unexpected answers: %+v", runner.Answers())
	}
}

func TestQuizScreen_CursorMovesSelection(t *testing.T) {
	q, ctrl := testQuizScreen(t)

	var scr screen.Screen = q
	scr, _ = scr.Update(specialKey(tea.KeyDown))
	scr, _ = scr.Update(keyPress(' '))
	if ctrl.Runner().Pending() != "b" {
		t.Fatalf("pending = %q, want %q", ctrl.Runner().Pending(), "b")
	}

	// Overwrite before submit.
	scr, _ = scr.Update(specialKey(tea.KeyUp))
	scr.Update(keyPress(' '))
	if ctrl.Runner().Pending() != "a" {
		t.Fatalf("pending = %q, want %q", ctrl.Runner().Pending(), "a")
	}
}

func TestQuizScreen_EnterWithoutPendingSelectsFirst(t *testing.T) {
	q, ctrl := testQuizScreen(t)

	// First enter selects the cursor row, second submits.
	var scr screen.Screen = q
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	if ctrl.Runner().Locked() {
		t.Fatal("first enter must not lock")
	}
	if ctrl.Runner().Pending() != "a" {
		t.Fatalf("pending = %q", ctrl.Runner().Pending())
	}
	scr.Update(specialKey(tea.KeyEnter))
	if !ctrl.Runner().Locked() {
		t.Fatal("second enter did not lock")
	}
}

func TestQuizScreen_AdvanceAfterLock(t *testing.T) {
	q, ctrl := testQuizScreen(t)

	var scr screen.Screen = q
	scr, _ = scr.Update(keyPress(' '))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr.Update(specialKey(tea.KeyEnter))

	runner := ctrl.Runner()
	if runner.Position() != 1 {
		t.Fatalf("position = %d, want 1", runner.Position())
	}
	if runner.Locked() || runner.Pending() != "" {
		t.Fatal("selection state survived the advance")
	}
}

func TestQuizScreen_CompletionAssemblesResult(t *testing.T) {
	q, ctrl := testQuizScreen(t)

	var scr screen.Screen = q
	for range 2 {
		scr, _ = scr.Update(keyPress(' '))
		scr, _ = scr.Update(specialKey(tea.KeyEnter))
		var cmd tea.Cmd
		scr, cmd = scr.Update(specialKey(tea.KeyEnter))
		if cmd != nil {
			// The assembly command runs synchronously in tests.
			msg := cmd()
			scr, _ = scr.Update(msg)
		}
	}

	if ctrl.Mode() != assessment.ModeSummary {
		t.Fatalf("mode = %v, want summary", ctrl.Mode())
	}
	result := ctrl.Result()
	if result == nil || result.Score != 2 || result.Total != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Narrative != assessment.FallbackNarrative {
		t.Fatalf("expected fallback narrative, got %q", result.Narrative)
	}
}

func TestQuizScreen_EscAbandonsSession(t *testing.T) {
	q, ctrl := testQuizScreen(t)

	_, cmd := q.Update(specialKey(tea.KeyEscape))
	if ctrl.Mode() != assessment.ModeSelection {
		t.Fatalf("mode = %v, want selection", ctrl.Mode())
	}
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}

func TestQuizScreen_RestartReplacesScreen(t *testing.T) {
	q, ctrl := testQuizScreen(t)

	var scr screen.Screen = q
	scr, cmd := scr.Update(keyPress('r'))
	if ctrl.Mode() != assessment.ModeLoading {
		t.Fatalf("mode = %v, want loading", ctrl.Mode())
	}
	if cmd == nil {
		t.Fatal("expected a load command")
	}

	msg := cmd()
	scr, cmd = scr.Update(msg)
	if ctrl.Mode() != assessment.ModeActive {
		t.Fatalf("mode = %v, want active", ctrl.Mode())
	}
	if cmd == nil {
		t.Fatal("expected a replace command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg with a fresh quiz screen")
	}
}

func TestQuizScreen_View(t *testing.T) {
	q, _ := testQuizScreen(t)
	if q.View(80, 24) == "" {
		t.Error("expected non-empty view")
	}
}
