package review

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
	"github.com/cleanfocus/cleanfocus/internal/router"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// detailController builds a finished two-question session, one answered
// right and one wrong, parked on the detail mode.
func detailController(t *testing.T) *assessment.Controller {
	t.Helper()

	ctrl := assessment.NewController()
	gen, err := ctrl.BeginStart(assessment.ModuleComputerVision, "")
	if err != nil {
		t.Fatalf("begin start: %v", err)
	}
	questions := []assessment.Question{
		{
			ID:   1,
			Text: "first question",
			Options: []assessment.Option{
				{ID: "a", Text: "alpha"},
				{ID: "b", Text: "beta"},
			},
			CorrectOptionID: "a",
			Explanation:     "alpha is the one",
		},
		{
			ID:   2,
			Text: "second question",
			Options: []assessment.Option{
				{ID: "a", Text: "gamma"},
				{ID: "b", Text: "delta"},
			},
			CorrectOptionID: "b",
			Explanation:     "delta is the one",
		},
	}
	ctrl.FinishLoad(gen, questions, nil)

	runner := ctrl.Runner()
	for _, pick := range []string{"a", "a"} {
		runner.Select(pick)
		if err := runner.Submit(); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if _, err := runner.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	gen, err = ctrl.BeginComplete()
	if err != nil {
		t.Fatalf("begin complete: %v", err)
	}
	assembler := assessment.NewAssembler(nil, time.Second)
	ctrl.FinishAssembly(gen, assembler.Assemble(t.Context(), ctrl.Module(), runner.Answers()))
	if err := ctrl.ViewDetail(); err != nil {
		t.Fatalf("view detail: %v", err)
	}
	return ctrl
}

func TestReviewScreen_Navigation(t *testing.T) {
	r := New(detailController(t))

	if !strings.Contains(r.View(100, 40), "first question") {
		t.Fatal("expected the first question initially")
	}

	r.Update(specialKey(tea.KeyRight))
	if !strings.Contains(r.View(100, 40), "second question") {
		t.Fatal("right did not advance")
	}

	// Clamped at the last question.
	r.Update(keyPress('l'))
	if !strings.Contains(r.View(100, 40), "second question") {
		t.Fatal("index ran past the end")
	}

	r.Update(specialKey(tea.KeyLeft))
	if !strings.Contains(r.View(100, 40), "first question") {
		t.Fatal("left did not go back")
	}

	// Clamped at the first question.
	r.Update(keyPress('h'))
	if !strings.Contains(r.View(100, 40), "first question") {
		t.Fatal("index ran past the start")
	}
}

func TestReviewScreen_CorrectAnswerOnlyWhenWrong(t *testing.T) {
	r := New(detailController(t))

	// First question was answered correctly.
	view := r.View(100, 40)
	if !strings.Contains(view, "Your answer:") {
		t.Error("missing chosen answer")
	}
	if strings.Contains(view, "Correct answer:") {
		t.Error("correct answer spelled out for a correct response")
	}
	if !strings.Contains(view, "✓ Correct") {
		t.Error("missing correct badge")
	}

	// Second question was answered wrong.
	r.Update(specialKey(tea.KeyRight))
	view = r.View(100, 40)
	if !strings.Contains(view, "Correct answer:") {
		t.Error("missing correct answer for a wrong response")
	}
	if !strings.Contains(view, "delta") {
		t.Error("missing correct option text")
	}
	if !strings.Contains(view, "✗ Incorrect") {
		t.Error("missing incorrect badge")
	}
}

func TestReviewScreen_EscReturnsToSummary(t *testing.T) {
	ctrl := detailController(t)
	r := New(ctrl)

	_, cmd := r.Update(specialKey(tea.KeyEscape))
	if ctrl.Mode() != assessment.ModeSummary {
		t.Fatalf("mode = %v, want summary", ctrl.Mode())
	}
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}

func TestReviewScreen_StartNewPopsTwice(t *testing.T) {
	ctrl := detailController(t)
	r := New(ctrl)

	_, cmd := r.Update(keyPress('s'))
	if ctrl.Mode() != assessment.ModeSelection {
		t.Fatalf("mode = %v, want selection", ctrl.Mode())
	}
	if cmd == nil {
		t.Fatal("expected a sequence command")
	}
}
