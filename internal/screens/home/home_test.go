package home

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
	"github.com/cleanfocus/cleanfocus/internal/catalog"
	"github.com/cleanfocus/cleanfocus/internal/router"
	"github.com/cleanfocus/cleanfocus/internal/screen"
	"github.com/cleanfocus/cleanfocus/internal/screens/quiz"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type stubFetcher struct {
	cat catalog.Catalog
	err error
}

func (f *stubFetcher) Fetch(context.Context) (catalog.Catalog, error) {
	return f.cat, f.err
}

func fullCatalog() catalog.Catalog {
	cat := catalog.Catalog{}
	for _, module := range assessment.Modules() {
		cat[string(module)] = []assessment.Question{
			{
				ID:   1,
				Text: "q",
				Options: []assessment.Option{
					{ID: "a", Text: "A"},
					{ID: "b", Text: "B"},
				},
				CorrectOptionID: "a",
			},
		}
	}
	return cat
}

func testHomeScreen(fetcher catalog.Fetcher) (*HomeScreen, *assessment.Controller) {
	ctrl := assessment.NewController()
	source := catalog.NewSource(catalog.NewCache(fetcher))
	deps := quiz.Deps{Source: source}
	return New(ctrl, source, deps, nil), ctrl
}

func TestHomeScreen_EnterStartsLoad(t *testing.T) {
	h, ctrl := testHomeScreen(&stubFetcher{cat: fullCatalog()})

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if ctrl.Mode() != assessment.ModeLoading {
		t.Fatalf("mode = %v, want loading", ctrl.Mode())
	}
	if ctrl.Module() != assessment.ModuleMachineLearning {
		t.Fatalf("module = %v", ctrl.Module())
	}
	if cmd == nil {
		t.Fatal("expected a load command")
	}

	scr, cmd := h.Update(cmd())
	if ctrl.Mode() != assessment.ModeActive {
		t.Fatalf("mode = %v, want active", ctrl.Mode())
	}
	if scr != screen.Screen(h) {
		t.Fatal("home screen replaced itself")
	}
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*quiz.QuizScreen); !ok {
		t.Fatalf("pushed %T, want quiz screen", push.Screen)
	}
}

func TestHomeScreen_LoadFailureReturnsToSelection(t *testing.T) {
	h, ctrl := testHomeScreen(&stubFetcher{err: errors.New("network down")})

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	_, cmd = h.Update(cmd())
	if ctrl.Mode() != assessment.ModeSelection {
		t.Fatalf("mode = %v, want selection", ctrl.Mode())
	}
	if cmd != nil {
		t.Fatal("no screen change on failure")
	}
	if !strings.Contains(h.View(80, 24), "network down") {
		t.Error("load error not surfaced in the view")
	}
}

func TestHomeScreen_StaleLoadDiscarded(t *testing.T) {
	h, ctrl := testHomeScreen(&stubFetcher{cat: fullCatalog()})

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	msg := cmd()

	// Abandoning during the load supersedes it.
	h.Update(specialKey(tea.KeyEscape))
	if ctrl.Mode() != assessment.ModeSelection {
		t.Fatalf("mode = %v, want selection", ctrl.Mode())
	}

	_, cmd = h.Update(msg)
	if ctrl.Mode() != assessment.ModeSelection {
		t.Fatalf("stale load applied, mode = %v", ctrl.Mode())
	}
	if cmd != nil {
		t.Fatal("stale load must not push a screen")
	}
}

func TestHomeScreen_ShowsRestartLoadFailure(t *testing.T) {
	h, ctrl := testHomeScreen(&stubFetcher{cat: fullCatalog()})

	// Reach the quiz, then fail a restart load. The failure lands on
	// the controller while another screen owns the terminal; the home
	// screen never sees a load message of its own.
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	h.Update(cmd())
	_, gen, err := ctrl.BeginRestart()
	if err != nil {
		t.Fatalf("BeginRestart: %v", err)
	}
	ctrl.FinishLoad(gen, nil, errors.New("catalog down"))

	if ctrl.Mode() != assessment.ModeSelection {
		t.Fatalf("mode = %v, want selection", ctrl.Mode())
	}
	if !strings.Contains(h.View(80, 24), "catalog down") {
		t.Error("restart load error not surfaced in the view")
	}

	// Starting a new session clears the stale error.
	_, cmd = h.Update(specialKey(tea.KeyEnter))
	h.Update(cmd())
	if ctrl.Mode() != assessment.ModeActive {
		t.Fatalf("mode = %v, want active", ctrl.Mode())
	}
	if strings.Contains(h.View(80, 24), "catalog down") {
		t.Error("stale error shown after a new start")
	}
}

func TestHomeScreen_MenuNavigation(t *testing.T) {
	h, ctrl := testHomeScreen(&stubFetcher{cat: fullCatalog()})

	h.Update(specialKey(tea.KeyDown))
	_, _ = h.Update(specialKey(tea.KeyEnter))
	if ctrl.Module() != assessment.Modules()[1] {
		t.Fatalf("module = %v, want %v", ctrl.Module(), assessment.Modules()[1])
	}
}

func TestHomeScreen_NameEntry(t *testing.T) {
	h, ctrl := testHomeScreen(&stubFetcher{cat: fullCatalog()})

	h.Update(keyPress('n'))
	if !h.naming {
		t.Fatal("n did not enter name mode")
	}
	h.Update(keyPress('a'))
	h.Update(keyPress('d'))
	h.Update(keyPress('a'))
	h.Update(specialKey(tea.KeyEnter))
	if h.naming {
		t.Fatal("enter did not leave name mode")
	}

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	if ctrl.Scholar() != "ada" {
		t.Fatalf("scholar = %q, want %q", ctrl.Scholar(), "ada")
	}
}

func TestHomeScreen_View(t *testing.T) {
	h, _ := testHomeScreen(&stubFetcher{cat: fullCatalog()})
	view := h.View(80, 24)
	if !strings.Contains(view, "Clean Focus") {
		t.Error("missing app title")
	}
	for _, module := range assessment.Modules() {
		if !strings.Contains(view, string(module)) {
			t.Errorf("missing module %q", module)
		}
	}
}
