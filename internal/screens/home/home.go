// Package home is the module selection screen: pick a subject, enter
// an optional scholar name, toggle the theme.
package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
	"github.com/cleanfocus/cleanfocus/internal/catalog"
	"github.com/cleanfocus/cleanfocus/internal/router"
	"github.com/cleanfocus/cleanfocus/internal/screen"
	"github.com/cleanfocus/cleanfocus/internal/screens/quiz"
	"github.com/cleanfocus/cleanfocus/internal/store"
	"github.com/cleanfocus/cleanfocus/internal/ui/components"
	"github.com/cleanfocus/cleanfocus/internal/ui/layout"
	"github.com/cleanfocus/cleanfocus/internal/ui/theme"
)

// questionsLoadedMsg carries a finished question load back to the
// screen, tagged with the generation that started it.
type questionsLoadedMsg struct {
	Gen       uint64
	Questions []assessment.Question
	Err       error
}

// themeSavedMsg confirms the theme preference write. Failures are
// non-fatal; the toggle already took effect on screen.
type themeSavedMsg struct{ Err error }

// HomeScreen is the entry screen of the application.
type HomeScreen struct {
	ctrl     *assessment.Controller
	source   *catalog.Source
	deps     quiz.Deps
	prefs    *store.PrefsRepo
	menu     components.Menu
	name     components.TextInput
	naming   bool
	errLine  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. prefs may be nil when no database is
// available; the theme toggle then lasts for the session only.
func New(ctrl *assessment.Controller, source *catalog.Source, deps quiz.Deps, prefs *store.PrefsRepo) *HomeScreen {
	h := &HomeScreen{
		ctrl:   ctrl,
		source: source,
		deps:   deps,
		prefs:  prefs,
		name:   components.NewTextInput("Scholar name (optional)", 32),
	}

	items := make([]components.MenuItem, 0, len(assessment.Modules()))
	for _, module := range assessment.Modules() {
		m := module
		items = append(items, components.MenuItem{
			Label: string(m),
			Action: func() tea.Cmd {
				return h.startModule(m)
			},
		})
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Select Module"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.naming {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "N", Description: "Name"},
		{Key: "T", Description: "Theme"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return h.handleLoaded(msg)
	case themeSavedMsg:
		if msg.Err != nil {
			h.errLine = fmt.Sprintf("theme preference not saved: %v", msg.Err)
		}
		return h, nil
	case tea.KeyMsg:
		return h.handleKey(msg)
	}
	return h, nil
}

func (h *HomeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	// All input is gated off while questions load; the session can
	// only be abandoned.
	if h.ctrl.Mode() == assessment.ModeLoading {
		if msg.String() == "esc" {
			h.ctrl.Exit()
		}
		return h, nil
	}

	if h.naming {
		switch msg.String() {
		case "enter", "esc":
			h.naming = false
			h.name.Blur()
			return h, nil
		}
		var cmd tea.Cmd
		h.name, cmd = h.name.Update(msg)
		return h, cmd
	}

	switch msg.String() {
	case "n":
		h.naming = true
		return h, h.name.Focus()
	case "t":
		theme.Use(!theme.Dark())
		return h, h.saveTheme(theme.Dark())
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// startModule begins a session and kicks off the question load.
func (h *HomeScreen) startModule(module assessment.Module) tea.Cmd {
	gen, err := h.ctrl.BeginStart(module, h.name.Value())
	if err != nil {
		return nil
	}
	h.errLine = ""
	return h.loadQuestions(module, gen)
}

func (h *HomeScreen) loadQuestions(module assessment.Module, gen uint64) tea.Cmd {
	return func() tea.Msg {
		questions, err := h.source.Questions(context.Background(), module)
		return questionsLoadedMsg{Gen: gen, Questions: questions, Err: err}
	}
}

func (h *HomeScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	h.ctrl.FinishLoad(msg.Gen, msg.Questions, msg.Err)

	switch h.ctrl.Mode() {
	case assessment.ModeActive:
		return h, func() tea.Msg {
			return router.PushScreenMsg{Screen: quiz.New(h.ctrl, h.deps)}
		}
	case assessment.ModeSelection:
		if err := h.ctrl.LoadErr(); err != nil {
			h.errLine = err.Error()
		}
	}
	return h, nil
}

func (h *HomeScreen) saveTheme(dark bool) tea.Cmd {
	if h.prefs == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg{Err: h.prefs.SetDarkTheme(context.Background(), dark)}
	}
}

func (h *HomeScreen) View(width, height int) string {
	if h.ctrl.Mode() == assessment.ModeLoading {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Subtitle.Render("Preparing your assessment..."))
	}

	title := theme.Title.Render("Clean Focus")
	subtitle := theme.Subtitle.Render("Structured AI proficiency assessments")

	nameLabel := theme.Hint.Render("Scholar: ")
	nameValue := h.name.View()
	if !h.naming && h.name.Value() == "" {
		nameValue = theme.Hint.Render("(press N to enter a name)")
	}

	body := title + "\n" + subtitle + "\n\n" +
		theme.Body.Render("Choose your assessment module:") + "\n\n" +
		h.menu.View() + "\n" +
		nameLabel + nameValue + "\n"

	// A restart load can fail while another screen is on top; by the
	// time this screen is visible again the error lives only on the
	// controller.
	errLine := h.errLine
	if errLine == "" {
		if err := h.ctrl.LoadErr(); err != nil {
			errLine = err.Error()
		}
	}
	if errLine != "" {
		body += "\n" + theme.Incorrect.Render("⚠ "+errLine) + "\n" +
			theme.Hint.Render("Pick a module to try again.")
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
