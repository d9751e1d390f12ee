// Package results shows the assembled outcome of an assessment:
// score, headline, completion date and the qualitative narrative.
package results

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
	"github.com/cleanfocus/cleanfocus/internal/catalog"
	"github.com/cleanfocus/cleanfocus/internal/router"
	"github.com/cleanfocus/cleanfocus/internal/screen"
	"github.com/cleanfocus/cleanfocus/internal/screens/review"
	"github.com/cleanfocus/cleanfocus/internal/ui/layout"
	"github.com/cleanfocus/cleanfocus/internal/ui/theme"
)

// Deps bundles what the results screen needs beyond the controller.
// NewQuiz rebuilds a quiz screen for the restart path.
type Deps struct {
	Source  *catalog.Source
	NewQuiz func() screen.Screen
}

// questionsLoadedMsg carries a restart's question load.
type questionsLoadedMsg struct {
	Gen       uint64
	Questions []assessment.Question
	Err       error
}

// ResultsScreen displays the finished-session summary.
type ResultsScreen struct {
	ctrl *assessment.Controller
	deps Deps
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen over a controller in the summary mode.
func New(ctrl *assessment.Controller, deps Deps) *ResultsScreen {
	return &ResultsScreen{ctrl: ctrl, deps: deps}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "V", Description: "Review"},
		{Key: "R", Description: "Restart"},
		{Key: "Enter/Esc", Description: "New Module"},
	}
}

// headline maps a percentage to its performance tier.
func headline(percentage int) string {
	switch {
	case percentage >= 80:
		return "Exemplary Performance"
	case percentage >= 60:
		return "Strong Potential"
	default:
		return "Room for Growth"
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return r.handleLoaded(msg)
	case tea.KeyMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *ResultsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if r.ctrl.Mode() == assessment.ModeLoading {
		if msg.String() == "esc" {
			r.ctrl.Exit()
			return r, popCmd()
		}
		return r, nil
	}

	switch msg.String() {
	case "v":
		if err := r.ctrl.ViewDetail(); err != nil {
			return r, nil
		}
		return r, func() tea.Msg {
			return router.PushScreenMsg{Screen: review.New(r.ctrl)}
		}

	case "r":
		return r.restart()

	case "enter", "esc", "h":
		if err := r.ctrl.StartNew(); err != nil {
			return r, nil
		}
		return r, popCmd()
	}

	return r, nil
}

func (r *ResultsScreen) restart() (screen.Screen, tea.Cmd) {
	module, gen, err := r.ctrl.BeginRestart()
	if err != nil {
		return r, nil
	}
	return r, func() tea.Msg {
		questions, err := r.deps.Source.Questions(context.Background(), module)
		return questionsLoadedMsg{Gen: gen, Questions: questions, Err: err}
	}
}

func (r *ResultsScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	r.ctrl.FinishLoad(msg.Gen, msg.Questions, msg.Err)

	switch r.ctrl.Mode() {
	case assessment.ModeActive:
		return r, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: r.deps.NewQuiz()}
		}
	case assessment.ModeSelection:
		return r, popCmd()
	}
	return r, nil
}

func popCmd() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (r *ResultsScreen) View(width, height int) string {
	if r.ctrl.Mode() == assessment.ModeLoading {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Subtitle.Render("Reshuffling questions..."))
	}

	result := r.ctrl.Result()
	if result == nil {
		return ""
	}

	pct := result.Percentage()
	title := theme.Title.Render(headline(pct))

	scoreLine := theme.Body.Bold(true).Render(
		fmt.Sprintf("%d%%", pct)) +
		theme.Subtitle.Render(fmt.Sprintf("  (%d of %d correct)", result.Score, result.Total))

	meta := theme.Hint.Render(
		fmt.Sprintf("%s  ·  Completed %s", result.Module, result.CompletionDate))
	if scholar := r.ctrl.Scholar(); scholar != "" {
		meta = theme.Hint.Render(
			fmt.Sprintf("%s  ·  %s  ·  Completed %s", scholar, result.Module, result.CompletionDate))
	}

	narrative := theme.Card.Width(min(width-8, 72)).Render(
		theme.Body.Render(result.Narrative))

	body := title + "\n\n" + scoreLine + "\n" + meta + "\n\n" +
		theme.Subtitle.Render("Qualitative Analysis") + "\n" +
		narrative

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
