// Package quiz runs the active assessment: one question at a time,
// select, submit, read the feedback, advance.
package quiz

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
	"github.com/cleanfocus/cleanfocus/internal/catalog"
	"github.com/cleanfocus/cleanfocus/internal/router"
	"github.com/cleanfocus/cleanfocus/internal/screen"
	"github.com/cleanfocus/cleanfocus/internal/store"
	"github.com/cleanfocus/cleanfocus/internal/ui/components"
	"github.com/cleanfocus/cleanfocus/internal/ui/layout"
	"github.com/cleanfocus/cleanfocus/internal/ui/theme"
)

// Deps bundles what the quiz screen needs beyond the controller. The
// NewResults factory breaks the import cycle between the quiz and
// results packages; the app wires it at startup.
type Deps struct {
	Source     *catalog.Source
	Assembler  *assessment.Assembler
	Attempts   *store.AttemptRepo
	NewResults func() screen.Screen
}

// questionsLoadedMsg carries a restart's question load.
type questionsLoadedMsg struct {
	Gen       uint64
	Questions []assessment.Question
	Err       error
}

// resultReadyMsg carries the assembled result.
type resultReadyMsg struct {
	Gen    uint64
	Result *assessment.Result
}

// attemptSavedMsg confirms history persistence. Best-effort.
type attemptSavedMsg struct{ Err error }

// QuizScreen drives the runner for one session.
type QuizScreen struct {
	ctrl   *assessment.Controller
	deps   Deps
	cursor int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen over an already-active controller.
func New(ctrl *assessment.Controller, deps Deps) *QuizScreen {
	return &QuizScreen{ctrl: ctrl, deps: deps}
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	return string(q.ctrl.Module())
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	runner := q.ctrl.Runner()
	if runner != nil && runner.Locked() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "R", Description: "Restart"},
			{Key: "Esc", Description: "Abandon"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Select"},
		{Key: "Enter", Description: "Submit"},
		{Key: "R", Description: "Restart"},
		{Key: "Esc", Description: "Abandon"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return q.handleLoaded(msg)
	case resultReadyMsg:
		return q.handleResult(msg)
	case attemptSavedMsg:
		// History is best-effort; a failed write never interrupts the
		// summary transition.
		if msg.Err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save attempt: %v\n", msg.Err)
		}
		return q, nil
	case tea.KeyMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if q.ctrl.Mode() == assessment.ModeLoading {
		if msg.String() == "esc" {
			q.ctrl.Exit()
			return q, popCmd()
		}
		return q, nil
	}
	if q.ctrl.Mode() != assessment.ModeActive {
		return q, nil
	}

	runner := q.ctrl.Runner()
	current := runner.Current()
	if current == nil {
		return q, nil
	}

	switch msg.String() {
	case "esc":
		q.ctrl.Exit()
		return q, popCmd()

	case "r":
		return q.restart()

	case "up", "k":
		if !runner.Locked() && q.cursor > 0 {
			q.cursor--
		}
		return q, nil

	case "down", "j":
		if !runner.Locked() && q.cursor < len(current.Options)-1 {
			q.cursor++
		}
		return q, nil

	case "space":
		runner.Select(current.Options[q.cursor].ID)
		return q, nil

	case "enter":
		if runner.Locked() {
			return q.advance()
		}
		// Submit comes after an explicit selection; an enter with
		// nothing pending selects the cursor row first so the choice
		// is always visible before it locks.
		if runner.Pending() == "" {
			runner.Select(current.Options[q.cursor].ID)
			return q, nil
		}
		// Errors here are impossible by construction: not done, not
		// locked, pending non-empty.
		_ = runner.Submit()
		return q, nil
	}

	return q, nil
}

func (q *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	runner := q.ctrl.Runner()
	answers, err := runner.Advance()
	if err != nil {
		return q, nil
	}
	if !runner.Done() {
		q.cursor = 0
		return q, nil
	}

	gen, err := q.ctrl.BeginComplete()
	if err != nil {
		return q, nil
	}
	module := q.ctrl.Module()
	return q, func() tea.Msg {
		result := q.deps.Assembler.Assemble(context.Background(), module, answers)
		return resultReadyMsg{Gen: gen, Result: result}
	}
}

func (q *QuizScreen) handleResult(msg resultReadyMsg) (screen.Screen, tea.Cmd) {
	q.ctrl.FinishAssembly(msg.Gen, msg.Result)
	if q.ctrl.Mode() != assessment.ModeSummary {
		return q, nil
	}

	cmds := []tea.Cmd{
		func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: q.deps.NewResults()}
		},
	}
	if q.deps.Attempts != nil {
		scholar := q.ctrl.Scholar()
		result := msg.Result
		cmds = append(cmds, func() tea.Msg {
			return attemptSavedMsg{Err: q.deps.Attempts.Save(context.Background(), scholar, result)}
		})
	}
	return q, tea.Batch(cmds...)
}

func (q *QuizScreen) restart() (screen.Screen, tea.Cmd) {
	module, gen, err := q.ctrl.BeginRestart()
	if err != nil {
		return q, nil
	}
	return q, func() tea.Msg {
		questions, err := q.deps.Source.Questions(context.Background(), module)
		return questionsLoadedMsg{Gen: gen, Questions: questions, Err: err}
	}
}

func (q *QuizScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	q.ctrl.FinishLoad(msg.Gen, msg.Questions, msg.Err)

	switch q.ctrl.Mode() {
	case assessment.ModeActive:
		// A fresh screen instance guarantees no interaction state
		// survives the restart.
		return q, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: New(q.ctrl, q.deps)}
		}
	case assessment.ModeSelection:
		return q, popCmd()
	}
	return q, nil
}

func popCmd() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (q *QuizScreen) View(width, height int) string {
	if q.ctrl.Mode() == assessment.ModeLoading {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Subtitle.Render("Reshuffling questions..."))
	}

	runner := q.ctrl.Runner()
	if runner == nil {
		return ""
	}
	current := runner.Current()
	if current == nil {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Subtitle.Render("Evaluating your performance..."))
	}

	total := len(runner.Questions())
	position := runner.Position() + 1

	progress := components.NewProgressBar(float64(runner.Position())/float64(total), min(width-8, 60))
	counter := theme.Subtitle.Render(fmt.Sprintf("Question %02d/%02d", position, total))
	category := theme.Hint.Render(current.Category)

	options := components.OptionList{
		Options:   current.Options,
		Cursor:    q.cursor,
		PendingID: runner.Pending(),
		Submitted: runner.Locked(),
		CorrectID: current.CorrectOptionID,
		ChosenID:  runner.Pending(),
	}

	body := progress.View() + "\n" +
		counter + "  " + category + "\n\n" +
		theme.Body.Bold(true).Render(current.Text) + "\n\n" +
		options.View()

	if runner.Locked() {
		answer := runner.Answers()[len(runner.Answers())-1]
		verdict := theme.Correct.Render("✓ Correct")
		if !answer.IsCorrect {
			verdict = theme.Incorrect.Render("✗ Incorrect")
		}
		body += "\n" + verdict + "\n" +
			theme.Card.Render(theme.Hint.Render(current.Explanation))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
