// Package review walks through every question of a finished
// assessment with the recorded answer and explanation.
package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
	"github.com/cleanfocus/cleanfocus/internal/router"
	"github.com/cleanfocus/cleanfocus/internal/screen"
	"github.com/cleanfocus/cleanfocus/internal/ui/layout"
	"github.com/cleanfocus/cleanfocus/internal/ui/theme"
)

// ReviewScreen pages through the answered questions one at a time.
type ReviewScreen struct {
	ctrl  *assessment.Controller
	index int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a review screen over a controller in the detail mode.
func New(ctrl *assessment.Controller) *ReviewScreen {
	return &ReviewScreen{ctrl: ctrl}
}

func (r *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (r *ReviewScreen) Title() string {
	return "Review"
}

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Question"},
		{Key: "S", Description: "New Module"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *ReviewScreen) questions() []assessment.Question {
	if runner := r.ctrl.Runner(); runner != nil {
		return runner.Questions()
	}
	return nil
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "left", "h", "up", "k":
		if r.index > 0 {
			r.index--
		}
	case "right", "l", "down", "j":
		if r.index < len(r.questions())-1 {
			r.index++
		}
	case "esc":
		if err := r.ctrl.BackToSummary(); err != nil {
			return r, nil
		}
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	case "s":
		if err := r.ctrl.StartNew(); err != nil {
			return r, nil
		}
		// Both the review and the results screen are done for.
		pop := func() tea.Msg { return router.PopScreenMsg{} }
		return r, tea.Sequence(pop, pop)
	}

	return r, nil
}

func (r *ReviewScreen) View(width, height int) string {
	result := r.ctrl.Result()
	questions := r.questions()
	if result == nil || len(questions) == 0 {
		return ""
	}
	if r.index >= len(questions) {
		r.index = len(questions) - 1
	}

	q := questions[r.index]
	answer := result.AnswerFor(q.ID)

	var b strings.Builder

	counter := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", r.index+1, len(questions)))
	badge := theme.Correct.Render("✓ Correct")
	if answer == nil || !answer.IsCorrect {
		badge = theme.Incorrect.Render("✗ Incorrect")
	}
	b.WriteString(counter + "  " + badge + "\n\n")
	b.WriteString(theme.Body.Bold(true).Render(q.Text) + "\n\n")

	if answer != nil {
		if chosen := q.Option(answer.SelectedOptionID); chosen != nil {
			label := theme.Hint.Render("Your answer: ")
			if answer.IsCorrect {
				b.WriteString(label + theme.Correct.Render(chosen.Text) + "\n")
			} else {
				b.WriteString(label + theme.Incorrect.Render(chosen.Text) + "\n")
			}
		}
		// The correct option is spelled out only when the learner got
		// it wrong.
		if !answer.IsCorrect {
			if correct := q.CorrectOption(); correct != nil {
				b.WriteString(theme.Hint.Render("Correct answer: ") +
					theme.Correct.Render(correct.Text) + "\n")
			}
		}
	}

	b.WriteString("\n" + theme.Card.Width(min(width-8, 72)).Render(
		theme.Hint.Render(q.Explanation)))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}
