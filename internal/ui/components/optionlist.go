package components

import (
	"fmt"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
	"github.com/cleanfocus/cleanfocus/internal/ui/theme"
)

// OptionList renders a question's options. It is purely
// presentational: the quiz screen owns cursor movement and the runner
// owns selection state, so the list only needs a snapshot to draw.
type OptionList struct {
	Options []assessment.Option

	// Cursor is the highlighted row.
	Cursor int

	// PendingID is the selected-but-unsubmitted option, "" for none.
	PendingID string

	// Submitted switches rendering to the feedback form: the correct
	// option green, a wrong choice red, everything else dimmed.
	Submitted bool

	// CorrectID and ChosenID drive the feedback form.
	CorrectID string
	ChosenID  string
}

// View renders the option rows.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		cursor := "  "
		if !o.Submitted && i == o.Cursor {
			cursor = "▸ "
		}

		marker := "( )"
		if !o.Submitted && opt.ID == o.PendingID {
			marker = "(●)"
		}

		line := fmt.Sprintf("%s%s %s", cursor, marker, opt.Text)

		switch {
		case o.Submitted && opt.ID == o.CorrectID:
			s += theme.Correct.Render(fmt.Sprintf("  ✓ %s", opt.Text)) + "\n"
		case o.Submitted && opt.ID == o.ChosenID:
			s += theme.Incorrect.Render(fmt.Sprintf("  ✗ %s", opt.Text)) + "\n"
		case o.Submitted:
			s += theme.Hint.Render("    "+opt.Text) + "\n"
		case i == o.Cursor:
			s += theme.Selected.Render(line) + "\n"
		case opt.ID == o.PendingID:
			s += theme.Body.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
