package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/cleanfocus/cleanfocus/internal/ui/theme"
)

// ProgressBar tracks advancement through the question list.
type ProgressBar struct {
	Ratio float64
	Width int
}

// NewProgressBar creates a bar of the given width filled to ratio,
// clamped to [0, 1].
func NewProgressBar(ratio float64, width int) ProgressBar {
	return ProgressBar{Ratio: ratio, Width: width}
}

func (p ProgressBar) View() string {
	width := p.Width
	if width < 4 {
		width = 4
	}

	filled := int(float64(width) * p.Ratio)
	filled = max(0, min(filled, width))

	bar := lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))
	bar += lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", width-filled))
	return bar
}
