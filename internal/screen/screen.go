// Package screen defines the contract every view of the assessment
// flow implements. The router stacks screens; the app model frames the
// active one with the shared header and footer.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/cleanfocus/cleanfocus/internal/ui/layout"
)

// Screen is one view in the navigation stack.
type Screen interface {
	// Init returns the command to run when the screen first appears.
	Init() tea.Cmd

	// Update reacts to a message and returns the successor screen plus
	// any follow-up command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body for the given content area. Header and
	// footer are drawn by the app model around it.
	View(width, height int) string

	// Title labels the screen in the header.
	Title() string
}

// KeyHintProvider lets a screen publish its own footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
