// Package router keeps the screen stack: home at the bottom, the quiz
// or results flow stacked on top. Screens never touch the stack
// directly; they emit navigation messages and the router applies them.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/cleanfocus/cleanfocus/internal/screen"
)

// PushScreenMsg stacks a new screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg discards the top screen, revealing the one below.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen in place. Restarting a quiz
// and the quiz-to-results handoff both use it so the screen below
// stays the home screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router owns the stack of screens.
type Router struct {
	stack []screen.Screen
}

// New creates a router with the given bottom screen.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push stacks s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. The bottom screen is never popped.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active returns the screen currently on top.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth reports the stack size.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages itself and forwards everything
// else to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen's body.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
