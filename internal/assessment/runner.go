package assessment

import "github.com/google/uuid"

// Runner drives progression through one immutable question list.
// Selection and submission are deliberately separate operations:
// correctness and the explanation are revealed only after an explicit
// submit, and the learner must acknowledge that feedback before
// Advance moves on. Both rules are enforced here as preconditions
// rather than left to the UI.
type Runner struct {
	id        string
	questions []Question

	position int
	pending  string
	locked   bool
	answers  []UserAnswer
	done     bool
}

// NewRunner creates a fresh runner over the given question list.
// Each runner carries a unique id so a restart is observably a brand
// new session with no residual interaction state.
func NewRunner(questions []Question) *Runner {
	return &Runner{
		id:        uuid.New().String(),
		questions: questions,
	}
}

// ID returns the unique session-instance identifier.
func (r *Runner) ID() string { return r.id }

// Questions returns the runner's question list in session order.
func (r *Runner) Questions() []Question { return r.questions }

// Position returns the zero-based index of the current question.
func (r *Runner) Position() int { return r.position }

// Current returns the question at the current position, or nil once
// the runner is done.
func (r *Runner) Current() *Question {
	if r.done || r.position >= len(r.questions) {
		return nil
	}
	return &r.questions[r.position]
}

// Pending returns the currently selected (not yet submitted) option
// id, or "" if nothing is selected.
func (r *Runner) Pending() string { return r.pending }

// Locked reports whether the current question's answer has been
// submitted.
func (r *Runner) Locked() bool { return r.locked }

// Done reports whether the final question has been advanced past.
func (r *Runner) Done() bool { return r.done }

// Answers returns the answers recorded so far, in session order.
func (r *Runner) Answers() []UserAnswer { return r.answers }

// Select sets the pending option. It is a no-op once the current
// question is locked; repeated calls simply overwrite the pending
// value.
func (r *Runner) Select(optionID string) {
	if r.done || r.locked {
		return
	}
	r.pending = optionID
}

// Submit locks in the pending selection, recording a UserAnswer with
// correctness computed exactly once against the current question.
func (r *Runner) Submit() error {
	if r.done {
		return ErrDone
	}
	if r.locked {
		return ErrLocked
	}
	if r.pending == "" {
		return ErrNoSelection
	}
	q := r.questions[r.position]
	r.answers = append(r.answers, UserAnswer{
		QuestionID:       q.ID,
		SelectedOptionID: r.pending,
		IsCorrect:        r.pending == q.CorrectOptionID,
	})
	r.locked = true
	return nil
}

// Advance moves to the next question, clearing selection state. On the
// last question it returns the completed answer list and the runner
// becomes inert. Advancing an unlocked question is an error so the
// learner cannot skip past feedback.
func (r *Runner) Advance() ([]UserAnswer, error) {
	if r.done {
		return nil, ErrDone
	}
	if !r.locked {
		return nil, ErrNotLocked
	}
	if r.position == len(r.questions)-1 {
		r.done = true
		return r.answers, nil
	}
	r.position++
	r.pending = ""
	r.locked = false
	return nil, nil
}
