package assessment

import "errors"

var (
	// ErrNoSelection is returned by Submit when no option is selected.
	// The UI disables the submit action while nothing is selected, so
	// hitting this is an integration bug, not a runtime condition.
	ErrNoSelection = errors.New("no option selected")

	// ErrLocked is returned by Submit when the current question has
	// already been submitted. Submission is final.
	ErrLocked = errors.New("answer already submitted")

	// ErrNotLocked is returned by Advance before the current question
	// has been submitted, so feedback can never be skipped.
	ErrNotLocked = errors.New("current question not yet submitted")

	// ErrDone is returned by runner operations after the final advance;
	// a finished runner is inert.
	ErrDone = errors.New("assessment already completed")
)
