package assessment

import "errors"

// Mode is the controller's observable state. Exactly one mode is
// active at a time.
type Mode int

const (
	// ModeSelection is the initial state: picking a module.
	ModeSelection Mode = iota
	// ModeLoading covers both asynchronous boundaries: question
	// acquisition and result assembly. All runner input is gated off
	// while loading.
	ModeLoading
	// ModeActive is a quiz in progress.
	ModeActive
	// ModeSummary shows the assembled result.
	ModeSummary
	// ModeDetail is the per-question review of the result.
	ModeDetail
)

func (m Mode) String() string {
	switch m {
	case ModeSelection:
		return "selection"
	case ModeLoading:
		return "loading"
	case ModeActive:
		return "active"
	case ModeSummary:
		return "summary"
	case ModeDetail:
		return "detail"
	}
	return "unknown"
}

var (
	// ErrBadTransition is returned when an operation is not legal in
	// the current mode.
	ErrBadTransition = errors.New("transition not allowed in current mode")

	// ErrNoQuestions is returned when a load completes with an empty
	// question list; Active is never entered without questions.
	ErrNoQuestions = errors.New("question list is empty")
)

// Controller owns the application mode, the active module and the
// per-session runner and result. It is pure state: the TUI drives it
// with transition calls and renders whatever mode it reports.
//
// Every load is tagged with a generation number. A completion whose
// generation no longer matches is stale — the user restarted or
// exited while it was in flight — and is discarded rather than
// applied, so a superseded load can never resurrect a dead session.
type Controller struct {
	mode    Mode
	module  Module
	scholar string
	runner  *Runner
	result  *Result
	loadErr error

	gen      uint64
	loadKind loadKind
}

type loadKind int

const (
	loadNone loadKind = iota
	loadQuestions
	loadAssembly
)

// NewController creates a controller in the Selection mode.
func NewController() *Controller {
	return &Controller{mode: ModeSelection}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Module returns the active module ("" outside a session).
func (c *Controller) Module() Module { return c.module }

// Scholar returns the optional name entered on the selection screen.
func (c *Controller) Scholar() string { return c.scholar }

// Runner returns the active quiz runner, or nil.
func (c *Controller) Runner() *Runner { return c.runner }

// Result returns the assembled result, or nil.
func (c *Controller) Result() *Result { return c.result }

// LoadErr returns the last load failure reported to the user, if any.
func (c *Controller) LoadErr() error { return c.loadErr }

// Generation returns the current load generation. Asynchronous work
// started by the caller must echo it back into FinishLoad or
// FinishAssembly.
func (c *Controller) Generation() uint64 { return c.gen }

// BeginStart enters Loading for a fresh session in the given module.
// Only legal from Selection.
func (c *Controller) BeginStart(module Module, scholar string) (uint64, error) {
	if c.mode != ModeSelection {
		return 0, ErrBadTransition
	}
	if !module.Valid() {
		return 0, ErrBadTransition
	}
	c.module = module
	c.scholar = scholar
	return c.beginLoad(loadQuestions), nil
}

// BeginRestart enters Loading for a new shuffle of the current module,
// discarding the in-progress runner and any result. Legal from Active,
// Summary and Detail.
func (c *Controller) BeginRestart() (Module, uint64, error) {
	switch c.mode {
	case ModeActive, ModeSummary, ModeDetail:
	default:
		return "", 0, ErrBadTransition
	}
	return c.module, c.beginLoad(loadQuestions), nil
}

// FinishLoad applies a completed question load. A stale generation is
// silently discarded. On success a brand-new runner is constructed; on
// failure the controller reverts to Selection with the error recorded
// for display.
func (c *Controller) FinishLoad(gen uint64, questions []Question, err error) {
	if gen != c.gen || c.loadKind != loadQuestions {
		return
	}
	c.loadKind = loadNone
	if err == nil && len(questions) == 0 {
		err = ErrNoQuestions
	}
	if err != nil {
		c.clearSession()
		c.mode = ModeSelection
		c.loadErr = err
		return
	}
	c.result = nil
	c.runner = NewRunner(questions)
	c.loadErr = nil
	c.mode = ModeActive
}

// BeginComplete enters Loading for result assembly once the runner has
// emitted its completed answer list.
func (c *Controller) BeginComplete() (uint64, error) {
	if c.mode != ModeActive || c.runner == nil || !c.runner.Done() {
		return 0, ErrBadTransition
	}
	return c.beginLoad(loadAssembly), nil
}

// FinishAssembly applies an assembled result. Assembly never fails, so
// the only guard is staleness.
func (c *Controller) FinishAssembly(gen uint64, result *Result) {
	if gen != c.gen || c.loadKind != loadAssembly {
		return
	}
	c.loadKind = loadNone
	c.result = result
	c.mode = ModeSummary
}

// ViewDetail moves from Summary to the review.
func (c *Controller) ViewDetail() error {
	if c.mode != ModeSummary || c.result == nil {
		return ErrBadTransition
	}
	c.mode = ModeDetail
	return nil
}

// BackToSummary returns from the review to the summary.
func (c *Controller) BackToSummary() error {
	if c.mode != ModeDetail {
		return ErrBadTransition
	}
	c.mode = ModeSummary
	return nil
}

// StartNew leaves a finished session for the selection screen.
func (c *Controller) StartNew() error {
	if c.mode != ModeDetail && c.mode != ModeSummary {
		return ErrBadTransition
	}
	c.Exit()
	return nil
}

// Exit unconditionally returns to Selection, clearing the module,
// questions and result. Bumping the generation invalidates any load
// still in flight.
func (c *Controller) Exit() {
	c.gen++
	c.loadKind = loadNone
	c.clearSession()
	c.loadErr = nil
	c.mode = ModeSelection
}

func (c *Controller) beginLoad(kind loadKind) uint64 {
	c.gen++
	c.loadKind = kind
	c.loadErr = nil
	c.mode = ModeLoading
	return c.gen
}

func (c *Controller) clearSession() {
	c.module = ""
	c.scholar = ""
	c.runner = nil
	c.result = nil
}
