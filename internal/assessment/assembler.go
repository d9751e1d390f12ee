package assessment

import (
	"context"
	"fmt"
	"os"
	"time"
)

// NarrativeGenerator produces a qualitative performance summary for a
// completed assessment. Implementations live in internal/narrative;
// the assembler only depends on this capability.
type NarrativeGenerator interface {
	Narrative(ctx context.Context, module string, score, total int) (string, error)
}

// FallbackNarrative is shown whenever narrative generation fails. The
// user must never see a raw error in place of an evaluation.
const FallbackNarrative = "Great effort on completing the assessment! " +
	"Your dedication to mastering these complex AI topics is evident. " +
	"Continue practicing and exploring the advanced documentation to " +
	"further solidify your expertise."

// completionDateLayout renders dates like "November 4, 2024".
const completionDateLayout = "January 2, 2006"

// Assembler turns a completed answer list into an immutable Result.
type Assembler struct {
	generator NarrativeGenerator
	timeout   time.Duration
	now       func() time.Time
}

// NewAssembler creates an Assembler. generator may be nil, in which
// case every result carries the fallback narrative. timeout bounds the
// wait on the generator so the summary transition can never block
// indefinitely.
func NewAssembler(generator NarrativeGenerator, timeout time.Duration) *Assembler {
	return &Assembler{
		generator: generator,
		timeout:   timeout,
		now:       time.Now,
	}
}

// SetClock overrides the assembly-time clock. Tests only.
func (a *Assembler) SetClock(now func() time.Time) { a.now = now }

// Assemble computes the score, requests a narrative and stamps the
// completion date. It never fails: any generator error is absorbed
// into the fallback narrative and logged for diagnostics.
func (a *Assembler) Assemble(ctx context.Context, module Module, answers []UserAnswer) *Result {
	score := 0
	for _, ans := range answers {
		if ans.IsCorrect {
			score++
		}
	}

	narrative := FallbackNarrative
	if a.generator != nil {
		genCtx := ctx
		if a.timeout > 0 {
			var cancel context.CancelFunc
			genCtx, cancel = context.WithTimeout(ctx, a.timeout)
			defer cancel()
		}
		text, err := a.generator.Narrative(genCtx, string(module), score, len(answers))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: narrative generation failed: %v\n", err)
		} else if text != "" {
			narrative = text
		}
	}

	completedAt := a.now()
	return &Result{
		Module:         module,
		Score:          score,
		Total:          len(answers),
		Answers:        answers,
		Narrative:      narrative,
		CompletionDate: completedAt.Format(completionDateLayout),
		CompletedAt:    completedAt,
	}
}
