package assessment

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Narrative(_ context.Context, _ string, _, _ int) (string, error) {
	return s.text, s.err
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 11, 4, 15, 30, 0, 0, time.UTC)
	}
}

func threeOfFive() []UserAnswer {
	return []UserAnswer{
		{QuestionID: 1, SelectedOptionID: "a", IsCorrect: true},
		{QuestionID: 2, SelectedOptionID: "b", IsCorrect: false},
		{QuestionID: 3, SelectedOptionID: "a", IsCorrect: true},
		{QuestionID: 4, SelectedOptionID: "c", IsCorrect: false},
		{QuestionID: 5, SelectedOptionID: "a", IsCorrect: true},
	}
}

func TestAssemble_ScoreAndDate(t *testing.T) {
	a := NewAssembler(&stubGenerator{text: "Nice work."}, time.Second)
	a.SetClock(fixedClock())

	result := a.Assemble(context.Background(), ModuleMachineLearning, threeOfFive())

	if result.Score != 3 || result.Total != 5 {
		t.Fatalf("score = %d/%d, want 3/5", result.Score, result.Total)
	}
	if result.Percentage() != 60 {
		t.Fatalf("percentage = %d, want 60", result.Percentage())
	}
	if result.Narrative != "Nice work." {
		t.Fatalf("narrative = %q", result.Narrative)
	}
	if result.CompletionDate != "November 4, 2026" {
		t.Fatalf("completion date = %q", result.CompletionDate)
	}
}

func TestAssemble_FallbackOnGeneratorError(t *testing.T) {
	a := NewAssembler(&stubGenerator{err: errors.New("provider down")}, time.Second)
	a.SetClock(fixedClock())

	result := a.Assemble(context.Background(), ModuleNLP, threeOfFive())

	if result.Narrative != FallbackNarrative {
		t.Fatalf("expected fallback narrative, got %q", result.Narrative)
	}
	if result.Score != 3 {
		t.Fatalf("score must survive a narrative failure, got %d", result.Score)
	}
}

func TestAssemble_FallbackWithoutGenerator(t *testing.T) {
	a := NewAssembler(nil, time.Second)
	a.SetClock(fixedClock())

	result := a.Assemble(context.Background(), ModuleGenerativeAI, threeOfFive())
	if result.Narrative != FallbackNarrative {
		t.Fatalf("expected fallback narrative, got %q", result.Narrative)
	}
}

func TestAssemble_FallbackOnEmptyNarrative(t *testing.T) {
	a := NewAssembler(&stubGenerator{text: ""}, time.Second)
	a.SetClock(fixedClock())

	result := a.Assemble(context.Background(), ModuleComputerVision, threeOfFive())
	if result.Narrative != FallbackNarrative {
		t.Fatalf("expected fallback for empty narrative, got %q", result.Narrative)
	}
}

func TestAssemble_ZeroAnswers(t *testing.T) {
	a := NewAssembler(nil, time.Second)
	a.SetClock(fixedClock())

	result := a.Assemble(context.Background(), ModuleMachineLearning, nil)
	if result.Score != 0 || result.Total != 0 {
		t.Fatalf("score = %d/%d, want 0/0", result.Score, result.Total)
	}
	if result.Percentage() != 0 {
		t.Fatalf("percentage of empty result = %d, want 0", result.Percentage())
	}
}
