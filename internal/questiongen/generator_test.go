package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
	"github.com/cleanfocus/cleanfocus/internal/llm"
)

const validSet = `[
  {
    "id": 1,
    "text": "Which technique reduces overfitting?",
    "options": [
      {"id": "a", "text": "Dropout"},
      {"id": "b", "text": "Increasing depth"},
      {"id": "c", "text": "Removing validation data"}
    ],
    "correctOptionId": "a",
    "explanation": "Dropout randomly disables units during training.",
    "category": "Regularization"
  }
]`

func TestGenerate_Valid(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(validSet)},
	)
	g := NewGenerator(mock)

	questions, err := g.Generate(context.Background(), assessment.ModuleMachineLearning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].CorrectOptionID != "a" {
		t.Errorf("unexpected correct option: %q", questions[0].CorrectOptionID)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	if mock.Calls[0].Schema == nil {
		t.Error("expected request to carry a schema")
	}
	if !strings.Contains(mock.Calls[0].Prompt, string(assessment.ModuleMachineLearning)) {
		t.Errorf("prompt missing module name: %s", mock.Calls[0].Prompt)
	}
}

func TestGenerate_CorrectOptionMustResolve(t *testing.T) {
	bad := strings.Replace(validSet, `"correctOptionId": "a"`, `"correctOptionId": "z"`, 1)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(bad)},
	)
	g := NewGenerator(mock)

	_, err := g.Generate(context.Background(), assessment.ModuleMachineLearning)
	if err == nil {
		t.Fatal("expected error for unresolvable correct option")
	}
	var invErr *llm.ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestGenerate_DuplicateOptionIDs(t *testing.T) {
	bad := strings.Replace(validSet, `{"id": "b", "text": "Increasing depth"}`,
		`{"id": "a", "text": "Increasing depth"}`, 1)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(bad)},
	)
	g := NewGenerator(mock)

	if _, err := g.Generate(context.Background(), assessment.ModuleMachineLearning); err == nil {
		t.Fatal("expected error for duplicate option ids")
	}
}

func TestGenerate_ExplanationRequired(t *testing.T) {
	bad := strings.Replace(validSet,
		`"explanation": "Dropout randomly disables units during training."`,
		`"explanation": "  "`, 1)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(bad)},
	)
	g := NewGenerator(mock)

	if _, err := g.Generate(context.Background(), assessment.ModuleMachineLearning); err == nil {
		t.Fatal("expected error for blank explanation")
	}
}

func TestGenerate_EmptySet(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`[]`)},
	)
	g := NewGenerator(mock)

	if _, err := g.Generate(context.Background(), assessment.ModuleMachineLearning); err == nil {
		t.Fatal("expected error for empty set")
	}
}

func TestFetcher_CoversAllModules(t *testing.T) {
	mock := llm.NewMockProvider()
	for range assessment.Modules() {
		mock.AddResponse(llm.MockResponse{Content: json.RawMessage(validSet)})
	}
	f := NewFetcher(NewGenerator(mock))

	cat, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, module := range assessment.Modules() {
		if len(cat[string(module)]) == 0 {
			t.Errorf("module %s missing from generated catalog", module)
		}
	}
}
