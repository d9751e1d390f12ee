// Package questiongen produces fresh assessment question sets with an
// LLM provider, as an alternative to the bundled catalog.
package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
	"github.com/cleanfocus/cleanfocus/internal/catalog"
	"github.com/cleanfocus/cleanfocus/internal/llm"
)

const (
	questionsPerModule = 5
	maxGenTokens       = 8192
)

// questionSetSchema constrains the model output to a question list in
// the catalog's wire shape.
func questionSetSchema() *llm.Schema {
	return &llm.Schema{
		Name: "question-set",
		Definition: map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "integer"},
					"text": map[string]any{"type": "string"},
					"options": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":   map[string]any{"type": "string"},
								"text": map[string]any{"type": "string"},
							},
							"required": []any{"id", "text"},
						},
					},
					"correctOptionId": map[string]any{"type": "string"},
					"explanation":     map[string]any{"type": "string"},
					"category":        map[string]any{"type": "string"},
				},
				"required": []any{"id", "text", "options", "correctOptionId", "explanation", "category"},
			},
		},
	}
}

// Generator creates question sets for a module via the model.
type Generator struct {
	provider llm.Provider
}

// NewGenerator creates a Generator backed by the given provider.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate returns a freshly generated question set for the module.
// The output is schema-validated by the provider and structurally
// checked here before use.
func (g *Generator) Generate(ctx context.Context, module assessment.Module) ([]assessment.Question, error) {
	prompt := fmt.Sprintf(
		"Generate a list of %d high-quality multiple-choice questions for an AI proficiency "+
			"assessment in the domain of %s. Ensure the questions vary in difficulty. "+
			"Provide a detailed context/explanation for each correct answer.",
		questionsPerModule, module,
	)

	ctx = llm.WithPurpose(ctx, "questiongen")
	resp, err := g.provider.Generate(ctx, llm.Request{
		Prompt:    prompt,
		Schema:    questionSetSchema(),
		MaxTokens: maxGenTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions for %s: %w", module, err)
	}

	var questions []assessment.Question
	if err := json.Unmarshal(resp.Content, &questions); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("decode question set: %w", err),
		}
	}

	if err := checkQuestions(questions); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     err,
		}
	}
	return questions, nil
}

// checkQuestions enforces the structural rules the schema cannot
// express: non-empty set, at least two options, unique option IDs, a
// correct option that resolves, and a usable explanation.
func checkQuestions(questions []assessment.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("empty question set")
	}
	for _, q := range questions {
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: need at least 2 options, got %d", q.ID, len(q.Options))
		}
		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if opt.ID == "" {
				return fmt.Errorf("question %d: option with empty id", q.ID)
			}
			if seen[opt.ID] {
				return fmt.Errorf("question %d: duplicate option id %q", q.ID, opt.ID)
			}
			seen[opt.ID] = true
		}
		if !seen[q.CorrectOptionID] {
			return fmt.Errorf("question %d: correct option %q not among options", q.ID, q.CorrectOptionID)
		}
		if strings.TrimSpace(q.Explanation) == "" {
			return fmt.Errorf("question %d: missing explanation", q.ID)
		}
	}
	return nil
}

// Fetcher adapts a Generator to the catalog.Fetcher interface by
// generating a set for every known module in one pass.
type Fetcher struct {
	gen *Generator
}

// NewFetcher creates a catalog fetcher over the generator.
func NewFetcher(gen *Generator) *Fetcher {
	return &Fetcher{gen: gen}
}

func (f *Fetcher) Fetch(ctx context.Context) (catalog.Catalog, error) {
	cat := make(catalog.Catalog, len(assessment.Modules()))
	for _, module := range assessment.Modules() {
		questions, err := f.gen.Generate(ctx, module)
		if err != nil {
			return nil, err
		}
		cat[string(module)] = questions
	}
	return cat, nil
}
