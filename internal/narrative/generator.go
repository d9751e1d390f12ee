// Package narrative produces the qualitative analysis paragraph shown
// on the results screen, backed by an LLM provider.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/cleanfocus/cleanfocus/internal/llm"
)

const maxNarrativeTokens = 1024

// Generator asks the model for a one-paragraph qualitative analysis of
// an assessment result. It implements assessment.NarrativeGenerator.
type Generator struct {
	provider llm.Provider
}

// NewGenerator creates a Generator backed by the given provider.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Narrative returns the analysis paragraph for a score of score out of
// total in the given module.
func (g *Generator) Narrative(ctx context.Context, module string, score, total int) (string, error) {
	percentage := float64(score) / float64(total) * 100

	prompt := fmt.Sprintf(
		"Provide a professional, encouraging, and detailed one-paragraph qualitative analysis "+
			"for a student who scored %d/%d (%.0f%%) in a %s proficiency assessment. "+
			"Use a sophisticated yet accessible tone suitable for a high-end educational platform like 'Clean Focus'.",
		score, total, percentage, module,
	)

	ctx = llm.WithPurpose(ctx, "narrative")
	resp, err := g.provider.Generate(ctx, llm.Request{
		Prompt:    prompt,
		MaxTokens: maxNarrativeTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate narrative: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("generate narrative: empty response")
	}
	return text, nil
}
