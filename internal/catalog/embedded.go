package catalog

import (
	"context"
	_ "embed"
)

//go:embed questions.json
var embeddedQuestions []byte

// EmbeddedFetcher serves the question bank bundled with the binary.
// It is the default source when no file or URL is configured.
type EmbeddedFetcher struct{}

func (EmbeddedFetcher) Fetch(_ context.Context) (Catalog, error) {
	return ParseCatalog(embeddedQuestions)
}
