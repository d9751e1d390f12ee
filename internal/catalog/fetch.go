package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// FileFetcher loads the catalog from a local JSON document keyed by
// module identifier.
type FileFetcher struct {
	Path string
}

func (f *FileFetcher) Fetch(_ context.Context) (Catalog, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// HTTPFetcher loads the catalog from a URL.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (Catalog, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
	}

	var cat Catalog
	if err := json.NewDecoder(resp.Body).Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return cat, Validate(cat)
}

// ParseCatalog decodes and validates a catalog JSON document.
func ParseCatalog(data []byte) (Catalog, error) {
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return cat, Validate(cat)
}

// Validate checks structural integrity of every question: options
// present, option ids unique within the question, and correctOptionId
// resolving to a member of options.
func Validate(cat Catalog) error {
	for module, questions := range cat {
		seenQ := make(map[int]bool, len(questions))
		for _, q := range questions {
			if seenQ[q.ID] {
				return fmt.Errorf("module %q: duplicate question id %d", module, q.ID)
			}
			seenQ[q.ID] = true
			if len(q.Options) == 0 {
				return fmt.Errorf("module %q question %d: no options", module, q.ID)
			}
			seen := make(map[string]bool, len(q.Options))
			for _, opt := range q.Options {
				if opt.ID == "" {
					return fmt.Errorf("module %q question %d: empty option id", module, q.ID)
				}
				if seen[opt.ID] {
					return fmt.Errorf("module %q question %d: duplicate option id %q", module, q.ID, opt.ID)
				}
				seen[opt.ID] = true
			}
			if !seen[q.CorrectOptionID] {
				return fmt.Errorf("module %q question %d: correctOptionId %q does not match any option",
					module, q.ID, q.CorrectOptionID)
			}
		}
	}
	return nil
}
