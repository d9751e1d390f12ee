package catalog

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
)

type countingFetcher struct {
	calls atomic.Int64
	cat   Catalog
	err   error
}

func (f *countingFetcher) Fetch(_ context.Context) (Catalog, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.cat, nil
}

func sampleCatalog() Catalog {
	questions := make([]assessment.Question, 6)
	for i := range questions {
		questions[i] = assessment.Question{
			ID:   i + 1,
			Text: "q",
			Options: []assessment.Option{
				{ID: "a", Text: "one"},
				{ID: "b", Text: "two"},
			},
			CorrectOptionID: "a",
		}
	}
	return Catalog{
		string(assessment.ModuleMachineLearning): questions,
		string(assessment.ModuleNLP):             nil,
	}
}

func TestSource_FetchesOnce(t *testing.T) {
	fetcher := &countingFetcher{cat: sampleCatalog()}
	source := NewSource(NewCache(fetcher))
	ctx := context.Background()

	for range 3 {
		if _, err := source.Questions(ctx, assessment.ModuleMachineLearning); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := fetcher.calls.Load(); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}
}

func TestSource_FailedFetchRetries(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("network down")}
	source := NewSource(NewCache(fetcher))
	ctx := context.Background()

	if _, err := source.Questions(ctx, assessment.ModuleMachineLearning); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got: %v", err)
	}

	// Failure is not cached: the fetcher recovers and the next call
	// succeeds.
	fetcher.err = nil
	fetcher.cat = sampleCatalog()
	if _, err := source.Questions(ctx, assessment.ModuleMachineLearning); err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if got := fetcher.calls.Load(); got != 2 {
		t.Fatalf("expected 2 fetches, got %d", got)
	}
}

func TestSource_EmptyModuleUnavailable(t *testing.T) {
	source := NewSource(NewCache(&countingFetcher{cat: sampleCatalog()}))

	_, err := source.Questions(context.Background(), assessment.ModuleNLP)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for empty module, got: %v", err)
	}
}

func TestSource_UnknownModuleUnavailable(t *testing.T) {
	source := NewSource(NewCache(&countingFetcher{cat: sampleCatalog()}))

	_, err := source.Questions(context.Background(), assessment.Module("Quantum Computing"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for unknown module, got: %v", err)
	}
}

func TestSource_ReturnsCopies(t *testing.T) {
	fetcher := &countingFetcher{cat: sampleCatalog()}
	source := NewSource(NewCache(fetcher))
	ctx := context.Background()

	first, err := source.Questions(ctx, assessment.ModuleMachineLearning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first[0].Text = "mutated"

	second, err := source.Questions(ctx, assessment.ModuleMachineLearning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, q := range second {
		if q.Text == "mutated" {
			t.Fatal("cached questions were mutated through a returned slice")
		}
	}
}

func TestSource_ShuffleIsSeeded(t *testing.T) {
	fetcher := &countingFetcher{cat: sampleCatalog()}
	cache := NewCache(fetcher)
	ctx := context.Background()

	orderOf := func(seed uint64) []int {
		source := NewSourceWithRand(cache, rand.New(rand.NewPCG(seed, 0)))
		questions, err := source.Questions(ctx, assessment.ModuleMachineLearning)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids := make([]int, len(questions))
		for i, q := range questions {
			ids[i] = q.ID
		}
		return ids
	}

	a := orderOf(1)
	b := orderOf(1)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed produced different orders")
		}
	}

	// Every question survives the shuffle exactly once.
	seen := make(map[int]bool, len(a))
	for _, id := range a {
		if seen[id] {
			t.Fatalf("question %d appears twice after shuffle", id)
		}
		seen[id] = true
	}
	if len(seen) != 6 {
		t.Fatalf("expected 6 distinct questions, got %d", len(seen))
	}
}

func TestEmbeddedCatalog_Valid(t *testing.T) {
	cat, err := EmbeddedFetcher{}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("embedded catalog invalid: %v", err)
	}
	for _, module := range assessment.Modules() {
		if len(cat[string(module)]) == 0 {
			t.Errorf("embedded catalog missing module %s", module)
		}
	}
}

func TestValidate_RejectsBadCorrectOption(t *testing.T) {
	cat := Catalog{
		"Machine Learning": []assessment.Question{{
			ID:   1,
			Text: "q",
			Options: []assessment.Option{
				{ID: "a", Text: "one"},
			},
			CorrectOptionID: "z",
		}},
	}
	if err := Validate(cat); err == nil {
		t.Fatal("expected validation error for unresolvable correctOptionId")
	}
}
