// Package catalog resolves subject modules to question lists. The full
// catalog is fetched at most once per process and cached; every lookup
// hands out a freshly shuffled copy so repeated attempts differ and
// callers can never corrupt the cached data.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
)

// ErrUnavailable indicates the catalog could not be fetched or the
// requested module has no questions. It always propagates to the
// caller; the session controller surfaces it and stays in selection.
var ErrUnavailable = errors.New("question data unavailable")

// Catalog is the full mapping of module identifier to question list.
type Catalog map[string][]assessment.Question

// Fetcher retrieves the entire catalog in one call.
type Fetcher interface {
	Fetch(ctx context.Context) (Catalog, error)
}

// Cache lazily populates the catalog exactly once. Overlapping first
// loads share a single in-flight fetch via singleflight; after the
// first success all reads go against the stored value.
type Cache struct {
	fetcher Fetcher

	group  singleflight.Group
	mu     sync.RWMutex
	loaded Catalog
}

// NewCache creates a cache over the given fetcher. The cache is an
// owned object rather than package state so tests can construct a
// fresh one per case.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// GetOrLoad returns the cached catalog, fetching it on first use.
// A failed fetch is not cached: the next call retries.
func (c *Cache) GetOrLoad(ctx context.Context) (Catalog, error) {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded != nil {
		return loaded, nil
	}

	v, err, _ := c.group.Do("catalog", func() (any, error) {
		c.mu.RLock()
		loaded := c.loaded
		c.mu.RUnlock()
		if loaded != nil {
			return loaded, nil
		}
		fetched, err := c.fetcher.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		c.mu.Lock()
		c.loaded = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Catalog), nil
}

// Source resolves a module to a session-ready question list.
type Source struct {
	cache *Cache

	mu   sync.Mutex
	rand *rand.Rand
}

// NewSource creates a Source over the cache using a non-deterministic
// shuffle.
func NewSource(cache *Cache) *Source {
	return &Source{cache: cache}
}

// NewSourceWithRand creates a Source with an explicit random source so
// tests can assert against a fixed seed.
func NewSourceWithRand(cache *Cache, r *rand.Rand) *Source {
	return &Source{cache: cache, rand: r}
}

// Questions returns a newly shuffled copy of the module's question
// list. Fails with ErrUnavailable when the catalog fetch fails or the
// module maps to an empty or missing list.
func (s *Source) Questions(ctx context.Context, module assessment.Module) ([]assessment.Question, error) {
	cat, err := s.cache.GetOrLoad(ctx)
	if err != nil {
		return nil, err
	}

	questions := cat[string(module)]
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions for module %q", ErrUnavailable, module)
	}

	out := make([]assessment.Question, len(questions))
	copy(out, questions)
	s.shuffle(out)
	return out, nil
}

// shuffle applies a Fisher-Yates permutation in place.
func (s *Source) shuffle(qs []assessment.Question) {
	swap := func(i, j int) { qs[i], qs[j] = qs[j], qs[i] }
	if s.rand != nil {
		s.mu.Lock()
		s.rand.Shuffle(len(qs), swap)
		s.mu.Unlock()
		return
	}
	rand.Shuffle(len(qs), swap)
}
