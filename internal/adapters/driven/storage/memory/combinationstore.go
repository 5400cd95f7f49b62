package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driven"
)

// Ensure CombinationStore implements the interface.
var _ driven.CombinationStore = (*CombinationStore)(nil)

// CombinationStore is an in-memory implementation of driven.CombinationStore.
// Posting lists are sorted index slices intersected smallest first.
type CombinationStore struct {
	mu    sync.RWMutex
	index *postingIndex
}

// postingIndex is one fully built load. It is never mutated after Load.
type postingIndex struct {
	run          domain.EnumerationRun
	itemIDs      map[string]int
	combinations map[int64]domain.IndexedCombination
	postings     map[int][]int64
}

// NewCombinationStore creates an empty in-memory combination store.
func NewCombinationStore() *CombinationStore {
	return &CombinationStore{}
}

// Load builds a new index from batch and swaps it in.
// On error the previous index stays in place.
func (s *CombinationStore) Load(ctx context.Context, batch domain.CombinationBatch) (*domain.LoadResult, error) {
	start := time.Now()

	idx := &postingIndex{
		run:          batch.Run,
		itemIDs:      make(map[string]int, len(batch.Items)),
		combinations: make(map[int64]domain.IndexedCombination, len(batch.Combinations)),
		postings:     make(map[int][]int64, len(batch.Items)),
	}
	var known domain.Combination
	for _, item := range batch.Items {
		idx.itemIDs[item.Name] = item.ID
		known = known.With(item.ID)
	}

	postings := 0
	for i, c := range batch.Combinations {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if err := c.Validate(known); err != nil {
			return nil, err
		}
		if _, dup := idx.combinations[c.Index]; dup {
			return nil, fmt.Errorf("%w: duplicate combination index %d", domain.ErrInvalidInput, c.Index)
		}
		idx.combinations[c.Index] = c
		for _, id := range c.Members.IDs() {
			idx.postings[id] = append(idx.postings[id], c.Index)
			postings++
		}
	}
	for id := range idx.postings {
		slices.Sort(idx.postings[id])
	}

	s.mu.Lock()
	s.index = idx
	s.mu.Unlock()

	return &domain.LoadResult{
		RunID:        batch.Run.ID,
		Combinations: len(idx.combinations),
		Postings:     postings,
		Duration:     time.Since(start),
	}, nil
}

// Query intersects the include posting lists, drops excluded members and
// applies the ranges.
func (s *CombinationStore) Query(_ context.Context, q domain.CombinationQuery) ([]domain.IndexedCombination, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil, domain.ErrStoreNotBuilt
	}
	if len(q.MustInclude) == 0 {
		return []domain.IndexedCombination{}, nil
	}

	lists := make([][]int64, 0, len(q.MustInclude))
	for _, name := range q.MustInclude {
		id, ok := s.index.itemIDs[name]
		if !ok {
			return []domain.IndexedCombination{}, nil
		}
		lists = append(lists, s.index.postings[id])
	}
	slices.SortFunc(lists, func(a, b []int64) int { return len(a) - len(b) })

	matches := lists[0]
	for _, list := range lists[1:] {
		matches = intersect(matches, list)
		if len(matches) == 0 {
			break
		}
	}

	var excluded domain.Combination
	for _, name := range q.MustExclude {
		if id, ok := s.index.itemIDs[name]; ok {
			excluded = excluded.With(id)
		}
	}

	result := make([]domain.IndexedCombination, 0, len(matches))
	for _, i := range matches {
		c := s.index.combinations[i]
		if !c.Members.Intersect(excluded).IsEmpty() {
			continue
		}
		if c.Size < q.SizeMin || c.Size > q.SizeMax || c.TotalScore < q.ScoreMin || c.TotalScore > q.ScoreMax {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

// intersect merges two ascending slices.
func intersect(a, b []int64) []int64 {
	out := make([]int64, 0, min(len(a), len(b)))
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// LastRun returns the run currently loaded.
func (s *CombinationStore) LastRun(_ context.Context) (*domain.EnumerationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil, domain.ErrStoreNotBuilt
	}
	run := s.index.run
	return &run, nil
}

// Close is a no-op for the memory store.
func (s *CombinationStore) Close() error {
	return nil
}
