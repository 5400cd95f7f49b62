package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driven"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driving"
	"github.com/custodia-labs/synergy-cli/internal/logger"
)

// Ensure EnumerationService implements the interface.
var _ driving.EnumerationService = (*EnumerationService)(nil)

// EnumerationService runs the search engine and bulk-loads its output.
type EnumerationService struct {
	engine   *SearchEngine
	store    driven.CombinationStore
	settings domain.SearchSettings
}

// NewEnumerationService creates an enumeration service.
// settings supplies workers and resource bounds for full runs.
func NewEnumerationService(
	engine *SearchEngine,
	store driven.CombinationStore,
	settings domain.SearchSettings,
) *EnumerationService {
	return &EnumerationService{
		engine:   engine,
		store:    store,
		settings: settings,
	}
}

// Search runs the engine without persisting anything.
func (s *EnumerationService) Search(ctx context.Context, opts domain.SearchOptions) (*domain.SearchResult, error) {
	return s.engine.Search(ctx, opts)
}

// RunFullEnumeration searches the whole catalog and replaces the store contents.
func (s *EnumerationService) RunFullEnumeration(ctx context.Context, maxSize int) (*domain.EnumerationRun, error) {
	logger.Section("Full Enumeration")

	run := domain.EnumerationRun{
		ID:           uuid.NewString(),
		MaxSize:      maxSize,
		CatalogItems: s.engine.Catalog().Len(),
		StartedAt:    time.Now(),
	}
	logger.Info("run %s: %d items, max size %d, %d worker(s)",
		run.ID, run.CatalogItems, maxSize, max(s.settings.Workers, 1))

	result, err := s.engine.Search(ctx, domain.SearchOptions{
		MaxSize:    maxSize,
		Workers:    s.settings.Workers,
		MaxResults: s.settings.MaxResults,
		Timeout:    time.Duration(s.settings.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("enumeration %s: %w", run.ID, err)
	}
	logger.Info("search found %d combinations in %s", len(result.Combinations),
		result.Stats.Elapsed.Round(time.Millisecond))

	done := logger.Timed("bulk load")
	batch := domain.CombinationBatch{
		Items:        s.engine.Catalog().Items(),
		Combinations: s.index(result.Combinations),
	}
	run.Combinations = len(batch.Combinations)
	run.CompletedAt = time.Now()
	batch.Run = run

	loaded, err := s.store.Load(ctx, batch)
	done()
	if err != nil {
		return nil, fmt.Errorf("enumeration %s: %w", run.ID, err)
	}
	logger.Info("loaded %d combinations, %d postings", loaded.Combinations, loaded.Postings)

	return &run, nil
}

// index assigns surrogate indices in result order and computes scores.
func (s *EnumerationService) index(combinations []domain.Combination) []domain.IndexedCombination {
	aggregator := s.engine.Aggregator()
	indexed := make([]domain.IndexedCombination, len(combinations))
	for i, c := range combinations {
		indexed[i] = domain.IndexedCombination{
			Index:      int64(i),
			Members:    c,
			Size:       c.Len(),
			TotalScore: aggregator.Score(c),
		}
	}
	return indexed
}

// LastRun returns the run currently in the store.
func (s *EnumerationService) LastRun(ctx context.Context) (*domain.EnumerationRun, error) {
	return s.store.LastRun(ctx)
}
