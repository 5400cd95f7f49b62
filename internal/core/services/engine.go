package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/logger"
)

// defaultProgressInterval spaces progress lines during long searches.
const defaultProgressInterval = 10 * time.Second

// SearchEngine enumerates synergy-growing combinations by depth-first search.
//
// A node extends the current path by one candidate. The candidate is
// discarded when the path would exceed the size bound, when the required
// names can no longer be satisfied, when the resulting set was already
// visited, or when adding the item did not raise any trait level. Sets that
// survive are expanded further; a set is recorded when it satisfies the
// required names and every optional member contributes to its score.
type SearchEngine struct {
	catalog    *domain.Catalog
	aggregator *SynergyAggregator

	// ProgressInterval throttles progress logging (0 disables it).
	ProgressInterval time.Duration
}

// NewSearchEngine creates a search engine over catalog.
func NewSearchEngine(catalog *domain.Catalog, aggregator *SynergyAggregator) *SearchEngine {
	if aggregator == nil {
		aggregator = NewSynergyAggregator(catalog)
	}
	return &SearchEngine{
		catalog:          catalog,
		aggregator:       aggregator,
		ProgressInterval: defaultProgressInterval,
	}
}

// Catalog returns the catalog the engine searches.
func (e *SearchEngine) Catalog() *domain.Catalog {
	return e.catalog
}

// Aggregator returns the aggregator the engine scores with.
func (e *SearchEngine) Aggregator() *SynergyAggregator {
	return e.aggregator
}

// searchPlan is the immutable input shared by every walker of one search.
type searchPlan struct {
	maxSize    int
	required   domain.Combination
	mode       domain.RequiredMode
	candidates []int
	maxResults int64
}

// selectable applies the required-name rule to a candidate set.
func (p *searchPlan) selectable(next domain.Combination) bool {
	if p.required.IsEmpty() {
		return true
	}
	if p.mode == domain.RequiredAny {
		return !next.Intersect(p.required).IsEmpty()
	}
	missing := p.required.Minus(next).Len()
	return missing <= p.maxSize-next.Len()
}

// complete reports whether a set satisfies the required names for recording.
func (p *searchPlan) complete(next domain.Combination) bool {
	if p.required.IsEmpty() || p.mode == domain.RequiredAny {
		return true
	}
	return next.ContainsAll(p.required)
}

// searchRun carries the shared counters of one search.
type searchRun struct {
	plan     *searchPlan
	started  time.Time
	nodes    atomic.Int64
	found    atomic.Int64
	roots    atomic.Int64
	progress *rate.Sometimes

	// recorded holds every set found by any branch of a parallel search,
	// so that found counts distinct sets. Nil for sequential searches.
	recorded *sync.Map
}

func (r *searchRun) logProgress() {
	if r.progress == nil {
		return
	}
	r.progress.Do(func() {
		logger.Progress("search: %d nodes, %d found, %d/%d roots, %s elapsed",
			r.nodes.Load(), r.found.Load(), r.roots.Load(), len(r.plan.candidates),
			time.Since(r.started).Round(time.Second))
	})
}

// Search runs the combination search. The result is duplicate-free and
// ordered by size, then member bits. The same catalog and options always
// produce the same result, whatever the worker count; MaxResults counts
// distinct sets, so it trips at the same point in parallel and sequential
// runs.
//
// MaxSize 0 yields an empty result: the empty combination is never
// recorded, so callers get no rows rather than a single empty set.
func (e *SearchEngine) Search(ctx context.Context, opts domain.SearchOptions) (*domain.SearchResult, error) {
	logger.Section("Combination Search")

	plan, err := e.plan(opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("max size %d, %d candidates, required %s (%s)",
		plan.maxSize, len(plan.candidates), plan.required, plan.mode)

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	run := &searchRun{plan: plan, started: time.Now()}
	if e.ProgressInterval > 0 {
		run.progress = &rate.Sometimes{Interval: e.ProgressInterval}
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		found   map[domain.Combination]struct{}
		stats   domain.SearchStats
		walkErr error
	)
	if workers == 1 || len(plan.candidates) < 2 {
		found, stats, walkErr = e.searchSequential(ctx, run)
		workers = 1
	} else {
		found, stats, walkErr = e.searchParallel(ctx, run, workers)
	}

	elapsed := time.Since(run.started)
	if walkErr != nil {
		return nil, e.exhausted(run, walkErr, elapsed)
	}

	result := &domain.SearchResult{
		Combinations: sortCombinations(found),
		Stats:        stats,
	}
	result.Stats.Found = len(result.Combinations)
	result.Stats.Workers = workers
	result.Stats.Elapsed = elapsed

	logger.Debug("search done: %d found, %d nodes, %d visited in %s",
		result.Stats.Found, result.Stats.Nodes, result.Stats.Visited, elapsed)
	return result, nil
}

// plan validates options and resolves names against the catalog.
func (e *SearchEngine) plan(opts domain.SearchOptions) (*searchPlan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	required, err := e.catalog.Resolve(opts.Required)
	if err != nil {
		return nil, fmt.Errorf("required: %w", err)
	}
	excluded, err := e.catalog.Resolve(opts.Excluded)
	if err != nil {
		return nil, fmt.Errorf("excluded: %w", err)
	}
	if both := required.Intersect(excluded); !both.IsEmpty() {
		return nil, fmt.Errorf("%w: %v both required and excluded", domain.ErrInvalidInput, e.catalog.Names(both))
	}

	plan := &searchPlan{
		maxSize:    opts.MaxSize,
		required:   required,
		mode:       opts.EffectiveMode(),
		maxResults: int64(opts.MaxResults),
	}
	for _, item := range e.catalog.Items() {
		if !excluded.Has(item.ID) {
			plan.candidates = append(plan.candidates, item.ID)
		}
	}
	return plan, nil
}

func (e *SearchEngine) searchSequential(
	ctx context.Context, run *searchRun,
) (map[domain.Combination]struct{}, domain.SearchStats, error) {
	w := e.newWalker(ctx, run)
	for _, root := range run.plan.candidates {
		if err := w.visit(0, 0, 0, root); err != nil {
			return nil, w.stats(), err
		}
		run.roots.Add(1)
	}
	return w.found, w.stats(), nil
}

// searchParallel explores each first-level branch as its own task. Branches
// keep their own visited and found sets; the union equals the sequential
// result because membership depends only on reachability through the gate.
func (e *SearchEngine) searchParallel(
	ctx context.Context, run *searchRun, workers int,
) (map[domain.Combination]struct{}, domain.SearchStats, error) {
	var (
		mu    sync.Mutex
		found = make(map[domain.Combination]struct{})
		stats = domain.SearchStats{}
	)
	run.recorded = &sync.Map{}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, root := range run.plan.candidates {
		g.Go(func() error {
			w := e.newWalker(gCtx, run)
			err := w.visit(0, 0, 0, root)

			mu.Lock()
			defer mu.Unlock()
			branch := w.stats()
			stats.Nodes += branch.Nodes
			stats.Visited += branch.Visited
			stats.Pruned.Add(branch.Pruned)
			if err != nil {
				return err
			}
			for c := range w.found {
				found[c] = struct{}{}
			}
			run.roots.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	return found, stats, nil
}

// exhausted converts a walk error into the error Search returns.
func (e *SearchEngine) exhausted(run *searchRun, err error, elapsed time.Duration) error {
	var stop *domain.SearchExhaustedError
	if !errors.As(err, &stop) {
		reason := domain.ExhaustedCancelled
		if errors.Is(err, context.DeadlineExceeded) {
			reason = domain.ExhaustedTimeout
		}
		stop = &domain.SearchExhaustedError{Reason: reason, Cause: err}
	}
	stop.Found = int(run.found.Load())
	stop.Nodes = run.nodes.Load()
	stop.RootsDone = int(run.roots.Load())
	stop.RootsTotal = len(run.plan.candidates)
	stop.Elapsed = elapsed
	logger.Warn("%v", stop)
	return stop
}

// walker performs the depth-first search for one task. It is not safe for
// concurrent use; parallel searches give each branch its own walker.
type walker struct {
	ctx        context.Context
	run        *searchRun
	plan       *searchPlan
	aggregator *SynergyAggregator

	visited map[domain.Combination]struct{}
	found   map[domain.Combination]struct{}

	// counts[d] holds the trait counts of the path at depth d.
	counts [][]uint16

	nodes   int64
	flushed int64
	pruned  domain.PruneCounts
}

func (e *SearchEngine) newWalker(ctx context.Context, run *searchRun) *walker {
	w := &walker{
		ctx:        ctx,
		run:        run,
		plan:       run.plan,
		aggregator: e.aggregator,
		visited:    make(map[domain.Combination]struct{}),
		found:      make(map[domain.Combination]struct{}),
		counts:     make([][]uint16, run.plan.maxSize+2),
	}
	for d := range w.counts {
		w.counts[d] = e.aggregator.newCounts()
	}
	return w
}

func (w *walker) stats() domain.SearchStats {
	w.flush()
	return domain.SearchStats{
		Nodes:   w.nodes,
		Visited: len(w.visited),
		Pruned:  w.pruned,
	}
}

// flush publishes local node counts to the shared run counters.
func (w *walker) flush() {
	w.run.nodes.Add(w.nodes - w.flushed)
	w.flushed = w.nodes
}

// checkpoint reports cancellation and emits throttled progress.
func (w *walker) checkpoint() error {
	select {
	case <-w.ctx.Done():
		return context.Cause(w.ctx)
	default:
	}
	w.flush()
	w.run.logProgress()
	return nil
}

// expand tries every candidate not yet in path.
func (w *walker) expand(path domain.Combination, depth, score int) error {
	if err := w.checkpoint(); err != nil {
		return err
	}
	for _, id := range w.plan.candidates {
		if path.Has(id) {
			continue
		}
		if err := w.visit(path, depth, score, id); err != nil {
			return err
		}
	}
	return nil
}

// visit evaluates path plus id, records it when it qualifies and recurses.
func (w *walker) visit(path domain.Combination, depth, score, id int) error {
	w.nodes++
	next := path.With(id)
	size := depth + 1

	if size > w.plan.maxSize {
		w.pruned.Size++
		return nil
	}
	if !w.plan.selectable(next) {
		w.pruned.Selection++
		return nil
	}
	if _, seen := w.visited[next]; seen {
		w.pruned.Duplicate++
		return nil
	}

	parent, child := w.counts[depth], w.counts[size]
	nextScore := w.aggregator.extend(parent, child, id, score)
	if !w.grows(parent, child, score, nextScore, size) {
		w.pruned.Growth++
		return nil
	}
	w.visited[next] = struct{}{}

	if w.plan.complete(next) && w.aggregator.allContribute(child, next.Minus(w.plan.required)) {
		if err := w.record(next); err != nil {
			return err
		}
	}

	if size < w.plan.maxSize && size < len(w.plan.candidates) {
		return w.expand(next, size, nextScore)
	}
	return nil
}

// grows is the synergy-growth gate. The first counted item always passes.
// Otherwise some trait level must rise, and a set at the size bound must
// also raise the total score.
func (w *walker) grows(parent, child []uint16, score, nextScore, size int) bool {
	if !w.aggregator.counted(parent) {
		return true
	}
	raised := false
	for t, c := range child {
		if c != parent[t] && w.aggregator.levels[t][c] > w.aggregator.levels[t][parent[t]] {
			raised = true
			break
		}
	}
	if !raised {
		return false
	}
	return size < w.plan.maxSize || nextScore > score
}

func (w *walker) record(c domain.Combination) error {
	if _, ok := w.found[c]; ok {
		return nil
	}
	w.found[c] = struct{}{}
	if w.run.recorded != nil {
		if _, dup := w.run.recorded.LoadOrStore(c, struct{}{}); dup {
			return nil
		}
	}
	total := w.run.found.Add(1)
	if w.plan.maxResults > 0 && total > w.plan.maxResults {
		return &domain.SearchExhaustedError{Reason: domain.ExhaustedMaxResults}
	}
	return nil
}

// sortCombinations orders a set by size, then member bits.
func sortCombinations(set map[domain.Combination]struct{}) []domain.Combination {
	out := make([]domain.Combination, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if li, lj := out[i].Len(), out[j].Len(); li != lj {
			return li < lj
		}
		return out[i] < out[j]
	})
	return out
}
