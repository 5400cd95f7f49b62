package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/synergy-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "combinations.db"

// loadCheckEvery is how many rows a load writes between context checks.
const loadCheckEvery = 4096

// Store is a SQLite-backed combination index store.
type Store struct {
	db   *sql.DB
	path string

	// mu makes Load exclusive and lets queries share the store.
	mu sync.RWMutex
}

var _ driven.CombinationStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.synergy/data/combinations.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".synergy", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %w", domain.ErrStoreIO, err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// Open database with WAL mode so readers do not block each other
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrStoreIO, err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %w", domain.ErrStoreIO, err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Load ====================

// Load replaces the store contents with batch in a single transaction.
// A failed load rolls back and leaves the previous run in place.
func (s *Store) Load(ctx context.Context, batch domain.CombinationBatch) (*domain.LoadResult, error) {
	start := time.Now()

	var known domain.Combination
	for _, item := range batch.Items {
		known = known.With(item.ID)
	}
	postingCounts := make(map[int]int, len(batch.Items))
	seen := make(map[int64]struct{}, len(batch.Combinations))
	for _, c := range batch.Combinations {
		if err := c.Validate(known); err != nil {
			return nil, err
		}
		if _, dup := seen[c.Index]; dup {
			return nil, fmt.Errorf("%w: duplicate combination index %d", domain.ErrInvalidInput, c.Index)
		}
		seen[c.Index] = struct{}{}
		for _, id := range c.Members.IDs() {
			postingCounts[id]++
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: beginning transaction: %w", domain.ErrStoreIO, err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"postings", "combinations", "items", "enumeration_runs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return nil, fmt.Errorf("%w: clearing %s: %w", domain.ErrStoreIO, table, err)
		}
	}

	if err := insertItems(ctx, tx, batch.Items, postingCounts); err != nil {
		return nil, err
	}
	postings, err := insertCombinations(ctx, tx, batch.Combinations)
	if err != nil {
		return nil, err
	}

	run := batch.Run
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO enumeration_runs (id, max_size, catalog_items, combinations, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.MaxSize, run.CatalogItems, run.Combinations, run.StartedAt.UTC(), run.CompletedAt.UTC()); err != nil {
		return nil, fmt.Errorf("%w: saving run: %w", domain.ErrStoreIO, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: committing transaction: %w", domain.ErrStoreIO, err)
	}

	return &domain.LoadResult{
		RunID:        run.ID,
		Combinations: len(batch.Combinations),
		Postings:     postings,
		Duration:     time.Since(start),
	}, nil
}

func insertItems(ctx context.Context, tx *sql.Tx, items []domain.Item, postingCounts map[int]int) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (item_id, name, cost, posting_count) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing statement: %w", domain.ErrStoreIO, err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, item.ID, item.Name, item.Cost, postingCounts[item.ID]); err != nil {
			return fmt.Errorf("%w: saving item %s: %w", domain.ErrStoreIO, item.Name, err)
		}
	}
	return nil
}

// insertCombinations writes combination rows and their postings and returns
// the number of postings written.
func insertCombinations(ctx context.Context, tx *sql.Tx, combinations []domain.IndexedCombination) (int, error) {
	comboStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO combinations (combination_index, members, size, total_score) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("%w: preparing statement: %w", domain.ErrStoreIO, err)
	}
	defer comboStmt.Close()

	postingStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO postings (item_id, combination_index) VALUES (?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("%w: preparing statement: %w", domain.ErrStoreIO, err)
	}
	defer postingStmt.Close()

	postings := 0
	for i, c := range combinations {
		if i%loadCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if _, err := comboStmt.ExecContext(ctx, c.Index, encodeMembers(c.Members), c.Size, c.TotalScore); err != nil {
			return 0, fmt.Errorf("%w: saving combination %d: %w", domain.ErrStoreIO, c.Index, err)
		}
		for _, id := range c.Members.IDs() {
			if _, err := postingStmt.ExecContext(ctx, id, c.Index); err != nil {
				return 0, fmt.Errorf("%w: saving posting %d/%d: %w", domain.ErrStoreIO, id, c.Index, err)
			}
			postings++
		}
	}
	return postings, nil
}

// ==================== Query ====================

// postingList identifies one item's posting list and its length.
type postingList struct {
	itemID int
	count  int
}

// Query answers a membership and range query. Include lists are intersected
// smallest first and exclude lists subtracted, all inside SQLite.
func (s *Store) Query(ctx context.Context, q domain.CombinationQuery) ([]domain.IndexedCombination, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ensureBuilt(ctx); err != nil {
		return nil, err
	}
	if len(q.MustInclude) == 0 {
		return []domain.IndexedCombination{}, nil
	}

	include, err := s.postingLists(ctx, q.MustInclude)
	if err != nil {
		return nil, err
	}
	if len(include) < len(uniqueNames(q.MustInclude)) {
		return []domain.IndexedCombination{}, nil
	}
	exclude, err := s.postingLists(ctx, q.MustExclude)
	if err != nil {
		return nil, err
	}
	sort.Slice(include, func(i, j int) bool {
		if include[i].count != include[j].count {
			return include[i].count < include[j].count
		}
		return include[i].itemID < include[j].itemID
	})

	query, args := buildQuery(include, exclude, q)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying combinations: %w", domain.ErrStoreIO, err)
	}
	defer rows.Close()

	result := make([]domain.IndexedCombination, 0)
	for rows.Next() {
		var c domain.IndexedCombination
		var members []byte
		if err := rows.Scan(&c.Index, &members, &c.Size, &c.TotalScore); err != nil {
			return nil, fmt.Errorf("%w: scanning combination: %w", domain.ErrStoreIO, err)
		}
		if c.Members, err = decodeMembers(members); err != nil {
			return nil, fmt.Errorf("combination %d: %w", c.Index, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating combinations: %w", domain.ErrStoreIO, err)
	}
	return result, nil
}

// buildQuery assembles the compound INTERSECT/EXCEPT select. Posting lists
// are referenced by item id only, so no user text reaches the SQL.
func buildQuery(include, exclude []postingList, q domain.CombinationQuery) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(include)+len(exclude)+4)

	b.WriteString("WITH matched(combination_index) AS (\n")
	for i, list := range include {
		if i > 0 {
			b.WriteString("\tINTERSECT\n")
		}
		b.WriteString("\tSELECT combination_index FROM postings WHERE item_id = ?\n")
		args = append(args, list.itemID)
	}
	for _, list := range exclude {
		b.WriteString("\tEXCEPT\n\tSELECT combination_index FROM postings WHERE item_id = ?\n")
		args = append(args, list.itemID)
	}
	b.WriteString(`)
SELECT c.combination_index, c.members, c.size, c.total_score
FROM combinations c
JOIN matched m ON m.combination_index = c.combination_index
WHERE c.size BETWEEN ? AND ? AND c.total_score BETWEEN ? AND ?
ORDER BY c.combination_index`)
	args = append(args, q.SizeMin, q.SizeMax, q.ScoreMin, q.ScoreMax)

	return b.String(), args
}

// postingLists resolves item names to posting lists. Unknown names are skipped.
func (s *Store) postingLists(ctx context.Context, names []string) ([]postingList, error) {
	names = uniqueNames(names)
	if len(names) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	args := make([]any, len(names))
	for i, name := range names {
		args[i] = name
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT item_id, posting_count FROM items WHERE name IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving items: %w", domain.ErrStoreIO, err)
	}
	defer rows.Close()

	var lists []postingList //nolint:prealloc // unknown names are skipped
	for rows.Next() {
		var list postingList
		if err := rows.Scan(&list.itemID, &list.count); err != nil {
			return nil, fmt.Errorf("%w: scanning item: %w", domain.ErrStoreIO, err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating items: %w", domain.ErrStoreIO, err)
	}
	return lists, nil
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// ==================== Runs ====================

// ensureBuilt returns domain.ErrStoreNotBuilt until a load has committed.
func (s *Store) ensureBuilt(ctx context.Context) error {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM enumeration_runs LIMIT 1").Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrStoreNotBuilt
	}
	if err != nil {
		return fmt.Errorf("%w: reading runs: %w", domain.ErrStoreIO, err)
	}
	return nil
}

// LastRun returns the run currently loaded.
func (s *Store) LastRun(ctx context.Context) (*domain.EnumerationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, max_size, catalog_items, combinations, started_at, completed_at
		FROM enumeration_runs LIMIT 1
	`)

	var run domain.EnumerationRun
	if err := row.Scan(&run.ID, &run.MaxSize, &run.CatalogItems, &run.Combinations,
		&run.StartedAt, &run.CompletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStoreNotBuilt
		}
		return nil, fmt.Errorf("%w: scanning run: %w", domain.ErrStoreIO, err)
	}
	return &run, nil
}
