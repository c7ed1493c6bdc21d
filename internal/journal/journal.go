package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	mdwerrors "github.com/msto63/throwables/pkg/core/errors"
	"github.com/msto63/throwables/pkg/core/logging"
	"github.com/msto63/throwables/pkg/taxonomy"
)

// Entry is one journaled declaration
type Entry struct {
	Seq        int64     `json:"seq"`
	ID         string    `json:"id"`
	Parent     string    `json:"parent"`
	Source     string    `json:"source"`
	DeclaredAt time.Time `json:"declared_at"`
}

// Journal persists runtime declarations so they survive a restart
type Journal interface {
	Append(ctx context.Context, id, parent, source string) (*Entry, error)
	List(ctx context.Context) ([]*Entry, error)
	Replay(ctx context.Context, reg *taxonomy.Registry) (int, error)
	Close() error
}

// SQLiteJournal implements Journal using SQLite
type SQLiteJournal struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *logging.Logger
}

// Config holds configuration for the SQLite journal
type Config struct {
	Path   string
	Logger *logging.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/throwables.db",
	}
}

// Open opens, or creates, the journal database
func Open(cfg Config) (*SQLiteJournal, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.New("journal")
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storeError(err, "failed to create directory")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, storeError(err, "failed to open database")
	}

	j := &SQLiteJournal{db: db, logger: cfg.Logger}

	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, storeError(err, "failed to initialize schema")
	}

	return j, nil
}

// initSchema creates the necessary tables
func (j *SQLiteJournal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS declarations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		parent TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		declared_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_declarations_parent ON declarations(parent);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Append journals a declaration. Each id can be journaled once.
func (j *SQLiteJournal) Append(ctx context.Context, id, parent, source string) (*Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if strings.TrimSpace(id) == "" {
		return nil, mdwerrors.New("declaration id is required").WithCode(mdwerrors.CodeStoreError)
	}

	entry := &Entry{
		ID:         id,
		Parent:     parent,
		Source:     source,
		DeclaredAt: time.Now().UTC(),
	}

	result, err := j.db.ExecContext(ctx, `
		INSERT INTO declarations (id, parent, source, declared_at)
		VALUES (?, ?, ?, ?)
	`, entry.ID, entry.Parent, entry.Source, entry.DeclaredAt)
	if err != nil {
		return nil, storeError(err, "failed to append declaration").WithDetail("id", id)
	}

	entry.Seq, _ = result.LastInsertId()
	return entry, nil
}

// List returns every entry in declaration order
func (j *SQLiteJournal) List(ctx context.Context) ([]*Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, id, parent, source, declared_at
		FROM declarations ORDER BY seq
	`)
	if err != nil {
		return nil, storeError(err, "failed to list declarations")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.ID, &e.Parent, &e.Source, &e.DeclaredAt); err != nil {
			return nil, storeError(err, "failed to scan declaration")
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "failed to list declarations")
	}

	return entries, nil
}

// Replay registers the journaled declarations into reg in declaration
// order and returns how many were new. Entries already registered under
// the same parent are skipped.
func (j *SQLiteJournal) Replay(ctx context.Context, reg *taxonomy.Registry) (int, error) {
	entries, err := j.List(ctx)
	if err != nil {
		return 0, err
	}

	replayed := 0
	for _, e := range entries {
		if et, err := reg.Lookup(e.ID); err == nil && et.ParentID() == e.Parent {
			continue
		}
		if _, err := reg.Register(e.ID, e.Parent); err != nil {
			return replayed, mdwerrors.Wrap(err, "journal replay").
				WithDetail("seq", e.Seq)
		}
		replayed++
	}

	j.logger.Info("Journal replayed", "entries", len(entries), "registered", replayed)
	return replayed, nil
}

// Record registers id below parent and journals it. Nothing is journaled
// when registration fails.
func (j *SQLiteJournal) Record(ctx context.Context, reg *taxonomy.Registry, id, parent, source string) (*taxonomy.ExceptionType, error) {
	et, err := reg.Register(id, parent)
	if err != nil {
		return nil, err
	}
	if _, err := j.Append(ctx, id, parent, source); err != nil {
		return et, err
	}
	j.logger.Debug("Declaration journaled", "id", id, "parent", parent, "source", source)
	return et, nil
}

// Close closes the database
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

func storeError(err error, message string) *mdwerrors.Error {
	return mdwerrors.Wrap(err, message).WithCode(mdwerrors.CodeStoreError)
}
