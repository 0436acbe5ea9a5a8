// Package sqlite stores layout documents on disk. document.jsonl in the data
// directory is the source of truth; an SQLite database next to it holds the
// same records for querying and is rebuilt from the file on every Attach.
package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/layoutcore/internal/document"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// databaseFile is the SQLite file inside the data directory.
const databaseFile = "layout.db"

// Backend persists one document per data directory.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   zerolog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the backend logger.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Backend) { b.logger = l.With().Str("component", "sqlite").Logger() }
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach opens the store described by config. It creates DataDir and an
// empty document file if needed, migrates the database schema and loads the
// document file into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return eris.Wrapf(err, "creating %s", dataDir)
	}
	config.DataDir = dataDir

	db, err := sql.Open("sqlite", filepath.Join(dataDir, databaseFile))
	if err != nil {
		return eris.Wrap(err, "opening database")
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return err
	}
	if err := initJSONL(dataDir); err != nil {
		db.Close()
		return err
	}
	n, err := loadJSONL(db, dataDir, b.logger)
	if err != nil {
		db.Close()
		return eris.Wrap(err, "load JSONL")
	}

	b.db = db
	b.config = config
	b.attached = true
	b.logger.Debug().Str("data_dir", dataDir).Int("records", n).Msg("attached")
	return nil
}

// Detach releases all resources held by the backend.
// After Detach, operations return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return eris.Wrap(err, "closing database")
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// LoadDocument builds a document from the stored records. opts are passed
// to document.New; a stored block replaces any block given there.
func (b *Backend) LoadDocument(opts ...document.Option) (*document.Document, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	doc := document.New(opts...)
	rows, err := b.db.Query("SELECT kind, id, data FROM entities ORDER BY rowid")
	if err != nil {
		return nil, eris.Wrap(err, "querying entities")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec  record
			data string
		)
		if err := rows.Scan(&rec.Kind, &rec.ID, &data); err != nil {
			return nil, eris.Wrap(err, "scanning entity")
		}
		rec.Data = []byte(data)
		obj, err := decodeRecord(rec)
		if err != nil {
			b.logger.Warn().Err(err).Str("kind", rec.Kind).Str("id", rec.ID).Msg("skipping entity")
			continue
		}
		if _, err := doc.Add(obj); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "iterating entities")
	}

	var data string
	err = b.db.QueryRow("SELECT data FROM block LIMIT 1").Scan(&data)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, eris.Wrap(err, "querying block")
	default:
		block, err := decodeBlock([]byte(data))
		if err != nil {
			return nil, err
		}
		doc.Block = block
	}

	doc.MarkSaved()
	return doc, nil
}

// SaveDocument replaces the stored records with doc. The database is
// updated in one transaction and document.jsonl is rewritten atomically.
func (b *Backend) SaveDocument(doc *document.Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	records, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return eris.Wrap(err, "beginning save transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entities"); err != nil {
		return eris.Wrap(err, "clearing entities")
	}
	if _, err := tx.Exec("DELETE FROM block"); err != nil {
		return eris.Wrap(err, "clearing block")
	}
	lines := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		if err := insertRecord(tx, rec); err != nil {
			return err
		}
		line, err := json.Marshal(rec)
		if err != nil {
			return eris.Wrapf(err, "encoding %s record", rec.Kind)
		}
		lines = append(lines, line)
	}
	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "committing save transaction")
	}

	if err := writeJSONL(filepath.Join(b.config.DataDir, documentJSONL), lines); err != nil {
		return err
	}
	doc.MarkSaved()
	b.logger.Debug().Int("records", len(records)).Msg("document saved")
	return nil
}

// IDs lists the stored ids of kind in storage order.
func (b *Backend) IDs(kind types.ObjectKind) ([]uuid.UUID, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	rows, err := b.db.Query("SELECT id FROM entities WHERE kind = ? ORDER BY rowid", kind.String())
	if err != nil {
		return nil, eris.Wrap(err, "querying ids")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, eris.Wrap(err, "scanning id")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, eris.Wrap(rows.Err(), "iterating ids")
}

// Counts returns the number of stored objects per kind.
func (b *Backend) Counts() (map[types.ObjectKind]int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	rows, err := b.db.Query("SELECT kind, COUNT(*) FROM entities GROUP BY kind")
	if err != nil {
		return nil, eris.Wrap(err, "counting entities")
	}
	defer rows.Close()

	counts := make(map[types.ObjectKind]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, eris.Wrap(err, "scanning count")
		}
		kind, err := types.ParseObjectKind(name)
		if err != nil {
			continue
		}
		counts[kind] = n
	}
	return counts, eris.Wrap(rows.Err(), "iterating counts")
}
