package sqlite

import (
	"database/sql"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// loadJSONL reads document.jsonl from dataDir and replaces the contents of
// the entities and block tables with it. Loading is transactional: either
// every valid record lands or the tables are left as they were. Malformed
// lines and records of unknown kinds are skipped. It returns the number of
// records loaded.
func loadJSONL(db *sql.DB, dataDir string, logger zerolog.Logger) (int, error) {
	raw, err := readJSONL(filepath.Join(dataDir, documentJSONL))
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, eris.Wrap(err, "beginning load transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entities"); err != nil {
		return 0, eris.Wrap(err, "clearing entities")
	}
	if _, err := tx.Exec("DELETE FROM block"); err != nil {
		return 0, eris.Wrap(err, "clearing block")
	}

	n := 0
	for i, line := range raw {
		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			logger.Warn().Int("line", i+1).Err(err).Msg("skipping malformed record")
			continue
		}
		if rec.Kind != blockKind {
			if _, err := types.ParseObjectKind(rec.Kind); err != nil {
				logger.Warn().Int("line", i+1).Err(err).Msg("skipping record")
				continue
			}
		}
		if err := insertRecord(tx, rec); err != nil {
			return 0, eris.Wrapf(err, "loading line %d", i+1)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "committing load transaction")
	}
	return n, nil
}

// insertRecord upserts one record. Later lines for the same id replace
// earlier ones.
func insertRecord(tx *sql.Tx, rec record) error {
	if rec.Kind == blockKind {
		if _, err := tx.Exec("DELETE FROM block"); err != nil {
			return eris.Wrap(err, "replacing block")
		}
		_, err := tx.Exec("INSERT INTO block (block_id, data) VALUES (?, ?)", rec.ID, string(rec.Data))
		return eris.Wrap(err, "inserting block")
	}
	_, err := tx.Exec(
		`INSERT INTO entities (kind, id, data) VALUES (?, ?, ?)
		 ON CONFLICT(kind, id) DO UPDATE SET data = excluded.data`,
		rec.Kind, rec.ID, string(rec.Data),
	)
	return eris.Wrapf(err, "inserting %s %s", rec.Kind, rec.ID)
}
