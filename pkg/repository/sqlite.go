package repository

import (
	"context"
	"database/sql"
	"embed"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	"github.com/kisanmitra/kisanmitra/pkg/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// sqliteRepo implements Repository over a local SQLite database
type sqliteRepo struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a SQLite database in dataDir and runs
// pending migrations. Pass ":memory:" as dataDir for an in-memory
// database.
func NewSQLite(dataDir string) (Repository, error) {
	dsn := ":memory:"
	if dataDir != ":memory:" {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, goerr.Wrap(err, "failed to create data directory", goerr.V("dir", dataDir))
		}
		dsn = filepath.Join(dataDir, "kisanmitra.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("dsn", dsn))
	}

	// Single connection avoids "database is locked" under concurrent appends
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to set busy timeout")
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to set journal mode")
	}

	r := &sqliteRepo{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return r, nil
}

func (r *sqliteRepo) migrate() error {
	if _, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version TEXT PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return goerr.Wrap(err, "failed to create schema_version table")
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return goerr.Wrap(err, "failed to read migrations directory")
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		var applied int
		if err := r.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", name).Scan(&applied); err != nil {
			return goerr.Wrap(err, "failed to check migration state", goerr.V("migration", name))
		}
		if applied > 0 {
			continue
		}

		stmt, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return goerr.Wrap(err, "failed to read migration", goerr.V("migration", name))
		}
		if _, err := r.db.Exec(string(stmt)); err != nil {
			return goerr.Wrap(err, "failed to apply migration", goerr.V("migration", name))
		}
		if _, err := r.db.Exec("INSERT INTO schema_version (version) VALUES (?)", name); err != nil {
			return goerr.Wrap(err, "failed to record migration", goerr.V("migration", name))
		}
	}

	return nil
}

func (r *sqliteRepo) Append(ctx context.Context, record *model.Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO records (id, kind, actor_id, created_at, data) VALUES (?, ?, ?, ?, ?)`,
		string(record.ID), string(record.Kind), record.ActorID,
		record.CreatedAt.UTC().Format(time.RFC3339Nano), string(record.Data))
	if err != nil {
		return goerr.Wrap(err, "failed to append record",
			goerr.V("id", record.ID), goerr.V("kind", record.Kind))
	}
	return nil
}

func (r *sqliteRepo) List(ctx context.Context, kind model.RecordKind) ([]*model.Record, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, actor_id, created_at, data FROM records WHERE kind = ? ORDER BY created_at, id`,
		string(kind))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list records", goerr.V("kind", kind))
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *sqliteRepo) ListByActor(ctx context.Context, kind model.RecordKind, actorID string) ([]*model.Record, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, actor_id, created_at, data FROM records WHERE kind = ? AND actor_id = ? ORDER BY created_at, id`,
		string(kind), actorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list records by actor",
			goerr.V("kind", kind), goerr.V("actor_id", actorID))
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *sqliteRepo) Close() error {
	return r.db.Close()
}

func scanRecords(rows *sql.Rows) ([]*model.Record, error) {
	var out []*model.Record
	for rows.Next() {
		var (
			id, kind, actorID, createdAt, data string
		)
		if err := rows.Scan(&id, &kind, &actorID, &createdAt, &data); err != nil {
			return nil, goerr.Wrap(err, "failed to scan record")
		}

		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse record timestamp", goerr.V("id", id))
		}

		out = append(out, &model.Record{
			ID:        model.RecordID(id),
			Kind:      model.RecordKind(kind),
			ActorID:   actorID,
			CreatedAt: ts,
			Data:      []byte(data),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate records")
	}
	return out, nil
}
