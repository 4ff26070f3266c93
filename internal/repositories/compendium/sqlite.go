package compendium

import (
	"database/sql"
	"database/sql/driver"
	stderrors "errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/trigram"
)

// SQLiteConfig holds the configuration for the embedded SQLite store
type SQLiteConfig struct {
	// Path is a file path or ":memory:"
	Path string
	// Threshold is the minimum similarity for fuzzy matches. Zero means
	// trigram.DefaultThreshold.
	Threshold float64
	Logger    *zap.Logger
}

// Validate ensures all required settings are provided
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", c.Path, vb)
	if c.Threshold < 0 || c.Threshold > 1 {
		vb.Field("threshold", "must be between 0 and 1")
	}
	return vb.Build()
}

var registerFunctions sync.Once

// NewSQLite opens an embedded store. Trigram similarity and Unicode case
// folding are provided by Go functions registered as similarity(a, b) and
// fold_name(s); the built-in LOWER only folds ASCII.
func NewSQLite(cfg *SQLiteConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	registerFunctions.Do(func() {
		sqlite.MustRegisterDeterministicScalarFunction("similarity", 2,
			func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
				a, _ := args[0].(string)
				b, _ := args[1].(string)
				return trigram.Similarity(a, b), nil
			})
		sqlite.MustRegisterDeterministicScalarFunction("fold_name", 1,
			func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
				name, _ := args[0].(string)
				return entities.NormalizeQuery(name), nil
			})
	})

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite")
	}

	// A single connection keeps ":memory:" databases shared and the
	// pragmas below in effect.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to apply %q", pragma)
		}
	}

	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = trigram.DefaultThreshold
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &sqlStore{
		db:      db,
		dialect: sqliteDialect{threshold: threshold},
		logger:  logger.Named("compendium.sqlite"),
	}, nil
}

type sqliteDialect struct {
	threshold float64
}

func (sqliteDialect) name() string { return "sqlite" }

func (sqliteDialect) schema(t entities.EntityType) []string {
	table := t.Table()
	cols := "name TEXT PRIMARY KEY,\n\tdescription TEXT NOT NULL"
	if t.HasTypeColumn() {
		cols += ",\n\ttype TEXT"
	}
	if t.HasExtra() {
		cols += ",\n\textra TEXT"
	}
	return []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", table, cols),
		fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s_name_fold_idx ON %s (fold_name(name))", table, table),
	}
}

func (sqliteDialect) exactQuery(t entities.EntityType, columns string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE fold_name(name) = ?", columns, t.Table())
}

func (sqliteDialect) fuzzyQuery(t entities.EntityType, columns string) string {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE similarity(name, ?1) >= ?2 ORDER BY similarity(name, ?1) DESC, name ASC LIMIT ?3",
		columns, t.Table())
}

func (d sqliteDialect) fuzzyArgs(query string, limit int) []any {
	return []any{query, d.threshold, limit}
}

func (sqliteDialect) upsertQuery(t entities.EntityType) string {
	switch {
	case t.HasTypeColumn() && t.HasExtra():
		return fmt.Sprintf(`INSERT INTO %s (name, description, type, extra) VALUES (?, ?, ?, ?)
ON CONFLICT (name) DO UPDATE SET description = excluded.description, type = excluded.type, extra = excluded.extra`, t.Table())
	case t.HasTypeColumn():
		return fmt.Sprintf(`INSERT INTO %s (name, description, type) VALUES (?, ?, ?)
ON CONFLICT (name) DO UPDATE SET description = excluded.description, type = excluded.type`, t.Table())
	case t.HasExtra():
		return fmt.Sprintf(`INSERT INTO %s (name, description, extra) VALUES (?, ?, ?)
ON CONFLICT (name) DO UPDATE SET description = excluded.description, extra = excluded.extra`, t.Table())
	default:
		return fmt.Sprintf(`INSERT INTO %s (name, description) VALUES (?, ?)
ON CONFLICT (name) DO UPDATE SET description = excluded.description`, t.Table())
	}
}

func (sqliteDialect) classify(err error, message string) error {
	if classified := classifyCommon(err, message); classified != nil {
		return classified
	}

	var sqErr *sqlite.Error
	if stderrors.As(err, &sqErr) {
		switch sqErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN,
			sqlite3.SQLITE_IOERR, sqlite3.SQLITE_FULL, sqlite3.SQLITE_NOTADB:
			return errors.WrapWithCode(err, errors.CodeUnavailable, message)
		case sqlite3.SQLITE_CONSTRAINT:
			return errors.WrapWithCode(err, errors.CodeAlreadyExists, message)
		}
	}
	return errors.WrapWithCode(err, errors.CodeInternal, message).
		WithMeta("driver", "sqlite")
}
