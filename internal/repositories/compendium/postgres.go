package compendium

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
)

// PostgresConfig holds the configuration for the PostgreSQL store
type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Logger          *zap.Logger
}

// Validate ensures all required settings are provided
func (c *PostgresConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("dsn", c.DSN, vb)
	if c.MaxOpenConns < 0 {
		vb.Field("max_open_conns", "must not be negative")
	}
	return vb.Build()
}

// NewPostgres opens a PostgreSQL store. The database needs the pg_trgm
// extension; EnsureSchema creates it when the role is allowed to.
func NewPostgres(cfg *PostgresConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres")
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 10
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 2
	}
	lifetime := cfg.ConnMaxLifetime
	if lifetime == 0 {
		lifetime = 5 * time.Minute
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &sqlStore{
		db:      db,
		dialect: postgresDialect{},
		logger:  logger.Named("compendium.postgres"),
	}, nil
}

type postgresDialect struct{}

func (postgresDialect) name() string { return "postgres" }

func (postgresDialect) schema(t entities.EntityType) []string {
	table := t.Table()
	cols := "name TEXT PRIMARY KEY,\n\tdescription TEXT NOT NULL"
	if t.HasTypeColumn() {
		cols += ",\n\ttype TEXT"
	}
	if t.HasExtra() {
		cols += ",\n\textra JSONB"
	}
	return []string{
		"CREATE EXTENSION IF NOT EXISTS pg_trgm",
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", table, cols),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_name_trgm_idx ON %s USING GIN (name gin_trgm_ops)", table, table),
		fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s_name_lower_idx ON %s (LOWER(name))", table, table),
	}
}

func (postgresDialect) exactQuery(t entities.EntityType, columns string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(name) = $1", columns, t.Table())
}

func (postgresDialect) fuzzyQuery(t entities.EntityType, columns string) string {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE name %% $1 ORDER BY similarity(name, $1) DESC, name ASC LIMIT $2",
		columns, t.Table())
}

func (postgresDialect) fuzzyArgs(query string, limit int) []any {
	return []any{query, limit}
}

func (postgresDialect) upsertQuery(t entities.EntityType) string {
	switch {
	case t.HasTypeColumn() && t.HasExtra():
		return fmt.Sprintf(`INSERT INTO %s (name, description, type, extra) VALUES ($1, $2, $3, $4::jsonb)
ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, type = EXCLUDED.type, extra = EXCLUDED.extra`, t.Table())
	case t.HasTypeColumn():
		return fmt.Sprintf(`INSERT INTO %s (name, description, type) VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, type = EXCLUDED.type`, t.Table())
	case t.HasExtra():
		return fmt.Sprintf(`INSERT INTO %s (name, description, extra) VALUES ($1, $2, $3::jsonb)
ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, extra = EXCLUDED.extra`, t.Table())
	default:
		return fmt.Sprintf(`INSERT INTO %s (name, description) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description`, t.Table())
	}
}

// Server-side error classes that mean the database cannot serve queries
var unavailableClasses = map[pq.ErrorClass]bool{
	"08": true, // connection exception
	"53": true, // insufficient resources
	"57": true, // operator intervention
	"58": true, // system error
}

func (postgresDialect) classify(err error, message string) error {
	if classified := classifyCommon(err, message); classified != nil {
		return classified
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch {
		case unavailableClasses[pqErr.Code.Class()]:
			return errors.WrapWithCode(err, errors.CodeUnavailable, message)
		case pqErr.Code == "23505":
			return errors.WrapWithCode(err, errors.CodeAlreadyExists, message).
				WithMeta("constraint", pqErr.Constraint)
		case pqErr.Code == "22P02":
			return errors.WrapWithCode(err, errors.CodeInvalidArgument, message)
		default:
			return errors.WrapWithCode(err, errors.CodeInternal, message).
				WithMeta("pg_code", string(pqErr.Code))
		}
	}

	// Anything not reported by the server is a transport failure
	return errors.WrapWithCode(err, errors.CodeUnavailable, message).
		WithMeta("driver", "postgres")
}
