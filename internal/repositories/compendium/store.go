package compendium

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/metrics"
)

// dialect captures what differs between SQL backends
type dialect interface {
	name() string
	schema(t entities.EntityType) []string
	exactQuery(t entities.EntityType, columns string) string
	fuzzyQuery(t entities.EntityType, columns string) string
	fuzzyArgs(query string, limit int) []any
	upsertQuery(t entities.EntityType) string
	// classify maps a driver error to an errors code
	classify(err error, message string) error
}

// sqlStore implements Store over database/sql
type sqlStore struct {
	db      *sql.DB
	dialect dialect
	logger  *zap.Logger
}

var _ Store = (*sqlStore)(nil)

func columns(t entities.EntityType) string {
	cols := []string{"name", "description"}
	if t.HasTypeColumn() {
		cols = append(cols, "type")
	}
	if t.HasExtra() {
		cols = append(cols, "extra")
	}
	return strings.Join(cols, ", ")
}

func validateType(t entities.EntityType) error {
	if !t.Valid() {
		return errors.InvalidArgumentf("unknown entity type %q", t)
	}
	return nil
}

func scanRecord(t entities.EntityType, row interface{ Scan(...any) error }) (*entities.Record, error) {
	var (
		rec   entities.Record
		typ   sql.NullString
		extra []byte
	)
	dest := []any{&rec.Name, &rec.Description}
	if t.HasTypeColumn() {
		dest = append(dest, &typ)
	}
	if t.HasExtra() {
		dest = append(dest, &extra)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	rec.Type = typ.String
	if len(extra) > 0 {
		rec.Extra = append([]byte(nil), extra...)
	}
	return &rec, nil
}

func (s *sqlStore) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.IsNotFound(err):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.RecordStoreQuery(s.dialect.name(), op, result, time.Since(start))
}

// Exact returns the record whose name matches ignoring case
func (s *sqlStore) Exact(ctx context.Context, input ExactInput) (out *ExactOutput, err error) {
	if err := validateType(input.EntityType); err != nil {
		return nil, err
	}
	defer func(start time.Time) { s.observe("exact", start, err) }(time.Now())

	query := entities.NormalizeQuery(input.Query)
	row := s.db.QueryRowContext(ctx, s.dialect.exactQuery(input.EntityType, columns(input.EntityType)), query)
	rec, scanErr := scanRecord(input.EntityType, row)
	if stderrors.Is(scanErr, sql.ErrNoRows) {
		return nil, errors.NotFoundf("%s %q not found", input.EntityType, input.Query).
			WithMeta("entity_type", input.EntityType.String())
	}
	if scanErr != nil {
		return nil, s.dialect.classify(scanErr, fmt.Sprintf("exact lookup on %s", input.EntityType.Table()))
	}

	return &ExactOutput{Record: rec}, nil
}

// Fuzzy returns records similar to the query
func (s *sqlStore) Fuzzy(ctx context.Context, input FuzzyInput) (out *FuzzyOutput, err error) {
	if err := validateType(input.EntityType); err != nil {
		return nil, err
	}
	defer func(start time.Time) { s.observe("fuzzy", start, err) }(time.Now())

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultFuzzyLimit
	}

	query := entities.NormalizeQuery(input.Query)
	rows, queryErr := s.db.QueryContext(ctx,
		s.dialect.fuzzyQuery(input.EntityType, columns(input.EntityType)),
		s.dialect.fuzzyArgs(query, limit)...)
	if queryErr != nil {
		return nil, s.dialect.classify(queryErr, fmt.Sprintf("fuzzy lookup on %s", input.EntityType.Table()))
	}
	defer rows.Close()

	candidates := make([]*entities.Record, 0, limit)
	for rows.Next() {
		rec, scanErr := scanRecord(input.EntityType, rows)
		if scanErr != nil {
			return nil, s.dialect.classify(scanErr, "scan fuzzy candidate")
		}
		candidates = append(candidates, rec)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, s.dialect.classify(rowsErr, "iterate fuzzy candidates")
	}

	return &FuzzyOutput{Candidates: candidates}, nil
}

// EnsureSchema creates every reference table and its indexes
func (s *sqlStore) EnsureSchema(ctx context.Context) error {
	for _, t := range entities.AllEntityTypes {
		for _, stmt := range s.dialect.schema(t) {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return s.dialect.classify(err, fmt.Sprintf("create schema for %s", t.Table()))
			}
		}
	}
	s.logger.Info("compendium schema ready", zap.String("driver", s.dialect.name()))
	return nil
}

// Upsert writes records in a single transaction
func (s *sqlStore) Upsert(ctx context.Context, input UpsertInput) (out *UpsertOutput, err error) {
	if err := validateType(input.EntityType); err != nil {
		return nil, err
	}
	vb := errors.NewValidationBuilder()
	for i, rec := range input.Records {
		if rec == nil {
			vb.Fieldf(fmt.Sprintf("records[%d]", i), "is nil")
			continue
		}
		errors.ValidateRequired(fmt.Sprintf("records[%d].name", i), rec.Name, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	defer func(start time.Time) { s.observe("upsert", start, err) }(time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, s.dialect.classify(err, "begin upsert")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, s.dialect.upsertQuery(input.EntityType))
	if err != nil {
		return nil, s.dialect.classify(err, "prepare upsert")
	}
	defer stmt.Close()

	for _, rec := range input.Records {
		args := []any{strings.TrimSpace(rec.Name), rec.Description}
		if input.EntityType.HasTypeColumn() {
			args = append(args, nullString(rec.Type))
		}
		if input.EntityType.HasExtra() {
			args = append(args, nullString(string(rec.Extra)))
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return nil, errors.Wrapf(s.dialect.classify(err, "upsert record"), "upsert %q", rec.Name)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, s.dialect.classify(err, "commit upsert")
	}

	return &UpsertOutput{Written: len(input.Records)}, nil
}

// Ping checks connectivity
func (s *sqlStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "compendium store unreachable")
	}
	return nil
}

// Close releases the connection pool
func (s *sqlStore) Close() error {
	return s.db.Close()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// classifyCommon handles errors every driver reports the same way. It
// returns nil when the error needs driver-specific handling.
func classifyCommon(err error, message string) error {
	switch {
	case stderrors.Is(err, context.Canceled):
		return errors.WrapWithCode(err, errors.CodeCanceled, message)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.WrapWithCode(err, errors.CodeUnavailable, message+": timed out")
	case stderrors.Is(err, sql.ErrConnDone), stderrors.Is(err, sql.ErrTxDone):
		return errors.WrapWithCode(err, errors.CodeUnavailable, message)
	}
	return nil
}
