package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"service-estimator/core/types"
	"service-estimator/db"
	"service-estimator/internal/errors"
	"service-estimator/internal/logging"
)

// SQLiteStore keeps estimates in an embedded SQLite database
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens the database at path and migrates it
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Storage("create database directory", err).WithContext("path", path)
		}
	}

	conn, err := db.Open(path)
	if err != nil {
		return nil, errors.Storage("open history database", err).WithContext("path", path)
	}
	if err := db.Migrate(conn); err != nil {
		return nil, multierr.Append(errors.Storage("migrate history database", err), conn.Close())
	}

	return &SQLiteStore{db: conn, logger: logging.Named("storage")}, nil
}

const selectColumns = `id, catalog_id, catalog_name, fingerprint, label, size,
	total_effort, final_price, selection, result, metadata, created_at`

func (s *SQLiteStore) Save(ctx context.Context, estimate *StoredEstimate) error {
	if err := prepare(estimate); err != nil {
		return err
	}

	selection, err := json.Marshal(estimate.Selection)
	if err != nil {
		return errors.Storage("marshal selection", err)
	}
	result, err := json.Marshal(estimate.Result)
	if err != nil {
		return errors.Storage("marshal result", err)
	}
	metadata, err := json.Marshal(estimate.Metadata)
	if err != nil {
		return errors.Storage("marshal metadata", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO estimates (`+selectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		estimate.ID, estimate.CatalogID, estimate.CatalogName, estimate.Fingerprint, estimate.Label,
		string(estimate.Size), estimate.TotalEffort, estimate.FinalPrice,
		string(selection), string(result), string(metadata), estimate.CreatedAt.UnixNano(),
	)
	if err != nil {
		return errors.Storage("insert estimate", err).WithContext("id", estimate.ID)
	}

	s.logger.Debug("estimate saved",
		zap.String("id", estimate.ID),
		zap.String("catalog", estimate.CatalogID),
	)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEstimate(row rowScanner) (*StoredEstimate, error) {
	var (
		e                           StoredEstimate
		size                        string
		selection, result, metadata string
		createdAt                   int64
	)
	if err := row.Scan(&e.ID, &e.CatalogID, &e.CatalogName, &e.Fingerprint, &e.Label, &size,
		&e.TotalEffort, &e.FinalPrice, &selection, &result, &metadata, &createdAt); err != nil {
		return nil, err
	}

	e.Size = types.SizeTier(size)
	e.CreatedAt = time.Unix(0, createdAt).UTC()
	if err := json.Unmarshal([]byte(selection), &e.Selection); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(result), &e.Result); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(metadata), &e.Metadata); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*StoredEstimate, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM estimates WHERE id = ?`, id)
	estimate, err := scanEstimate(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("estimate", id)
	}
	if err != nil {
		return nil, errors.Storage("read estimate", err).WithContext("id", id)
	}
	return estimate, nil
}

func (s *SQLiteStore) List(ctx context.Context, filter *ListFilter) (estimates []*StoredEstimate, err error) {
	var (
		where []string
		args  []any
	)
	if filter != nil {
		if filter.CatalogID != "" {
			where = append(where, "catalog_id = ?")
			args = append(args, filter.CatalogID)
		}
		if filter.Label != "" {
			where = append(where, "label = ?")
			args = append(args, filter.Label)
		}
		if !filter.Since.IsZero() {
			where = append(where, "created_at >= ?")
			args = append(args, filter.Since.UnixNano())
		}
		if !filter.Until.IsZero() {
			where = append(where, "created_at <= ?")
			args = append(args, filter.Until.UnixNano())
		}
	}

	query := `SELECT ` + selectColumns + ` FROM estimates`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id ASC`
	if filter != nil && (filter.Limit > 0 || filter.Offset > 0) {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Storage("list estimates", err)
	}
	defer func() {
		err = multierr.Append(err, rows.Close())
	}()

	for rows.Next() {
		estimate, scanErr := scanEstimate(rows)
		if scanErr != nil {
			return nil, errors.Storage("scan estimate", scanErr)
		}
		estimates = append(estimates, estimate)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("iterate estimates", err)
	}
	return estimates, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM estimates WHERE id = ?`, id)
	if err != nil {
		return errors.Storage("delete estimate", err).WithContext("id", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Storage("delete estimate", err).WithContext("id", id)
	}
	if n == 0 {
		return errors.NotFound("estimate", id)
	}
	return nil
}

func (s *SQLiteStore) GetLatest(ctx context.Context, catalogID string) (*StoredEstimate, error) {
	return latestIn(ctx, s, catalogID)
}

func (s *SQLiteStore) Compare(ctx context.Context, oldID, newID string) (*CompareResult, error) {
	return compareIn(ctx, s, oldID, newID)
}

// Close runs the planner housekeeping pragma and closes the database
func (s *SQLiteStore) Close() error {
	_, err := s.db.Exec(`PRAGMA optimize`)
	return multierr.Combine(err, s.db.Close())
}
