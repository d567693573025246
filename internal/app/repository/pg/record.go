package pg

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"audioscribe/internal/app/model"
	"audioscribe/internal/app/repository"
)

// Ensure PostgresDB implements RecordDAO
var _ repository.RecordDAO = (*PostgresDB)(nil)

const recordColumns = `id, original_filename, file_size, file_format, storage_key,
	transcription_text, status, processing_time, error_message, created_at, updated_at`

var orderColumns = map[string]string{
	"created_at":      "created_at",
	"updated_at":      "updated_at",
	"file_size":       "file_size",
	"processing_time": "processing_time",
}

// Create inserts a new record.
func (pdb *PostgresDB) Create(ctx context.Context, rec *model.Record) error {
	insertSQL := `
		INSERT INTO transcriptions (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := pdb.db.ExecContext(ctx, insertSQL,
		rec.ID, rec.OriginalFilename, rec.FileSize, rec.Format, rec.StorageKey,
		rec.Text, string(rec.Status), nullFloat(rec.ProcessingTime), rec.ErrorMessage,
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// GetByID fetches one record; sql.ErrNoRows when the id is unknown.
func (pdb *PostgresDB) GetByID(ctx context.Context, id string) (*model.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM transcriptions WHERE id = $1`
	return scanRecord(pdb.db.QueryRowContext(ctx, query, id))
}

// Update persists all mutable fields of an existing record.
func (pdb *PostgresDB) Update(ctx context.Context, rec *model.Record) error {
	updateSQL := `
		UPDATE transcriptions
		SET transcription_text = $1, status = $2, processing_time = $3,
			error_message = $4, updated_at = $5
		WHERE id = $6`

	res, err := pdb.db.ExecContext(ctx, updateSQL,
		rec.Text, string(rec.Status), nullFloat(rec.ProcessingTime),
		rec.ErrorMessage, rec.UpdatedAt, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a record. The caller is responsible for the backing blob.
func (pdb *PostgresDB) Delete(ctx context.Context, id string) error {
	res, err := pdb.db.ExecContext(ctx, `DELETE FROM transcriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns a page of records matching the query plus the total count.
func (pdb *PostgresDB) List(ctx context.Context, q repository.ListQuery) ([]model.Record, int, error) {
	where, args := buildWhere(q)

	var total int
	countSQL := `SELECT COUNT(*) FROM transcriptions` + where
	if err := pdb.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	column, ok := orderColumns[q.OrderBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.Order, "asc") {
		direction = "ASC"
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if q.Page > 1 {
		offset = (q.Page - 1) * limit
	}

	listSQL := fmt.Sprintf(`SELECT %s FROM transcriptions%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		recordColumns, where, column, direction, len(args)+1, len(args)+2)
	rows, err := pdb.db.QueryContext(ctx, listSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByStatus returns up to limit records in the given status, oldest first.
func (pdb *PostgresDB) ListByStatus(ctx context.Context, status model.Status, limit int) ([]model.Record, error) {
	query := `SELECT ` + recordColumns + `
		FROM transcriptions WHERE status = $1 ORDER BY created_at ASC LIMIT $2`
	rows, err := pdb.db.QueryContext(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ResetFailed puts every failed record back into pending and clears its
// error message. Returns the number of records reset.
func (pdb *PostgresDB) ResetFailed(ctx context.Context) (int64, error) {
	res, err := pdb.db.ExecContext(ctx, `
		UPDATE transcriptions
		SET status = $1, error_message = '', updated_at = NOW()
		WHERE status = $2`,
		string(model.StatusPending), string(model.StatusFailed))
	if err != nil {
		return 0, fmt.Errorf("failed to reset records: %w", err)
	}
	return res.RowsAffected()
}

func buildWhere(q repository.ListQuery) (string, []any) {
	var clauses []string
	var args []any
	next := func() int { return len(args) + 1 }
	if q.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", next()))
		args = append(args, string(q.Status))
	}
	if q.Format != "" {
		clauses = append(clauses, fmt.Sprintf("file_format = $%d", next()))
		args = append(args, q.Format)
	}
	if q.Search != "" {
		clauses = append(clauses, fmt.Sprintf("original_filename ILIKE $%d", next()))
		args = append(args, "%"+q.Search+"%")
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.Record, error) {
	var rec model.Record
	var status string
	var processingTime sql.NullFloat64

	err := row.Scan(
		&rec.ID, &rec.OriginalFilename, &rec.FileSize, &rec.Format, &rec.StorageKey,
		&rec.Text, &status, &processingTime, &rec.ErrorMessage,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Status = model.Status(status)
	if processingTime.Valid {
		rec.ProcessingTime = &processingTime.Float64
	}
	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]model.Record, error) {
	records := make([]model.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
