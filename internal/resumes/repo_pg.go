package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. The analysis document is stored as
// JSONB; it is only ever written after validation so reads can decode it
// without re-checking the contract.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    file_name,
    file_url,
    storage_key,
    size_bytes,
    mime_type,
    analysis,
    job_description,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	analysisJSON, err := json.Marshal(rec.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	var jobDescription sql.NullString
	if rec.JobDescription != "" {
		jobDescription = sql.NullString{String: rec.JobDescription, Valid: true}
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		rec.FileName,
		rec.FileURL,
		rec.StorageKey,
		rec.SizeBytes,
		rec.MimeType,
		analysisJSON,
		jobDescription,
		rec.CreatedAt,
	)
	return err
}

// GetByIDForUser fetches one record by ID scoped to the user.
func (r *PGRepo) GetByIDForUser(ctx context.Context, userID, id string) (Record, error) {
	const query = `
SELECT id, user_id, file_name, file_url, storage_key, size_bytes, mime_type, analysis, job_description, created_at
FROM resumes
WHERE user_id = $1 AND id = $2
LIMIT 1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// ListByUser lists records newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, file_name, file_url, storage_key, size_bytes, mime_type, analysis, job_description, created_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteByIDForUser removes one record by ID scoped to the user.
func (r *PGRepo) DeleteByIDForUser(ctx context.Context, userID, id string) error {
	const query = `
DELETE FROM resumes
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var analysisJSON []byte
	var jobDescription sql.NullString
	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.FileName,
		&rec.FileURL,
		&rec.StorageKey,
		&rec.SizeBytes,
		&rec.MimeType,
		&analysisJSON,
		&jobDescription,
		&rec.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(analysisJSON, &rec.Analysis); err != nil {
		return Record{}, fmt.Errorf("decode stored analysis: %w", err)
	}
	if jobDescription.Valid {
		rec.JobDescription = jobDescription.String
	}
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
