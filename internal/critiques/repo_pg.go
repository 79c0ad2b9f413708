package critiques

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Save inserts a new critique record.
func (r *PGRepo) Save(ctx context.Context, record CritiqueRecord) error {
	const query = `
INSERT INTO critiques (id, user_id, user_email, resume_text_preview, job_description, critique, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	critiqueJSON, err := json.Marshal(record.Critique)
	if err != nil {
		return fmt.Errorf("marshal critique: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.UserEmail,
		record.ResumeTextPreview,
		record.JobDescription,
		critiqueJSON,
		record.CreatedAt,
	)
	return err
}

// GetByID returns a record by ID.
func (r *PGRepo) GetByID(ctx context.Context, recordID string) (CritiqueRecord, error) {
	const query = `
SELECT id, user_id, user_email, resume_text_preview, job_description, critique, created_at
FROM critiques
WHERE id = $1
LIMIT 1`
	var record CritiqueRecord
	var critiqueJSON []byte
	err := r.DB.QueryRowContext(ctx, query, recordID).Scan(
		&record.ID,
		&record.UserID,
		&record.UserEmail,
		&record.ResumeTextPreview,
		&record.JobDescription,
		&critiqueJSON,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return CritiqueRecord{}, ErrNotFound
	}
	if err != nil {
		return CritiqueRecord{}, err
	}
	if err := json.Unmarshal(critiqueJSON, &record.Critique); err != nil {
		return CritiqueRecord{}, fmt.Errorf("unmarshal critique: %w", err)
	}
	return record, nil
}

// ListByUser returns a user's records ordered by creation time descending.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]CritiqueRecord, error) {
	const query = `
SELECT id, user_id, user_email, resume_text_preview, job_description, critique, created_at
FROM critiques
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []CritiqueRecord{}
	for rows.Next() {
		var record CritiqueRecord
		var critiqueJSON []byte
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.UserEmail,
			&record.ResumeTextPreview,
			&record.JobDescription,
			&critiqueJSON,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(critiqueJSON, &record.Critique); err != nil {
			return nil, fmt.Errorf("unmarshal critique: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes a record by ID.
func (r *PGRepo) Delete(ctx context.Context, recordID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM critiques WHERE id = $1`, recordID)
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

var _ Repo = (*PGRepo)(nil)
