// Package pgxrepo is the Postgres-backed feedback store.
package pgxrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pictlock/go-mfa-server/feedback"
)

var _ feedback.Repo = (*Repo)(nil)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, fb *feedback.Feedback) error {
	if err := fb.Validate(); err != nil {
		return err
	}
	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}

	query := `INSERT INTO feedback (id, account_id, title, content, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query,
		fb.ID, fb.AccountID, fb.Title, fb.Content, fb.Rating, fb.CreatedAt); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *Repo) ListByAccount(ctx context.Context, accountID string) ([]*feedback.Feedback, error) {
	query := `SELECT id, account_id, title, content, rating, created_at
		FROM feedback WHERE account_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	list := make([]*feedback.Feedback, 0)
	for rows.Next() {
		fb := &feedback.Feedback{}
		if err := rows.Scan(&fb.ID, &fb.AccountID, &fb.Title, &fb.Content, &fb.Rating, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		list = append(list, fb)
	}
	return list, rows.Err()
}
