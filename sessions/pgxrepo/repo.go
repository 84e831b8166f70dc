// Package pgxrepo is the Postgres-backed session store.
package pgxrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pictlock/go-mfa-server/sessions"
)

var _ sessions.Repo = (*Repo)(nil)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Upsert(ctx context.Context, session *sessions.Session) error {
	query := `INSERT INTO sessions (token_hash, account_id, issued_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token_hash) DO UPDATE
		SET account_id = $2, issued_at = $3, expires_at = $4`

	_, err := r.db.ExecContext(ctx, query,
		session.TokenHash, session.AccountID, session.IssuedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, tokenHash string) (*sessions.Session, error) {
	query := `SELECT token_hash, account_id, issued_at, expires_at
		FROM sessions WHERE token_hash = $1`

	session := &sessions.Session{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&session.TokenHash, &session.AccountID, &session.IssuedAt, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sessions.ErrInvalidToken
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	return session, nil
}

func (r *Repo) Delete(ctx context.Context, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *Repo) DeleteByAccount(ctx context.Context, accountID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("delete sessions by account: %w", err)
	}
	return nil
}
