// Package pgxrepo is the Postgres-backed credential store.
package pgxrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pictlock/go-mfa-server/accounts"
	"github.com/pictlock/go-mfa-server/graphical"
)

var _ accounts.Repo = (*Repo)(nil)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, account *accounts.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.Email = accounts.NormalizeEmail(account.Email)

	points, err := json.Marshal(account.Graphical.Points[:])
	if err != nil {
		return fmt.Errorf("marshal points: %w", err)
	}

	query := `INSERT INTO accounts
		(id, email, name, color_preference, sport_preference, password_hash,
		 image_id, points, capture_width, capture_height, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.ExecContext(ctx, query,
		account.ID, account.Email, account.Name,
		account.ColorPreference, account.SportPreference, account.PasswordHash,
		account.Graphical.ImageID, points,
		account.Graphical.Bounds.Width, account.Graphical.Bounds.Height,
		string(account.Role), account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return accounts.ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	return r.get(ctx, `WHERE email = $1`, accounts.NormalizeEmail(email))
}

func (r *Repo) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *Repo) get(ctx context.Context, where string, arg any) (*accounts.Account, error) {
	query := `SELECT id, email, name, color_preference, sport_preference, password_hash,
		image_id, points, capture_width, capture_height, role, created_at
		FROM accounts ` + where

	account := &accounts.Account{}
	var (
		points []byte
		role   string
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID, &account.Email, &account.Name,
		&account.ColorPreference, &account.SportPreference, &account.PasswordHash,
		&account.Graphical.ImageID, &points,
		&account.Graphical.Bounds.Width, &account.Graphical.Bounds.Height,
		&role, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accounts.ErrNotFound
		}
		return nil, fmt.Errorf("select account: %w", err)
	}
	account.Role = accounts.RoleType(role)

	var pts []graphical.Point
	if err := json.Unmarshal(points, &pts); err != nil {
		return nil, fmt.Errorf("unmarshal points: %w", err)
	}
	fixed, err := graphical.PointsFromSlice(pts)
	if err != nil {
		return nil, fmt.Errorf("stored template malformed: %w", err)
	}
	account.Graphical.Points = fixed
	return account, nil
}

func (r *Repo) UpdateProfile(ctx context.Context, id, name, email string) error {
	query := `UPDATE accounts SET name = $2, email = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, name, accounts.NormalizeEmail(email))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return accounts.ErrDuplicateEmail
		}
		return fmt.Errorf("update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context, offset, limit int) ([]*accounts.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, email, name, role, created_at FROM accounts
		ORDER BY email OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	list := make([]*accounts.Account, 0)
	for rows.Next() {
		account := &accounts.Account{}
		var role string
		if err := rows.Scan(&account.ID, &account.Email, &account.Name, &role, &account.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		account.Role = accounts.RoleType(role)
		list = append(list, account)
	}
	return list, rows.Err()
}
