// Package sessions owns the bearer credential issued when a login completes
// all three verification stages. Tokens are opaque random values; only their
// sha256 digest is ever stored, and revocation removes the record outright so
// a revoked token fails validation immediately.
package sessions

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"
)

const tokenByteLength = 32

var ErrInvalidToken = errors.New("invalid or expired token")

// Session is the record behind one issued token. Token carries the raw value
// only on the session returned by Issue; stored and retrieved sessions hold
// the hash alone.
type Session struct {
	Token     string    `json:"-"`
	TokenHash string    `json:"-"`
	AccountID string    `json:"account_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Repo stores sessions keyed by token hash.
type Repo interface {
	Upsert(ctx context.Context, session *Session) error
	Get(ctx context.Context, tokenHash string) (*Session, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteByAccount(ctx context.Context, accountID string) error
}

// HashToken returns the hex sha256 digest under which a token is stored.
// Looking sessions up by digest keeps the raw token out of storage entirely.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func generateToken() (string, error) {
	bytes := make([]byte, tokenByteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
