package sessions

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

const defaultSessionTTL = 24 * time.Hour

// Issuer mints, validates and revokes session tokens. It is the single owner
// of token validity: handlers never inspect a token beyond handing it here.
type Issuer struct {
	repo    Repo
	ttl     time.Duration
	nowTime func() time.Time
}

// IssuerOption defines a function type to modify the Issuer instance.
type IssuerOption func(*Issuer)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowTime = nowFunc
	}
}

// WithTTL overrides the default 24h session lifetime.
func WithTTL(ttl time.Duration) IssuerOption {
	return func(i *Issuer) {
		i.ttl = ttl
	}
}

func NewIssuer(repo Repo, options ...IssuerOption) (*Issuer, error) {
	if repo == nil {
		return nil, errors.New("[NewIssuer] session repo is required")
	}

	issuer := &Issuer{
		repo:    repo,
		ttl:     defaultSessionTTL,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(issuer)
	}
	return issuer, nil
}

// Issue creates a new session for an account. The returned Session is the
// only place the raw token ever appears.
func (i *Issuer) Issue(ctx context.Context, accountID string) (*Session, error) {
	if accountID == "" {
		return nil, errors.New("[Issuer.Issue] accountID is required")
	}

	token, err := generateToken()
	if err != nil {
		return nil, errors.Wrap(err, "[Issuer.Issue] generateToken")
	}

	now := i.nowTime()
	session := &Session{
		Token:     token,
		TokenHash: HashToken(token),
		AccountID: accountID,
		IssuedAt:  now,
		ExpiresAt: now.Add(i.ttl),
	}
	if err := i.repo.Upsert(ctx, session); err != nil {
		return nil, errors.Wrap(err, "[Issuer.Issue] repo.Upsert")
	}
	return session, nil
}

// Validate resolves a raw token to the account it authenticates. Expired
// sessions are removed on sight and reported invalid.
func (i *Issuer) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	session, err := i.repo.Get(ctx, HashToken(token))
	if err != nil {
		return "", ErrInvalidToken
	}
	if session.Expired(i.nowTime()) {
		_ = i.repo.Delete(ctx, session.TokenHash)
		return "", ErrInvalidToken
	}
	return session.AccountID, nil
}

// Revoke invalidates a token immediately. Revoking an unknown token is not an
// error; the outcome the caller asked for already holds.
func (i *Issuer) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := i.repo.Delete(ctx, HashToken(token)); err != nil {
		return errors.Wrap(err, "[Issuer.Revoke] repo.Delete")
	}
	return nil
}

// RevokeAccount invalidates every session belonging to an account, used when
// an account is deleted.
func (i *Issuer) RevokeAccount(ctx context.Context, accountID string) error {
	if err := i.repo.DeleteByAccount(ctx, accountID); err != nil {
		return errors.Wrap(err, "[Issuer.RevokeAccount] repo.DeleteByAccount")
	}
	return nil
}
