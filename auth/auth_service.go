// Package auth implements the stage-gated login protocol: three ordered
// verification factors, each revealed only after the previous one succeeds,
// with server-side stage state as the single source of truth.
package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/pkg/errors"

	"github.com/pictlock/go-mfa-server/accounts"
	"github.com/pictlock/go-mfa-server/attempts"
	"github.com/pictlock/go-mfa-server/gallery"
	"github.com/pictlock/go-mfa-server/graphical"
	"github.com/pictlock/go-mfa-server/sessions"
)

const defaultAttemptTTL = 5 * time.Minute

// dummyColor keeps the work done for an unknown email in line with the work
// done for a wrong color, so the two failures look alike on the wire and on
// the clock.
const dummyColor = "\x00no-such-color"

// Repos holds all repository dependencies for the Service
type Repos struct {
	Accounts accounts.Repo
	Attempts attempts.Repo
}

// Service is the stage gate controller. It consumes one verification attempt
// per call, advances or rejects, and decides what partial information may be
// disclosed at each stage.
type Service struct {
	repos      Repos
	issuer     *sessions.Issuer
	attemptTTL time.Duration
	nowTime    func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithAttemptTTL overrides the default five-minute attempt lifetime.
func WithAttemptTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.attemptTTL = ttl
	}
}

// NewService initializes a new Service with required dependencies.
func NewService(repos Repos, issuer *sessions.Issuer, options ...ServiceOption) (*Service, error) {
	if repos.Accounts == nil {
		return nil, errors.New("[NewService] Accounts repo is required")
	}
	if repos.Attempts == nil {
		return nil, errors.New("[NewService] Attempts repo is required")
	}
	if issuer == nil {
		return nil, errors.New("[NewService] session issuer is required")
	}

	service := &Service{
		repos:      repos,
		issuer:     issuer,
		attemptTTL: defaultAttemptTTL,
		nowTime:    time.Now,
	}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// SubmitColor verifies the first factor. An unknown email and a wrong color
// produce the identical ErrInvalidCredential. Success creates or replaces the
// attempt for this email at the color-verified stage and discloses nothing.
func (s *Service) SubmitColor(ctx context.Context, email, color string) error {
	email = accounts.NormalizeEmail(email)

	account, err := s.repos.Accounts.GetByEmail(ctx, email)
	if err != nil {
		// Burn the comparison anyway; see dummyColor.
		constantTimeEquals(dummyColor, color)
		return ErrInvalidCredential
	}

	if !constantTimeEquals(account.ColorPreference, color) {
		return ErrInvalidCredential
	}

	now := s.nowTime()
	attempt := &attempts.Attempt{
		Email:     email,
		AccountID: account.ID,
		Stage:     attempts.StageColorVerified,
		CreatedAt: now,
		ExpiresAt: now.Add(s.attemptTTL),
	}
	if err := s.repos.Attempts.Upsert(email, attempt); err != nil {
		return errors.Wrap(err, "[Service.SubmitColor] attempts.Upsert")
	}
	return nil
}

// SubmitSportAndPassword verifies the second factor. It requires a live
// attempt at exactly the color-verified stage; otherwise the caller is told
// only that the stage is out of order. Both the sport and the password are
// checked before any decision is made. On success the attempt advances and
// the account's assigned image id is returned, the only path by which that
// identifier reaches an unauthenticated caller.
func (s *Service) SubmitSportAndPassword(ctx context.Context, email, sport, password string) (string, error) {
	email = accounts.NormalizeEmail(email)

	attempt, err := s.repos.Attempts.Get(email)
	if err != nil || attempt.Stage != attempts.StageColorVerified {
		return "", ErrStageOutOfOrder
	}

	account, err := s.repos.Accounts.GetByID(ctx, attempt.AccountID)
	if err != nil {
		_ = s.repos.Attempts.Delete(email)
		return "", ErrInvalidCredential
	}

	sportOK := constantTimeEquals(account.SportPreference, sport)
	passwordOK := accounts.CheckPasswordHash(password, account.PasswordHash)
	if !sportOK || !passwordOK {
		// Failure is terminal: progress from stage 1 is forfeited.
		_ = s.repos.Attempts.Delete(email)
		return "", ErrInvalidCredential
	}

	attempt.Stage = attempts.StageSportVerified
	if err := s.repos.Attempts.Upsert(email, attempt); err != nil {
		return "", errors.Wrap(err, "[Service.SubmitSportAndPassword] attempts.Upsert")
	}
	return account.Graphical.ImageID, nil
}

// SubmitGraphicalPoints verifies the final factor and is the only path to a
// session token. It requires a live attempt at the sport-verified stage. The
// submission is matched against the stored template under the tolerance rules
// in the graphical package; callers that cannot report their rendered image
// size submit zero bounds and are assumed to render at the image's native
// resolution. Any mismatch destroys the attempt: retrying means starting over
// at stage one.
func (s *Service) SubmitGraphicalPoints(ctx context.Context, email string, points []graphical.Point, bounds graphical.Bounds) (*sessions.Session, *accounts.Account, error) {
	email = accounts.NormalizeEmail(email)

	attempt, err := s.repos.Attempts.Get(email)
	if err != nil || attempt.Stage != attempts.StageSportVerified {
		return nil, nil, ErrStageOutOfOrder
	}

	account, err := s.repos.Accounts.GetByID(ctx, attempt.AccountID)
	if err != nil {
		_ = s.repos.Attempts.Delete(email)
		return nil, nil, ErrInvalidCredential
	}

	submitted, err := graphical.PointsFromSlice(points)
	if err != nil {
		_ = s.repos.Attempts.Delete(email)
		return nil, nil, ErrInvalidCredential
	}

	if bounds.IsZero() {
		if img, ok := gallery.Lookup(account.Graphical.ImageID); ok {
			bounds = img.Bounds
		}
	}

	if !graphical.Matches(account.Graphical.Points, submitted, account.Graphical.Bounds, bounds) {
		_ = s.repos.Attempts.Delete(email)
		return nil, nil, ErrInvalidCredential
	}

	session, err := s.issuer.Issue(ctx, account.ID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "[Service.SubmitGraphicalPoints] issuer.Issue")
	}
	_ = s.repos.Attempts.Delete(email)
	return session, account, nil
}

func constantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
