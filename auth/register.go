package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pictlock/go-mfa-server/accounts"
	"github.com/pictlock/go-mfa-server/gallery"
	"github.com/pictlock/go-mfa-server/graphical"
	"github.com/pictlock/go-mfa-server/sessions"
)

const minPasswordLength = 6

// GraphicalPassword is the registration shape of the third factor: the chosen
// image, the four ordered click points, and the resolution the image was
// rendered at when they were captured.
type GraphicalPassword struct {
	ImageID string            `json:"imageId"`
	Points  []graphical.Point `json:"points"`
	Bounds  graphical.Bounds  `json:"bounds"`
}

// RegistrationRequest carries the four-part credential a new account is
// created with.
type RegistrationRequest struct {
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Password          string            `json:"password"`
	Password2         string            `json:"password2"`
	ColorPreference   string            `json:"colorPreference"`
	SportPreference   string            `json:"sportPreference"`
	GraphicalPassword GraphicalPassword `json:"graphicalPassword"`
}

// Register validates and normalizes a registration into the stored credential
// shape, persists it, and issues the account's first session. Nothing is
// persisted when any validation step fails. Email uniqueness is the store's
// call and surfaces as accounts.ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, req RegistrationRequest) (*sessions.Session, *accounts.Account, error) {
	if req.Password != req.Password2 {
		return nil, nil, ErrPasswordMismatch
	}
	if len(req.Password) < minPasswordLength {
		return nil, nil, ErrWeakPassword
	}
	if !accounts.ValidColor(req.ColorPreference) || !accounts.ValidSport(req.SportPreference) {
		return nil, nil, ErrInvalidPreference
	}

	img, ok := gallery.Lookup(req.GraphicalPassword.ImageID)
	if !ok {
		return nil, nil, ErrUnknownImage
	}

	bounds := req.GraphicalPassword.Bounds
	if bounds.IsZero() {
		bounds = img.Bounds
	}

	points, err := graphical.PointsFromSlice(req.GraphicalPassword.Points)
	if err != nil {
		return nil, nil, ErrInvalidGraphicalPassword
	}
	for _, p := range points {
		if !bounds.Contains(p) {
			return nil, nil, ErrInvalidGraphicalPassword
		}
	}

	passwordHash, err := accounts.HashPassword(req.Password)
	if err != nil {
		return nil, nil, errors.Wrap(err, "[Service.Register] HashPassword")
	}

	account := &accounts.Account{
		Email:           accounts.NormalizeEmail(req.Email),
		Name:            req.Name,
		ColorPreference: req.ColorPreference,
		SportPreference: req.SportPreference,
		PasswordHash:    passwordHash,
		Graphical: graphical.Template{
			ImageID: img.ID,
			Points:  points,
			Bounds:  bounds,
		},
		Role:      accounts.RoleRegular,
		CreatedAt: s.nowTime(),
	}

	if err := s.repos.Accounts.Create(ctx, account); err != nil {
		if errors.Is(err, accounts.ErrDuplicateEmail) {
			return nil, nil, accounts.ErrDuplicateEmail
		}
		return nil, nil, errors.Wrap(err, "[Service.Register] accounts.Create")
	}

	session, err := s.issuer.Issue(ctx, account.ID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "[Service.Register] issuer.Issue")
	}
	return session, account, nil
}
