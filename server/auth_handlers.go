package server

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pictlock/go-mfa-server/accounts"
	"github.com/pictlock/go-mfa-server/auth"
	"github.com/pictlock/go-mfa-server/gallery"
	"github.com/pictlock/go-mfa-server/graphical"
	"github.com/pictlock/go-mfa-server/internal/utils"
	"github.com/pictlock/go-mfa-server/sessions"
)

// tokenResponse is the terminal payload of both registration and a completed
// login: the bearer token plus the account sans secrets.
type tokenResponse struct {
	Token string            `json:"token"`
	User  *accounts.Account `json:"user"`
}

// RegisterHandler creates an account from the four-part credential and issues
// the first session (POST /api/auth/register).
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegistrationRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		session, account, err := s.auth.Register(r.Context(), req)
		if err != nil {
			s.respondAuthError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, tokenResponse{Token: session.Token, User: account})
	}
}

// VerifyColorHandler is stage one (POST /api/auth/verify-color). Success
// discloses nothing beyond permission to proceed.
func (s *Server) VerifyColorHandler() http.HandlerFunc {
	type request struct {
		Email           string `json:"email"`
		ColorPreference string `json:"colorPreference"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeJSON(w, r, &req) {
			return
		}

		if err := s.auth.SubmitColor(r.Context(), req.Email, req.ColorPreference); err != nil {
			s.respondAuthError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// VerifySportHandler is stage two (POST /api/auth/verify-sport). Success
// returns the assigned image id, the sole disclosure path for it.
func (s *Server) VerifySportHandler() http.HandlerFunc {
	type request struct {
		Email           string `json:"email"`
		SportPreference string `json:"sportPreference"`
		Password        string `json:"password"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeJSON(w, r, &req) {
			return
		}

		imageID, err := s.auth.SubmitSportAndPassword(r.Context(), req.Email, req.SportPreference, req.Password)
		if err != nil {
			s.respondAuthError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"imageId": imageID})
	}
}

// VerifyGraphicalHandler is the final stage (POST /api/auth/verify-graphical).
// Bounds are optional; a client that omits them is assumed to render the image
// at its native resolution.
func (s *Server) VerifyGraphicalHandler() http.HandlerFunc {
	type request struct {
		Email  string            `json:"email"`
		Points []graphical.Point `json:"points"`
		Bounds *graphical.Bounds `json:"bounds,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeJSON(w, r, &req) {
			return
		}

		session, account, err := s.auth.SubmitGraphicalPoints(r.Context(), req.Email, req.Points, utils.Value(req.Bounds))
		if err != nil {
			s.respondAuthError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, tokenResponse{Token: session.Token, User: account})
	}
}

// MeHandler returns the authenticated account without secrets
// (GET /api/auth/me).
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := s.repos.Accounts.GetByID(r.Context(), accountIDFromContext(r.Context()))
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		respondJSON(w, http.StatusOK, account)
	}
}

// LogoutHandler revokes the presented token immediately (GET /api/auth/logout).
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.issuer.Revoke(r.Context(), tokenFromContext(r.Context())); err != nil {
			log.Err(err).Msg("revoke failed")
			respondError(w, http.StatusInternalServerError, "server error")
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// ImagesHandler lists the image catalog (GET /api/images).
func (s *Server) ImagesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, gallery.List())
	}
}

// respondAuthError maps the auth error taxonomy onto HTTP statuses. The
// invalid-credential message is fixed: it never says which factor failed.
func (s *Server) respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredential):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, auth.ErrStageOutOfOrder):
		respondError(w, http.StatusConflict, "verification stage out of order")
	case errors.Is(err, accounts.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, "email already registered")
	case auth.IsValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, sessions.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, "invalid token")
	default:
		log.Err(err).Msg("auth request failed")
		respondError(w, http.StatusInternalServerError, "server error")
	}
}
