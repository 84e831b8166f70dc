package server

import (
	"errors"
	"net/http"

	"github.com/pictlock/go-mfa-server/accounts"
)

// UpdateProfileHandler mutates the only two account fields the profile
// surface may touch: name and email (PUT /api/users/profile). The security
// fields are immutable after registration.
func (s *Server) UpdateProfileHandler() http.HandlerFunc {
	type request struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Name == "" || req.Email == "" {
			respondError(w, http.StatusBadRequest, "name and email are required")
			return
		}

		accountID := accountIDFromContext(r.Context())
		err := s.repos.Accounts.UpdateProfile(r.Context(), accountID, req.Name, req.Email)
		switch {
		case err == nil:
		case errors.Is(err, accounts.ErrDuplicateEmail):
			respondError(w, http.StatusConflict, "email already registered")
			return
		case errors.Is(err, accounts.ErrNotFound):
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		default:
			respondError(w, http.StatusInternalServerError, "server error")
			return
		}

		account, err := s.repos.Accounts.GetByID(r.Context(), accountID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "server error")
			return
		}
		respondJSON(w, http.StatusOK, account)
	}
}
