package server

import (
	"net/http"

	"github.com/pictlock/go-mfa-server/feedback"
)

// CreateFeedbackHandler stores a feedback note for the authenticated account
// (POST /api/feedback).
func (s *Server) CreateFeedbackHandler() http.HandlerFunc {
	type request struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Rating  int    `json:"rating"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeJSON(w, r, &req) {
			return
		}

		fb := &feedback.Feedback{
			AccountID: accountIDFromContext(r.Context()),
			Title:     req.Title,
			Content:   req.Content,
			Rating:    req.Rating,
		}
		if err := fb.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.feedback.Create(r.Context(), fb); err != nil {
			respondError(w, http.StatusInternalServerError, "server error")
			return
		}
		respondJSON(w, http.StatusCreated, fb)
	}
}

// ListFeedbackHandler returns the authenticated account's feedback, newest
// first (GET /api/feedback/me).
func (s *Server) ListFeedbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.feedback.ListByAccount(r.Context(), accountIDFromContext(r.Context()))
		if err != nil {
			respondError(w, http.StatusInternalServerError, "server error")
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}
