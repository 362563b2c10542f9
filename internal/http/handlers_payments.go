package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paytrack/internal/core"
)

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.payments.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list payments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch payments")
		return
	}
	if payments == nil {
		payments = []core.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var p core.Payment
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.payments.Create(r.Context(), p)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to create payment", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create payment")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	var p core.Payment
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// The path id wins over whatever the body carries.
	p.ID = chi.URLParam(r, "id")

	updated, err := s.payments.Update(r.Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			writeError(w, http.StatusNotFound, "payment not found")
		case isValidationError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Failed to update payment", "error", err, "payment_id", p.ID)
			writeError(w, http.StatusInternalServerError, "failed to update payment")
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.payments.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "payment not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete payment", "error", err, "payment_id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete payment")
		return
	}
	writeSuccess(w)
}

func (s *Server) handleClearPayments(w http.ResponseWriter, r *http.Request) {
	if err := s.payments.Clear(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to clear payments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear payments")
		return
	}
	writeSuccess(w)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	profileID := r.URL.Query().Get("profileId")

	var month *core.Date
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := parseMonth(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month: expected YYYY-MM")
			return
		}
		month = &m
	}

	summary, err := s.payments.Summary(r.Context(), profileID, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute summary", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// isValidationError reports whether the error came from domain validation
// rather than persistence.
func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidCategory) ||
		errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrEmptyProfileID) ||
		errors.Is(err, core.ErrInvalidProfile) ||
		errors.Is(err, core.ErrEmptyName)
}
