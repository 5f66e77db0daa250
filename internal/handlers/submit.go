package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inajphotography/visionboard/internal/metrics"
	"github.com/inajphotography/visionboard/internal/submission"
)

const (
	maxBodyBytes = 10 << 20

	msgMethodNotAllowed = "Method not allowed"
	msgServerError      = "An error occurred. Please try again."
	msgSubmitted        = "Vision board submitted successfully."
	msgBodyTooLarge     = "Request body too large."
)

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleSubmit accepts a finished vision board. The response is sent only
// after rendering and every notification task have settled.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, msgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	defer func() {
		if p := recover(); p != nil {
			slog.Error("Submission handler panicked", "panic", p)
			metrics.SubmissionsTotal.WithLabelValues("error").Inc()
			h.writeError(w, msgServerError, http.StatusInternalServerError)
		}
	}()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req submission.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("invalid").Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, msgBodyTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		h.writeError(w, submission.MsgInvalidPayload, http.StatusBadRequest)
		return
	}

	// the visitor disconnecting must not cancel emails already in flight
	_, err := h.submitter.Submit(context.WithoutCancel(r.Context()), req)
	if err != nil {
		var validationErr *submission.ValidationError
		if errors.As(err, &validationErr) {
			metrics.SubmissionsTotal.WithLabelValues("invalid").Inc()
			h.writeError(w, validationErr.Message, http.StatusBadRequest)
			return
		}
		slog.Error("Submission failed", "err", err)
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		h.writeError(w, msgServerError, http.StatusInternalServerError)
		return
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	h.writeJSON(w, http.StatusOK, submitResponse{Success: true, Message: msgSubmitted})
}
