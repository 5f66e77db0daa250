package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/inajphotography/visionboard/internal/gallery"
	"github.com/inajphotography/visionboard/internal/submission"
)

// Submitter processes a validated-or-not submit request
type Submitter interface {
	Submit(ctx context.Context, req submission.Request) (*submission.Result, error)
}

type Handler struct {
	submitter Submitter
	catalog   *gallery.Catalog
}

func New(submitter Submitter, catalog *gallery.Catalog) *Handler {
	return &Handler{
		submitter: submitter,
		catalog:   catalog,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message, "status", code)
	} else {
		slog.Warn(message, "status", code)
	}
	h.writeJSON(w, code, errorResponse{Error: message})
}
