package handlers

import (
	"net/http"

	"github.com/inajphotography/visionboard/internal/gallery"
	"github.com/inajphotography/visionboard/internal/models"
)

type galleryResponse struct {
	Images  []models.Image  `json:"images"`
	Filters gallery.Filters `json:"filters"`
	Facets  gallery.Facets  `json:"facets"`
}

// HandleGallery lists the catalog narrowed by the mood, setting and style query parameters.
func (h *Handler) HandleGallery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, msgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filters := gallery.Filters{
		Mood:    q.Get(string(gallery.Mood)),
		Setting: q.Get(string(gallery.Setting)),
		Style:   q.Get(string(gallery.Style)),
	}

	h.writeJSON(w, http.StatusOK, galleryResponse{
		Images:  h.catalog.Filter(filters),
		Filters: filters,
		Facets:  h.catalog.Facets(),
	})
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
