// Package dashboard serves the aggregate counts for the landing view.
package dashboard

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vikrin/workflow/internal/storage"
)

type Handler struct {
	storage storage.Storage
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store}
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding dashboard response: %v", err)
	}
}

// Stats returns client bucket counts and project status counts.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.storage.Stats().Dashboard(r.Context())
	if err != nil {
		log.Printf("Error computing dashboard stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: stats})
}
