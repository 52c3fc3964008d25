// Package status serves the append-only per-project update timeline.
package status

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/vikrin/workflow/internal/api/middleware"
	"github.com/vikrin/workflow/internal/metrics"
	"github.com/vikrin/workflow/internal/models"
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

// createdEnvelope carries the new entry's id at the top level, which is
// where the frontend reads it from.
type createdEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding status response: %v", err)
	}
}

func jsonFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// CreateRequest is the body for appending a timeline entry.
type CreateRequest struct {
	ProjectID  int64  `json:"project_id"`
	Progress   *int   `json:"progress"`
	UpdateText string `json:"update_text"`
	UpdatedBy  string `json:"updated_by"`
}

// List returns a project's timeline, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("project_id")
	if raw == "" {
		jsonFail(w, http.StatusBadRequest, "Project ID is required")
		return
	}
	projectID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || projectID <= 0 {
		jsonFail(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	updates, err := h.storage.Status().ListByProject(r.Context(), projectID)
	if err != nil {
		log.Printf("Error listing status updates for project %d: %v", projectID, err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if updates == nil {
		updates = []*models.StatusUpdate{}
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: updates})
}

// Create appends a timeline entry. A carried progress value also moves
// the project's progress column.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonFail(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if req.ProjectID == 0 || req.UpdateText == "" || req.UpdatedBy == "" {
		jsonFail(w, http.StatusBadRequest, "Project ID, update text, and user are required")
		return
	}

	if req.Progress != nil {
		p := *req.Progress
		if p < 0 {
			p = 0
		} else if p > 100 {
			p = 100
		}
		req.Progress = &p
	}

	upd := &models.StatusUpdate{
		ProjectID:  req.ProjectID,
		Progress:   req.Progress,
		UpdateText: req.UpdateText,
		UpdatedBy:  req.UpdatedBy,
	}

	id, err := h.storage.Status().Append(r.Context(), upd)
	if err != nil {
		log.Printf("Error appending status update for project %d: %v", req.ProjectID, err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.StatusUpdatesTotal.Inc()
	if actor := middleware.GetUsername(r.Context()); actor != "" {
		log.Printf("Status update %d on project %d added by %s", id, req.ProjectID, actor)
	}
	writeJSON(w, http.StatusCreated, createdEnvelope{
		Success: true,
		Message: "Status update added successfully",
		ID:      id,
	})
}
