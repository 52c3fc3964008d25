package projects

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

// Handler serves the project resource.
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
		log.Printf("Error encoding projects response: %v", err)
	}
}

func jsonOK(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func jsonFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// CreateRequest is the body for project creation.
type CreateRequest struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	ClientID     int64    `json:"client_id"`
	Requirements string   `json:"requirements"`
	Budget       *float64 `json:"budget"`
	Status       string   `json:"status"`
	Progress     *int     `json:"progress"`
	StartDate    string   `json:"start_date"`
	Deadline     string   `json:"deadline"`
}

// UpdateRequest is the body for a project update. When only id and
// status are present the change goes through the status-only path.
type UpdateRequest struct {
	ID           int64    `json:"id"`
	Name         *string  `json:"name"`
	Type         *string  `json:"type"`
	Requirements *string  `json:"requirements"`
	Budget       *float64 `json:"budget"`
	Status       *string  `json:"status"`
	Progress     *int     `json:"progress"`
	StartDate    *string  `json:"start_date"`
	Deadline     *string  `json:"deadline"`
}

// statusOnly reports whether the request carries a status and nothing
// that would require rewriting the row.
func (r *UpdateRequest) statusOnly() bool {
	return r.Status != nil &&
		r.Name == nil && r.Type == nil && r.Requirements == nil &&
		r.Budget == nil && r.Progress == nil &&
		r.StartDate == nil && r.Deadline == nil
}

// List returns projects with their owning client's contact fields,
// optionally restricted to one client via ?client_id.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var clientID int64
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			jsonFail(w, http.StatusBadRequest, "Invalid client ID")
			return
		}
		clientID = id
	}

	projects, err := h.storage.Projects().List(r.Context(), clientID)
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	jsonOK(w, http.StatusOK, projects, "")
}

// Create inserts a project and bumps the owning client's counters.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonFail(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if req.Name == "" || req.ClientID == 0 {
		jsonFail(w, http.StatusBadRequest, "Project name and client ID are required")
		return
	}

	status := req.Status
	if status == "" {
		status = string(models.ProjectInProgress)
	}
	if !models.ValidProjectStatus(status) {
		jsonFail(w, http.StatusBadRequest, "Invalid project status")
		return
	}

	project := &models.Project{
		Name:         req.Name,
		Type:         req.Type,
		ClientID:     req.ClientID,
		Requirements: req.Requirements,
		Budget:       req.Budget,
		Status:       models.ProjectStatus(status),
		StartDate:    req.StartDate,
		Deadline:     req.Deadline,
	}
	if req.Progress != nil {
		project.Progress = clampProgress(*req.Progress)
	}

	id, err := h.storage.Projects().Create(r.Context(), project)
	if err != nil {
		log.Printf("Error creating project: %v", err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.ProjectsCreatedTotal.Inc()
	if actor := middleware.GetUsername(r.Context()); actor != "" {
		log.Printf("Project %d created by %s", id, actor)
	}
	jsonOK(w, http.StatusCreated, map[string]interface{}{"id": id}, "Project created successfully")
}

// Update changes a project. A body carrying only id and status flips
// the status column alone; anything else rewrites the editable fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonFail(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if req.ID == 0 {
		jsonFail(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	if req.Status != nil && !models.ValidProjectStatus(*req.Status) {
		jsonFail(w, http.StatusBadRequest, "Invalid project status")
		return
	}

	if req.statusOnly() {
		matched, err := h.storage.Projects().UpdateStatus(r.Context(), req.ID, models.ProjectStatus(*req.Status))
		if err != nil {
			log.Printf("Error updating project %d status: %v", req.ID, err)
			jsonFail(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !matched {
			jsonFail(w, http.StatusNotFound, "Project not found")
			return
		}
		jsonOK(w, http.StatusOK, nil, "Project updated successfully")
		return
	}

	// Full update rewrites the row, so unset fields fall back to the
	// current values instead of being blanked.
	current, err := h.storage.Projects().GetByID(r.Context(), req.ID)
	if err != nil {
		log.Printf("Error loading project %d: %v", req.ID, err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if current == nil {
		jsonFail(w, http.StatusNotFound, "Project not found")
		return
	}

	upd := &models.ProjectUpdate{
		Name:         current.Name,
		Type:         current.Type,
		Requirements: current.Requirements,
		Budget:       current.Budget,
		Status:       current.Status,
		Progress:     current.Progress,
		StartDate:    current.StartDate,
		Deadline:     current.Deadline,
	}
	if req.Name != nil {
		upd.Name = *req.Name
	}
	if req.Type != nil {
		upd.Type = *req.Type
	}
	if req.Requirements != nil {
		upd.Requirements = *req.Requirements
	}
	if req.Budget != nil {
		upd.Budget = req.Budget
	}
	if req.Status != nil {
		upd.Status = models.ProjectStatus(*req.Status)
	}
	if req.Progress != nil {
		upd.Progress = clampProgress(*req.Progress)
	}
	if req.StartDate != nil {
		upd.StartDate = *req.StartDate
	}
	if req.Deadline != nil {
		upd.Deadline = *req.Deadline
	}

	if upd.Name == "" {
		jsonFail(w, http.StatusBadRequest, "Project name and client ID are required")
		return
	}

	matched, err := h.storage.Projects().Update(r.Context(), req.ID, upd)
	if err != nil {
		log.Printf("Error updating project %d: %v", req.ID, err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !matched {
		jsonFail(w, http.StatusNotFound, "Project not found")
		return
	}

	jsonOK(w, http.StatusOK, nil, "Project updated successfully")
}

// Delete removes a project and decrements the owning client's counters.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		jsonFail(w, http.StatusBadRequest, "Project ID is required")
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		jsonFail(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	matched, err := h.storage.Projects().Delete(r.Context(), id)
	if err != nil {
		log.Printf("Error deleting project %d: %v", id, err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !matched {
		jsonFail(w, http.StatusNotFound, "Project not found")
		return
	}

	jsonOK(w, http.StatusOK, nil, "Project deleted successfully")
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
