package clients

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/vikrin/workflow/internal/api/middleware"
	"github.com/vikrin/workflow/internal/metrics"
	"github.com/vikrin/workflow/internal/models"
	"github.com/vikrin/workflow/internal/storage"
)

// Handler serves the client resource.
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
		log.Printf("Error encoding clients response: %v", err)
	}
}

func jsonOK(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func jsonFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// List returns clients filtered by lifecycle bucket and optional sub-status.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.ClientFilter(r.URL.Query().Get("filter"))
	subStatus := r.URL.Query().Get("sub_status")

	clients, err := h.storage.Clients().List(r.Context(), filter, subStatus)
	if err != nil {
		log.Printf("Error listing clients: %v", err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if clients == nil {
		clients = []*models.Client{}
	}
	jsonOK(w, http.StatusOK, clients, "")
}

// Create inserts a new client. Name is the only required field.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonFail(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if req.Name == "" {
		jsonFail(w, http.StatusBadRequest, "Client name is required")
		return
	}

	subStatus := req.SubStatus
	if subStatus == "" {
		subStatus = string(models.SubStatusInProgress)
	}
	if !models.ValidSubStatus(subStatus) {
		jsonFail(w, http.StatusBadRequest, "Invalid sub status")
		return
	}

	client := &models.Client{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Address:   req.Address,
		SubStatus: models.SubStatus(subStatus),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Budget:    req.Budget,
	}
	if req.IsConfirmed != nil {
		client.IsConfirmed = bool(*req.IsConfirmed)
	}
	if req.IsLost != nil {
		client.IsLost = bool(*req.IsLost)
	}

	id, err := h.storage.Clients().Create(r.Context(), client)
	if err != nil {
		log.Printf("Error creating client: %v", err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.ClientsCreatedTotal.Inc()
	if actor := middleware.GetUsername(r.Context()); actor != "" {
		log.Printf("Client %d created by %s", id, actor)
	}
	jsonOK(w, http.StatusCreated, map[string]interface{}{"id": id}, "Client created successfully")
}

// Update applies a sparse patch to an existing client.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonFail(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if req.ID == 0 {
		jsonFail(w, http.StatusBadRequest, "Client ID is required")
		return
	}

	subStatus := first(req.SubStatus, req.SubStatusCamel)
	if subStatus != nil && !models.ValidSubStatus(*subStatus) {
		jsonFail(w, http.StatusBadRequest, "Invalid sub status")
		return
	}

	patch := &models.ClientPatch{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		Address:        req.Address,
		IsConfirmed:    boolPtr(first(req.IsConfirmed, req.IsConfirmedCamel)),
		IsLost:         boolPtr(first(req.IsLost, req.IsLostCamel)),
		SubStatus:      subStatus,
		StartDate:      first(req.StartDate, req.StartDateCamel),
		EndDate:        first(req.EndDate, req.EndDateCamel),
		Budget:         req.Budget,
		Projects:       req.Projects,
		ActiveProjects: first(req.ActiveProjects, req.ActiveProjectsCamel),
	}

	if patch.IsEmpty() {
		jsonFail(w, http.StatusBadRequest, "No fields to update")
		return
	}

	matched, err := h.storage.Clients().Update(r.Context(), req.ID, patch)
	if err != nil {
		log.Printf("Error updating client %d: %v", req.ID, err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !matched {
		jsonFail(w, http.StatusNotFound, "Client not found")
		return
	}

	jsonOK(w, http.StatusOK, nil, "Client updated successfully")
}

// Delete removes a client, refusing when projects still reference it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		jsonFail(w, http.StatusBadRequest, "Client ID is required")
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		jsonFail(w, http.StatusBadRequest, "Client ID is required")
		return
	}

	matched, err := h.storage.Clients().Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrHasProjects) {
			jsonFail(w, http.StatusBadRequest, "Cannot delete client with existing projects. Delete projects first.")
			return
		}
		log.Printf("Error deleting client %d: %v", id, err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !matched {
		jsonFail(w, http.StatusNotFound, "Client not found")
		return
	}

	jsonOK(w, http.StatusOK, nil, "Client deleted successfully")
}
