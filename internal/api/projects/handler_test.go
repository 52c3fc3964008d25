package projects

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vikrin/workflow/internal/models"
	"github.com/vikrin/workflow/internal/storage"
)

// Mock repositories
type mockProjectRepository struct {
	projects         []*models.Project
	nextID           int64
	lastStatusUpdate *models.ProjectStatus
	lastFullUpdate   *models.ProjectUpdate
	listError        error
	createError      error
	updateError      error
	deleteError      error
}

func (m *mockProjectRepository) List(ctx context.Context, clientID int64) ([]*models.Project, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	if clientID == 0 {
		return m.projects, nil
	}
	var result []*models.Project
	for _, p := range m.projects {
		if p.ClientID == clientID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	for _, p := range m.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockProjectRepository) Create(ctx context.Context, project *models.Project) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	m.nextID++
	project.ID = m.nextID
	m.projects = append(m.projects, project)
	return project.ID, nil
}

func (m *mockProjectRepository) UpdateStatus(ctx context.Context, id int64, status models.ProjectStatus) (bool, error) {
	if m.updateError != nil {
		return false, m.updateError
	}
	m.lastStatusUpdate = &status
	for _, p := range m.projects {
		if p.ID == id {
			p.Status = status
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProjectRepository) Update(ctx context.Context, id int64, upd *models.ProjectUpdate) (bool, error) {
	if m.updateError != nil {
		return false, m.updateError
	}
	m.lastFullUpdate = upd
	for _, p := range m.projects {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteError != nil {
		return false, m.deleteError
	}
	for i, p := range m.projects {
		if p.ID == id {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type mockStorage struct {
	projectRepo *mockProjectRepository
}

func (m *mockStorage) Open() error                         { return nil }
func (m *mockStorage) Close() error                        { return nil }
func (m *mockStorage) Migrate() error                      { return nil }
func (m *mockStorage) Users() storage.UserRepository       { return nil }
func (m *mockStorage) Clients() storage.ClientRepository   { return nil }
func (m *mockStorage) Projects() storage.ProjectRepository { return m.projectRepo }
func (m *mockStorage) Status() storage.StatusRepository    { return nil }
func (m *mockStorage) Stats() storage.StatsRepository      { return nil }

func newMockStorage() (*mockStorage, *mockProjectRepository) {
	projectRepo := &mockProjectRepository{}
	return &mockStorage{projectRepo: projectRepo}, projectRepo
}

func seedProjects(repo *mockProjectRepository) {
	now := time.Now()
	budget := 1200.0
	repo.projects = []*models.Project{
		{ID: 1, Name: "Website", Type: "web", ClientID: 1, Status: models.ProjectInProgress, Progress: 40, Budget: &budget, ClientName: "Acme", CreatedAt: now},
		{ID: 2, Name: "Mobile App", Type: "mobile", ClientID: 2, Status: models.ProjectCompleted, Progress: 100, CreatedAt: now},
	}
	repo.nextID = 2
}

func TestList_All(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	seedProjects(mockRepo)
	handler := NewHandler(mockStore)

	req := httptest.NewRequest("GET", "/projects", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data []*models.Project `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("items count = %d, want 2", len(resp.Data))
	}
	if resp.Data[0].ClientName != "Acme" {
		t.Errorf("client_name = %q, want 'Acme'", resp.Data[0].ClientName)
	}
}

func TestList_ByClient(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	seedProjects(mockRepo)
	handler := NewHandler(mockStore)

	req := httptest.NewRequest("GET", "/projects?client_id=2", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	var resp struct {
		Data []*models.Project `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ClientID != 2 {
		t.Errorf("unexpected result: %+v", resp.Data)
	}
}

func TestList_InvalidClientID(t *testing.T) {
	mockStore, _ := newMockStorage()
	handler := NewHandler(mockStore)

	req := httptest.NewRequest("GET", "/projects?client_id=abc", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreate_Valid(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	handler := NewHandler(mockStore)

	body := `{"name": "Redesign", "client_id": 3, "type": "web", "progress": 150}`
	req := httptest.NewRequest("POST", "/projects", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	created := mockRepo.projects[0]
	if created.Status != models.ProjectInProgress {
		t.Errorf("status = %q, want default in-progress", created.Status)
	}
	if created.Progress != 100 {
		t.Errorf("progress = %d, want clamped to 100", created.Progress)
	}
	if !strings.Contains(rec.Body.String(), "Project created successfully") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestCreate_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no name", `{"client_id": 1}`},
		{"no client", `{"name": "X"}`},
		{"empty", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore, _ := newMockStorage()
			handler := NewHandler(mockStore)

			req := httptest.NewRequest("POST", "/projects", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if !strings.Contains(rec.Body.String(), "Project name and client ID are required") {
				t.Errorf("unexpected body: %s", rec.Body.String())
			}
		})
	}
}

func TestCreate_InvalidStatus(t *testing.T) {
	mockStore, _ := newMockStorage()
	handler := NewHandler(mockStore)

	body := `{"name": "X", "client_id": 1, "status": "cancelled"}`
	req := httptest.NewRequest("POST", "/projects", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdate_StatusOnly(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	seedProjects(mockRepo)
	handler := NewHandler(mockStore)

	body := `{"id": 1, "status": "on-hold"}`
	req := httptest.NewRequest("PUT", "/projects", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if mockRepo.lastStatusUpdate == nil || *mockRepo.lastStatusUpdate != models.ProjectOnHold {
		t.Error("status-only change must use the single-column path")
	}
	if mockRepo.lastFullUpdate != nil {
		t.Error("status-only change must not rewrite the row")
	}
}

func TestUpdate_FullRowPreservesUnsetFields(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	seedProjects(mockRepo)
	handler := NewHandler(mockStore)

	body := `{"id": 1, "name": "Website v2", "progress": 60}`
	req := httptest.NewRequest("PUT", "/projects", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	upd := mockRepo.lastFullUpdate
	if upd == nil {
		t.Fatal("no full update reached the repository")
	}
	if upd.Name != "Website v2" {
		t.Errorf("name = %q, want 'Website v2'", upd.Name)
	}
	if upd.Progress != 60 {
		t.Errorf("progress = %d, want 60", upd.Progress)
	}
	if upd.Type != "web" {
		t.Errorf("type = %q, unset field must keep current value", upd.Type)
	}
	if upd.Budget == nil || *upd.Budget != 1200.0 {
		t.Error("unset budget must keep current value")
	}
	if upd.Status != models.ProjectInProgress {
		t.Errorf("status = %q, unset status must keep current value", upd.Status)
	}
}

func TestUpdate_StatusWithOtherFieldsIsFull(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	seedProjects(mockRepo)
	handler := NewHandler(mockStore)

	body := `{"id": 1, "status": "completed", "progress": 100}`
	req := httptest.NewRequest("PUT", "/projects", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if mockRepo.lastStatusUpdate != nil {
		t.Error("status plus other fields must not use the single-column path")
	}
	if mockRepo.lastFullUpdate == nil || mockRepo.lastFullUpdate.Status != models.ProjectCompleted {
		t.Error("full update must carry the new status")
	}
}

func TestUpdate_MissingID(t *testing.T) {
	mockStore, _ := newMockStorage()
	handler := NewHandler(mockStore)

	req := httptest.NewRequest("PUT", "/projects", strings.NewReader(`{"status": "completed"}`))
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Project ID is required") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestUpdate_NotFound(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	seedProjects(mockRepo)
	handler := NewHandler(mockStore)

	body := `{"id": 77, "status": "completed"}`
	req := httptest.NewRequest("PUT", "/projects", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "Project not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestDelete_Valid(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	seedProjects(mockRepo)
	handler := NewHandler(mockStore)

	req := httptest.NewRequest("DELETE", "/projects?id=1", nil)
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if len(mockRepo.projects) != 1 {
		t.Errorf("projects left = %d, want 1", len(mockRepo.projects))
	}
}

func TestDelete_MissingID(t *testing.T) {
	mockStore, _ := newMockStorage()
	handler := NewHandler(mockStore)

	req := httptest.NewRequest("DELETE", "/projects", nil)
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDelete_NotFound(t *testing.T) {
	mockStore, mockRepo := newMockStorage()
	seedProjects(mockRepo)
	handler := NewHandler(mockStore)

	req := httptest.NewRequest("DELETE", "/projects?id=9", nil)
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
