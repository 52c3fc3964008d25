package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vikrin/workflow/internal/models"
	"github.com/vikrin/workflow/internal/storage"
)

// Mock repositories
type mockUserRepository struct {
	users    []*models.User
	getError error
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error { return nil }

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) SetPassword(ctx context.Context, username, passwordHash string) error {
	return nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	return m.users, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

type mockStorage struct {
	userRepo *mockUserRepository
}

func (m *mockStorage) Open() error                         { return nil }
func (m *mockStorage) Close() error                        { return nil }
func (m *mockStorage) Migrate() error                      { return nil }
func (m *mockStorage) Users() storage.UserRepository       { return m.userRepo }
func (m *mockStorage) Clients() storage.ClientRepository   { return nil }
func (m *mockStorage) Projects() storage.ProjectRepository { return nil }
func (m *mockStorage) Status() storage.StatusRepository    { return nil }
func (m *mockStorage) Stats() storage.StatsRepository      { return nil }

func newTestHandler(repo *mockUserRepository) *Handler {
	jwtService := NewJWTService([]byte("test-secret-key"), time.Hour)
	return NewHandler(&mockStorage{userRepo: repo}, jwtService)
}

func doLogin(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)
	return rec
}

func TestLogin_FallbackWithoutUserRow(t *testing.T) {
	handler := newTestHandler(&mockUserRepository{})

	rec := doLogin(t, handler, `{"username": "Pavan", "password": "pavan123"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.User.Username != "Pavan" {
		t.Errorf("username = %q, want 'Pavan'", resp.User.Username)
	}
	if resp.Token == "" {
		t.Error("expected a token on successful login")
	}
}

func TestLogin_FallbackBeatsStoredPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("completely-different"), bcrypt.DefaultCost)
	repo := &mockUserRepository{users: []*models.User{
		{ID: 7, Username: "Vineeth", Password: string(hash)},
	}}
	handler := newTestHandler(repo)

	rec := doLogin(t, handler, `{"username": "Vineeth", "password": "vineeth123"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.ID != 7 {
		t.Errorf("user id = %d, want the stored row's id 7", resp.User.ID)
	}
}

func TestLogin_BcryptPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cure-pass1"), bcrypt.DefaultCost)
	repo := &mockUserRepository{users: []*models.User{
		{ID: 1, Username: "alice", Password: string(hash)},
	}}
	handler := newTestHandler(repo)

	rec := doLogin(t, handler, `{"username": "alice", "password": "s3cure-pass1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestLogin_PlaintextLegacyPassword(t *testing.T) {
	repo := &mockUserRepository{users: []*models.User{
		{ID: 2, Username: "bob", Password: "oldplain"},
	}}
	handler := newTestHandler(repo)

	rec := doLogin(t, handler, `{"username": "bob", "password": "oldplain"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &mockUserRepository{users: []*models.User{
		{ID: 2, Username: "bob", Password: "oldplain"},
	}}
	handler := newTestHandler(repo)

	rec := doLogin(t, handler, `{"username": "bob", "password": "nope"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	handler := newTestHandler(&mockUserRepository{})

	rec := doLogin(t, handler, `{"username": "ghost", "password": "whatever"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "User not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestLogin_MissingFields(t *testing.T) {
	handler := newTestHandler(&mockUserRepository{})

	tests := []string{
		`{"username": "", "password": "x"}`,
		`{"username": "x", "password": ""}`,
		`{}`,
	}
	for _, body := range tests {
		rec := doLogin(t, handler, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want %d", body, rec.Code, http.StatusBadRequest)
		}
		if !strings.Contains(rec.Body.String(), "Username and password required") {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	handler := newTestHandler(&mockUserRepository{})

	rec := doLogin(t, handler, `{"username": `)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Invalid JSON format") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestLogin_StorageError(t *testing.T) {
	handler := newTestHandler(&mockUserRepository{getError: errors.New("db locked")})

	rec := doLogin(t, handler, `{"username": "alice", "password": "pw"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestCheckFallback(t *testing.T) {
	if !checkFallback("Pranay", "pranay123") {
		t.Error("known pair must match")
	}
	if checkFallback("Pranay", "wrong") {
		t.Error("wrong password must not match")
	}
	if checkFallback("pavan", "pavan123") {
		t.Error("username comparison is case sensitive")
	}
}
