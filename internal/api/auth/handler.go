package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/vikrin/workflow/internal/metrics"
	"github.com/vikrin/workflow/internal/models"
	"github.com/vikrin/workflow/internal/storage"
)

// Handler handles authentication endpoints.
type Handler struct {
	storage    storage.Storage
	jwtService *JWTService
}

// NewHandler creates a new auth handler.
func NewHandler(store storage.Storage, jwt *JWTService) *Handler {
	return &Handler{
		storage:    store,
		jwtService: jwt,
	}
}

// Response helpers (local to avoid import cycle with api package)

func jsonFail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	}); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInfo is the account summary returned on login.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
	Token   string   `json:"token,omitempty"`
}

// Login handles user login. The legacy fallback table is checked before
// the stored password so the founder accounts work even without a
// users row; stored passwords are verified as bcrypt first, then as
// plain text for rows migrated unhashed.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonFail(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if req.Username == "" || req.Password == "" {
		jsonFail(w, http.StatusBadRequest, "Username and password required")
		return
	}

	ctx := r.Context()
	user, err := h.storage.Users().GetByUsername(ctx, req.Username)
	if err != nil {
		log.Printf("login error: get user: %v", err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}

	if checkFallback(req.Username, req.Password) {
		h.loginSuccess(w, user, req.Username)
		return
	}

	if user == nil {
		log.Printf("login failed: user %s not found", req.Username)
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		jsonFail(w, http.StatusUnauthorized, "User not found")
		return
	}

	valid := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) == nil
	if !valid {
		// Legacy rows may carry plain-text passwords.
		valid = req.Password == user.Password
	}
	if !valid {
		log.Printf("login failed: invalid password for user %s", req.Username)
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		jsonFail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.loginSuccess(w, user, req.Username)
}

func (h *Handler) loginSuccess(w http.ResponseWriter, user *models.User, username string) {
	var userID int64
	if user != nil {
		userID = user.ID
		username = user.Username
	}

	token, err := h.jwtService.GenerateToken(userID, username)
	if err != nil {
		log.Printf("login error: generate token: %v", err)
		jsonFail(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("login success: user %s", username)
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(LoginResponse{
		Success: true,
		User:    UserInfo{ID: userID, Username: username},
		Token:   token,
	})
}
