package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jlawman/investment-advisory/internal/auth"
	"github.com/jlawman/investment-advisory/internal/config"
	"log/slog"
)

// AuthHandler handles demo session authentication
type AuthHandler struct {
	config       config.AuthConfig
	passwordHash string
	logger       *slog.Logger
}

// NewAuthHandler creates a new authentication handler. The demo password is
// hashed once at construction so login uses a constant-time bcrypt compare.
func NewAuthHandler(cfg config.AuthConfig, logger *slog.Logger) *AuthHandler {
	hash, err := auth.HashPassword(cfg.DemoPassword)
	if err != nil {
		logger.Error("failed to hash demo password", "error", err)
	}
	return &AuthHandler{
		config:       cfg,
		passwordHash: hash,
		logger:       logger,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers for all responses
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !auth.CheckPassword(req.Password, h.passwordHash) {
		h.logger.Warn("failed login attempt", "ip", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.config.DefaultUserID, h.config.JWTSecret, h.config.TokenDuration)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("successful login", "ip", r.RemoteAddr)

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		UserID:    h.config.DefaultUserID,
		ExpiresAt: time.Now().Add(h.config.TokenDuration),
	})
}

// ValidateToken handles GET /api/auth/validate
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Identity resolution happens in the middleware; by here the caller is
	// either the token's user or the demo fallback.
	userID, _ := auth.GetUserIDFromContext(r.Context())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  true,
		"userId": userID,
	})
}
