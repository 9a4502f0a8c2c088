package handlers

import (
	"net/http"

	"learnquest/internal/models"
	"learnquest/internal/service"
)

// AuthHandler handles login, registration and logout against the local
// mock directory
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// Login verifies credentials and returns the identity with a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Role.Valid() {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "role must be kid or teacher"})
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		respondServiceError(w, err, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
}

// Register creates a new account and signs it in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		respondServiceError(w, err, "Registration failed")
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{User: user, Token: token})
}

// Logout clears the mirrored identity
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context()); err != nil {
		respondServiceError(w, err, "Logout failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
