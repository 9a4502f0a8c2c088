package handlers

import (
	"net/http"

	"learnquest/internal/models"
	"learnquest/internal/repository"
	"learnquest/internal/service"
)

// ProfileHandler handles the profile and settings screens
type ProfileHandler struct {
	authService *service.AuthService
	userRepo    *repository.UserRepository
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(authService *service.AuthService, userRepo *repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{authService: authService, userRepo: userRepo}
}

// Show returns the authenticated user's profile
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	photo, err := h.userRepo.ProfilePhoto(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to load profile photo")
		return
	}

	respondJSON(w, http.StatusOK, ProfileView{User: user, Photo: photo})
}

// Update merges patch fields into the profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var patch models.ProfilePatch
	if !decodeBody(w, r, &patch) {
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user.ID, patch)
	if err != nil {
		respondServiceError(w, err, "Failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, ProfileView{User: updated, Photo: updated.ProfilePicture})
}
