package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"learnquest/internal/models"
	"learnquest/internal/storage"
)

// UserRepository persists the local mock user directory and the
// current-identity mirror used for restart recovery.
type UserRepository struct {
	store storage.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Accounts returns all accounts in the local directory
func (r *UserRepository) Accounts(ctx context.Context) ([]models.UserAccount, error) {
	raw, ok, err := r.store.Get(ctx, storage.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to load user directory: %w", err)
	}
	if !ok {
		return []models.UserAccount{}, nil
	}

	var accounts []models.UserAccount
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		log.Printf("Malformed user directory, treating as empty: %v", err)
		return []models.UserAccount{}, nil
	}
	if accounts == nil {
		accounts = []models.UserAccount{}
	}
	return accounts, nil
}

// SaveAccounts persists the full user directory
func (r *UserRepository) SaveAccounts(ctx context.Context, accounts []models.UserAccount) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to encode user directory: %w", err)
	}
	return r.store.Set(ctx, storage.KeyUsers, string(data))
}

// CurrentUser returns the mirrored identity, or nil when absent or when
// the stored role marker disagrees with the stored identity. The
// double-write check forces re-authentication after a torn write.
func (r *UserRepository) CurrentUser(ctx context.Context) (*models.User, error) {
	rawUser, ok, err := r.store.Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	if !ok {
		return nil, nil
	}

	rawRole, ok, err := r.store.Get(ctx, storage.KeyCurrentRole)
	if err != nil {
		return nil, fmt.Errorf("failed to load current role: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		log.Printf("Malformed current user data, discarding: %v", err)
		return nil, nil
	}

	if string(user.Role) != rawRole {
		log.Printf("Stored role marker %q does not match identity role %q, discarding", rawRole, user.Role)
		return nil, nil
	}

	return &user, nil
}

// SetCurrentUser mirrors the identity and its role marker to the store
func (r *UserRepository) SetCurrentUser(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode current user: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyCurrentUser, string(data)); err != nil {
		return err
	}
	return r.store.Set(ctx, storage.KeyCurrentRole, string(user.Role))
}

// ClearCurrentUser removes the mirrored identity and role marker
func (r *UserRepository) ClearCurrentUser(ctx context.Context) error {
	if err := r.store.Remove(ctx, storage.KeyCurrentUser); err != nil {
		return err
	}
	return r.store.Remove(ctx, storage.KeyCurrentRole)
}

// ProfilePhoto returns the stored profile photo reference, if any
func (r *UserRepository) ProfilePhoto(ctx context.Context) (string, error) {
	raw, ok, err := r.store.Get(ctx, storage.KeyProfilePhoto)
	if err != nil {
		return "", fmt.Errorf("failed to load profile photo: %w", err)
	}
	if !ok {
		return "", nil
	}
	return raw, nil
}

// SetProfilePhoto stores a profile photo reference
func (r *UserRepository) SetProfilePhoto(ctx context.Context, uri string) error {
	return r.store.Set(ctx, storage.KeyProfilePhoto, uri)
}
