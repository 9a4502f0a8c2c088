package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"learnquest/internal/credentials"
	"learnquest/internal/models"
	"learnquest/internal/repository"
	"learnquest/internal/security"
	"learnquest/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles the locally-mocked authentication: a user
// directory in the device store, bcrypt-checked passwords, and a
// current-identity mirror for restart recovery. No external identity
// provider is involved.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *security.TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register creates a new account in the local directory. Email
// uniqueness is scoped per role, matching the role tabs on the login
// screen.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, string, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, "", err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, "", err
	}
	if !role.Valid() {
		return nil, "", &validation.ValidationError{Field: "role", Message: "role must be kid or teacher"}
	}

	accounts, err := s.userRepo.Accounts(ctx)
	if err != nil {
		return nil, "", err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range accounts {
		if a.Role == role && strings.EqualFold(a.Email, email) {
			return nil, "", ErrEmailTaken
		}
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.UserAccount{
		User: models.User{
			ID:        uuid.NewString(),
			Name:      strings.TrimSpace(name),
			Role:      role,
			Email:     email,
			CreatedAt: time.Now(),
		},
		PasswordHash: hash,
	}

	accounts = append(accounts, account)
	if err := s.userRepo.SaveAccounts(ctx, accounts); err != nil {
		return nil, "", err
	}

	return s.establishSession(ctx, account.User)
}

// Login verifies credentials against the local directory and
// establishes the current identity
func (s *AuthService) Login(ctx context.Context, email, password string, role models.Role) (*models.User, string, error) {
	accounts, err := s.userRepo.Accounts(ctx)
	if err != nil {
		return nil, "", err
	}

	for _, a := range accounts {
		if a.Role != role || !strings.EqualFold(a.Email, strings.TrimSpace(email)) {
			continue
		}
		if !security.CheckPassword(password, a.PasswordHash) {
			return nil, "", ErrInvalidCredentials
		}
		return s.establishSession(ctx, a.User)
	}

	return nil, "", ErrInvalidCredentials
}

// establishSession mirrors the identity to the store and issues a token
func (s *AuthService) establishSession(ctx context.Context, user models.User) (*models.User, string, error) {
	if err := s.userRepo.SetCurrentUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Name, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Logout clears the mirrored identity. Issued tokens simply expire.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.userRepo.ClearCurrentUser(ctx)
}

// GetUser returns a directory user by id
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	accounts, err := s.userRepo.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.ID == id {
			user := a.User
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// UpdateProfile merges patch fields into the user's directory entry
// and refreshes the identity mirror when the user is the current one
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error) {
	if patch.Name != nil {
		if err := validation.ValidateName(*patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Email != nil {
		if err := validation.ValidateEmail(*patch.Email); err != nil {
			return nil, err
		}
	}

	accounts, err := s.userRepo.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		if accounts[i].ID != userID {
			continue
		}
		if patch.Name != nil {
			accounts[i].Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*patch.Email))
			// Same per-role uniqueness as registration, otherwise the
			// other account becomes unreachable at login
			for j := range accounts {
				if j != i && accounts[j].Role == accounts[i].Role && strings.EqualFold(accounts[j].Email, email) {
					return nil, ErrEmailTaken
				}
			}
			accounts[i].Email = email
		}
		if patch.ProfilePicture != nil {
			accounts[i].ProfilePicture = *patch.ProfilePicture
			if err := s.userRepo.SetProfilePhoto(ctx, *patch.ProfilePicture); err != nil {
				return nil, err
			}
		}

		if err := s.userRepo.SaveAccounts(ctx, accounts); err != nil {
			return nil, err
		}

		updated := accounts[i].User
		if current, err := s.userRepo.CurrentUser(ctx); err == nil && current != nil && current.ID == userID {
			if err := s.userRepo.SetCurrentUser(ctx, updated); err != nil {
				return nil, err
			}
		}
		return &updated, nil
	}

	return nil, ErrUserNotFound
}

// RestoreIdentity rehydrates the last signed-in identity from the
// store. It returns nil when nothing usable is stored, in which case
// the user must authenticate again.
func (s *AuthService) RestoreIdentity(ctx context.Context) (*models.User, error) {
	return s.userRepo.CurrentUser(ctx)
}

// SeedDemoAccounts populates an empty directory with two kid accounts
// and one teacher account, logging the generated credentials so a
// fresh install is usable immediately.
func (s *AuthService) SeedDemoAccounts(ctx context.Context) error {
	accounts, err := s.userRepo.Accounts(ctx)
	if err != nil {
		return err
	}
	if len(accounts) > 0 {
		return nil
	}

	seeds := []struct {
		name  string
		email string
		role  models.Role
	}{
		{"Alex", "kid@demo.learnquest", models.RoleKid},
		{"Emma", "kid2@demo.learnquest", models.RoleKid},
		{"Ms. Johnson", "teacher@demo.learnquest", models.RoleTeacher},
	}

	for _, seed := range seeds {
		password, err := credentials.GenerateKidPassword()
		if err != nil {
			return fmt.Errorf("failed to generate demo password: %w", err)
		}
		hash, err := security.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}

		username := ""
		if seed.role == models.RoleKid {
			if username, err = credentials.GenerateKidUsername(); err != nil {
				return fmt.Errorf("failed to generate demo username: %w", err)
			}
		}

		accounts = append(accounts, models.UserAccount{
			User: models.User{
				ID:        uuid.NewString(),
				Name:      seed.name,
				Role:      seed.role,
				Username:  username,
				Email:     seed.email,
				CreatedAt: time.Now(),
			},
			PasswordHash: hash,
		})

		log.Printf("Seeded demo %s account: email=%s password=%s", seed.role, seed.email, password)
	}

	return s.userRepo.SaveAccounts(ctx, accounts)
}
