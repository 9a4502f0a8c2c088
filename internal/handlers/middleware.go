package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"learnquest/internal/models"
	"learnquest/internal/security"
	"learnquest/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	tokens      *security.TokenIssuer
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, tokens *security.TokenIssuer) *Middleware {
	return &Middleware{
		authService: authService,
		tokens:      tokens,
		limiter:     security.NewRateLimiter(10, time.Minute),
	}
}

// RequireAuth validates the bearer token and loads the user into the
// request context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}

		claims, err := m.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}

		user, err := m.authService.GetUser(r.Context(), claims.Subject)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "account no longer exists"})
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole gates a handler to one role. Content mutations are
// teacher-only; progress mutations are kid-only.
func (m *Middleware) RequireRole(role models.Role, next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil || user.Role != role {
			respondJSON(w, http.StatusForbidden, errorResponse{Error: "not allowed for this role"})
			return
		}
		next(w, r)
	})
}

// RequireKid gates a handler to the kid role
func (m *Middleware) RequireKid(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireRole(models.RoleKid, next)
}

// RequireTeacher gates a handler to the teacher role
func (m *Middleware) RequireTeacher(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireRole(models.RoleTeacher, next)
}

// RateLimit throttles a handler per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.GetClientIP(r)) {
			respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many attempts, slow down"})
			return
		}
		next(w, r)
	}
}

// UserFromContext returns the authenticated user, or nil
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
