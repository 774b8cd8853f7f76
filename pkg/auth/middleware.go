package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/logging"
)

// Middleware provides HTTP authentication middleware.
// It is thin and delegates authentication logic to AuthService.
// It must run inside database.WithScopeContext because loading the user needs a connection.
type Middleware struct {
	authService AuthService
	logger      *zap.Logger
}

// NewMiddleware creates a new auth middleware with the given AuthService.
func NewMiddleware(authService AuthService, logger *zap.Logger) *Middleware {
	return &Middleware{
		authService: authService,
		logger:      logger,
	}
}

// RequireAuth rejects requests without a valid bearer token.
// Sets claims and user in context for downstream handlers.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, user, err := m.authService.ValidateRequest(r)
		if err != nil {
			m.reject(w, r, err)
			return
		}
		next(w, r.WithContext(WithUser(r.Context(), user, claims)))
	}
}

// OptionalAuth lets anonymous requests through but rejects a token that is present and invalid.
func (m *Middleware) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, user, err := m.authService.ValidateRequest(r)
		if errors.Is(err, ErrMissingAuthorization) {
			next(w, r)
			return
		}
		if err != nil {
			m.reject(w, r, err)
			return
		}
		next(w, r.WithContext(WithUser(r.Context(), user, claims)))
	}
}

func (m *Middleware) reject(w http.ResponseWriter, r *http.Request, err error) {
	if IsCredentialError(err) {
		m.unauthorized(w, "Authentication required")
		return
	}
	m.logger.Error("Failed to authenticate request",
		zap.String("path", r.URL.Path),
		zap.String("authorization", logging.SanitizeAuthHeader(r.Header.Get("Authorization"))),
		zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "internal_error",
		"message": "Failed to authenticate request",
	})
}

// unauthorized returns a 401 response with JSON error body.
func (m *Middleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": message,
	})
}
