package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/auth"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/services"
)

// TokenRequest is the request body for POST /api/users/token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a bearer token for the Authorization header.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public representation of an account.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

// UsersHandler handles account HTTP requests.
type UsersHandler struct {
	userService services.UserService
	tokens      auth.TokenIssuer
	logger      *zap.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(userService services.UserService, tokens auth.TokenIssuer, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		userService: userService,
		tokens:      tokens,
		logger:      logger,
	}
}

// RegisterRoutes registers the users handler's routes on the given mux.
func (h *UsersHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scope ScopeMiddleware) {
	users := collectionPath("user")
	mux.HandleFunc("POST "+users, scope(h.Create))
	mux.HandleFunc("POST "+users+"/token", scope(h.Token))
	mux.HandleFunc("GET "+users+"/me", scope(authMiddleware.RequireAuth(h.Me)))
	mux.HandleFunc("PATCH "+users+"/me", scope(authMiddleware.RequireAuth(h.UpdateMe)))
}

// Create handles POST /api/users
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateUserInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	user, err := h.userService.Create(r.Context(), &in)
	if err != nil {
		writeServiceError(w, h.logger, err, "create user")
		return
	}

	writeResponse(w, h.logger, http.StatusCreated, newUserResponse(user))
}

// Token handles POST /api/users/token
// Exchanges email and password for a bearer token.
func (h *UsersHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err, "authenticate")
		return
	}

	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		writeServiceError(w, h.logger, err, "issue token")
		return
	}

	h.logger.Debug("Issued token", zap.Int64("user_id", user.ID))
	writeResponse(w, h.logger, http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}

// Me handles GET /api/users/me
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	writeResponse(w, h.logger, http.StatusOK, newUserResponse(user))
}

// UpdateMe handles PATCH /api/users/me
func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "update account")
		return
	}

	var in services.UpdateUserInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	user, err := h.userService.UpdateMe(r.Context(), userID, &in)
	if err != nil {
		writeServiceError(w, h.logger, err, "update account")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newUserResponse(user))
}
