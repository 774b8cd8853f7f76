package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
)

// Common authentication errors.
var (
	ErrMissingAuthorization = errors.New("missing authorization")
	ErrInvalidAuthFormat    = errors.New("invalid authorization header format")
	ErrInactiveUser         = errors.New("user inactive or deleted")
)

// UserLookup loads the account a token refers to.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService defines the interface for authentication operations.
type AuthService interface {
	// ValidateRequest extracts the bearer token from the Authorization header,
	// verifies it, and loads the active user it belongs to.
	ValidateRequest(r *http.Request) (*Claims, *models.User, error)
}

type authService struct {
	tokens TokenIssuer
	users  UserLookup
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(tokens TokenIssuer, users UserLookup, logger *zap.Logger) AuthService {
	return &authService{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

func (s *authService) ValidateRequest(r *http.Request) (*Claims, *models.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil, ErrMissingAuthorization
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		s.logger.Debug("Invalid Authorization header format",
			zap.String("path", r.URL.Path))
		return nil, nil, ErrInvalidAuthFormat
	}

	claims, err := s.tokens.Parse(parts[1])
	if err != nil {
		s.logger.Debug("JWT validation failed",
			zap.Error(err),
			zap.String("path", r.URL.Path))
		return nil, nil, err
	}

	userID, _ := claims.UserID()
	user, err := s.users.GetByID(r.Context(), userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, ErrInactiveUser
	}
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, ErrInactiveUser
	}

	return claims, user, nil
}

// IsCredentialError reports whether err means the caller's credentials were rejected,
// as opposed to a failure loading the user.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrMissingAuthorization) ||
		errors.Is(err, ErrInvalidAuthFormat) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrInactiveUser)
}

var _ AuthService = (*authService)(nil)
