package auth

import (
	"context"
	"fmt"

	"github.com/xemob/coopnet/pkg/apperrors"
)

// GetUserIDFromContext returns the authenticated user's id, or 0 for anonymous requests.
func GetUserIDFromContext(ctx context.Context) int64 {
	user, ok := GetUser(ctx)
	if !ok {
		return 0
	}
	return user.ID
}

// RequireUserIDFromContext returns the authenticated user's id or an error wrapping
// apperrors.ErrUnauthorized.
func RequireUserIDFromContext(ctx context.Context) (int64, error) {
	userID := GetUserIDFromContext(ctx)
	if userID == 0 {
		return 0, fmt.Errorf("user not found in context: %w", apperrors.ErrUnauthorized)
	}
	return userID, nil
}
