package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
)

// writeServiceError maps a service failure onto a response. action completes
// "Failed to ..." in the log line and in the 500 message.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, action string) {
	var ve *apperrors.ValidationError
	var writeErr error

	switch {
	case errors.As(err, &ve):
		writeErr = ValidationErrorResponse(w, ve.Fields)
	case errors.Is(err, apperrors.ErrConflict):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "conflict", "A record with these values already exists")
	case errors.Is(err, apperrors.ErrInvalidReference):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "invalid_reference", "A referenced record does not exist")
	case errors.Is(err, apperrors.ErrUnauthorized):
		writeErr = ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
	case errors.Is(err, apperrors.ErrForbidden):
		writeErr = ErrorResponse(w, http.StatusForbidden, "forbidden", "You do not have permission to perform this action")
	case errors.Is(err, apperrors.ErrNotFound):
		writeErr = ErrorResponse(w, http.StatusNotFound, "not_found", "Not found")
	default:
		logger.Error("Failed to "+action, zap.Error(err))
		writeErr = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to "+action)
	}

	if writeErr != nil {
		logger.Error("Failed to write error response", zap.Error(writeErr))
	}
}

// writeResponse encodes data and logs encoding failures.
func writeResponse(w http.ResponseWriter, logger *zap.Logger, statusCode int, data interface{}) {
	if err := WriteJSON(w, statusCode, data); err != nil {
		logger.Error("Failed to write response", zap.Error(err))
	}
}
