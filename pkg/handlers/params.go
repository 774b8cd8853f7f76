package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ParseID extracts the numeric resource ID from the request path.
// Returns the ID and true on success, or 0 and false after writing a 404:
// a path that cannot name a row names no row.
// Expects path parameter: id
func ParseID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Not found"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into dst. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, logger *zap.Logger) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		message := "Invalid request body"
		if errors.Is(err, io.EOF) {
			message = "Request body is empty"
		}
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", message); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return false
	}
	return true
}

// isPartial reports whether the request is a PATCH, where absent fields keep their values.
func isPartial(r *http.Request) bool {
	return r.Method == http.MethodPatch
}
