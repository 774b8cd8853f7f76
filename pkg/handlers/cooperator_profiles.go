package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/auth"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/services"
)

type CooperatorProfileResponse struct {
	ID          int64  `json:"id"`
	User        int64  `json:"user"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
	Website     string `json:"website"`
}

func newCooperatorProfileResponse(p *models.CooperatorProfile) CooperatorProfileResponse {
	return CooperatorProfileResponse{
		ID:          p.ID,
		User:        p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Skills:      p.Skills,
		Website:     p.Website,
	}
}

// CooperatorProfilesHandler handles cooperator profile HTTP requests.
type CooperatorProfilesHandler struct {
	profileService services.CooperatorProfileService
	logger         *zap.Logger
}

// NewCooperatorProfilesHandler creates a new cooperator profiles handler.
func NewCooperatorProfilesHandler(profileService services.CooperatorProfileService, logger *zap.Logger) *CooperatorProfilesHandler {
	return &CooperatorProfilesHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// RegisterRoutes registers the cooperator profiles handler's routes on the given mux.
func (h *CooperatorProfilesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scope ScopeMiddleware) {
	resourceRoutes{
		list:   authMiddleware.OptionalAuth(h.List),
		create: authMiddleware.RequireAuth(h.Create),
		get:    authMiddleware.OptionalAuth(h.Get),
		update: authMiddleware.RequireAuth(h.Update),
	}.register(mux, "cooperator_profile", scope)
}

// List handles GET /api/cooperator-profiles
func (h *CooperatorProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "list cooperator profiles")
		return
	}

	response := make([]CooperatorProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		response = append(response, newCooperatorProfileResponse(p))
	}
	writeResponse(w, h.logger, http.StatusOK, response)
}

// Create handles POST /api/cooperator-profiles
func (h *CooperatorProfilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "create cooperator profile")
		return
	}

	var in services.CooperatorProfileInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	profile, err := h.profileService.Create(r.Context(), userID, &in)
	if err != nil {
		writeServiceError(w, h.logger, err, "create cooperator profile")
		return
	}

	writeResponse(w, h.logger, http.StatusCreated, newCooperatorProfileResponse(profile))
}

// Get handles GET /api/cooperator-profiles/{id}
func (h *CooperatorProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "get cooperator profile")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newCooperatorProfileResponse(profile))
}

// Update handles PUT and PATCH /api/cooperator-profiles/{id}
func (h *CooperatorProfilesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "update cooperator profile")
		return
	}

	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var in services.CooperatorProfileInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	profile, err := h.profileService.Update(r.Context(), userID, id, &in, isPartial(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "update cooperator profile")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newCooperatorProfileResponse(profile))
}
