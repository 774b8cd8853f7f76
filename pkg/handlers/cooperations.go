package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/auth"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/services"
)

// CooperationResponse is the public representation of a cooperation.
// Dates are calendar dates in models.DateLayout.
type CooperationResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Project   int64   `json:"project"`
	User      *int64  `json:"user"`
	Voluntary *int64  `json:"voluntary"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsPrivate bool    `json:"is_private"`
}

func newCooperationResponse(c *models.Cooperation) CooperationResponse {
	resp := CooperationResponse{
		ID:        c.ID,
		Name:      c.Name,
		Project:   c.ProjectID,
		User:      c.UserID,
		Voluntary: c.VoluntaryID,
		StartDate: c.StartDate.Format(models.DateLayout),
		IsPrivate: c.IsPrivate,
	}
	if c.EndDate != nil {
		end := c.EndDate.Format(models.DateLayout)
		resp.EndDate = &end
	}
	return resp
}

// CooperationsHandler handles cooperation HTTP requests.
type CooperationsHandler struct {
	coopService services.CooperationService
	logger      *zap.Logger
}

// NewCooperationsHandler creates a new cooperations handler.
func NewCooperationsHandler(coopService services.CooperationService, logger *zap.Logger) *CooperationsHandler {
	return &CooperationsHandler{
		coopService: coopService,
		logger:      logger,
	}
}

// RegisterRoutes registers the cooperations handler's routes on the given mux.
// Detail uses optional auth so participants can see their private cooperations.
func (h *CooperationsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scope ScopeMiddleware) {
	resourceRoutes{
		list:   authMiddleware.OptionalAuth(h.List),
		create: authMiddleware.RequireAuth(h.Create),
		get:    authMiddleware.OptionalAuth(h.Get),
		update: authMiddleware.RequireAuth(h.Update),
	}.register(mux, "cooperation", scope)
}

// List handles GET /api/cooperations
// Only public cooperations are listed, whoever asks.
func (h *CooperationsHandler) List(w http.ResponseWriter, r *http.Request) {
	coops, err := h.coopService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "list cooperations")
		return
	}

	response := make([]CooperationResponse, 0, len(coops))
	for _, c := range coops {
		response = append(response, newCooperationResponse(c))
	}
	writeResponse(w, h.logger, http.StatusOK, response)
}

// Create handles POST /api/cooperations
func (h *CooperationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "create cooperation")
		return
	}

	var in services.CooperationInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	coop, err := h.coopService.Create(r.Context(), userID, &in)
	if err != nil {
		writeServiceError(w, h.logger, err, "create cooperation")
		return
	}

	writeResponse(w, h.logger, http.StatusCreated, newCooperationResponse(coop))
}

// Get handles GET /api/cooperations/{id}
func (h *CooperationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	coop, err := h.coopService.Get(r.Context(), auth.GetUserIDFromContext(r.Context()), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "get cooperation")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newCooperationResponse(coop))
}

// Update handles PUT and PATCH /api/cooperations/{id}
// Only the organization-side user may update.
func (h *CooperationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "update cooperation")
		return
	}

	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var in services.CooperationInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	coop, err := h.coopService.Update(r.Context(), userID, id, &in, isPartial(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "update cooperation")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newCooperationResponse(coop))
}
