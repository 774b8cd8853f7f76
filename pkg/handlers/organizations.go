package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/auth"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/services"
)

// OrganizationResponse is the public representation of an organization.
type OrganizationResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Address     string `json:"address"`
	Country     string `json:"country"`
}

func newOrganizationResponse(o *models.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Website:     o.Website,
		Address:     o.Address,
		Country:     o.Country,
	}
}

// OrganizationsHandler handles organization HTTP requests.
type OrganizationsHandler struct {
	orgService services.OrganizationService
	logger     *zap.Logger
}

// NewOrganizationsHandler creates a new organizations handler.
func NewOrganizationsHandler(orgService services.OrganizationService, logger *zap.Logger) *OrganizationsHandler {
	return &OrganizationsHandler{
		orgService: orgService,
		logger:     logger,
	}
}

// RegisterRoutes registers the organizations handler's routes on the given mux.
// Reads are public; writes require authentication.
func (h *OrganizationsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scope ScopeMiddleware) {
	resourceRoutes{
		list:   authMiddleware.OptionalAuth(h.List),
		create: authMiddleware.RequireAuth(h.Create),
		get:    authMiddleware.OptionalAuth(h.Get),
		update: authMiddleware.RequireAuth(h.Update),
	}.register(mux, "organization", scope)
}

// List handles GET /api/organizations
func (h *OrganizationsHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "list organizations")
		return
	}

	response := make([]OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		response = append(response, newOrganizationResponse(o))
	}
	writeResponse(w, h.logger, http.StatusOK, response)
}

// Create handles POST /api/organizations
// The caller becomes the owner.
func (h *OrganizationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "create organization")
		return
	}

	var in services.OrganizationInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	org, err := h.orgService.Create(r.Context(), userID, &in)
	if err != nil {
		writeServiceError(w, h.logger, err, "create organization")
		return
	}

	writeResponse(w, h.logger, http.StatusCreated, newOrganizationResponse(org))
}

// Get handles GET /api/organizations/{id}
func (h *OrganizationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	org, err := h.orgService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "get organization")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newOrganizationResponse(org))
}

// Update handles PUT and PATCH /api/organizations/{id}
// Only the owner may update.
func (h *OrganizationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "update organization")
		return
	}

	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var in services.OrganizationInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	org, err := h.orgService.Update(r.Context(), userID, id, &in, isPartial(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "update organization")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newOrganizationResponse(org))
}
