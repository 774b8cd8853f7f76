package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/auth"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/services"
)

// ProjectResponse is the standard response for project endpoints.
type ProjectResponse struct {
	ID           int64  `json:"id"`
	User         int64  `json:"user"`
	Organization int64  `json:"organization"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	RefLink      string `json:"ref_link"`
}

func newProjectResponse(p *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		User:         p.UserID,
		Organization: p.OrganizationID,
		Name:         p.Name,
		Description:  p.Description,
		RefLink:      p.RefLink,
	}
}

// ProjectsHandler handles project-related HTTP requests.
type ProjectsHandler struct {
	projectService services.ProjectService
	logger         *zap.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(projectService services.ProjectService, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// RegisterRoutes registers the projects handler's routes on the given mux.
func (h *ProjectsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scope ScopeMiddleware) {
	resourceRoutes{
		list:   authMiddleware.OptionalAuth(h.List),
		create: authMiddleware.RequireAuth(h.Create),
		get:    authMiddleware.OptionalAuth(h.Get),
		update: authMiddleware.RequireAuth(h.Update),
	}.register(mux, "project", scope)
}

// List handles GET /api/projects
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "list projects")
		return
	}

	response := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		response = append(response, newProjectResponse(p))
	}
	writeResponse(w, h.logger, http.StatusOK, response)
}

// Create handles POST /api/projects
// The referenced organization must be owned by the caller.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "create project")
		return
	}

	var in services.ProjectInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	project, err := h.projectService.Create(r.Context(), userID, &in)
	if err != nil {
		writeServiceError(w, h.logger, err, "create project")
		return
	}

	writeResponse(w, h.logger, http.StatusCreated, newProjectResponse(project))
}

// Get handles GET /api/projects/{id}
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	project, err := h.projectService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "get project")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newProjectResponse(project))
}

// Update handles PUT and PATCH /api/projects/{id}
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "update project")
		return
	}

	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var in services.ProjectInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	project, err := h.projectService.Update(r.Context(), userID, id, &in, isPartial(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "update project")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newProjectResponse(project))
}
