package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/auth"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/services"
)

type PortfolioItemResponse struct {
	ID          int64  `json:"id"`
	User        int64  `json:"user"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

func newPortfolioItemResponse(p *models.PortfolioItem) PortfolioItemResponse {
	return PortfolioItemResponse{
		ID:          p.ID,
		User:        p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Link:        p.Link,
	}
}

// PortfolioItemsHandler handles portfolio item HTTP requests.
type PortfolioItemsHandler struct {
	itemService services.PortfolioItemService
	logger      *zap.Logger
}

// NewPortfolioItemsHandler creates a new portfolio items handler.
func NewPortfolioItemsHandler(itemService services.PortfolioItemService, logger *zap.Logger) *PortfolioItemsHandler {
	return &PortfolioItemsHandler{
		itemService: itemService,
		logger:      logger,
	}
}

// RegisterRoutes registers the portfolio items handler's routes on the given mux.
func (h *PortfolioItemsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scope ScopeMiddleware) {
	resourceRoutes{
		list:   authMiddleware.OptionalAuth(h.List),
		create: authMiddleware.RequireAuth(h.Create),
		get:    authMiddleware.OptionalAuth(h.Get),
		update: authMiddleware.RequireAuth(h.Update),
	}.register(mux, "portfolio_item", scope)
}

func (h *PortfolioItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "list portfolio items")
		return
	}

	response := make([]PortfolioItemResponse, 0, len(items))
	for _, it := range items {
		response = append(response, newPortfolioItemResponse(it))
	}
	writeResponse(w, h.logger, http.StatusOK, response)
}

func (h *PortfolioItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "create portfolio item")
		return
	}

	var in services.PortfolioItemInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	item, err := h.itemService.Create(r.Context(), userID, &in)
	if err != nil {
		writeServiceError(w, h.logger, err, "create portfolio item")
		return
	}

	writeResponse(w, h.logger, http.StatusCreated, newPortfolioItemResponse(item))
}

func (h *PortfolioItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	item, err := h.itemService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "get portfolio item")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newPortfolioItemResponse(item))
}

func (h *PortfolioItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "update portfolio item")
		return
	}

	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var in services.PortfolioItemInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	item, err := h.itemService.Update(r.Context(), userID, id, &in, isPartial(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "update portfolio item")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newPortfolioItemResponse(item))
}
