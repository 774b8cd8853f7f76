package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/auth"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/services"
)

type ReviewResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Cooperation int64  `json:"cooperation"`
	Reviewer    int64  `json:"reviewer"`
	Reviewed    int64  `json:"reviewed"`
	Review      string `json:"review"`
	Comment     string `json:"comment"`
}

func newReviewResponse(rv *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:          rv.ID,
		Name:        rv.Name,
		Cooperation: rv.CooperationID,
		Reviewer:    rv.ReviewerID,
		Reviewed:    rv.ReviewedID,
		Review:      rv.Review,
		Comment:     rv.Comment,
	}
}

// ReviewsHandler handles review HTTP requests.
type ReviewsHandler struct {
	reviewService services.ReviewService
	logger        *zap.Logger
}

// NewReviewsHandler creates a new reviews handler.
func NewReviewsHandler(reviewService services.ReviewService, logger *zap.Logger) *ReviewsHandler {
	return &ReviewsHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// RegisterRoutes registers the reviews handler's routes on the given mux.
func (h *ReviewsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scope ScopeMiddleware) {
	resourceRoutes{
		list:   authMiddleware.OptionalAuth(h.List),
		create: authMiddleware.RequireAuth(h.Create),
		get:    authMiddleware.OptionalAuth(h.Get),
		update: authMiddleware.RequireAuth(h.Update),
	}.register(mux, "review", scope)
}

func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "list reviews")
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		response = append(response, newReviewResponse(rv))
	}
	writeResponse(w, h.logger, http.StatusOK, response)
}

// Create handles POST /api/reviews
// The reviewer is the caller regardless of the body.
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "create review")
		return
	}

	var in services.ReviewInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	review, err := h.reviewService.Create(r.Context(), userID, &in)
	if err != nil {
		writeServiceError(w, h.logger, err, "create review")
		return
	}

	writeResponse(w, h.logger, http.StatusCreated, newReviewResponse(review))
}

func (h *ReviewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	review, err := h.reviewService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "get review")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newReviewResponse(review))
}

func (h *ReviewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "update review")
		return
	}

	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var in services.ReviewInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	review, err := h.reviewService.Update(r.Context(), userID, id, &in, isPartial(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "update review")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newReviewResponse(review))
}
