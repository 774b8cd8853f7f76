package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/auth"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/services"
)

type MessageResponse struct {
	ID        int64     `json:"id"`
	User      int64     `json:"user"`
	Recipient int64     `json:"recipient"`
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
}

func newMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		User:      m.UserID,
		Recipient: m.RecipientID,
		Message:   m.Message,
		Date:      m.Date,
	}
}

// MessagesHandler handles direct message HTTP requests.
// Every route requires authentication.
type MessagesHandler struct {
	msgService services.MessageService
	logger     *zap.Logger
}

// NewMessagesHandler creates a new messages handler.
func NewMessagesHandler(msgService services.MessageService, logger *zap.Logger) *MessagesHandler {
	return &MessagesHandler{
		msgService: msgService,
		logger:     logger,
	}
}

// RegisterRoutes registers the messages handler's routes on the given mux.
func (h *MessagesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scope ScopeMiddleware) {
	resourceRoutes{
		list:   authMiddleware.RequireAuth(h.List),
		create: authMiddleware.RequireAuth(h.Create),
		get:    authMiddleware.RequireAuth(h.Get),
		update: authMiddleware.RequireAuth(h.Update),
	}.register(mux, "message", scope)
}

// List handles GET /api/messages
// Returns the messages the caller sent or received.
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "list messages")
		return
	}

	msgs, err := h.msgService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "list messages")
		return
	}

	response := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		response = append(response, newMessageResponse(m))
	}
	writeResponse(w, h.logger, http.StatusOK, response)
}

// Create handles POST /api/messages
func (h *MessagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "send message")
		return
	}

	var in services.MessageInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	msg, err := h.msgService.Create(r.Context(), userID, &in)
	if err != nil {
		writeServiceError(w, h.logger, err, "send message")
		return
	}

	writeResponse(w, h.logger, http.StatusCreated, newMessageResponse(msg))
}

// Get handles GET /api/messages/{id}
func (h *MessagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "get message")
		return
	}

	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	msg, err := h.msgService.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.logger, err, "get message")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newMessageResponse(msg))
}

// Update handles PUT and PATCH /api/messages/{id}
// Only the sender may edit, and only the text changes.
func (h *MessagesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "update message")
		return
	}

	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var in services.MessageInput
	if !decodeJSON(w, r, &in, h.logger) {
		return
	}

	msg, err := h.msgService.Update(r.Context(), userID, id, &in, isPartial(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "update message")
		return
	}

	writeResponse(w, h.logger, http.StatusOK, newMessageResponse(msg))
}
