package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/repositories"
)

// MessageInput is the writable part of a message. The sender is always the caller;
// the recipient is fixed once sent.
type MessageInput struct {
	Recipient *int64  `json:"recipient"`
	Message   *string `json:"message"`
}

// MessageService defines the interface for direct message operations.
// Messages are private to their sender and recipient.
type MessageService interface {
	// Create stores a message sent by userID.
	Create(ctx context.Context, userID int64, in *MessageInput) (*models.Message, error)
	// Get returns a message userID sent or received.
	Get(ctx context.Context, userID, id int64) (*models.Message, error)
	// List returns the messages userID sent or received, newest first.
	List(ctx context.Context, userID int64) ([]*models.Message, error)
	// Update replaces the text of a message userID sent.
	Update(ctx context.Context, userID, id int64, in *MessageInput, partial bool) (*models.Message, error)
}

type messageService struct {
	msgRepo  repositories.MessageRepository
	userRepo repositories.UserRepository
	logger   *zap.Logger
}

// NewMessageService creates a new message service with dependencies.
func NewMessageService(
	msgRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) MessageService {
	return &messageService{
		msgRepo:  msgRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *messageService) Create(ctx context.Context, userID int64, in *MessageInput) (*models.Message, error) {
	msg := &models.Message{}
	ve := &apperrors.ValidationError{}

	if id, ok := requireRef(ve, "recipient", in.Recipient, fullWrite); ok {
		exists, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			ve.Add("recipient", msgDoesNotExist(id))
		}
		msg.RecipientID = id
	}
	setRequiredText(ve, "message", &msg.Message, in.Message, fullWrite, 0)

	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	msg.UserID = userID

	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, asValidationError(err)
	}

	s.logger.Debug("Sent message",
		zap.Int64("message_id", msg.ID),
		zap.Int64("sender_id", userID),
		zap.Int64("recipient_id", msg.RecipientID))

	return msg, nil
}

func (s *messageService) Get(ctx context.Context, userID, id int64) (*models.Message, error) {
	msg, err := s.msgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !msg.IsVisibleTo(userID) {
		return nil, fmt.Errorf("message %d: %w", id, apperrors.ErrNotFound)
	}
	return msg, nil
}

func (s *messageService) List(ctx context.Context, userID int64) ([]*models.Message, error) {
	return s.msgRepo.ListForUser(ctx, userID)
}

func (s *messageService) Update(ctx context.Context, userID, id int64, in *MessageInput, partial bool) (*models.Message, error) {
	msg, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(msg, userID); err != nil {
		return nil, err
	}

	ve := &apperrors.ValidationError{}
	setRequiredText(ve, "message", &msg.Message, in.Message, modeFor(partial), 0)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	if err := s.msgRepo.UpdateText(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

var _ MessageService = (*messageService)(nil)
