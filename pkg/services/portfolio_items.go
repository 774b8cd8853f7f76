package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/repositories"
)

// PortfolioItemInput is the writable part of a portfolio item.
type PortfolioItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
}

// PortfolioItemService defines the interface for portfolio item operations.
type PortfolioItemService interface {
	Create(ctx context.Context, userID int64, in *PortfolioItemInput) (*models.PortfolioItem, error)
	Get(ctx context.Context, id int64) (*models.PortfolioItem, error)
	List(ctx context.Context) ([]*models.PortfolioItem, error)
	Update(ctx context.Context, userID, id int64, in *PortfolioItemInput, partial bool) (*models.PortfolioItem, error)
}

type portfolioItemService struct {
	itemRepo repositories.PortfolioItemRepository
	logger   *zap.Logger
}

// NewPortfolioItemService creates a new portfolio item service with dependencies.
func NewPortfolioItemService(itemRepo repositories.PortfolioItemRepository, logger *zap.Logger) PortfolioItemService {
	return &portfolioItemService{
		itemRepo: itemRepo,
		logger:   logger,
	}
}

func (s *portfolioItemService) apply(item *models.PortfolioItem, in *PortfolioItemInput, mode writeMode) error {
	ve := &apperrors.ValidationError{}
	setRequiredText(ve, "name", &item.Name, in.Name, mode, maxCharLength)
	setOptionalText(ve, "description", &item.Description, in.Description, 0)
	setURL(ve, "link", &item.Link, in.Link)
	return ve.OrNil()
}

func (s *portfolioItemService) Create(ctx context.Context, userID int64, in *PortfolioItemInput) (*models.PortfolioItem, error) {
	item := &models.PortfolioItem{}
	if err := s.apply(item, in, fullWrite); err != nil {
		return nil, err
	}

	item.UserID = userID

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, asValidationError(err)
	}

	s.logger.Info("Created portfolio item",
		zap.Int64("portfolio_item_id", item.ID),
		zap.Int64("user_id", userID))

	return item, nil
}

func (s *portfolioItemService) Get(ctx context.Context, id int64) (*models.PortfolioItem, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *portfolioItemService) List(ctx context.Context) ([]*models.PortfolioItem, error) {
	return s.itemRepo.List(ctx)
}

func (s *portfolioItemService) Update(ctx context.Context, userID, id int64, in *PortfolioItemInput, partial bool) (*models.PortfolioItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(item, userID); err != nil {
		return nil, err
	}

	if err := s.apply(item, in, modeFor(partial)); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, asValidationError(err)
	}
	return item, nil
}

var _ PortfolioItemService = (*portfolioItemService)(nil)
