package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/repositories"
)

// ReviewInput is the writable part of a review. The reviewer is always the caller.
type ReviewInput struct {
	Cooperation *int64  `json:"cooperation"`
	Reviewed    *int64  `json:"reviewed"`
	Name        *string `json:"name"`
	Review      *string `json:"review"`
	Comment     *string `json:"comment"`
}

// ReviewService defines the interface for review operations.
type ReviewService interface {
	// Create stores a review written by userID.
	Create(ctx context.Context, userID int64, in *ReviewInput) (*models.Review, error)
	Get(ctx context.Context, id int64) (*models.Review, error)
	List(ctx context.Context) ([]*models.Review, error)
	// Update applies in to a review written by userID.
	Update(ctx context.Context, userID, id int64, in *ReviewInput, partial bool) (*models.Review, error)
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	coopRepo    repositories.CooperationRepository
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
	logger      *zap.Logger
}

// NewReviewService creates a new review service with dependencies.
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	coopRepo repositories.CooperationRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		coopRepo:    coopRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// apply validates in onto review written by userID. A cooperation the reviewer
// cannot see is reported as nonexistent, the same answer its detail route gives.
func (s *reviewService) apply(ctx context.Context, userID int64, review *models.Review, in *ReviewInput, mode writeMode) error {
	ve := &apperrors.ValidationError{}

	if id, ok := requireRef(ve, "cooperation", in.Cooperation, mode); ok && id != review.CooperationID {
		visible, err := s.cooperationVisible(ctx, id, userID)
		if err != nil {
			return err
		}
		if !visible {
			ve.Add("cooperation", msgDoesNotExist(id))
		} else {
			review.CooperationID = id
		}
	}

	if id, ok := requireRef(ve, "reviewed", in.Reviewed, mode); ok {
		exists, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			ve.Add("reviewed", msgDoesNotExist(id))
		} else {
			review.ReviewedID = id
		}
	}

	setRequiredText(ve, "name", &review.Name, in.Name, mode, maxCharLength)
	setRequiredText(ve, "review", &review.Review, in.Review, mode, 0)
	setOptionalText(ve, "comment", &review.Comment, in.Comment, 0)

	return ve.OrNil()
}

func (s *reviewService) cooperationVisible(ctx context.Context, id, userID int64) (bool, error) {
	coop, err := s.coopRepo.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return cooperationVisibleTo(ctx, s.projectRepo, coop, userID)
}

func (s *reviewService) Create(ctx context.Context, userID int64, in *ReviewInput) (*models.Review, error) {
	review := &models.Review{}
	if err := s.apply(ctx, userID, review, in, fullWrite); err != nil {
		return nil, err
	}

	review.ReviewerID = userID

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, asValidationError(err)
	}

	s.logger.Info("Created review",
		zap.Int64("review_id", review.ID),
		zap.Int64("cooperation_id", review.CooperationID),
		zap.Int64("reviewer_id", userID))

	return review, nil
}

func (s *reviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

func (s *reviewService) List(ctx context.Context) ([]*models.Review, error) {
	return s.reviewRepo.List(ctx)
}

func (s *reviewService) Update(ctx context.Context, userID, id int64, in *ReviewInput, partial bool) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(review, userID); err != nil {
		return nil, err
	}

	if err := s.apply(ctx, userID, review, in, modeFor(partial)); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, asValidationError(err)
	}
	return review, nil
}

var _ ReviewService = (*reviewService)(nil)
