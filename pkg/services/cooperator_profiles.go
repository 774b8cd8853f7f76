package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/repositories"
)

// CooperatorProfileInput is the writable part of a cooperator profile.
type CooperatorProfileInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Skills      *string `json:"skills"`
	Website     *string `json:"website"`
}

// CooperatorProfileService defines the interface for cooperator profile operations.
type CooperatorProfileService interface {
	// Create stores the profile of userID. A user may only have one.
	Create(ctx context.Context, userID int64, in *CooperatorProfileInput) (*models.CooperatorProfile, error)
	Get(ctx context.Context, id int64) (*models.CooperatorProfile, error)
	List(ctx context.Context) ([]*models.CooperatorProfile, error)
	Update(ctx context.Context, userID, id int64, in *CooperatorProfileInput, partial bool) (*models.CooperatorProfile, error)
}

type cooperatorProfileService struct {
	profileRepo repositories.CooperatorProfileRepository
	logger      *zap.Logger
}

// NewCooperatorProfileService creates a new cooperator profile service with dependencies.
func NewCooperatorProfileService(profileRepo repositories.CooperatorProfileRepository, logger *zap.Logger) CooperatorProfileService {
	return &cooperatorProfileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (s *cooperatorProfileService) apply(p *models.CooperatorProfile, in *CooperatorProfileInput, mode writeMode) error {
	ve := &apperrors.ValidationError{}
	setRequiredText(ve, "name", &p.Name, in.Name, mode, maxCharLength)
	setRequiredText(ve, "description", &p.Description, in.Description, mode, 0)
	setOptionalText(ve, "skills", &p.Skills, in.Skills, 0)
	setURL(ve, "website", &p.Website, in.Website)
	return ve.OrNil()
}

func (s *cooperatorProfileService) Create(ctx context.Context, userID int64, in *CooperatorProfileInput) (*models.CooperatorProfile, error) {
	profile := &models.CooperatorProfile{}
	if err := s.apply(profile, in, fullWrite); err != nil {
		return nil, err
	}

	profile.UserID = userID

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, asValidationError(err)
	}

	s.logger.Info("Created cooperator profile",
		zap.Int64("profile_id", profile.ID),
		zap.Int64("user_id", userID))

	return profile, nil
}

func (s *cooperatorProfileService) Get(ctx context.Context, id int64) (*models.CooperatorProfile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *cooperatorProfileService) List(ctx context.Context) ([]*models.CooperatorProfile, error) {
	return s.profileRepo.List(ctx)
}

func (s *cooperatorProfileService) Update(ctx context.Context, userID, id int64, in *CooperatorProfileInput, partial bool) (*models.CooperatorProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(profile, userID); err != nil {
		return nil, err
	}

	if err := s.apply(profile, in, modeFor(partial)); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, asValidationError(err)
	}
	return profile, nil
}

var _ CooperatorProfileService = (*cooperatorProfileService)(nil)
