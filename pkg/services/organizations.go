package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/repositories"
)

// OrganizationInput is the writable part of an organization.
// Absent fields are nil; the owner is never client-controlled.
type OrganizationInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Address     *string `json:"address"`
	Country     *string `json:"country"`
}

// OrganizationService defines the interface for organization operations.
type OrganizationService interface {
	// Create stores a new organization owned by userID.
	Create(ctx context.Context, userID int64, in *OrganizationInput) (*models.Organization, error)
	Get(ctx context.Context, id int64) (*models.Organization, error)
	List(ctx context.Context) ([]*models.Organization, error)
	// Update applies in to an organization owned by userID. With partial set,
	// absent fields keep their value; otherwise required fields must be present.
	Update(ctx context.Context, userID, id int64, in *OrganizationInput, partial bool) (*models.Organization, error)
}

type organizationService struct {
	orgRepo repositories.OrganizationRepository
	logger  *zap.Logger
}

// NewOrganizationService creates a new organization service with dependencies.
func NewOrganizationService(orgRepo repositories.OrganizationRepository, logger *zap.Logger) OrganizationService {
	return &organizationService{
		orgRepo: orgRepo,
		logger:  logger,
	}
}

func (s *organizationService) apply(org *models.Organization, in *OrganizationInput, mode writeMode) error {
	ve := &apperrors.ValidationError{}
	setRequiredText(ve, "name", &org.Name, in.Name, mode, maxCharLength)
	setOptionalText(ve, "description", &org.Description, in.Description, 0)
	setURL(ve, "website", &org.Website, in.Website)
	setOptionalText(ve, "address", &org.Address, in.Address, maxCharLength)
	setRequiredText(ve, "country", &org.Country, in.Country, mode, maxCharLength)
	return ve.OrNil()
}

func (s *organizationService) Create(ctx context.Context, userID int64, in *OrganizationInput) (*models.Organization, error) {
	org := &models.Organization{}
	if err := s.apply(org, in, fullWrite); err != nil {
		return nil, err
	}

	org.UserID = userID

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, asValidationError(err)
	}

	s.logger.Info("Created organization",
		zap.Int64("organization_id", org.ID),
		zap.Int64("user_id", userID))

	return org, nil
}

func (s *organizationService) Get(ctx context.Context, id int64) (*models.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) List(ctx context.Context) ([]*models.Organization, error) {
	return s.orgRepo.List(ctx)
}

func (s *organizationService) Update(ctx context.Context, userID, id int64, in *OrganizationInput, partial bool) (*models.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(org, userID); err != nil {
		return nil, err
	}

	if err := s.apply(org, in, modeFor(partial)); err != nil {
		return nil, err
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, asValidationError(err)
	}
	return org, nil
}

var _ OrganizationService = (*organizationService)(nil)
