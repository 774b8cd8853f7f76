package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/repositories"
)

// ProjectInput is the writable part of a project.
type ProjectInput struct {
	Organization *int64  `json:"organization"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	RefLink      *string `json:"ref_link"`
}

// ProjectService defines the interface for project operations.
type ProjectService interface {
	// Create stores a project for an organization that userID owns.
	Create(ctx context.Context, userID int64, in *ProjectInput) (*models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	// Update applies in to a project created by userID. Moving the project to
	// another organization requires owning that organization too.
	Update(ctx context.Context, userID, id int64, in *ProjectInput, partial bool) (*models.Project, error)
}

type projectService struct {
	projectRepo repositories.ProjectRepository
	orgRepo     repositories.OrganizationRepository
	logger      *zap.Logger
}

// NewProjectService creates a new project service with dependencies.
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	orgRepo repositories.OrganizationRepository,
	logger *zap.Logger,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		orgRepo:     orgRepo,
		logger:      logger,
	}
}

// apply validates in onto project and returns the requested organization id, or 0 if none was supplied.
func (s *projectService) apply(project *models.Project, in *ProjectInput, mode writeMode) (int64, error) {
	ve := &apperrors.ValidationError{}
	orgID, _ := requireRef(ve, "organization", in.Organization, mode)
	setRequiredText(ve, "name", &project.Name, in.Name, mode, maxCharLength)
	setOptionalText(ve, "description", &project.Description, in.Description, 0)
	setURL(ve, "ref_link", &project.RefLink, in.RefLink)
	return orgID, ve.OrNil()
}

// ownedOrganization loads orgID and checks that userID owns it.
func (s *projectService) ownedOrganization(ctx context.Context, orgID, userID int64) error {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewValidationError("organization", msgDoesNotExist(orgID))
	}
	if err != nil {
		return err
	}
	return validateOrganizationOwner(org, userID)
}

func (s *projectService) Create(ctx context.Context, userID int64, in *ProjectInput) (*models.Project, error) {
	project := &models.Project{}
	orgID, err := s.apply(project, in, fullWrite)
	if err != nil {
		return nil, err
	}

	if err := s.ownedOrganization(ctx, orgID, userID); err != nil {
		s.logger.Debug("Rejected project for organization",
			zap.Int64("organization_id", orgID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, err
	}

	project.UserID = userID
	project.OrganizationID = orgID

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, asValidationError(err)
	}

	s.logger.Info("Created project",
		zap.Int64("project_id", project.ID),
		zap.Int64("organization_id", orgID),
		zap.Int64("user_id", userID))

	return project, nil
}

func (s *projectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*models.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *projectService) Update(ctx context.Context, userID, id int64, in *ProjectInput, partial bool) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(project, userID); err != nil {
		return nil, err
	}

	orgID, err := s.apply(project, in, modeFor(partial))
	if err != nil {
		return nil, err
	}

	if orgID != 0 && orgID != project.OrganizationID {
		if err := s.ownedOrganization(ctx, orgID, userID); err != nil {
			return nil, err
		}
		project.OrganizationID = orgID
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, asValidationError(err)
	}
	return project, nil
}

var _ ProjectService = (*projectService)(nil)
