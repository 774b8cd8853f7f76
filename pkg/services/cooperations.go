package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/repositories"
)

// CooperationInput is the writable part of a cooperation. User may be supplied
// but must equal the caller; start_date is always assigned by the server.
type CooperationInput struct {
	Project   *int64           `json:"project"`
	User      *int64           `json:"user"`
	Voluntary Nullable[int64]  `json:"voluntary"`
	Name      *string          `json:"name"`
	EndDate   Nullable[string] `json:"end_date"`
	IsPrivate *bool            `json:"is_private"`
}

// CooperationService defines the interface for cooperation operations.
type CooperationService interface {
	// Create stores a cooperation on a project whose organization userID owns.
	// The organization-side user is the caller.
	Create(ctx context.Context, userID int64, in *CooperationInput) (*models.Cooperation, error)
	// Get returns a cooperation visible to viewerID (0 for anonymous callers).
	// Private cooperations the viewer may not see are reported as not found.
	Get(ctx context.Context, viewerID, id int64) (*models.Cooperation, error)
	// List returns public cooperations only.
	List(ctx context.Context) ([]*models.Cooperation, error)
	Update(ctx context.Context, userID, id int64, in *CooperationInput, partial bool) (*models.Cooperation, error)
}

type cooperationService struct {
	coopRepo    repositories.CooperationRepository
	projectRepo repositories.ProjectRepository
	orgRepo     repositories.OrganizationRepository
	userRepo    repositories.UserRepository
	logger      *zap.Logger
}

// NewCooperationService creates a new cooperation service with dependencies.
func NewCooperationService(
	coopRepo repositories.CooperationRepository,
	projectRepo repositories.ProjectRepository,
	orgRepo repositories.OrganizationRepository,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) CooperationService {
	return &cooperationService{
		coopRepo:    coopRepo,
		projectRepo: projectRepo,
		orgRepo:     orgRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// apply validates in onto coop and returns the requested project id, or 0 if none was supplied.
func (s *cooperationService) apply(ctx context.Context, userID int64, coop *models.Cooperation, in *CooperationInput, mode writeMode) (int64, error) {
	ve := &apperrors.ValidationError{}

	projectID, _ := requireRef(ve, "project", in.Project, mode)
	ve.Merge(validateParticipant(in.User, userID))
	setRequiredText(ve, "name", &coop.Name, in.Name, mode, maxCharLength)

	if in.Voluntary.Set {
		if in.Voluntary.Value == nil {
			coop.VoluntaryID = nil
		} else if id, ok := requireRef(ve, "voluntary", in.Voluntary.Value, mode); ok {
			exists, err := s.userRepo.Exists(ctx, id)
			if err != nil {
				return 0, err
			}
			if !exists {
				ve.Add("voluntary", msgDoesNotExist(id))
			} else {
				coop.VoluntaryID = &id
			}
		}
	}

	if endDate, ok := parseOptionalDate(ve, "end_date", in.EndDate); ok {
		coop.EndDate = endDate
	}

	if in.IsPrivate != nil {
		coop.IsPrivate = *in.IsPrivate
	}

	return projectID, ve.OrNil()
}

// checkProjectChain loads projectID and its organization and requires userID to own it.
func (s *cooperationService) checkProjectChain(ctx context.Context, projectID, userID int64) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewValidationError("project", msgDoesNotExist(projectID))
	}
	if err != nil {
		return err
	}

	org, err := s.orgRepo.GetByID(ctx, project.OrganizationID)
	if err != nil {
		return fmt.Errorf("failed to load organization of project %d: %w", projectID, err)
	}

	return validateProjectChain(project, org, userID)
}

func (s *cooperationService) Create(ctx context.Context, userID int64, in *CooperationInput) (*models.Cooperation, error) {
	coop := &models.Cooperation{IsPrivate: true}
	projectID, err := s.apply(ctx, userID, coop, in, fullWrite)
	if err != nil {
		return nil, err
	}

	if err := s.checkProjectChain(ctx, projectID, userID); err != nil {
		s.logger.Debug("Rejected cooperation for project",
			zap.Int64("project_id", projectID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, err
	}

	coop.ProjectID = projectID
	coop.UserID = &userID

	if err := s.coopRepo.Create(ctx, coop); err != nil {
		return nil, asValidationError(err)
	}

	s.logger.Info("Created cooperation",
		zap.Int64("cooperation_id", coop.ID),
		zap.Int64("project_id", projectID),
		zap.Bool("private", coop.IsPrivate))

	return coop, nil
}

func (s *cooperationService) Get(ctx context.Context, viewerID, id int64) (*models.Cooperation, error) {
	coop, err := s.coopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	visible, err := s.isVisible(ctx, coop, viewerID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, fmt.Errorf("cooperation %d: %w", id, apperrors.ErrNotFound)
	}
	return coop, nil
}

// isVisible reports whether viewerID may see coop.
func (s *cooperationService) isVisible(ctx context.Context, coop *models.Cooperation, viewerID int64) (bool, error) {
	return cooperationVisibleTo(ctx, s.projectRepo, coop, viewerID)
}

// cooperationVisibleTo applies the cooperation visibility rule: public ones are seen
// by anyone, private ones only by a participant or the owner of the project.
func cooperationVisibleTo(ctx context.Context, projectRepo repositories.ProjectRepository, coop *models.Cooperation, viewerID int64) (bool, error) {
	if !coop.IsPrivate {
		return true, nil
	}
	if viewerID == 0 {
		return false, nil
	}
	if coop.HasParticipant(viewerID) {
		return true, nil
	}

	project, err := projectRepo.GetByID(ctx, coop.ProjectID)
	if err != nil {
		return false, err
	}
	return project.IsOwnedBy(viewerID), nil
}

// requireEditor allows the organization-side participant to edit coop. Once that
// user is gone the owner of the project's organization takes over.
func (s *cooperationService) requireEditor(ctx context.Context, coop *models.Cooperation, userID int64) error {
	if coop.UserID != nil {
		return requireOwner(coop, userID)
	}
	err := s.checkProjectChain(ctx, coop.ProjectID, userID)
	if apperrors.IsValidation(err) {
		return fmt.Errorf("cooperation %d: %w", coop.ID, apperrors.ErrForbidden)
	}
	return err
}

func (s *cooperationService) List(ctx context.Context) ([]*models.Cooperation, error) {
	return s.coopRepo.ListPublic(ctx)
}

func (s *cooperationService) Update(ctx context.Context, userID, id int64, in *CooperationInput, partial bool) (*models.Cooperation, error) {
	coop, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireEditor(ctx, coop, userID); err != nil {
		return nil, err
	}

	projectID, err := s.apply(ctx, userID, coop, in, modeFor(partial))
	if err != nil {
		return nil, err
	}

	if projectID != 0 && projectID != coop.ProjectID {
		if err := s.checkProjectChain(ctx, projectID, userID); err != nil {
			return nil, err
		}
		coop.ProjectID = projectID
	}

	if err := s.coopRepo.Update(ctx, coop); err != nil {
		return nil, asValidationError(err)
	}
	return coop, nil
}

var _ CooperationService = (*cooperationService)(nil)
