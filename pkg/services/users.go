package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/auth"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/repositories"
)

// MinPasswordLength is the shortest password accepted for new or changed passwords.
const MinPasswordLength = 8

const msgBadCredentials = "Unable to authenticate with provided credentials"

// CreateUserInput is the payload for account creation.
type CreateUserInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
}

// UpdateUserInput is the payload for changing the caller's own account.
// Email is immutable once the account exists.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// UserService defines the interface for account operations.
type UserService interface {
	// Create registers an active, non-staff account.
	Create(ctx context.Context, in *CreateUserInput) (*models.User, error)
	// CreateSuperuser registers an account with staff and superuser flags set.
	CreateSuperuser(ctx context.Context, email, password string) (*models.User, error)
	// Authenticate checks credentials and returns the active account they belong to.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateMe(ctx context.Context, userID int64, in *UpdateUserInput) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service with dependencies.
func NewUserService(userRepo repositories.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) Create(ctx context.Context, in *CreateUserInput) (*models.User, error) {
	return s.create(ctx, in, false)
}

func (s *userService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return s.create(ctx, &CreateUserInput{Email: &email, Password: &password}, true)
}

func (s *userService) create(ctx context.Context, in *CreateUserInput, superuser bool) (*models.User, error) {
	ve := &apperrors.ValidationError{}

	user := &models.User{
		IsActive:    true,
		IsStaff:     superuser,
		IsSuperuser: superuser,
	}

	switch {
	case in.Email == nil:
		ve.Add("email", msgRequired)
	default:
		email := models.NormalizeEmail(*in.Email)
		if email == "" {
			ve.Add("email", msgBlank)
		} else if !models.IsValidEmail(email) {
			ve.Add("email", msgInvalidEmail)
		} else {
			checkLength(ve, "email", email, maxCharLength)
			user.Email = email
		}
	}

	setOptionalText(ve, "name", &user.Name, in.Name, maxCharLength)

	password := validatePassword(ve, in.Password, fullWrite)

	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, asValidationError(err)
	}

	s.logger.Info("Created user",
		zap.Int64("user_id", user.ID),
		zap.Bool("superuser", superuser))

	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	ve := &apperrors.ValidationError{}
	normalized := models.NormalizeEmail(email)
	if normalized == "" {
		ve.Add("email", msgBlank)
	}
	if password == "" {
		ve.Add("password", msgBlank)
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	badCredentials := apperrors.NewValidationError("non_field_errors", msgBadCredentials)

	user, err := s.userRepo.GetByEmail(ctx, normalized)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, badCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("Stored password hash is unusable",
				zap.Int64("user_id", user.ID),
				zap.Error(err))
		}
		return nil, badCredentials
	}

	if !user.IsActive {
		return nil, badCredentials
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) UpdateMe(ctx context.Context, userID int64, in *UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ve := &apperrors.ValidationError{}
	setOptionalText(ve, "name", &user.Name, in.Name, maxCharLength)
	password := validatePassword(ve, in.Password, partialWrite)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return user, nil
}

// validatePassword returns the password to hash, or "" when none was supplied on a partial write.
func validatePassword(ve *apperrors.ValidationError, v *string, mode writeMode) string {
	if v == nil {
		if mode == fullWrite {
			ve.Add("password", msgRequired)
		}
		return ""
	}
	switch {
	case *v == "":
		ve.Add("password", msgBlank)
	case len(*v) < MinPasswordLength:
		ve.Add("password", fmt.Sprintf("This password is too short. It must contain at least %d characters.", MinPasswordLength))
	case len(*v) > auth.MaxPasswordBytes:
		ve.Add("password", fmt.Sprintf("Ensure this field has no more than %d bytes.", auth.MaxPasswordBytes))
	default:
		return *v
	}
	return ""
}

var _ UserService = (*userService)(nil)
