package services

import (
	"errors"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/repositories"
)

type constraintField struct {
	field   string
	message string
}

// constraintFields maps database constraints to the input field they guard.
// Referenced ids are also checked before writing; the foreign key entries cover
// rows removed between that check and the insert.
var constraintFields = map[string]constraintField{
	"users_email_key":                 {"email", "user with this email already exists."},
	"organizations_name_key":          {"name", "organization with this name already exists."},
	"cooperator_profiles_user_id_key": {"user", "cooperator profile with this user already exists."},
	"projects_organization_id_fkey":   {"organization", "Invalid pk - object does not exist."},
	"cooperations_project_id_fkey":    {"project", "Invalid pk - object does not exist."},
	"cooperations_voluntary_id_fkey":  {"voluntary", "Invalid pk - object does not exist."},
	"reviews_cooperation_id_fkey":     {"cooperation", "Invalid pk - object does not exist."},
	"reviews_reviewed_id_fkey":        {"reviewed", "Invalid pk - object does not exist."},
	"messages_recipient_id_fkey":      {"recipient", "Invalid pk - object does not exist."},
}

// asValidationError turns a known constraint violation into a field-level ValidationError.
// Other errors are returned unchanged.
func asValidationError(err error) error {
	if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrInvalidReference) {
		return err
	}
	if cf, ok := constraintFields[repositories.ViolatedConstraint(err)]; ok {
		return apperrors.NewValidationError(cf.field, cf.message)
	}
	return err
}
