package services

import (
	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
)

const (
	msgNotOrganizationOwner = "The user isn't the owner of the organization"
	msgNotProjectOwner      = "The user isn't the owner of the organization related with this project"
	msgParticipantMismatch  = "The user must be the requesting user"
)

// validateOrganizationOwner requires userID to own org. Projects may only be
// attached to organizations the caller owns.
func validateOrganizationOwner(org *models.Organization, userID int64) error {
	if org == nil || !org.IsOwnedBy(userID) {
		return apperrors.NewValidationError("organization", msgNotOrganizationOwner)
	}
	return nil
}

// validateProjectChain requires that project belongs to org and that userID owns org.
func validateProjectChain(project *models.Project, org *models.Organization, userID int64) error {
	if project == nil || org == nil || project.OrganizationID != org.ID || !org.IsOwnedBy(userID) {
		return apperrors.NewValidationError("project", msgNotProjectOwner)
	}
	return nil
}

// validateParticipant rejects a supplied organization-side user other than the caller.
// A nil value means the field was not supplied.
func validateParticipant(supplied *int64, userID int64) error {
	if supplied != nil && *supplied != userID {
		return apperrors.NewValidationError("user", msgParticipantMismatch)
	}
	return nil
}

// requireOwner reports ErrForbidden unless the entity is owned by userID.
func requireOwner(entity interface{ IsOwnedBy(int64) bool }, userID int64) error {
	if !entity.IsOwnedBy(userID) {
		return apperrors.ErrForbidden
	}
	return nil
}
