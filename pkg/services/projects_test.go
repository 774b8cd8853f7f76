package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
)

func newTestProjectService(orgs ...*models.Organization) (ProjectService, *mockProjectRepository) {
	projectRepo := newMockProjectRepository()
	return NewProjectService(projectRepo, newMockOrganizationRepository(orgs...), zap.NewNop()), projectRepo
}

func TestProjectService_Create(t *testing.T) {
	svc, repo := newTestProjectService(&models.Organization{ID: 1, UserID: 10})

	project, err := svc.Create(context.Background(), 10, &ProjectInput{
		Organization: ptr(int64(1)),
		Name:         ptr("Reforestation"),
		RefLink:      ptr("https://example.org/reforest"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), project.UserID)
	assert.Equal(t, int64(1), project.OrganizationID)
	assert.Equal(t, 1, repo.creates)
}

func TestProjectService_Create_ForeignOrganizationRejected(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	projectRepo := newMockProjectRepository()
	svc := NewProjectService(projectRepo, newMockOrganizationRepository(&models.Organization{ID: 1, UserID: 10}), zap.New(core))

	_, err := svc.Create(context.Background(), 11, &ProjectInput{
		Organization: ptr(int64(1)),
		Name:         ptr("Sneaky"),
	})

	requireFieldError(t, err, "organization", "The user isn't the owner of the organization")
	assert.NotErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, 0, projectRepo.creates, "project must not be persisted")
	assert.Equal(t, 1, logs.FilterMessage("Rejected project for organization").Len())
}

func TestProjectService_Create_UnknownOrganization(t *testing.T) {
	svc, repo := newTestProjectService()

	_, err := svc.Create(context.Background(), 10, &ProjectInput{
		Organization: ptr(int64(99)),
		Name:         ptr("Orphan"),
	})

	requireFieldError(t, err, "organization", `Invalid pk "99" - object does not exist.`)
	assert.Equal(t, 0, repo.creates)
}

func TestProjectService_Create_RequiredFields(t *testing.T) {
	svc, _ := newTestProjectService(&models.Organization{ID: 1, UserID: 10})

	_, err := svc.Create(context.Background(), 10, &ProjectInput{})

	requireFieldError(t, err, "organization", msgRequired)
	requireFieldError(t, err, "name", msgRequired)
}

func TestProjectService_Update(t *testing.T) {
	orgRepo := newMockOrganizationRepository(
		&models.Organization{ID: 1, UserID: 10},
		&models.Organization{ID: 2, UserID: 10},
		&models.Organization{ID: 3, UserID: 20},
	)
	projectRepo := newMockProjectRepository(&models.Project{ID: 5, UserID: 10, OrganizationID: 1, Name: "Original"})
	svc := NewProjectService(projectRepo, orgRepo, zap.NewNop())
	ctx := context.Background()

	t.Run("non-owner forbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, 20, 5, &ProjectInput{Name: ptr("Taken over")}, true)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Equal(t, "Original", projectRepo.projects[5].Name)
	})

	t.Run("move to foreign organization rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, 10, 5, &ProjectInput{Organization: ptr(int64(3))}, true)
		requireFieldError(t, err, "organization", "The user isn't the owner of the organization")
		assert.Equal(t, int64(1), projectRepo.projects[5].OrganizationID)
	})

	t.Run("move to own organization", func(t *testing.T) {
		project, err := svc.Update(ctx, 10, 5, &ProjectInput{Organization: ptr(int64(2))}, true)
		require.NoError(t, err)
		assert.Equal(t, int64(2), project.OrganizationID)
		assert.Equal(t, "Original", project.Name)
	})

	t.Run("put requires all fields", func(t *testing.T) {
		_, err := svc.Update(ctx, 10, 5, &ProjectInput{Name: ptr("Renamed")}, false)
		requireFieldError(t, err, "organization", msgRequired)
	})
}
