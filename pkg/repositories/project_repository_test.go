//go:build integration

package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
)

func TestProjectRepository_CreateAndList(t *testing.T) {
	tc := setupRepoTest(t)
	owner := tc.createUser("owner@example.com")
	org := tc.createOrganization(owner, "Org")

	p1 := tc.createProject(owner, org.ID, "One")
	p2 := tc.createProject(owner, org.ID, "Two")

	projects, err := NewProjectRepository().List(tc.ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, p2.ID, projects[0].ID)
	assert.Equal(t, p1.ID, projects[1].ID)
	assert.Equal(t, org.ID, projects[0].OrganizationID)
}

func TestProjectRepository_UnknownOrganization(t *testing.T) {
	tc := setupRepoTest(t)
	owner := tc.createUser("owner@example.com")

	err := NewProjectRepository().Create(tc.ctx, &models.Project{UserID: owner, OrganizationID: 777, Name: "x"})
	require.ErrorIs(t, err, apperrors.ErrInvalidReference)
	assert.Equal(t, "projects_organization_id_fkey", ViolatedConstraint(err))
}

func TestProjectRepository_UpdateMovesOrganization(t *testing.T) {
	tc := setupRepoTest(t)
	owner := tc.createUser("owner@example.com")
	orgA := tc.createOrganization(owner, "A")
	orgB := tc.createOrganization(owner, "B")
	project := tc.createProject(owner, orgA.ID, "P")

	repo := NewProjectRepository()
	project.OrganizationID = orgB.ID
	project.RefLink = "https://ref.example.com"
	require.NoError(t, repo.Update(tc.ctx, project))

	got, err := repo.GetByID(tc.ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, orgB.ID, got.OrganizationID)
	assert.Equal(t, "https://ref.example.com", got.RefLink)
}
