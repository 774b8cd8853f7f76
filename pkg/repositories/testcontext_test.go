//go:build integration

package repositories

import (
	"context"
	"testing"

	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/testhelpers"
)

// repoTestContext holds test dependencies for repository integration tests.
type repoTestContext struct {
	t      *testing.T
	testDB *testhelpers.TestDB
	ctx    context.Context
}

// setupRepoTest truncates all tables and returns a context carrying a connection scope.
func setupRepoTest(t *testing.T) *repoTestContext {
	t.Helper()

	testDB := testhelpers.GetTestDB(t)
	testDB.Truncate(t)

	ctx, cleanup := testDB.ScopedContext(t)
	t.Cleanup(cleanup)

	return &repoTestContext{t: t, testDB: testDB, ctx: ctx}
}

func (tc *repoTestContext) createUser(email string) int64 {
	tc.t.Helper()
	return tc.testDB.InsertUser(tc.t, email)
}

func (tc *repoTestContext) createOrganization(ownerID int64, name string) *models.Organization {
	tc.t.Helper()
	org := &models.Organization{UserID: ownerID, Name: name, Country: "PT"}
	if err := NewOrganizationRepository().Create(tc.ctx, org); err != nil {
		tc.t.Fatalf("failed to create organization: %v", err)
	}
	return org
}

func (tc *repoTestContext) createProject(ownerID, orgID int64, name string) *models.Project {
	tc.t.Helper()
	project := &models.Project{UserID: ownerID, OrganizationID: orgID, Name: name}
	if err := NewProjectRepository().Create(tc.ctx, project); err != nil {
		tc.t.Fatalf("failed to create project: %v", err)
	}
	return project
}

func (tc *repoTestContext) createCooperation(projectID int64, userID, voluntaryID *int64, private bool) *models.Cooperation {
	tc.t.Helper()
	coop := &models.Cooperation{
		ProjectID:   projectID,
		UserID:      userID,
		VoluntaryID: voluntaryID,
		Name:        "coop",
		IsPrivate:   private,
	}
	if err := NewCooperationRepository().Create(tc.ctx, coop); err != nil {
		tc.t.Fatalf("failed to create cooperation: %v", err)
	}
	return coop
}
