package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
)

func newTestReviewService(reviews ...*models.Review) (ReviewService, *mockReviewRepository) {
	reviewRepo := newMockReviewRepository(reviews...)
	ngo, volunteer := int64(10), int64(30)
	coopRepo := newMockCooperationRepository(
		&models.Cooperation{ID: 1, ProjectID: 5, Name: "Tree planting"},
		&models.Cooperation{ID: 2, ProjectID: 5, UserID: &ngo, VoluntaryID: &volunteer, Name: "Private mentoring", IsPrivate: true},
	)
	projectRepo := newMockProjectRepository(&models.Project{ID: 5, UserID: 10, OrganizationID: 1})
	userRepo := newMockUserRepository(
		&models.User{ID: 10, Email: "ngo@xemob.com"},
		&models.User{ID: 30, Email: "volunteer@xemob.com"},
		&models.User{ID: 40, Email: "stranger@xemob.com"},
	)
	return NewReviewService(reviewRepo, coopRepo, projectRepo, userRepo, zap.NewNop()), reviewRepo
}

func TestReviewService_Create_ReviewerIsCaller(t *testing.T) {
	svc, repo := newTestReviewService()

	review, err := svc.Create(context.Background(), 10, &ReviewInput{
		Cooperation: ptr(int64(1)),
		Reviewed:    ptr(int64(30)),
		Name:        ptr("Great volunteer"),
		Review:      ptr("5"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), review.ReviewerID)
	assert.Equal(t, int64(30), review.ReviewedID)
	assert.Equal(t, 1, repo.creates)
}

func TestReviewService_Create_InvalidReferences(t *testing.T) {
	svc, repo := newTestReviewService()

	_, err := svc.Create(context.Background(), 10, &ReviewInput{
		Cooperation: ptr(int64(77)),
		Reviewed:    ptr(int64(88)),
		Name:        ptr("Nope"),
		Review:      ptr("1"),
	})

	requireFieldError(t, err, "cooperation", `Invalid pk "77" - object does not exist.`)
	requireFieldError(t, err, "reviewed", `Invalid pk "88" - object does not exist.`)
	assert.Equal(t, 0, repo.creates)
}

func TestReviewService_Update(t *testing.T) {
	svc, repo := newTestReviewService(&models.Review{
		ID: 3, CooperationID: 1, ReviewerID: 10, ReviewedID: 30, Name: "Original", Review: "4",
	})
	ctx := context.Background()

	_, err := svc.Update(ctx, 30, 3, &ReviewInput{Name: ptr("Self-serving")}, true)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, "Original", repo.reviews[3].Name)

	review, err := svc.Update(ctx, 10, 3, &ReviewInput{Comment: ptr("Always on time")}, true)
	require.NoError(t, err)
	assert.Equal(t, "Always on time", review.Comment)
	assert.Equal(t, int64(10), review.ReviewerID)

	_, err = svc.Update(ctx, 10, 3, &ReviewInput{Comment: ptr("x")}, false)
	requireFieldError(t, err, "cooperation", msgRequired)
	requireFieldError(t, err, "review", msgRequired)
}

func TestReviewService_Create_PrivateCooperation(t *testing.T) {
	in := func() *ReviewInput {
		return &ReviewInput{
			Cooperation: ptr(int64(2)),
			Reviewed:    ptr(int64(10)),
			Name:        ptr("Mentoring feedback"),
			Review:      ptr("4"),
		}
	}

	t.Run("outsider sees it as nonexistent", func(t *testing.T) {
		svc, repo := newTestReviewService()

		_, err := svc.Create(context.Background(), 40, in())

		requireFieldError(t, err, "cooperation", `Invalid pk "2" - object does not exist.`)
		assert.Equal(t, 0, repo.creates)
	})

	t.Run("participant may review", func(t *testing.T) {
		svc, repo := newTestReviewService()

		review, err := svc.Create(context.Background(), 30, in())

		require.NoError(t, err)
		assert.Equal(t, int64(2), review.CooperationID)
		assert.Equal(t, 1, repo.creates)
	})
}

func TestReviewService_Update_CannotMoveToHiddenCooperation(t *testing.T) {
	svc, repo := newTestReviewService(&models.Review{
		ID: 3, CooperationID: 1, ReviewerID: 40, ReviewedID: 30, Name: "Original", Review: "4",
	})

	_, err := svc.Update(context.Background(), 40, 3, &ReviewInput{Cooperation: ptr(int64(2))}, true)

	requireFieldError(t, err, "cooperation", `Invalid pk "2" - object does not exist.`)
	assert.Equal(t, int64(1), repo.reviews[3].CooperationID)
}
