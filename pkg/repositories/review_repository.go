package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xemob/coopnet/pkg/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	// List returns every review, newest first.
	List(ctx context.Context) ([]*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
}

type reviewRepository struct{}

// NewReviewRepository creates a new review repository.
func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

const reviewColumns = `id, cooperation_id, reviewer_id, reviewed_id, name, review, comment, created_at, updated_at`

func scanReview(row pgx.Row) (*models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.CooperationID, &rv.ReviewerID, &rv.ReviewedID,
		&rv.Name, &rv.Review, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reviews (cooperation_id, reviewer_id, reviewed_id, name, review, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err = scope.Conn.QueryRow(ctx, query,
		review.CooperationID,
		review.ReviewerID,
		review.ReviewedID,
		review.Name,
		review.Review,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", translateError(err))
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(scope.Conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get review %d: %w", id, translateError(err))
	}
	return review, nil
}

func (r *reviewRepository) List(ctx context.Context) ([]*models.Review, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY id DESC`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*models.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}
	return reviews, nil
}

// Update persists the mutable fields. The reviewer is fixed.
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE reviews
		SET cooperation_id = $1, reviewed_id = $2, name = $3, review = $4, comment = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	err = scope.Conn.QueryRow(ctx, query,
		review.CooperationID,
		review.ReviewedID,
		review.Name,
		review.Review,
		review.Comment,
		review.ID,
	).Scan(&review.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update review %d: %w", review.ID, translateError(err))
	}
	return nil
}

var _ ReviewRepository = (*reviewRepository)(nil)
