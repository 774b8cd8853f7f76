package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xemob/coopnet/pkg/models"
)

// CooperatorProfileRepository defines the interface for cooperator profile data access.
// A user has at most one profile; a second insert is reported as apperrors.ErrConflict.
type CooperatorProfileRepository interface {
	Create(ctx context.Context, profile *models.CooperatorProfile) error
	GetByID(ctx context.Context, id int64) (*models.CooperatorProfile, error)
	// List returns every profile ordered by name, descending.
	List(ctx context.Context) ([]*models.CooperatorProfile, error)
	Update(ctx context.Context, profile *models.CooperatorProfile) error
}

type cooperatorProfileRepository struct{}

// NewCooperatorProfileRepository creates a new cooperator profile repository.
func NewCooperatorProfileRepository() CooperatorProfileRepository {
	return &cooperatorProfileRepository{}
}

const cooperatorProfileColumns = `id, user_id, name, description, skills, website, created_at, updated_at`

func scanCooperatorProfile(row pgx.Row) (*models.CooperatorProfile, error) {
	var p models.CooperatorProfile
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Skills,
		&p.Website, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *cooperatorProfileRepository) Create(ctx context.Context, profile *models.CooperatorProfile) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO cooperator_profiles (user_id, name, description, skills, website)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err = scope.Conn.QueryRow(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Description,
		profile.Skills,
		profile.Website,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create cooperator profile: %w", translateError(err))
	}
	return nil
}

func (r *cooperatorProfileRepository) GetByID(ctx context.Context, id int64) (*models.CooperatorProfile, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + cooperatorProfileColumns + ` FROM cooperator_profiles WHERE id = $1`

	profile, err := scanCooperatorProfile(scope.Conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get cooperator profile %d: %w", id, translateError(err))
	}
	return profile, nil
}

func (r *cooperatorProfileRepository) List(ctx context.Context) ([]*models.CooperatorProfile, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + cooperatorProfileColumns + ` FROM cooperator_profiles ORDER BY name DESC, id DESC`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cooperator profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*models.CooperatorProfile, 0)
	for rows.Next() {
		profile, err := scanCooperatorProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cooperator profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cooperator profiles: %w", err)
	}
	return profiles, nil
}

func (r *cooperatorProfileRepository) Update(ctx context.Context, profile *models.CooperatorProfile) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE cooperator_profiles
		SET name = $1, description = $2, skills = $3, website = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	err = scope.Conn.QueryRow(ctx, query,
		profile.Name,
		profile.Description,
		profile.Skills,
		profile.Website,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update cooperator profile %d: %w", profile.ID, translateError(err))
	}
	return nil
}

var _ CooperatorProfileRepository = (*cooperatorProfileRepository)(nil)
