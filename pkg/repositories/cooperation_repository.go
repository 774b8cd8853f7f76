package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xemob/coopnet/pkg/models"
)

// CooperationRepository defines the interface for cooperation data access.
type CooperationRepository interface {
	// Create inserts the cooperation. start_date is assigned by the database.
	Create(ctx context.Context, coop *models.Cooperation) error
	GetByID(ctx context.Context, id int64) (*models.Cooperation, error)
	// ListPublic returns cooperations with is_private = false, newest first.
	ListPublic(ctx context.Context) ([]*models.Cooperation, error)
	Update(ctx context.Context, coop *models.Cooperation) error
}

type cooperationRepository struct{}

// NewCooperationRepository creates a new cooperation repository.
func NewCooperationRepository() CooperationRepository {
	return &cooperationRepository{}
}

const cooperationColumns = `id, project_id, user_id, voluntary_id, name, start_date, end_date, is_private`

func scanCooperation(row pgx.Row) (*models.Cooperation, error) {
	var c models.Cooperation
	err := row.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.VoluntaryID, &c.Name,
		&c.StartDate, &c.EndDate, &c.IsPrivate)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cooperationRepository) Create(ctx context.Context, coop *models.Cooperation) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO cooperations (project_id, user_id, voluntary_id, name, end_date, is_private)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, start_date`

	err = scope.Conn.QueryRow(ctx, query,
		coop.ProjectID,
		coop.UserID,
		coop.VoluntaryID,
		coop.Name,
		coop.EndDate,
		coop.IsPrivate,
	).Scan(&coop.ID, &coop.StartDate)
	if err != nil {
		return fmt.Errorf("failed to create cooperation: %w", translateError(err))
	}
	return nil
}

func (r *cooperationRepository) GetByID(ctx context.Context, id int64) (*models.Cooperation, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + cooperationColumns + ` FROM cooperations WHERE id = $1`

	coop, err := scanCooperation(scope.Conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get cooperation %d: %w", id, translateError(err))
	}
	return coop, nil
}

func (r *cooperationRepository) ListPublic(ctx context.Context) ([]*models.Cooperation, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + cooperationColumns + `
		FROM cooperations
		WHERE is_private = FALSE
		ORDER BY id DESC`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cooperations: %w", err)
	}
	defer rows.Close()

	coops := make([]*models.Cooperation, 0)
	for rows.Next() {
		coop, err := scanCooperation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cooperation: %w", err)
		}
		coops = append(coops, coop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cooperations: %w", err)
	}
	return coops, nil
}

// Update persists the mutable fields. The organization-side user and start date are fixed.
func (r *cooperationRepository) Update(ctx context.Context, coop *models.Cooperation) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE cooperations
		SET project_id = $1, voluntary_id = $2, name = $3, end_date = $4, is_private = $5
		WHERE id = $6`

	tag, err := scope.Conn.Exec(ctx, query,
		coop.ProjectID,
		coop.VoluntaryID,
		coop.Name,
		coop.EndDate,
		coop.IsPrivate,
		coop.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cooperation %d: %w", coop.ID, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update cooperation %d: %w", coop.ID, translateError(pgx.ErrNoRows))
	}
	return nil
}

var _ CooperationRepository = (*cooperationRepository)(nil)
