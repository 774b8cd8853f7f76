package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xemob/coopnet/pkg/models"
)

// OrganizationRepository defines the interface for organization data access.
type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id int64) (*models.Organization, error)
	// List returns every organization, newest first.
	List(ctx context.Context) ([]*models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
}

type organizationRepository struct{}

// NewOrganizationRepository creates a new organization repository.
func NewOrganizationRepository() OrganizationRepository {
	return &organizationRepository{}
}

const organizationColumns = `id, user_id, name, description, website, address, country, created_at, updated_at`

func scanOrganization(row pgx.Row) (*models.Organization, error) {
	var o models.Organization
	err := row.Scan(&o.ID, &o.UserID, &o.Name, &o.Description, &o.Website,
		&o.Address, &o.Country, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *organizationRepository) Create(ctx context.Context, org *models.Organization) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO organizations (user_id, name, description, website, address, country)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err = scope.Conn.QueryRow(ctx, query,
		org.UserID,
		org.Name,
		org.Description,
		org.Website,
		org.Address,
		org.Country,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", translateError(err))
	}
	return nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`

	org, err := scanOrganization(scope.Conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get organization %d: %w", id, translateError(err))
	}
	return org, nil
}

func (r *organizationRepository) List(ctx context.Context) ([]*models.Organization, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + organizationColumns + ` FROM organizations ORDER BY id DESC`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	orgs := make([]*models.Organization, 0)
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}
	return orgs, nil
}

// Update persists the mutable fields. The owner is never changed.
func (r *organizationRepository) Update(ctx context.Context, org *models.Organization) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE organizations
		SET name = $1, description = $2, website = $3, address = $4, country = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	err = scope.Conn.QueryRow(ctx, query,
		org.Name,
		org.Description,
		org.Website,
		org.Address,
		org.Country,
		org.ID,
	).Scan(&org.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update organization %d: %w", org.ID, translateError(err))
	}
	return nil
}

var _ OrganizationRepository = (*organizationRepository)(nil)
