package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xemob/coopnet/pkg/models"
)

// PortfolioItemRepository defines the interface for portfolio item data access.
type PortfolioItemRepository interface {
	Create(ctx context.Context, item *models.PortfolioItem) error
	GetByID(ctx context.Context, id int64) (*models.PortfolioItem, error)
	// List returns every item ordered by name, descending.
	List(ctx context.Context) ([]*models.PortfolioItem, error)
	Update(ctx context.Context, item *models.PortfolioItem) error
}

type portfolioItemRepository struct{}

// NewPortfolioItemRepository creates a new portfolio item repository.
func NewPortfolioItemRepository() PortfolioItemRepository {
	return &portfolioItemRepository{}
}

const portfolioItemColumns = `id, user_id, name, description, link, created_at, updated_at`

func scanPortfolioItem(row pgx.Row) (*models.PortfolioItem, error) {
	var p models.PortfolioItem
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Link, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *portfolioItemRepository) Create(ctx context.Context, item *models.PortfolioItem) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO portfolio_items (user_id, name, description, link)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err = scope.Conn.QueryRow(ctx, query,
		item.UserID,
		item.Name,
		item.Description,
		item.Link,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create portfolio item: %w", translateError(err))
	}
	return nil
}

func (r *portfolioItemRepository) GetByID(ctx context.Context, id int64) (*models.PortfolioItem, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + portfolioItemColumns + ` FROM portfolio_items WHERE id = $1`

	item, err := scanPortfolioItem(scope.Conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio item %d: %w", id, translateError(err))
	}
	return item, nil
}

func (r *portfolioItemRepository) List(ctx context.Context) ([]*models.PortfolioItem, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + portfolioItemColumns + ` FROM portfolio_items ORDER BY name DESC, id DESC`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.PortfolioItem, 0)
	for rows.Next() {
		item, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio items: %w", err)
	}
	return items, nil
}

func (r *portfolioItemRepository) Update(ctx context.Context, item *models.PortfolioItem) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE portfolio_items
		SET name = $1, description = $2, link = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`

	err = scope.Conn.QueryRow(ctx, query, item.Name, item.Description, item.Link, item.ID).Scan(&item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update portfolio item %d: %w", item.ID, translateError(err))
	}
	return nil
}

var _ PortfolioItemRepository = (*portfolioItemRepository)(nil)
