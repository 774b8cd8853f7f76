package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xemob/coopnet/pkg/models"
)

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	// List returns every project, newest first.
	List(ctx context.Context) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
}

type projectRepository struct{}

// NewProjectRepository creates a new project repository.
func NewProjectRepository() ProjectRepository {
	return &projectRepository{}
}

const projectColumns = `id, user_id, organization_id, name, description, ref_link, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.UserID, &p.OrganizationID, &p.Name, &p.Description,
		&p.RefLink, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (user_id, organization_id, name, description, ref_link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err = scope.Conn.QueryRow(ctx, query,
		project.UserID,
		project.OrganizationID,
		project.Name,
		project.Description,
		project.RefLink,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", translateError(err))
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(scope.Conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, translateError(err))
	}
	return project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*models.Project, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY id DESC`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}
	return projects, nil
}

// Update persists the mutable fields, including a move to another organization.
func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET organization_id = $1, name = $2, description = $3, ref_link = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	err = scope.Conn.QueryRow(ctx, query,
		project.OrganizationID,
		project.Name,
		project.Description,
		project.RefLink,
		project.ID,
	).Scan(&project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update project %d: %w", project.ID, translateError(err))
	}
	return nil
}

var _ ProjectRepository = (*projectRepository)(nil)
