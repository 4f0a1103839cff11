package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/GoSim-25-26J-441/projects-console/internal/projects/domain"
)

// Repository is the persistence contract shared by every project backend.
type Repository interface {
	Create(ctx context.Context, p domain.Project) (*domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	FetchByID(ctx context.Context, id int) (*domain.Project, error)
	Update(ctx context.Context, p domain.Project) error
	Delete(ctx context.Context, id int) error
}

// ProjectRepository provides persistence operations for projects on a SQL database.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project and returns it with the assigned id.
func (r *ProjectRepository) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	const q = `
INSERT INTO project (project_name, estimated_hours, actual_hours, difficulty, notes)
VALUES ($1, $2, $3, $4, $5)
RETURNING project_id;
`
	var id int
	err := r.db.QueryRowContext(ctx, q,
		stringArg(p.Name), hoursArg(p.EstimatedHours), hoursArg(p.ActualHours), intArg(p.Difficulty), stringArg(p.Notes),
	).Scan(&id)
	if err != nil {
		return nil, domain.NewStoreError("create", 0, classify(err))
	}

	created := p
	created.ID = id
	return &created, nil
}

// ListAll returns every project ordered by name in byte order (unnamed
// projects last), then by id.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	const q = `
SELECT project_id, project_name, estimated_hours, actual_hours, difficulty, notes
FROM project
ORDER BY project_name COLLATE "C", project_id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.NewStoreError("list", 0, classify(err))
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, domain.NewStoreError("list", 0, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("list", 0, classify(err))
	}
	return out, nil
}

// FetchByID returns the project with the given id, or domain.ErrNotFound.
func (r *ProjectRepository) FetchByID(ctx context.Context, id int) (*domain.Project, error) {
	const q = `
SELECT project_id, project_name, estimated_hours, actual_hours, difficulty, notes
FROM project
WHERE project_id = $1;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewStoreError("fetch", id, classify(err))
	}
	return &p, nil
}

// Update replaces every non-id column of an existing project.
func (r *ProjectRepository) Update(ctx context.Context, p domain.Project) error {
	const q = `
UPDATE project
SET project_name = $1, estimated_hours = $2, actual_hours = $3, difficulty = $4, notes = $5
WHERE project_id = $6;
`
	result, err := r.db.ExecContext(ctx, q,
		stringArg(p.Name), hoursArg(p.EstimatedHours), hoursArg(p.ActualHours), intArg(p.Difficulty), stringArg(p.Notes),
		p.ID,
	)
	if err != nil {
		return domain.NewStoreError("update", p.ID, classify(err))
	}
	return requireAffected("update", p.ID, result)
}

// Delete removes a project by id.
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	const q = `DELETE FROM project WHERE project_id = $1;`

	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.NewStoreError("delete", id, classify(err))
	}
	return requireAffected("delete", id, result)
}

func requireAffected(op string, id int, result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return domain.NewStoreError(op, id, err)
	}
	if n == 0 {
		return domain.NewStoreError(op, id, domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Name, &p.EstimatedHours, &p.ActualHours, &p.Difficulty, &p.Notes)
	return p, err
}

func stringArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func hoursArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.StringFixed(domain.HoursScale)
}

func intArg(n *int) any {
	if n == nil {
		return nil
	}
	return int64(*n)
}
