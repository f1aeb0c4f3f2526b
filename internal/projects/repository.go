package projects

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praetor-admin/praetor-admin/internal/platform/db"
	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// Repository provides PostgreSQL backed persistence for projects.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all projects ordered by name.
func (r *Repository) List(ctx context.Context) ([]Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, status, start_date, end_date, created_at FROM projects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get fetches a project by id.
func (r *Repository) Get(ctx context.Context, id int64) (Project, error) {
	var p Project
	err := r.pool.QueryRow(ctx, `SELECT id, name, description, status, start_date, end_date, created_at FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, shared.ErrNotFound
	}
	return p, err
}

// Create inserts a new project. Duplicate names map to ErrConflict.
func (r *Repository) Create(ctx context.Context, p Project) (Project, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO projects (name, description, status, start_date, end_date, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		p.Name, p.Description, p.Status, p.StartDate, p.EndDate, time.Now().UTC(),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Project{}, db.MapError(err)
	}
	return p, nil
}

// Update overwrites the mutable fields of a project.
func (r *Repository) Update(ctx context.Context, p Project) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET description = $2, status = $3, start_date = $4, end_date = $5 WHERE id = $1`,
		p.ID, p.Description, p.Status, p.StartDate, p.EndDate,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a project. Deleting an absent id is a no-op.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}
