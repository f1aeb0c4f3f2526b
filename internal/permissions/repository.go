package permissions

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praetor-admin/praetor-admin/internal/platform/db"
	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// Repository provides PostgreSQL backed persistence for the catalog.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all permissions ordered by name.
func (r *Repository) List(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, resource, action, created_at FROM permissions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Resource, &p.Action, &p.CreatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// Get fetches a permission by id.
func (r *Repository) Get(ctx context.Context, id int64) (Permission, error) {
	var p Permission
	err := r.pool.QueryRow(ctx, `SELECT id, name, description, resource, action, created_at FROM permissions WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Resource, &p.Action, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Permission{}, shared.ErrNotFound
	}
	return p, err
}

// Create inserts a new permission. Duplicate names map to ErrConflict.
func (r *Repository) Create(ctx context.Context, p Permission) (Permission, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO permissions (name, description, resource, action, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		p.Name, p.Description, p.Resource, p.Action, time.Now().UTC(),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Permission{}, db.MapError(err)
	}
	return p, nil
}

// Update edits mutable metadata of a permission; the name never changes.
func (r *Repository) Update(ctx context.Context, p Permission) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE permissions SET description = $2, resource = $3, action = $4 WHERE id = $1`,
		p.ID, p.Description, p.Resource, p.Action,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a permission. Join rows in role_permissions cascade, so a
// deleted permission disappears from every role's edge set atomically.
// Deleting an absent id is a no-op.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	return err
}
