package roles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praetor-admin/praetor-admin/internal/platform/db"
	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// Repository provides PostgreSQL backed persistence for the role registry.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const roleWithPermissions = `
SELECT r.id, r.name, r.description, r.created_at, r.updated_at,
       COALESCE(array_agg(p.name ORDER BY p.name) FILTER (WHERE p.name IS NOT NULL), '{}')
FROM roles r
LEFT JOIN role_permissions rp ON rp.role_id = r.id
LEFT JOIN permissions p ON p.id = rp.permission_id
`

// List returns all roles with their permission names, ordered by name.
func (r *Repository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, roleWithPermissions+`GROUP BY r.id ORDER BY r.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt, &role.Permissions); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

// Get fetches one role with its permission names.
func (r *Repository) Get(ctx context.Context, id int64) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, roleWithPermissions+`WHERE r.id = $1 GROUP BY r.id`, id).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt, &role.Permissions)
	if errors.Is(err, pgx.ErrNoRows) {
		return Role{}, shared.ErrNotFound
	}
	return role, err
}

// Create inserts a role and links the named permissions in one transaction.
// Any missing permission name aborts the whole operation; no partial role is
// ever persisted.
func (r *Repository) Create(ctx context.Context, name, description string, permissionNames []string) (Role, error) {
	var created Role
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		now := time.Now().UTC()
		err := tx.QueryRow(ctx,
			`INSERT INTO roles (name, description, created_at, updated_at) VALUES ($1, $2, $3, $3) RETURNING id, created_at, updated_at`,
			name, description, now,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return db.MapError(err)
		}
		created.Name = name
		created.Description = description

		ids, err := resolvePermissionIDs(ctx, tx, permissionNames)
		if err != nil {
			return err
		}
		if err := linkPermissions(ctx, tx, created.ID, ids); err != nil {
			return err
		}
		created.Permissions = append([]string(nil), permissionNames...)
		return nil
	})
	if err != nil {
		return Role{}, err
	}
	return created, nil
}

// ReplacePermissions swaps the role's entire permission edge set for the one
// supplied, atomically. Permissions not named are unlinked.
func (r *Repository) ReplacePermissions(ctx context.Context, roleID int64, permissionNames []string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists int64
		err := tx.QueryRow(ctx, `SELECT id FROM roles WHERE id = $1 FOR UPDATE`, roleID).Scan(&exists)
		if errors.Is(err, pgx.ErrNoRows) {
			return shared.ErrNotFound
		}
		if err != nil {
			return err
		}

		ids, err := resolvePermissionIDs(ctx, tx, permissionNames)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
			return err
		}
		if err := linkPermissions(ctx, tx, roleID, ids); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE roles SET updated_at = NOW() WHERE id = $1`, roleID)
		return err
	})
}

// Delete removes the role; user_roles edges cascade so no principal keeps a
// dangling reference.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// resolvePermissionIDs maps permission names to catalog ids, failing with a
// NotFound naming the first missing permission.
func resolvePermissionIDs(ctx context.Context, tx pgx.Tx, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := tx.Query(ctx, `SELECT id, name FROM permissions WHERE name = ANY($1)`, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	found := make(map[string]int64, len(names))
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		found[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, ok := found[name]
		if !ok {
			return nil, fmt.Errorf("%w: permission %s", shared.ErrNotFound, name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func linkPermissions(ctx context.Context, tx pgx.Tx, roleID int64, permissionIDs []int64) error {
	for _, permissionID := range permissionIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			roleID, permissionID,
		); err != nil {
			return err
		}
	}
	return nil
}
