package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praetor-admin/praetor-admin/internal/authority"
	"github.com/praetor-admin/praetor-admin/internal/platform/db"
	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// Repository provides PostgreSQL backed persistence for principals.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userWithRoles = `
SELECT u.id, u.username, u.email, u.password_hash, u.created_at, u.updated_at,
       COALESCE(array_agg(r.name ORDER BY r.id) FILTER (WHERE r.name IS NOT NULL), '{}')
FROM users u
LEFT JOIN user_roles ur ON ur.user_id = u.id
LEFT JOIN roles r ON r.id = ur.role_id
`

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt, &user.Roles)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, shared.ErrNotFound
	}
	return user, err
}

// List returns all principals with their role names.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, userWithRoles+`GROUP BY u.id ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt, &user.Roles); err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

// Get fetches one principal by id.
func (r *Repository) Get(ctx context.Context, id int64) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, userWithRoles+`WHERE u.id = $1 GROUP BY u.id`, id))
}

// FindByUsername fetches one principal by username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, userWithRoles+`WHERE u.username = $1 GROUP BY u.id`, username))
}

// Create inserts a principal and links the named roles in one transaction.
// Duplicate username/email map to ErrConflict; a missing role name aborts the
// whole operation.
func (r *Repository) Create(ctx context.Context, username, email, passwordHash string, roleNames []string) (User, error) {
	var created User
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		now := time.Now().UTC()
		err := tx.QueryRow(ctx,
			`INSERT INTO users (username, email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $4) RETURNING id, created_at, updated_at`,
			username, email, passwordHash, now,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return db.MapError(err)
		}
		created.Username = username
		created.Email = email
		created.PasswordHash = passwordHash

		ids, err := resolveRoleIDs(ctx, tx, roleNames)
		if err != nil {
			return err
		}
		if err := linkRoles(ctx, tx, created.ID, ids); err != nil {
			return err
		}
		created.Roles = append([]string(nil), roleNames...)
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return created, nil
}

// ReplaceRoles swaps the principal's entire role edge set atomically.
func (r *Repository) ReplaceRoles(ctx context.Context, userID int64, roleNames []string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists int64
		err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&exists)
		if errors.Is(err, pgx.ErrNoRows) {
			return shared.ErrNotFound
		}
		if err != nil {
			return err
		}

		ids, err := resolveRoleIDs(ctx, tx, roleNames)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
			return err
		}
		if err := linkRoles(ctx, tx, userID, ids); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE users SET updated_at = NOW() WHERE id = $1`, userID)
		return err
	})
}

// Delete removes the principal; its role edges cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RoleGrants returns the principal's roles with their permission names,
// ordered by role id ascending. The ordering fixes which role becomes the
// primary-role claim.
func (r *Repository) RoleGrants(ctx context.Context, userID int64) ([]authority.RoleGrant, error) {
	rows, err := r.pool.Query(ctx, `
SELECT r.id, r.name,
       COALESCE(array_agg(p.name ORDER BY p.name) FILTER (WHERE p.name IS NOT NULL), '{}')
FROM user_roles ur
JOIN roles r ON r.id = ur.role_id
LEFT JOIN role_permissions rp ON rp.role_id = r.id
LEFT JOIN permissions p ON p.id = rp.permission_id
WHERE ur.user_id = $1
GROUP BY r.id
ORDER BY r.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var grants []authority.RoleGrant
	for rows.Next() {
		var id int64
		var grant authority.RoleGrant
		if err := rows.Scan(&id, &grant.Name, &grant.Permissions); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

func resolveRoleIDs(ctx context.Context, tx pgx.Tx, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := tx.Query(ctx, `SELECT id, name FROM roles WHERE name = ANY($1)`, names)
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
			return nil, fmt.Errorf("%w: role %s", shared.ErrNotFound, name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func linkRoles(ctx context.Context, tx pgx.Tx, userID int64, roleIDs []int64) error {
	for _, roleID := range roleIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, roleID,
		); err != nil {
			return err
		}
	}
	return nil
}
