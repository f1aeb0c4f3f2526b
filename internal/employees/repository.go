package employees

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praetor-admin/praetor-admin/internal/platform/db"
	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// Repository provides PostgreSQL backed persistence for employees.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all employees ordered by name.
func (r *Repository) List(ctx context.Context) ([]Employee, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, email, department, salary, created_at FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Salary, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get fetches an employee by id.
func (r *Repository) Get(ctx context.Context, id int64) (Employee, error) {
	var e Employee
	err := r.pool.QueryRow(ctx, `SELECT id, name, email, department, salary, created_at FROM employees WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Salary, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, shared.ErrNotFound
	}
	return e, err
}

// Create inserts a new employee. Duplicate emails map to ErrConflict.
func (r *Repository) Create(ctx context.Context, e Employee) (Employee, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO employees (name, email, department, salary, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		e.Name, e.Email, e.Department, e.Salary, time.Now().UTC(),
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return Employee{}, db.MapError(err)
	}
	return e, nil
}

// Update overwrites the mutable fields of an employee record.
func (r *Repository) Update(ctx context.Context, e Employee) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE employees SET name = $2, department = $3, salary = $4 WHERE id = $1`,
		e.ID, e.Name, e.Department, e.Salary,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an employee. Deleting an absent id is a no-op.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	return err
}
