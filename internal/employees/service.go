package employees

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// RepositoryPort defines data access methods for the employee directory.
type RepositoryPort interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id int64) error
}

// Service handles employee directory business rules.
type Service struct {
	repo  RepositoryPort
	audit shared.Recorder
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit shared.Recorder) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns all employees.
func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.repo.List(ctx)
}

// Get fetches one employee.
func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	return s.repo.Get(ctx, id)
}

// Create adds an employee to the directory.
func (s *Service) Create(ctx context.Context, actor string, req CreateEmployeeRequest) (Employee, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return Employee{}, fmt.Errorf("%w: employee email required", shared.ErrValidation)
	}
	created, err := s.repo.Create(ctx, Employee{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Department: strings.TrimSpace(req.Department),
		Salary:     req.Salary,
	})
	if err != nil {
		return Employee{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "employee.create",
		Entity:   "employee",
		EntityID: strconv.FormatInt(created.ID, 10),
		Meta:     map[string]any{"email": created.Email},
	})
	return created, nil
}

// Update edits name/department/salary; absent fields keep their value. Email
// is immutable, it identifies the record to integrations.
func (s *Service) Update(ctx context.Context, actor string, id int64, req UpdateEmployeeRequest) (Employee, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if req.Name != nil {
		current.Name = strings.TrimSpace(*req.Name)
	}
	if req.Department != nil {
		current.Department = strings.TrimSpace(*req.Department)
	}
	if req.Salary != nil {
		current.Salary = *req.Salary
	}
	if err := s.repo.Update(ctx, current); err != nil {
		return Employee{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "employee.update",
		Entity:   "employee",
		EntityID: strconv.FormatInt(id, 10),
	})
	return current, nil
}

// Delete removes an employee. Idempotent.
func (s *Service) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "employee.delete",
		Entity:   "employee",
		EntityID: strconv.FormatInt(id, 10),
	})
	return nil
}
