package projects

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// RepositoryPort defines data access methods for projects.
type RepositoryPort interface {
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id int64) (Project, error)
	Create(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, p Project) error
	Delete(ctx context.Context, id int64) error
}

// Service handles project tracking business rules.
type Service struct {
	repo  RepositoryPort
	audit shared.Recorder
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit shared.Recorder) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns all projects.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

// Get fetches one project.
func (s *Service) Get(ctx context.Context, id int64) (Project, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new project. Status defaults to PLANNED.
func (s *Service) Create(ctx context.Context, actor string, req CreateProjectRequest) (Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Project{}, fmt.Errorf("%w: project name required", shared.ErrValidation)
	}
	status := req.Status
	if status == "" {
		status = StatusPlanned
	}
	if err := validDates(req.StartDate, req.EndDate); err != nil {
		return Project{}, err
	}
	created, err := s.repo.Create(ctx, Project{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return Project{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "project.create",
		Entity:   "project",
		EntityID: strconv.FormatInt(created.ID, 10),
		Meta:     map[string]any{"name": created.Name},
	})
	return created, nil
}

// Update edits description/status/dates; absent fields keep their value. The
// name never changes.
func (s *Service) Update(ctx context.Context, actor string, id int64, req UpdateProjectRequest) (Project, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if req.Description != nil {
		current.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		current.Status = *req.Status
	}
	if req.StartDate != nil {
		current.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		current.EndDate = req.EndDate
	}
	if err := validDates(current.StartDate, current.EndDate); err != nil {
		return Project{}, err
	}
	if err := s.repo.Update(ctx, current); err != nil {
		return Project{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "project.update",
		Entity:   "project",
		EntityID: strconv.FormatInt(id, 10),
	})
	return current, nil
}

// Delete removes a project. Idempotent.
func (s *Service) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "project.delete",
		Entity:   "project",
		EntityID: strconv.FormatInt(id, 10),
	})
	return nil
}

func validDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: end date precedes start date", shared.ErrValidation)
	}
	return nil
}
