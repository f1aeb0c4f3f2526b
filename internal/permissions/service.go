package permissions

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/praetor-admin/praetor-admin/internal/platform/cache"
	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// RepositoryPort defines data access methods for the catalog.
type RepositoryPort interface {
	List(ctx context.Context) ([]Permission, error)
	Get(ctx context.Context, id int64) (Permission, error)
	Create(ctx context.Context, p Permission) (Permission, error)
	Update(ctx context.Context, p Permission) error
	Delete(ctx context.Context, id int64) error
}

// Service handles permission catalog business rules.
type Service struct {
	repo  RepositoryPort
	audit shared.Recorder
	cache *cache.JSONCache
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit shared.Recorder, jsonCache *cache.JSONCache) *Service {
	return &Service{repo: repo, audit: audit, cache: jsonCache}
}

// List returns all permissions, served from the versioned cache when warm.
func (s *Service) List(ctx context.Context) ([]Permission, error) {
	var perms []Permission
	err := s.cache.FetchJSON(ctx, &perms, func(ctx context.Context) (interface{}, error) {
		return s.repo.List(ctx)
	}, "permissions", "list")
	if err != nil {
		return nil, err
	}
	return perms, nil
}

// Get fetches one permission.
func (s *Service) Get(ctx context.Context, id int64) (Permission, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new permission name in the catalog.
func (s *Service) Create(ctx context.Context, actor string, req CreatePermissionRequest) (Permission, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Permission{}, fmt.Errorf("%w: permission name required", shared.ErrValidation)
	}
	created, err := s.repo.Create(ctx, Permission{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Resource:    strings.TrimSpace(req.Resource),
		Action:      strings.TrimSpace(req.Action),
	})
	if err != nil {
		return Permission{}, err
	}
	s.invalidate(ctx)
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "permission.create",
		Entity:   "permission",
		EntityID: strconv.FormatInt(created.ID, 10),
		Meta:     map[string]any{"name": created.Name},
	})
	return created, nil
}

// Update edits description/resource/action; absent fields keep their value.
func (s *Service) Update(ctx context.Context, actor string, id int64, req UpdatePermissionRequest) (Permission, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Permission{}, err
	}
	if req.Description != nil {
		current.Description = strings.TrimSpace(*req.Description)
	}
	if req.Resource != nil {
		current.Resource = strings.TrimSpace(*req.Resource)
	}
	if req.Action != nil {
		current.Action = strings.TrimSpace(*req.Action)
	}
	if err := s.repo.Update(ctx, current); err != nil {
		return Permission{}, err
	}
	s.invalidate(ctx)
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "permission.update",
		Entity:   "permission",
		EntityID: strconv.FormatInt(id, 10),
		Meta:     map[string]any{"name": current.Name},
	})
	return current, nil
}

// Delete removes a permission; roles referencing it lose the edge in the same
// statement (cascade). Idempotent.
func (s *Service) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "permission.delete",
		Entity:   "permission",
		EntityID: strconv.FormatInt(id, 10),
	})
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	_ = s.cache.Bump(ctx)
}
