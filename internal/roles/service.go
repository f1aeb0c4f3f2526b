package roles

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/praetor-admin/praetor-admin/internal/platform/cache"
	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// RepositoryPort defines data access methods for the role registry.
type RepositoryPort interface {
	List(ctx context.Context) ([]Role, error)
	Get(ctx context.Context, id int64) (Role, error)
	Create(ctx context.Context, name, description string, permissionNames []string) (Role, error)
	ReplacePermissions(ctx context.Context, roleID int64, permissionNames []string) error
	Delete(ctx context.Context, id int64) error
}

// Service handles role registry business rules.
type Service struct {
	repo  RepositoryPort
	audit shared.Recorder
	cache *cache.JSONCache
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit shared.Recorder, jsonCache *cache.JSONCache) *Service {
	return &Service{repo: repo, audit: audit, cache: jsonCache}
}

// List returns all roles with their permission names.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	var out []Role
	err := s.cache.FetchJSON(ctx, &out, func(ctx context.Context) (interface{}, error) {
		return s.repo.List(ctx)
	}, "roles", "list")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one role.
func (s *Service) Get(ctx context.Context, id int64) (Role, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a role holding the named permissions. The whole operation
// is atomic; a missing permission name aborts it without a partial role.
func (s *Service) Create(ctx context.Context, actor string, req CreateRoleRequest) (Role, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Role{}, fmt.Errorf("%w: role name required", shared.ErrValidation)
	}
	created, err := s.repo.Create(ctx, name, strings.TrimSpace(req.Description), dedupe(req.Permissions))
	if err != nil {
		return Role{}, err
	}
	s.invalidate(ctx)
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "role.create",
		Entity:   "role",
		EntityID: strconv.FormatInt(created.ID, 10),
		Meta:     map[string]any{"name": created.Name, "permissions": created.Permissions},
	})
	return created, nil
}

// ReplacePermissions swaps the role's permission set for the supplied one.
// Holders of the role see the new set on their next authority resolution;
// already-issued tokens keep the old snapshot until they expire.
func (s *Service) ReplacePermissions(ctx context.Context, actor string, roleID int64, req ReplacePermissionsRequest) (Role, error) {
	if err := s.repo.ReplacePermissions(ctx, roleID, dedupe(req.Permissions)); err != nil {
		return Role{}, err
	}
	s.invalidate(ctx)
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "role.replace_permissions",
		Entity:   "role",
		EntityID: strconv.FormatInt(roleID, 10),
		Meta:     map[string]any{"permissions": req.Permissions},
	})
	return s.repo.Get(ctx, roleID)
}

// Delete removes the role and its edges.
func (s *Service) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "role.delete",
		Entity:   "role",
		EntityID: strconv.FormatInt(id, 10),
	})
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	_ = s.cache.Bump(ctx)
}

// dedupe preserves first-seen order while dropping duplicates and blanks.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
