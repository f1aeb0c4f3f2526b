package users

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/praetor-admin/praetor-admin/internal/authority"
	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// RepositoryPort defines data access methods for principals.
type RepositoryPort interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, username, email, passwordHash string, roleNames []string) (User, error)
	ReplaceRoles(ctx context.Context, userID int64, roleNames []string) error
	Delete(ctx context.Context, id int64) error
	RoleGrants(ctx context.Context, userID int64) ([]authority.RoleGrant, error)
}

// MailEnqueuer schedules transactional mail without blocking the request.
type MailEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, email, username string) error
}

// Service handles identity store business rules. Raw secrets are hashed on
// entry and never stored or logged.
type Service struct {
	repo  RepositoryPort
	audit shared.Recorder
	mail  MailEnqueuer
}

// NewService builds a Service instance. mail may be nil.
func NewService(repo RepositoryPort, audit shared.Recorder, mail MailEnqueuer) *Service {
	return &Service{repo: repo, audit: audit, mail: mail}
}

// List returns all principals.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get fetches one principal.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.Get(ctx, id)
}

// FindByUsername fetches one principal by username.
func (s *Service) FindByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// Create registers a principal. Username and email uniqueness violations map
// to ErrConflict; missing role names abort atomically.
func (s *Service) Create(ctx context.Context, actor string, req CreateUserRequest) (User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if username == "" || email == "" {
		return User{}, fmt.Errorf("%w: username and email required", shared.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	created, err := s.repo.Create(ctx, username, email, string(hash), dedupe(req.Roles))
	if err != nil {
		return User{}, err
	}

	if s.mail != nil {
		// Best effort; account creation already committed.
		_ = s.mail.EnqueueWelcomeEmail(ctx, created.Email, created.Username)
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "user.create",
		Entity:   "user",
		EntityID: strconv.FormatInt(created.ID, 10),
		Meta:     map[string]any{"username": created.Username, "roles": created.Roles},
	})
	return created, nil
}

// ReplaceRoles swaps the principal's role set. Already-issued tokens keep
// their authority snapshot until expiry.
func (s *Service) ReplaceRoles(ctx context.Context, actor string, userID int64, req ReplaceRolesRequest) (User, error) {
	if err := s.repo.ReplaceRoles(ctx, userID, dedupe(req.Roles)); err != nil {
		return User{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "user.replace_roles",
		Entity:   "user",
		EntityID: strconv.FormatInt(userID, 10),
		Meta:     map[string]any{"roles": req.Roles},
	})
	return s.repo.Get(ctx, userID)
}

// Delete removes the principal outright.
func (s *Service) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   "user.delete",
		Entity:   "user",
		EntityID: strconv.FormatInt(id, 10),
	})
	return nil
}

// RoleGrants exposes the two-hop role/permission lookup used at token
// issuance.
func (s *Service) RoleGrants(ctx context.Context, userID int64) ([]authority.RoleGrant, error) {
	return s.repo.RoleGrants(ctx, userID)
}

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
