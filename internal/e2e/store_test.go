package e2e

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/praetor-admin/praetor-admin/internal/authority"
	"github.com/praetor-admin/praetor-admin/internal/permissions"
	"github.com/praetor-admin/praetor-admin/internal/roles"
	"github.com/praetor-admin/praetor-admin/internal/shared"
	"github.com/praetor-admin/praetor-admin/internal/users"
)

// store is an in-memory stand-in for the PostgreSQL schema: three entity
// tables plus the two join edges, with the same cascade semantics.
type store struct {
	mu       sync.Mutex
	perms    map[int64]permissions.Permission
	roles    map[int64]roles.Role
	users    map[int64]users.User
	nextPerm int64
	nextRole int64
	nextUser int64
}

func newStore() *store {
	return &store{
		perms:    map[int64]permissions.Permission{},
		roles:    map[int64]roles.Role{},
		users:    map[int64]users.User{},
		nextPerm: 1,
		nextRole: 1,
		nextUser: 1,
	}
}

func (s *store) permByName(name string) (permissions.Permission, bool) {
	for _, p := range s.perms {
		if p.Name == name {
			return p, true
		}
	}
	return permissions.Permission{}, false
}

func (s *store) roleByName(name string) (roles.Role, bool) {
	for _, r := range s.roles {
		if r.Name == name {
			return r, true
		}
	}
	return roles.Role{}, false
}

type permRepo struct{ s *store }

func (r permRepo) List(ctx context.Context) ([]permissions.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]permissions.Permission, 0, len(r.s.perms))
	for _, p := range r.s.perms {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r permRepo) Get(ctx context.Context, id int64) (permissions.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.perms[id]
	if !ok {
		return permissions.Permission{}, shared.ErrNotFound
	}
	return p, nil
}

func (r permRepo) Create(ctx context.Context, p permissions.Permission) (permissions.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.permByName(p.Name); ok {
		return permissions.Permission{}, shared.ErrConflict
	}
	p.ID = r.s.nextPerm
	p.CreatedAt = time.Now().UTC()
	r.s.nextPerm++
	r.s.perms[p.ID] = p
	return p, nil
}

func (r permRepo) Update(ctx context.Context, p permissions.Permission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.perms[p.ID]; !ok {
		return shared.ErrNotFound
	}
	r.s.perms[p.ID] = p
	return nil
}

// Delete mirrors the ON DELETE CASCADE on role_permissions: the permission
// disappears from every role's edge set in the same operation.
func (r permRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.perms[id]
	if !ok {
		return nil
	}
	delete(r.s.perms, id)
	for rid, role := range r.s.roles {
		kept := role.Permissions[:0]
		for _, name := range role.Permissions {
			if name != p.Name {
				kept = append(kept, name)
			}
		}
		role.Permissions = kept
		r.s.roles[rid] = role
	}
	return nil
}

type roleRepo struct{ s *store }

func (r roleRepo) List(ctx context.Context) ([]roles.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]roles.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r roleRepo) Get(ctx context.Context, id int64) (roles.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	role, ok := r.s.roles[id]
	if !ok {
		return roles.Role{}, shared.ErrNotFound
	}
	return role, nil
}

func (r roleRepo) Create(ctx context.Context, name, description string, permissionNames []string) (roles.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roleByName(name); ok {
		return roles.Role{}, shared.ErrConflict
	}
	for _, pn := range permissionNames {
		if _, ok := r.s.permByName(pn); !ok {
			return roles.Role{}, fmt.Errorf("%w: permission %s", shared.ErrNotFound, pn)
		}
	}
	role := roles.Role{
		ID:          r.s.nextRole,
		Name:        name,
		Description: description,
		Permissions: append([]string(nil), permissionNames...),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	r.s.nextRole++
	r.s.roles[role.ID] = role
	return role, nil
}

func (r roleRepo) ReplacePermissions(ctx context.Context, roleID int64, permissionNames []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	role, ok := r.s.roles[roleID]
	if !ok {
		return shared.ErrNotFound
	}
	for _, pn := range permissionNames {
		if _, ok := r.s.permByName(pn); !ok {
			return fmt.Errorf("%w: permission %s", shared.ErrNotFound, pn)
		}
	}
	role.Permissions = append([]string(nil), permissionNames...)
	role.UpdatedAt = time.Now().UTC()
	r.s.roles[roleID] = role
	return nil
}

// Delete mirrors the ON DELETE CASCADE on user_roles.
func (r roleRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	role, ok := r.s.roles[id]
	if !ok {
		return shared.ErrNotFound
	}
	delete(r.s.roles, id)
	for uid, user := range r.s.users {
		kept := user.Roles[:0]
		for _, name := range user.Roles {
			if name != role.Name {
				kept = append(kept, name)
			}
		}
		user.Roles = kept
		r.s.users[uid] = user
	}
	return nil
}

type userRepo struct{ s *store }

func (r userRepo) List(ctx context.Context) ([]users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]users.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r userRepo) Get(ctx context.Context, id int64) (users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, shared.ErrNotFound
	}
	return u, nil
}

func (r userRepo) FindByUsername(ctx context.Context, username string) (users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return users.User{}, shared.ErrNotFound
}

func (r userRepo) Create(ctx context.Context, username, email, passwordHash string, roleNames []string) (users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username || u.Email == email {
			return users.User{}, shared.ErrConflict
		}
	}
	for _, rn := range roleNames {
		if _, ok := r.s.roleByName(rn); !ok {
			return users.User{}, fmt.Errorf("%w: role %s", shared.ErrNotFound, rn)
		}
	}
	u := users.User{
		ID:           r.s.nextUser,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Roles:        append([]string(nil), roleNames...),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	r.s.nextUser++
	r.s.users[u.ID] = u
	return u, nil
}

func (r userRepo) ReplaceRoles(ctx context.Context, userID int64, roleNames []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return shared.ErrNotFound
	}
	for _, rn := range roleNames {
		if _, ok := r.s.roleByName(rn); !ok {
			return fmt.Errorf("%w: role %s", shared.ErrNotFound, rn)
		}
	}
	u.Roles = append([]string(nil), roleNames...)
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func (r userRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

// RoleGrants matches the SQL lookup: roles ordered by id, permission names
// sorted ascending.
func (r userRepo) RoleGrants(ctx context.Context, userID int64) ([]authority.RoleGrant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	var held []roles.Role
	for _, name := range u.Roles {
		if role, ok := r.s.roleByName(name); ok {
			held = append(held, role)
		}
	}
	sort.Slice(held, func(i, j int) bool { return held[i].ID < held[j].ID })
	grants := make([]authority.RoleGrant, 0, len(held))
	for _, role := range held {
		perms := append([]string(nil), role.Permissions...)
		sort.Strings(perms)
		grants = append(grants, authority.RoleGrant{Name: role.Name, Permissions: perms})
	}
	return grants, nil
}
