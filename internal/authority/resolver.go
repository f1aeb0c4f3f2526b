// Package authority derives the effective authority set of a principal from
// the roles it holds. Resolution is pure and runs once per authentication
// event; the result is embedded into the issued token as a snapshot.
package authority

import "sort"

// RolePrefix marks role-derived authorities apart from permission names.
const RolePrefix = "ROLE_"

// RoleGrant is a role held by a principal together with the permission names
// reachable through it. Grants arrive ordered by role id ascending so the
// primary role is deterministic across issuances.
type RoleGrant struct {
	Name        string
	Permissions []string
}

// Resolve returns the deduplicated union of role markers and permission names
// across all grants, sorted for stable encoding. A principal with no roles
// resolves to an empty set; a role with no permissions contributes only its
// marker.
func Resolve(grants []RoleGrant) []string {
	seen := make(map[string]struct{}, len(grants)*4)
	for _, grant := range grants {
		seen[RolePrefix+grant.Name] = struct{}{}
		for _, perm := range grant.Permissions {
			seen[perm] = struct{}{}
		}
	}
	authorities := make([]string, 0, len(seen))
	for name := range seen {
		authorities = append(authorities, name)
	}
	sort.Strings(authorities)
	return authorities
}

// PrimaryRole returns the name of the first grant, or empty when the
// principal holds no roles.
func PrimaryRole(grants []RoleGrant) string {
	if len(grants) == 0 {
		return ""
	}
	return grants[0].Name
}
