package authority

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEmpty(t *testing.T) {
	assert.Empty(t, Resolve(nil))
	assert.Empty(t, Resolve([]RoleGrant{}))
}

func TestResolveMarkersAndPermissions(t *testing.T) {
	grants := []RoleGrant{
		{Name: "VIEWER", Permissions: []string{"X_READ"}},
	}
	assert.Equal(t, []string{"ROLE_VIEWER", "X_READ"}, Resolve(grants))
}

func TestResolveDeduplicatesAcrossRoles(t *testing.T) {
	grants := []RoleGrant{
		{Name: "EDITOR", Permissions: []string{"DOC_READ", "DOC_WRITE"}},
		{Name: "REVIEWER", Permissions: []string{"DOC_READ", "DOC_COMMENT"}},
	}
	got := Resolve(grants)
	assert.Equal(t, []string{
		"DOC_COMMENT", "DOC_READ", "DOC_WRITE", "ROLE_EDITOR", "ROLE_REVIEWER",
	}, got)
}

func TestResolveEmptyRoleContributesMarkerOnly(t *testing.T) {
	grants := []RoleGrant{{Name: "AUDITOR"}}
	assert.Equal(t, []string{"ROLE_AUDITOR"}, Resolve(grants))
}

func TestPrimaryRole(t *testing.T) {
	assert.Equal(t, "", PrimaryRole(nil))
	grants := []RoleGrant{{Name: "ADMIN"}, {Name: "VIEWER"}}
	assert.Equal(t, "ADMIN", PrimaryRole(grants))
}
