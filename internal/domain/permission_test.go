package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionSet(t *testing.T) {
	set := NewPermissionSet(domainPerms()...)

	assert.True(t, set.Has(PermissionViewReports))
	assert.False(t, set.Has(PermissionManageRoles))

	// Values come back in declaration order regardless of insertion order.
	assert.Equal(t, []Permission{PermissionManageElections, PermissionViewReports}, set.Values())
}

func domainPerms() []Permission {
	return []Permission{PermissionViewReports, PermissionManageElections}
}

func TestFullPermissionSet(t *testing.T) {
	full := FullPermissionSet()

	assert.Len(t, full, len(AllPermissions))
	for _, p := range AllPermissions {
		assert.True(t, full.Has(p))
	}
}

func TestPermission_IsValid(t *testing.T) {
	assert.True(t, PermissionManageDelegates.IsValid())
	assert.False(t, Permission("manage_everything").IsValid())
}
