package domain

// Permission is a fine-grained capability grantable to a program role.
// The set is closed; admins hold every permission implicitly.
type Permission string

const (
	PermissionManageProgramYears Permission = "manage_program_years"
	PermissionManageGroupings    Permission = "manage_groupings"
	PermissionManageParties      Permission = "manage_parties"
	PermissionManagePositions    Permission = "manage_positions"
	PermissionManageElections    Permission = "manage_elections"
	PermissionManageDelegates    Permission = "manage_delegates"
	PermissionManageStaff        Permission = "manage_staff"
	PermissionManageParents      Permission = "manage_parents"
	PermissionManageRoles        Permission = "manage_roles"
	PermissionViewReports        Permission = "view_reports"
)

// AllPermissions is the full permission universe, in declaration order.
var AllPermissions = []Permission{
	PermissionManageProgramYears,
	PermissionManageGroupings,
	PermissionManageParties,
	PermissionManagePositions,
	PermissionManageElections,
	PermissionManageDelegates,
	PermissionManageStaff,
	PermissionManageParents,
	PermissionManageRoles,
	PermissionViewReports,
}

// IsValid reports whether p is one of the declared permissions.
func (p Permission) IsValid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}

	return false
}

// PermissionSet is a set of permissions keyed by value.
type PermissionSet map[Permission]struct{}

func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}

	return set
}

// FullPermissionSet returns a set containing every declared permission.
func FullPermissionSet() PermissionSet {
	return NewPermissionSet(AllPermissions...)
}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]

	return ok
}

// Values returns the set's permissions in declaration order.
func (s PermissionSet) Values() []Permission {
	values := make([]Permission, 0, len(s))
	for _, p := range AllPermissions {
		if s.Has(p) {
			values = append(values, p)
		}
	}

	return values
}
