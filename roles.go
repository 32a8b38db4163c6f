package jobboard

// roleRanks orders roles from least to most privileged. Unknown roles rank
// below every known role.
var roleRanks = map[UserRole]int{
	RoleEmployee:   1,
	RoleEmployer:   2,
	RoleManagement: 3,
	RoleAdmin:      4,
}

func roleRank(role UserRole) int {
	return roleRanks[role]
}

// ValidRole reports whether the role is one the platform knows about.
func ValidRole(role UserRole) bool {
	_, ok := roleRanks[role]
	return ok
}

// SignupRoles are the roles a user may self-select at registration. Admin is
// excluded; the administrator account is provisioned by the system.
var SignupRoles = []UserRole{RoleEmployee, RoleEmployer, RoleManagement}

// ValidSignupRole reports whether a self-registered account may take the role.
func ValidSignupRole(role UserRole) bool {
	for _, r := range SignupRoles {
		if r == role {
			return true
		}
	}
	return false
}
