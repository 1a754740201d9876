package domain

// Role determines which dashboard and protected routes a session may access.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

// ParseRole maps a backend role string to a known Role.
// Unrecognized values return RoleFreelancer, the login fallback destination.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleClient, RoleFreelancer:
		return Role(s)
	}
	return RoleFreelancer
}

// Known reports whether s names one of the three platform roles exactly.
func Known(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleClient, RoleFreelancer:
		return true
	}
	return false
}
