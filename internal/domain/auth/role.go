package auth

// Role is the closed set of identities the app recognizes. Parsing funnels
// every external string through ParseRole, so switch statements over Role
// never need an "unknown" branch at runtime.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
	RoleStudent Role = "student"
	RoleGuest   Role = "guest"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleParent, RoleStudent, RoleGuest:
		return Role(s), true
	default:
		return "", false
	}
}

const (
	RouteLogin            = "/login"
	RouteAdminDashboard   = "/admin"
	RouteTeacherDashboard = "/teacher"
	RouteParentDashboard  = "/parent"
	RouteStudentHome      = "/student"
)

// DashboardRoute maps a role to its landing route. Total: anything outside
// the closed set lands on the neutral login route instead of a blank page.
func DashboardRoute(r Role) string {
	switch r {
	case RoleAdmin:
		return RouteAdminDashboard
	case RoleTeacher:
		return RouteTeacherDashboard
	case RoleParent:
		return RouteParentDashboard
	case RoleStudent, RoleGuest:
		return RouteStudentHome
	default:
		return RouteLogin
	}
}
