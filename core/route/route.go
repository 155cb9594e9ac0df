package route

import (
	"github.com/trezcool/lms/core/auth"
	"github.com/trezcool/lms/core/user"
)

// View names a page component.
type View string

const (
	ViewHome       View = "home"
	ViewAuth       View = "auth"
	ViewAdmin      View = "admin"
	ViewInstructor View = "instructor"
)

// Paths
const (
	HomePath       = "/"
	AuthPath       = "/auth"
	AdminPath      = "/admin"
	InstructorPath = "/instructor"
)

// Route maps a path onto a view. A nil Roles means the route is public.
type Route struct {
	Path  string
	View  View
	Roles user.RoleSet
}

func (r Route) IsProtected() bool {
	return len(r.Roles) > 0
}

// table is the static route table. Callers only ever get copies.
var table = []Route{
	{Path: HomePath, View: ViewHome},
	{Path: AuthPath, View: ViewAuth},
	{Path: AdminPath, View: ViewAdmin, Roles: user.NewRoleSet(user.RoleAdmin)},
	{Path: InstructorPath, View: ViewInstructor, Roles: user.NewRoleSet(user.RoleInstructor)},
}

func (r Route) clone() Route {
	if r.Roles != nil {
		r.Roles = user.NewRoleSet(r.Roles.Sorted()...)
	}
	return r
}

// Routes returns a copy of the route table.
func Routes() []Route {
	routes := make([]Route, len(table))
	for i, r := range table {
		routes[i] = r.clone()
	}
	return routes
}

func Lookup(path string) (Route, bool) {
	for _, r := range table {
		if r.Path == path {
			return r.clone(), true
		}
	}
	return Route{}, false
}

// Resolve finds the route for path and runs the guard on protected ones.
// Public routes are always allowed.
func Resolve(path string, sub auth.Subject) (Route, auth.Decision, bool) {
	r, ok := Lookup(path)
	if !ok {
		return Route{}, auth.Decision{}, false
	}
	if !r.IsProtected() {
		return r, auth.Decision{Outcome: auth.Allow}, true
	}
	return r, auth.Authorize(r.Roles, sub), true
}

// Destination is where a freshly logged in user lands.
func Destination(role user.Role) string {
	switch role {
	case user.RoleAdmin:
		return AdminPath
	case user.RoleInstructor:
		return InstructorPath
	default:
		return HomePath
	}
}

// RedirectPath is where a non-Allow decision sends the user; empty for Allow.
func RedirectPath(d auth.Decision) string {
	switch d.Outcome {
	case auth.RedirectToLogin:
		return AuthPath
	case auth.RedirectToHome:
		return HomePath
	default:
		return ""
	}
}
