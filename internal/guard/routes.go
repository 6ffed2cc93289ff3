package guard

import (
	"strings"

	"voltworks/pkg/model"
)

// Navigation destinations used by the guard's redirect responses.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Requirement declares what a route group demands from the session. A zero
// field means "no constraint" for that dimension.
type Requirement struct {
	Role     model.Role
	UserType model.UserType
}

// Route binds a path prefix to its requirement. A nil requirement marks a
// public group. All per-page access checks live in this one table instead of
// being scattered across handlers.
type Route struct {
	Prefix  string
	Require *Requirement
}

var routes = []Route{
	{Prefix: "/health", Require: nil},
	{Prefix: "/ready", Require: nil},
	{Prefix: "/api/v1/auth/", Require: nil},
	{Prefix: "/api/v1/meta/", Require: nil},

	{Prefix: "/api/v1/customer/", Require: &Requirement{UserType: model.UserTypeCustomer}},
	{Prefix: "/api/v1/staff/", Require: &Requirement{UserType: model.UserTypeEmployee, Role: model.RoleStaff}},
	{Prefix: "/api/v1/technician/", Require: &Requirement{UserType: model.UserTypeEmployee, Role: model.RoleTechnician}},
	{Prefix: "/api/v1/admin/", Require: &Requirement{UserType: model.UserTypeEmployee, Role: model.RoleAdmin}},
}

// RequirementFor resolves the longest matching prefix for a request path.
// Unknown paths are treated as public; the router 404s them anyway.
func RequirementFor(path string) (*Requirement, bool) {
	var best *Route
	bestLen := -1
	for i := range routes {
		route := &routes[i]
		if strings.HasPrefix(path, route.Prefix) && len(route.Prefix) > bestLen {
			best = route
			bestLen = len(route.Prefix)
		}
	}
	if best == nil {
		return nil, false
	}
	return best.Require, true
}
