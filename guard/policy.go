package guard

import "github.com/pettrack/console/model"

// RoutePolicy maps a protected route segment to the roles permitted to
// view it. Static configuration consulted when wiring routes; never
// mutated at runtime.
type RoutePolicy map[string][]model.UserRole

// DefaultPolicy is the console's route access policy. Route segments
// missing from the map are not role-gated routes; callers must treat
// an absent entry as "deny" when gating.
func DefaultPolicy() RoutePolicy {
	staff := []model.UserRole{model.RoleUser, model.RoleEditor, model.RoleAdmin}

	return RoutePolicy{
		"home":          staff,
		"animals":       staff,
		"species":       staff,
		"breeds":        staff,
		"devices":       staff,
		"notifications": staff,
		"telemetries":   staff,
		"perfil":        staff,
		"users":         {model.RoleAdmin},
	}
}

// AllowedRoles looks up the roles permitted for a route segment.
// Unknown segments return ok=false so callers fail closed.
func (p RoutePolicy) AllowedRoles(segment string) ([]model.UserRole, bool) {
	roles, ok := p[segment]
	if !ok || len(roles) == 0 {
		return nil, false
	}
	return roles, true
}
