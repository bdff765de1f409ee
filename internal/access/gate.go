package access

// State is the gate outcome for one navigation attempt.
type State int

const (
	StateUnresolved State = iota
	StateAllowed
	StateDenied
)

// Redirect targets. The sign-in route doubles as the fallback for unknown roles.
const (
	SignInRoute         = "/signin"
	AdminDashboardRoute = "/admin"
	AgentDashboardRoute = "/agent/dashboard"
	UserDashboardRoute  = "/dashboard"
)

// Decision is the gate's verdict. RedirectTo is set only when State is
// StateDenied.
type Decision struct {
	State      State
	RedirectTo string
}

// Decide evaluates the visibility gate for (current, required, resolved).
// It is pure: identical inputs always yield identical decisions, and callers
// must re-evaluate on every role or auth change rather than cache the result.
//
//   - auth still resolving        -> Unresolved (no redirect yet)
//   - anonymous caller            -> Denied, redirect to sign-in (always,
//     even when no role is required)
//   - required role not satisfied -> Denied, redirect to the caller's own
//     dashboard
//   - otherwise                   -> Allowed
//
// required == Anonymous means "any authenticated caller".
func Decide(current, required Role, resolved bool) Decision {
	if !resolved {
		return Decision{State: StateUnresolved}
	}
	if current == Anonymous {
		return Decision{State: StateDenied, RedirectTo: SignInRoute}
	}
	if required != Anonymous && current != required {
		return Decision{State: StateDenied, RedirectTo: DashboardRoute(current)}
	}
	return Decision{State: StateAllowed}
}

// DashboardRoute returns the dashboard canonically associated with a role.
// Unknown roles fall back to the sign-in route.
func DashboardRoute(r Role) string {
	switch r {
	case RoleAdmin:
		return AdminDashboardRoute
	case RoleAgent:
		return AgentDashboardRoute
	case RoleUser:
		return UserDashboardRoute
	}
	return SignInRoute
}
