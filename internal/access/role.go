package access

// Role is the tagged role variant. All role checks in the codebase go through
// this package; handlers never compare role strings inline.
type Role int

const (
	Anonymous Role = iota
	RoleUser
	RoleAgent
	RoleAdmin
)

const (
	roleStringAdmin = "admin"
	roleStringAgent = "agent"
	roleStringUser  = "user"
)

// ParseRole maps a role claim to a Role. Unknown, malformed, or empty claims
// map to Anonymous (fail closed).
func ParseRole(claim string) Role {
	switch claim {
	case roleStringAdmin:
		return RoleAdmin
	case roleStringAgent:
		return RoleAgent
	case roleStringUser:
		return RoleUser
	}
	return Anonymous
}

// RoleForAccount maps the role column of a known account row to a Role.
// Legacy rows without a role default to RoleUser immediately; the backfill
// utility later persists the default. Malformed non-empty values still fail
// closed via ParseRole.
func RoleForAccount(column string) Role {
	if column == "" {
		return RoleUser
	}
	return ParseRole(column)
}

// String returns the stored/wire form of the role. Anonymous has no stored form.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return roleStringAdmin
	case RoleAgent:
		return roleStringAgent
	case RoleUser:
		return roleStringUser
	}
	return ""
}
