package constants

import "karoo-backend/internal/access"

// PermissionRoles maps each permission to the roles allowed to perform it.
// Role membership is only ever checked through AllowedRole; handlers never
// compare roles inline.
var PermissionRoles = map[string][]access.Role{
	CreateProperty: {access.RoleAgent, access.RoleAdmin},
	EditProperty:   {access.RoleAgent, access.RoleAdmin},
	DeleteProperty: {access.RoleAdmin},
	RespondInquiry: {access.RoleAgent, access.RoleAdmin},
	ApproveReview:  {access.RoleAdmin},
	ManageUsers:    {access.RoleAdmin},
	RunSeed:        {access.RoleAdmin},
	ViewAgentData:  {access.RoleAgent, access.RoleAdmin},
}

// AllowedRole returns true if role is in the list of allowed roles for the
// permission.
func AllowedRole(permission string, role access.Role) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
