package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_Unresolved(t *testing.T) {
	d := Decide(RoleAdmin, RoleAdmin, false)
	assert.Equal(t, StateUnresolved, d.State)
	assert.Empty(t, d.RedirectTo)
}

func TestDecide_AnonymousAlwaysDenied(t *testing.T) {
	for _, required := range []Role{Anonymous, RoleUser, RoleAgent, RoleAdmin} {
		d := Decide(Anonymous, required, true)
		assert.Equal(t, StateDenied, d.State)
		assert.Equal(t, SignInRoute, d.RedirectTo)
	}
}

func TestDecide_NoRequiredRoleAllowsAnyAuthenticated(t *testing.T) {
	for _, current := range []Role{RoleUser, RoleAgent, RoleAdmin} {
		d := Decide(current, Anonymous, true)
		assert.Equal(t, StateAllowed, d.State)
	}
}

func TestDecide_WrongRoleRedirectsToOwnDashboard(t *testing.T) {
	cases := []struct {
		current  Role
		required Role
		redirect string
	}{
		{RoleUser, RoleAdmin, UserDashboardRoute},
		{RoleAgent, RoleAdmin, AgentDashboardRoute},
		{RoleAdmin, RoleAgent, AdminDashboardRoute},
		{RoleUser, RoleAgent, UserDashboardRoute},
	}
	for _, tc := range cases {
		d := Decide(tc.current, tc.required, true)
		assert.Equal(t, StateDenied, d.State)
		assert.Equal(t, tc.redirect, d.RedirectTo)
	}
}

func TestDecide_MatchingRoleAllowed(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleAgent, RoleAdmin} {
		d := Decide(r, r, true)
		assert.Equal(t, StateAllowed, d.State)
		assert.Empty(t, d.RedirectTo)
	}
}

func TestDecide_Idempotent(t *testing.T) {
	first := Decide(RoleAgent, RoleAdmin, true)
	second := Decide(RoleAgent, RoleAdmin, true)
	assert.Equal(t, first, second)
}

func TestParseRole_FailClosed(t *testing.T) {
	assert.Equal(t, Anonymous, ParseRole(""))
	assert.Equal(t, Anonymous, ParseRole("superuser"))
	assert.Equal(t, Anonymous, ParseRole("Admin"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleAgent, ParseRole("agent"))
	assert.Equal(t, RoleUser, ParseRole("user"))
}

func TestRoleForAccount_LegacyDefault(t *testing.T) {
	assert.Equal(t, RoleUser, RoleForAccount(""))
	assert.Equal(t, RoleAdmin, RoleForAccount("admin"))
	assert.Equal(t, Anonymous, RoleForAccount("garbage"))
}
