package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pettrack/console/model"
)

func TestIsValidRole(t *testing.T) {
	for _, role := range model.AllRoles() {
		assert.True(t, model.IsValidRole(role), role)
	}

	assert.False(t, model.IsValidRole("superuser"))
	assert.False(t, model.IsValidRole("ADMIN"))
	assert.False(t, model.IsValidRole(""))
}

func TestParseRole(t *testing.T) {
	role, ok := model.ParseRole("editor")
	assert.True(t, ok)
	assert.Equal(t, model.RoleEditor, role)

	_, ok = model.ParseRole("root")
	assert.False(t, ok)
}

func TestRoleIsAtLeast(t *testing.T) {
	tests := []struct {
		role     model.UserRole
		minRole  model.UserRole
		expected bool
	}{
		{model.RoleAdmin, model.RoleUser, true},
		{model.RoleAdmin, model.RoleAdmin, true},
		{model.RoleEditor, model.RoleUser, true},
		{model.RoleEditor, model.RoleAdmin, false},
		{model.RoleUser, model.RoleEditor, false},
		{"superuser", model.RoleUser, false},
		{model.RoleAdmin, "superuser", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, model.RoleIsAtLeast(tt.role, tt.minRole), "%s >= %s", tt.role, tt.minRole)
	}
}
