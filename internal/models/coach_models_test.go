package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCoachRole(t *testing.T) {
	tests := []struct {
		raw             string
		expectedRole    string
		expectedChanged bool
	}{
		{"admin", CoachRoleAdmin, false},
		{"coach", CoachRoleCoach, false},
		{"Admin", CoachRoleAdmin, true},
		{" admin ", CoachRoleAdmin, true},
		{"COACH", CoachRoleCoach, true},
		{"", CoachRoleCoach, true},
		{"manager", CoachRoleCoach, true},
		{"Administrator", CoachRoleCoach, true},
	}

	for _, tc := range tests {
		t.Run("raw="+tc.raw, func(t *testing.T) {
			role, changed := NormalizeCoachRole(tc.raw)
			assert.Equal(t, tc.expectedRole, role)
			assert.Equal(t, tc.expectedChanged, changed)
		})
	}
}

func TestIsValidPackageType(t *testing.T) {
	assert.True(t, IsValidPackageType(PackageCampTraining))
	assert.True(t, IsValidPackageType(PackagePersonalTraining))
	assert.False(t, IsValidPackageType("camp training"))
	assert.False(t, IsValidPackageType(""))
	assert.False(t, IsValidPackageType("Elite Training"))
}

func TestPrincipalIsAdmin(t *testing.T) {
	assert.True(t, (&Principal{Role: CoachRoleAdmin}).IsAdmin())
	assert.False(t, (&Principal{Role: CoachRoleCoach}).IsAdmin())
	assert.False(t, (*Principal)(nil).IsAdmin())
}
