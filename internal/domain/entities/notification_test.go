package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

func TestRecipientMatches(t *testing.T) {
	tests := []struct {
		name      string
		recipient entities.Recipient
		userID    string
		role      entities.Role
		want      bool
	}{
		{"everyone matches a student", entities.Everyone(), "u-1", entities.RoleStudent, true},
		{"everyone matches an admin", entities.Everyone(), "u-2", entities.RoleAdmin, true},
		{"role matches same role", entities.ForRole(entities.TargetDoctors), "u-1", entities.RoleDoctor, true},
		{"role does not match other role", entities.ForRole(entities.TargetDoctors), "u-1", entities.RoleNurse, false},
		{"staff group matches doctors", entities.ForRole(entities.TargetStaff), "u-1", entities.RoleDoctor, true},
		{"staff group matches nurses", entities.ForRole(entities.TargetStaff), "u-1", entities.RoleNurse, true},
		{"staff group excludes students", entities.ForRole(entities.TargetStaff), "u-1", entities.RoleStudent, false},
		{"staff group excludes admins", entities.ForRole(entities.TargetStaff), "u-1", entities.RoleAdmin, false},
		{"user matches the addressed user", entities.ForUser("u-1"), "u-1", entities.RoleStudent, true},
		{"user does not match another user", entities.ForUser("u-1"), "u-2", entities.RoleStudent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.recipient.Matches(tt.userID, tt.role))
		})
	}
}
