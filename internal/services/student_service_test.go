package services

import (
	"testing"

	"hoop_academy_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStudentsRoleScoping(t *testing.T) {
	var capturedFilters models.StudentFilters
	studentRepo := &fakeStudentRepo{
		getStudentsFn: func(filters models.StudentFilters) ([]models.Student, int, error) {
			capturedFilters = filters
			return nil, 0, nil
		},
	}
	svc := NewStudentService(studentRepo, &fakeCoachRepo{}, nil)

	t.Run("coach is forced onto own students", func(t *testing.T) {
		coach := &models.Principal{UserID: 1, Role: models.CoachRoleCoach, CoachID: 7}
		otherCoach := int64(99)

		_, _, err := svc.GetStudents(coach, models.StudentFilters{CoachID: &otherCoach})
		require.NoError(t, err)
		require.NotNil(t, capturedFilters.CoachID)
		assert.Equal(t, int64(7), *capturedFilters.CoachID)
	})

	t.Run("admin filter passes through", func(t *testing.T) {
		admin := &models.Principal{UserID: 2, Role: models.CoachRoleAdmin}
		otherCoach := int64(99)

		_, _, err := svc.GetStudents(admin, models.StudentFilters{CoachID: &otherCoach})
		require.NoError(t, err)
		require.NotNil(t, capturedFilters.CoachID)
		assert.Equal(t, int64(99), *capturedFilters.CoachID)
	})
}

func TestGetStudentByIDVisibility(t *testing.T) {
	studentRepo := &fakeStudentRepo{
		getStudentByIDFn: func(id int64) (*models.Student, error) {
			return &models.Student{ID: id, FullName: "Aibek", CoachID: int64Ptr(7)}, nil
		},
	}
	svc := NewStudentService(studentRepo, &fakeCoachRepo{}, nil)

	owner := &models.Principal{UserID: 1, Role: models.CoachRoleCoach, CoachID: 7}
	student, err := svc.GetStudentByID(owner, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), student.ID)

	stranger := &models.Principal{UserID: 2, Role: models.CoachRoleCoach, CoachID: 8}
	_, err = svc.GetStudentByID(stranger, 3)
	assert.ErrorIs(t, err, ErrStudentAccessDenied)

	admin := &models.Principal{UserID: 3, Role: models.CoachRoleAdmin}
	_, err = svc.GetStudentByID(admin, 3)
	assert.NoError(t, err)
}

func TestGetStudentByIDUnassignedDeniedForCoach(t *testing.T) {
	studentRepo := &fakeStudentRepo{
		getStudentByIDFn: func(id int64) (*models.Student, error) {
			return &models.Student{ID: id, FullName: "Aibek"}, nil
		},
	}
	svc := NewStudentService(studentRepo, &fakeCoachRepo{}, nil)

	coach := &models.Principal{UserID: 1, Role: models.CoachRoleCoach, CoachID: 7}
	_, err := svc.GetStudentByID(coach, 3)
	assert.ErrorIs(t, err, ErrStudentAccessDenied)
}
