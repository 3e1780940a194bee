package services

import (
	"errors"
	"testing"

	"hoop_academy_backend/internal/models"
	"hoop_academy_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCoachAccount(t *testing.T) {
	t.Run("provisions credential and linked coach row", func(t *testing.T) {
		var capturedHash string
		authRepo := &fakeAuthRepo{
			createUserFn: func(user *models.User, hash string) (int64, error) {
				capturedHash = hash
				return 41, nil
			},
		}
		coachRepo := &fakeCoachRepo{
			createCoachFn: func(coach *models.Coach) (*models.Coach, error) {
				coach.ID = 12
				return coach, nil
			},
		}
		svc := NewCoachService(coachRepo, authRepo, nil, "Welcome123!")

		coach, err := svc.CreateCoachAccount(CreateCoachAccountRequest{
			FullName:    "Marat",
			Email:       "marat@academy.kz",
			PackageType: strPtr(models.PackageCampTraining),
		})
		require.NoError(t, err)
		assert.Equal(t, models.CoachRoleCoach, coach.Role)
		require.NotNil(t, coach.UserID)
		assert.Equal(t, int64(41), *coach.UserID)
		// The stored credential must be a hash, never the raw default password.
		assert.NotEmpty(t, capturedHash)
		assert.NotEqual(t, "Welcome123!", capturedHash)
		assert.Empty(t, authRepo.deletedUserIDs)
	})

	t.Run("compensates credential when coach insert fails", func(t *testing.T) {
		authRepo := &fakeAuthRepo{
			createUserFn: func(user *models.User, hash string) (int64, error) { return 41, nil },
		}
		coachRepo := &fakeCoachRepo{
			createCoachFn: func(coach *models.Coach) (*models.Coach, error) {
				return nil, errors.New("insert failed")
			},
		}
		svc := NewCoachService(coachRepo, authRepo, nil, "Welcome123!")

		_, err := svc.CreateCoachAccount(CreateCoachAccountRequest{
			FullName: "Marat", Email: "marat@academy.kz",
		})
		assert.ErrorIs(t, err, ErrProvisioning)
		assert.Equal(t, []int64{41}, authRepo.deletedUserIDs)
	})

	t.Run("duplicate email surfaces as conflict", func(t *testing.T) {
		authRepo := &fakeAuthRepo{
			createUserFn: func(user *models.User, hash string) (int64, error) {
				return 0, repositories.ErrDuplicateKey
			},
		}
		svc := NewCoachService(&fakeCoachRepo{}, authRepo, nil, "Welcome123!")

		_, err := svc.CreateCoachAccount(CreateCoachAccountRequest{
			FullName: "Marat", Email: "marat@academy.kz",
		})
		assert.ErrorIs(t, err, ErrCoachEmailExists)
		assert.Empty(t, authRepo.deletedUserIDs)
	})

	t.Run("invalid package type is rejected before any insert", func(t *testing.T) {
		authRepo := &fakeAuthRepo{}
		svc := NewCoachService(&fakeCoachRepo{}, authRepo, nil, "Welcome123!")

		_, err := svc.CreateCoachAccount(CreateCoachAccountRequest{
			FullName: "Marat", Email: "marat@academy.kz", PackageType: strPtr("Elite Training"),
		})
		assert.ErrorIs(t, err, ErrCoachDataValidation)
	})
}

func TestGetEligibleCoaches(t *testing.T) {
	coachRepo := &fakeCoachRepo{
		getCoachesFn: func(filters models.CoachFilters) ([]models.Coach, int, error) {
			return []models.Coach{
				{ID: 1, FullName: "Camp Coach", PackageType: strPtr(models.PackageCampTraining)},
				{ID: 2, FullName: "Personal Coach", PackageType: strPtr(models.PackagePersonalTraining)},
				{ID: 3, FullName: "Generalist"},
			}, 3, nil
		},
	}
	svc := NewCoachService(coachRepo, &fakeAuthRepo{}, nil, "Welcome123!")

	t.Run("camp sessions exclude personal-only coaches", func(t *testing.T) {
		eligible, err := svc.GetEligibleCoaches(models.PackageCampTraining)
		require.NoError(t, err)
		ids := make([]int64, 0, len(eligible))
		for _, coach := range eligible {
			ids = append(ids, coach.ID)
		}
		assert.Equal(t, []int64{1, 3}, ids)
	})

	t.Run("personal sessions accept every coach", func(t *testing.T) {
		eligible, err := svc.GetEligibleCoaches(models.PackagePersonalTraining)
		require.NoError(t, err)
		assert.Len(t, eligible, 3)
	})

	t.Run("unknown package type is rejected", func(t *testing.T) {
		_, err := svc.GetEligibleCoaches("Elite Training")
		assert.ErrorIs(t, err, ErrCoachDataValidation)
	})
}
