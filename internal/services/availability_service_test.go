package services

import (
	"testing"

	"hoop_academy_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availabilityCoachRepo() *fakeCoachRepo {
	return &fakeCoachRepo{
		getCoachByIDFn: func(id int64) (*models.Coach, error) {
			return &models.Coach{ID: id, FullName: "Coach", Role: models.CoachRoleCoach}, nil
		},
	}
}

func TestCreateWindowOwnership(t *testing.T) {
	ar := &fakeAvailabilityRepo{}
	svc := NewAvailabilityService(ar, availabilityCoachRepo(), nil)

	req := CreateWindowRequest{Weekday: 1, StartTime: "09:00", EndTime: "12:00"}

	owner := &models.Principal{UserID: 1, Role: models.CoachRoleCoach, CoachID: 7}
	window, err := svc.CreateWindow(owner, 7, req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), window.CoachID)

	stranger := &models.Principal{UserID: 2, Role: models.CoachRoleCoach, CoachID: 8}
	_, err = svc.CreateWindow(stranger, 7, req)
	assert.ErrorIs(t, err, ErrWindowAccessDenied)

	admin := &models.Principal{UserID: 3, Role: models.CoachRoleAdmin}
	_, err = svc.CreateWindow(admin, 7, req)
	assert.NoError(t, err)
}

func TestCreateWindowValidation(t *testing.T) {
	svc := NewAvailabilityService(&fakeAvailabilityRepo{}, availabilityCoachRepo(), nil)
	admin := &models.Principal{UserID: 3, Role: models.CoachRoleAdmin}

	_, err := svc.CreateWindow(admin, 7, CreateWindowRequest{Weekday: 7, StartTime: "09:00", EndTime: "12:00"})
	assert.ErrorIs(t, err, ErrWindowValidation)

	_, err = svc.CreateWindow(admin, 7, CreateWindowRequest{Weekday: 1, StartTime: "12:00", EndTime: "09:00"})
	assert.ErrorIs(t, err, ErrWindowValidation)
}

func TestDeleteWindowOwnership(t *testing.T) {
	ar := &fakeAvailabilityRepo{
		getWindowByIDFn: func(id int64) (*models.AvailabilityWindow, error) {
			return &models.AvailabilityWindow{ID: id, CoachID: 7}, nil
		},
	}
	svc := NewAvailabilityService(ar, availabilityCoachRepo(), nil)

	stranger := &models.Principal{UserID: 2, Role: models.CoachRoleCoach, CoachID: 8}
	err := svc.DeleteWindow(stranger, 7, 5)
	assert.ErrorIs(t, err, ErrWindowAccessDenied)
	assert.Empty(t, ar.deletedWindowIDs)

	// The window id must belong to the coach named in the path.
	admin := &models.Principal{UserID: 3, Role: models.CoachRoleAdmin}
	err = svc.DeleteWindow(admin, 9, 5)
	assert.ErrorIs(t, err, ErrWindowNotFound)

	owner := &models.Principal{UserID: 1, Role: models.CoachRoleCoach, CoachID: 7}
	err = svc.DeleteWindow(owner, 7, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ar.deletedWindowIDs)
}

func TestCheckSlot(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{ID: 1, CoachID: 7, Weekday: 1, StartTime: "09:00", EndTime: "12:00"},
		{ID: 2, CoachID: 7, Weekday: 3, StartTime: "14:00", EndTime: "18:00"},
	}
	ar := &fakeAvailabilityRepo{
		getWindowsByCoachFn: func(int64) ([]models.AvailabilityWindow, error) {
			return windows, nil
		},
	}
	svc := NewAvailabilityService(ar, availabilityCoachRepo(), nil)

	// 2026-01-05 is a Monday.
	check, err := svc.CheckSlot(7, "2026-01-05", "10:00", "11:00")
	require.NoError(t, err)
	assert.True(t, check.Within)
	assert.Empty(t, check.Message)

	check, err = svc.CheckSlot(7, "2026-01-05", "11:00", "13:00")
	require.NoError(t, err)
	assert.False(t, check.Within)
	assert.NotEmpty(t, check.Message)

	// Wednesday slot inside the Monday window is outside availability.
	check, err = svc.CheckSlot(7, "2026-01-07", "10:00", "11:00")
	require.NoError(t, err)
	assert.False(t, check.Within)

	_, err = svc.CheckSlot(7, "not-a-date", "10:00", "11:00")
	assert.ErrorIs(t, err, ErrWindowValidation)
}

func TestCheckSlotNoWindowsIsAvailable(t *testing.T) {
	svc := NewAvailabilityService(&fakeAvailabilityRepo{}, availabilityCoachRepo(), nil)

	check, err := svc.CheckSlot(7, "2026-01-05", "10:00", "11:00")
	require.NoError(t, err)
	assert.True(t, check.Within)
}
