package services

import (
	"testing"
	"time"

	"hoop_academy_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkedAtFor(t *testing.T) {
	now := time.Now()

	assert.Nil(t, markedAtFor("pending", now))

	markedPresent := markedAtFor("present", now)
	require.NotNil(t, markedPresent)
	assert.Equal(t, now, *markedPresent)

	markedAbsent := markedAtFor("absent", now)
	require.NotNil(t, markedAbsent)
	assert.Equal(t, now, *markedAbsent)
}

func TestRemainingDelta(t *testing.T) {
	tests := []struct {
		oldStatus string
		newStatus string
		expected  int
	}{
		{"pending", "present", -1},
		{"absent", "present", -1},
		{"present", "pending", +1},
		{"present", "absent", +1},
		{"present", "present", 0},
		{"pending", "absent", 0},
		{"absent", "pending", 0},
		{"pending", "pending", 0},
	}

	for _, tc := range tests {
		t.Run(tc.oldStatus+"_to_"+tc.newStatus, func(t *testing.T) {
			assert.Equal(t, tc.expected, remainingDelta(tc.oldStatus, tc.newStatus))
		})
	}
}

// The decrement and its restore must cancel out no matter how a record is
// re-marked back to its original status.
func TestRemainingDeltaSymmetry(t *testing.T) {
	statuses := []string{"pending", "present", "absent"}
	for _, from := range statuses {
		for _, to := range statuses {
			assert.Zero(t, remainingDelta(from, to)+remainingDelta(to, from),
				"round trip %s -> %s -> %s must not change the balance", from, to, from)
		}
	}
}

func TestMarkAttendanceValidation(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceRepo{}, &fakeSessionRepo{}, &fakeStudentRepo{}, nil)
	admin := &models.Principal{Role: models.CoachRoleAdmin}

	_, err := svc.MarkAttendance(admin, 1, MarkAttendanceRequest{Status: "late"})
	assert.ErrorIs(t, err, ErrAttendanceValidation)

	_, err = svc.MarkAttendance(admin, 1, MarkAttendanceRequest{Status: "present"})
	assert.ErrorIs(t, err, ErrAttendanceNotFound)
}

func TestMarkAttendanceCoachScoping(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{
		getRecordByIDFn: func(id int64) (*models.AttendanceRecord, error) {
			return &models.AttendanceRecord{ID: id, SessionID: 5, StudentID: 3, Status: "pending"}, nil
		},
	}
	sessionRepo := &fakeSessionRepo{
		getSessionByIDFn: func(id int64) (*models.TrainingSession, error) {
			return &models.TrainingSession{ID: id, CoachID: 7}, nil
		},
	}
	svc := NewAttendanceService(attendanceRepo, sessionRepo, &fakeStudentRepo{}, nil)

	stranger := &models.Principal{Role: models.CoachRoleCoach, CoachID: 8}
	_, err := svc.MarkAttendance(stranger, 1, MarkAttendanceRequest{Status: "present"})
	assert.ErrorIs(t, err, ErrAttendanceAccessDenied)
}

func TestGetSessionAttendanceScoping(t *testing.T) {
	sessionRepo := &fakeSessionRepo{
		getSessionByIDFn: func(id int64) (*models.TrainingSession, error) {
			return &models.TrainingSession{ID: id, CoachID: 7}, nil
		},
	}
	attendanceRepo := &fakeAttendanceRepo{
		getBySessionFn: func(sessionID int64) ([]models.AttendanceRecord, error) {
			return []models.AttendanceRecord{{ID: 1, SessionID: sessionID, Status: "pending"}}, nil
		},
	}
	svc := NewAttendanceService(attendanceRepo, sessionRepo, &fakeStudentRepo{}, nil)

	owner := &models.Principal{Role: models.CoachRoleCoach, CoachID: 7}
	records, err := svc.GetSessionAttendance(owner, 5)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	stranger := &models.Principal{Role: models.CoachRoleCoach, CoachID: 8}
	_, err = svc.GetSessionAttendance(stranger, 5)
	assert.ErrorIs(t, err, ErrAttendanceAccessDenied)
}

func TestMarkAttendanceAdjustsBalanceInTransaction(t *testing.T) {
	status := "pending"
	attendanceRepo := &fakeAttendanceRepo{
		getRecordByIDFn: func(id int64) (*models.AttendanceRecord, error) {
			return &models.AttendanceRecord{ID: id, SessionID: 5, StudentID: 2, Status: status}, nil
		},
		updateStatusFn: func(id int64, newStatus string, markedAt *time.Time) (*models.AttendanceRecord, error) {
			status = newStatus
			return &models.AttendanceRecord{ID: id, SessionID: 5, StudentID: 2, Status: newStatus, MarkedAt: markedAt}, nil
		},
	}
	sessionRepo := &fakeSessionRepo{
		getSessionByIDFn: func(id int64) (*models.TrainingSession, error) {
			return &models.TrainingSession{ID: id, CoachID: 7, Status: "scheduled"}, nil
		},
	}
	studentRepo := &fakeStudentRepo{}
	svc := NewAttendanceService(attendanceRepo, sessionRepo, studentRepo, newStubDB(t))

	coach := &models.Principal{UserID: 1, Role: models.CoachRoleCoach, CoachID: 7}
	updated, err := svc.MarkAttendance(coach, 9, MarkAttendanceRequest{Status: "present"})
	require.NoError(t, err)
	assert.Equal(t, "present", updated.Status)
	require.NotNil(t, updated.MarkedAt)

	require.Len(t, studentRepo.adjustments, 1)
	assert.Equal(t, int64(2), studentRepo.adjustments[0].StudentID)
	assert.Equal(t, -1, studentRepo.adjustments[0].Delta)

	// Marking present again is a no-op on the balance.
	_, err = svc.MarkAttendance(coach, 9, MarkAttendanceRequest{Status: "present"})
	require.NoError(t, err)
	assert.Len(t, studentRepo.adjustments, 1)
}

func TestGetStudentAttendanceScoping(t *testing.T) {
	studentRepo := &fakeStudentRepo{
		getStudentByIDFn: func(id int64) (*models.Student, error) {
			return &models.Student{ID: id, FullName: "Aibek", CoachID: int64Ptr(7)}, nil
		},
	}
	svc := NewAttendanceService(&fakeAttendanceRepo{}, &fakeSessionRepo{}, studentRepo, nil)

	stranger := &models.Principal{UserID: 2, Role: models.CoachRoleCoach, CoachID: 8}
	_, err := svc.GetStudentAttendance(stranger, 3, nil, nil)
	assert.ErrorIs(t, err, ErrStudentAccessDenied)

	owner := &models.Principal{UserID: 1, Role: models.CoachRoleCoach, CoachID: 7}
	_, err = svc.GetStudentAttendance(owner, 3, nil, nil)
	assert.NoError(t, err)
}
