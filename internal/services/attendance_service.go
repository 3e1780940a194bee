package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hoop_academy_backend/internal/models"
	"hoop_academy_backend/internal/repositories"
)

// --- Custom Service Errors for Attendance ---
var (
	ErrAttendanceNotFound     = errors.New("attendance record not found")
	ErrAttendanceValidation   = errors.New("attendance data validation error")
	ErrAttendanceAccessDenied = errors.New("attendance record belongs to another coach's session")
)

// --- Attendance DTOs ---
type MarkAttendanceRequest struct {
	Status string `json:"status" binding:"required"` // present, absent or pending
}

// --- AttendanceService Interface ---
type AttendanceService interface {
	MarkAttendance(principal *models.Principal, recordID int64, req MarkAttendanceRequest) (*models.AttendanceRecord, error)
	GetSessionAttendance(principal *models.Principal, sessionID int64) ([]models.AttendanceRecord, error)
	GetStudentAttendance(principal *models.Principal, studentID int64, dateFrom, dateTo *string) ([]models.AttendanceRecord, error)
}

// --- attendanceService Implementation ---
type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	sessionRepo    repositories.SessionRepository
	studentRepo    repositories.StudentRepository
	db             *sql.DB
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(
	ar repositories.AttendanceRepository,
	sr repositories.SessionRepository,
	str repositories.StudentRepository,
	db *sql.DB,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: ar,
		sessionRepo:    sr,
		studentRepo:    str,
		db:             db,
	}
}

// markedAtFor returns the marking timestamp for a target status: set for
// present and absent, cleared back to NULL for pending.
func markedAtFor(status string, now time.Time) *time.Time {
	if status == string(models.AttendanceStatusPending) {
		return nil
	}
	return &now
}

// remainingDelta returns the change to a student's remaining session balance
// when attendance moves from oldStatus to newStatus. Only the present state
// consumes a session, so moving into it costs one and moving out restores
// one. Re-marking present as present is a no-op.
func remainingDelta(oldStatus, newStatus string) int {
	wasPresent := oldStatus == string(models.AttendanceStatusPresent)
	isPresent := newStatus == string(models.AttendanceStatusPresent)
	switch {
	case isPresent && !wasPresent:
		return -1
	case wasPresent && !isPresent:
		return +1
	default:
		return 0
	}
}

// MarkAttendance sets a record's status inside a single transaction. The row
// is locked first so two concurrent marks cannot both decrement the
// student's remaining session balance.
func (s *attendanceService) MarkAttendance(principal *models.Principal, recordID int64, req MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	if !models.IsValidAttendanceStatus(req.Status) {
		return nil, fmt.Errorf("%w: invalid status '%s'", ErrAttendanceValidation, req.Status)
	}

	record, err := s.attendanceRepo.GetRecordByID(recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to find attendance record: %w", err)
	}

	session, err := s.sessionRepo.GetSessionByID(record.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session for attendance check: %w", err)
	}
	if !principal.IsAdmin() && session.CoachID != principal.CoachID {
		return nil, ErrAttendanceAccessDenied
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin attendance transaction: %w", err)
	}
	defer tx.Rollback()

	locked, err := s.attendanceRepo.GetRecordForUpdate(tx, recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to lock attendance record: %w", err)
	}

	updated, err := s.attendanceRepo.UpdateStatus(tx, recordID, req.Status, markedAtFor(req.Status, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to update attendance status: %w", err)
	}

	if delta := remainingDelta(locked.Status, req.Status); delta != 0 {
		if err := s.studentRepo.AdjustRemainingSessions(tx, locked.StudentID, delta); err != nil {
			return nil, fmt.Errorf("failed to adjust remaining sessions for student %d: %w", locked.StudentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit attendance transaction: %w", err)
	}
	return updated, nil
}

func (s *attendanceService) GetSessionAttendance(principal *models.Principal, sessionID int64) ([]models.AttendanceRecord, error) {
	session, err := s.sessionRepo.GetSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session for attendance read: %w", err)
	}
	if !principal.IsAdmin() && session.CoachID != principal.CoachID {
		return nil, ErrAttendanceAccessDenied
	}
	return s.attendanceRepo.GetBySession(sessionID)
}

func (s *attendanceService) GetStudentAttendance(principal *models.Principal, studentID int64, dateFrom, dateTo *string) ([]models.AttendanceRecord, error) {
	student, err := s.studentRepo.GetStudentByID(studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student for attendance read: %w", err)
	}
	if !principal.IsAdmin() && (student.CoachID == nil || *student.CoachID != principal.CoachID) {
		return nil, ErrStudentAccessDenied
	}
	return s.attendanceRepo.GetByStudent(studentID, dateFrom, dateTo)
}
