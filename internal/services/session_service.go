package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hoop_academy_backend/internal/models"
	"hoop_academy_backend/internal/repositories"
	"hoop_academy_backend/internal/scheduling"
)

// --- Custom Service Errors for Session ---
var (
	ErrSessionNotFound         = errors.New("training session not found")
	ErrSessionConflict         = errors.New("coach is already booked in an overlapping time window")
	ErrSessionValidation       = errors.New("session data validation error")
	ErrSessionDateFormat       = errors.New("invalid session date, please use YYYY-MM-DD")
	ErrSessionStatusUpdate     = errors.New("invalid status transition")
	ErrSessionAccessDenied     = errors.New("session is not visible to this coach")
	ErrBranchForSessionMissing = errors.New("branch specified for session not found")
	ErrCoachForSessionMissing  = errors.New("coach specified for session not found")
	ErrCoachNotEligible        = errors.New("coach is not eligible for this package type")
	ErrRosterMismatch          = errors.New("participant roster validation failed")
)

// --- Session DTOs ---
type CreateSessionRequest struct {
	SessionDate string  `json:"session_date" binding:"required"` // YYYY-MM-DD
	StartTime   string  `json:"start_time" binding:"required"`   // HH:MM
	EndTime     string  `json:"end_time" binding:"required"`     // HH:MM
	BranchID    int64   `json:"branch_id" binding:"required"`
	CoachID     int64   `json:"coach_id" binding:"required"`
	PackageType *string `json:"package_type"`
	Notes       *string `json:"notes"`
}

type UpdateSessionRequest struct {
	SessionDate *string `json:"session_date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	BranchID    *int64  `json:"branch_id"`
	CoachID     *int64  `json:"coach_id"`
	PackageType *string `json:"package_type"`
	Notes       *string `json:"notes"`
}

// ConflictCheckRequest mirrors the check_scheduling_conflicts procedure shape
// so the dashboard can validate a form before submitting.
type ConflictCheckRequest struct {
	CoachID          int64  `json:"coach_id" binding:"required"`
	SessionDate      string `json:"session_date" binding:"required"`
	StartTime        string `json:"start_time" binding:"required"`
	EndTime          string `json:"end_time" binding:"required"`
	ExcludeSessionID *int64 `json:"exclude_session_id"`
}

// ConflictInfo names the session a proposed slot collides with.
type ConflictInfo struct {
	SessionID int64  `json:"session_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// --- SessionService Interface ---
type SessionService interface {
	CreateSession(req CreateSessionRequest) (*models.TrainingSession, error)
	GetSessionByID(principal *models.Principal, sessionID int64) (*models.TrainingSession, error)
	GetSessions(principal *models.Principal, filters models.SessionFilters) ([]models.TrainingSession, int, error)
	UpdateSession(sessionID int64, req UpdateSessionRequest) (*models.TrainingSession, error)
	CancelSession(sessionID int64) (*models.TrainingSession, error)
	CompleteSession(sessionID int64) (*models.TrainingSession, error)
	DeleteSession(sessionID int64) error

	CheckConflict(req ConflictCheckRequest) (*ConflictInfo, error)

	SetParticipants(sessionID int64, studentIDs []int64) ([]models.SessionParticipant, error)
	GetParticipants(principal *models.Principal, sessionID int64) ([]models.SessionParticipant, error)
}

// --- sessionService Implementation ---
type sessionService struct {
	sessionRepo    repositories.SessionRepository
	attendanceRepo repositories.AttendanceRepository
	studentRepo    repositories.StudentRepository
	coachRepo      repositories.CoachRepository
	branchRepo     repositories.BranchRepository
	db             *sql.DB
}

// NewSessionService creates a new instance of SessionService.
func NewSessionService(
	sr repositories.SessionRepository,
	ar repositories.AttendanceRepository,
	str repositories.StudentRepository,
	cr repositories.CoachRepository,
	br repositories.BranchRepository,
	db *sql.DB,
) SessionService {
	return &sessionService{
		sessionRepo:    sr,
		attendanceRepo: ar,
		studentRepo:    str,
		coachRepo:      cr,
		branchRepo:     br,
		db:             db,
	}
}

func validateSessionDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: %q", ErrSessionDateFormat, date)
	}
	return nil
}

// findConflict runs the read-then-decide check over the coach's day. The
// exclusion constraint in the schema remains the authority under concurrency;
// this pass exists to name the clashing session in the user-facing error.
func (s *sessionService) findConflict(coachID int64, date string, interval scheduling.Interval, excludeID int64) (*ConflictInfo, error) {
	slots, err := s.sessionRepo.GetCoachDaySlots(coachID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load coach schedule for conflict check: %w", err)
	}

	booked := make([]scheduling.BookedSlot, 0, len(slots))
	for _, slot := range slots {
		iv, ivErr := scheduling.NewInterval(slot.StartTime, slot.EndTime)
		if ivErr != nil {
			return nil, fmt.Errorf("stored session %d has an unreadable time range: %w", slot.ID, ivErr)
		}
		booked = append(booked, scheduling.BookedSlot{
			SessionID: slot.ID,
			Interval:  iv,
			Cancelled: slot.Status == string(models.SessionStatusCancelled),
		})
	}

	if hit := scheduling.FindConflict(interval, booked, excludeID); hit != nil {
		return &ConflictInfo{
			SessionID: hit.SessionID,
			StartTime: hit.Interval.Start.String(),
			EndTime:   hit.Interval.End.String(),
		}, nil
	}
	return nil, nil
}

// validateSessionRefs checks branch existence and coach existence/eligibility.
func (s *sessionService) validateSessionRefs(branchID, coachID int64, packageType *string) error {
	if packageType != nil && *packageType != "" && !models.IsValidPackageType(*packageType) {
		return fmt.Errorf("%w: invalid package type '%s'", ErrSessionValidation, *packageType)
	}
	if _, err := s.branchRepo.GetBranchByID(branchID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ID %d", ErrBranchForSessionMissing, branchID)
		}
		return fmt.Errorf("failed to validate branch for session: %w", err)
	}
	coach, err := s.coachRepo.GetCoachByID(coachID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ID %d", ErrCoachForSessionMissing, coachID)
		}
		return fmt.Errorf("failed to validate coach for session: %w", err)
	}
	sessionPackage := ""
	if packageType != nil {
		sessionPackage = *packageType
	}
	if !scheduling.CoachEligibleFor(coach.PackageType, sessionPackage) {
		return fmt.Errorf("%w: coach %s cannot run %s sessions", ErrCoachNotEligible, coach.FullName, sessionPackage)
	}
	return nil
}

func (s *sessionService) CreateSession(req CreateSessionRequest) (*models.TrainingSession, error) {
	if err := validateSessionDate(req.SessionDate); err != nil {
		return nil, err
	}
	interval, err := scheduling.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionValidation, err)
	}
	if err := s.validateSessionRefs(req.BranchID, req.CoachID, req.PackageType); err != nil {
		return nil, err
	}

	conflict, err := s.findConflict(req.CoachID, req.SessionDate, interval, 0)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, fmt.Errorf("%w: session %d (%s-%s)", ErrSessionConflict,
			conflict.SessionID, conflict.StartTime, conflict.EndTime)
	}

	session := &models.TrainingSession{
		SessionDate: req.SessionDate,
		StartTime:   interval.Start.String(),
		EndTime:     interval.End.String(),
		BranchID:    req.BranchID,
		CoachID:     req.CoachID,
		PackageType: req.PackageType,
		Status:      string(models.SessionStatusScheduled),
		Notes:       req.Notes,
	}
	createdSession, err := s.sessionRepo.CreateSession(s.db, session)
	if err != nil {
		if errors.Is(err, repositories.ErrOverlapConstraint) {
			// A concurrent request won the race; the constraint is the authority.
			return nil, fmt.Errorf("%w: detected at commit", ErrSessionConflict)
		}
		return nil, fmt.Errorf("failed to create session in repository: %w", err)
	}
	return s.sessionRepo.GetSessionByID(createdSession.ID)
}

func (s *sessionService) GetSessionByID(principal *models.Principal, sessionID int64) (*models.TrainingSession, error) {
	session, err := s.sessionRepo.GetSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}
	if !principal.IsAdmin() && session.CoachID != principal.CoachID {
		return nil, ErrSessionAccessDenied
	}
	return session, nil
}

func (s *sessionService) GetSessions(principal *models.Principal, filters models.SessionFilters) ([]models.TrainingSession, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}
	// Coaches see only their own schedule, whatever the query says.
	if !principal.IsAdmin() {
		filters.CoachID = &principal.CoachID
	}

	sessions, totalCount, err := s.sessionRepo.GetSessions(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get sessions: %w", err)
	}
	return sessions, totalCount, nil
}

func (s *sessionService) UpdateSession(sessionID int64, req UpdateSessionRequest) (*models.TrainingSession, error) {
	session, err := s.sessionRepo.GetSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session for update: %w", err)
	}

	if session.Status != string(models.SessionStatusScheduled) {
		return nil, fmt.Errorf("%w: cannot edit a session that is already '%s'", ErrSessionValidation, session.Status)
	}

	if req.SessionDate != nil {
		if err := validateSessionDate(*req.SessionDate); err != nil {
			return nil, err
		}
		session.SessionDate = *req.SessionDate
	}
	if req.StartTime != nil {
		session.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		session.EndTime = *req.EndTime
	}
	interval, err := scheduling.NewInterval(session.StartTime, session.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionValidation, err)
	}

	if req.BranchID != nil {
		session.BranchID = *req.BranchID
	}
	if req.CoachID != nil {
		session.CoachID = *req.CoachID
	}
	if req.PackageType != nil {
		session.PackageType = req.PackageType
	}
	if req.Notes != nil {
		session.Notes = req.Notes
	}
	if err := s.validateSessionRefs(session.BranchID, session.CoachID, session.PackageType); err != nil {
		return nil, err
	}

	conflict, err := s.findConflict(session.CoachID, session.SessionDate, interval, sessionID)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, fmt.Errorf("%w: session %d (%s-%s)", ErrSessionConflict,
			conflict.SessionID, conflict.StartTime, conflict.EndTime)
	}

	session.StartTime = interval.Start.String()
	session.EndTime = interval.End.String()

	updatedSession, err := s.sessionRepo.UpdateSession(s.db, session)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		if errors.Is(err, repositories.ErrOverlapConstraint) {
			return nil, fmt.Errorf("%w: detected at commit", ErrSessionConflict)
		}
		return nil, fmt.Errorf("failed to update session in repository: %w", err)
	}
	return s.sessionRepo.GetSessionByID(updatedSession.ID)
}

func (s *sessionService) updateSessionStatus(sessionID int64, newStatus string) (*models.TrainingSession, error) {
	session, err := s.sessionRepo.GetSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session to update status: %w", err)
	}

	if session.Status == string(models.SessionStatusCompleted) && newStatus != string(models.SessionStatusCompleted) {
		return nil, fmt.Errorf("%w: cannot change status of a completed session", ErrSessionStatusUpdate)
	}
	if session.Status == string(models.SessionStatusCancelled) && newStatus != string(models.SessionStatusCancelled) {
		return nil, fmt.Errorf("%w: cannot change status of a cancelled session", ErrSessionStatusUpdate)
	}

	if err := s.sessionRepo.UpdateSessionStatus(s.db, sessionID, newStatus); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionStatusUpdate, err)
	}
	return s.sessionRepo.GetSessionByID(sessionID)
}

func (s *sessionService) CancelSession(sessionID int64) (*models.TrainingSession, error) {
	return s.updateSessionStatus(sessionID, string(models.SessionStatusCancelled))
}

func (s *sessionService) CompleteSession(sessionID int64) (*models.TrainingSession, error) {
	return s.updateSessionStatus(sessionID, string(models.SessionStatusCompleted))
}

// DeleteSession hard-deletes a session; its participant and attendance rows
// cascade with it.
func (s *sessionService) DeleteSession(sessionID int64) error {
	_, err := s.sessionRepo.GetSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to find session for deletion: %w", err)
	}
	if err := s.sessionRepo.DeleteSession(s.db, sessionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CheckConflict exposes the conflict predicate for form-side validation.
func (s *sessionService) CheckConflict(req ConflictCheckRequest) (*ConflictInfo, error) {
	if err := validateSessionDate(req.SessionDate); err != nil {
		return nil, err
	}
	interval, err := scheduling.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionValidation, err)
	}
	excludeID := int64(0)
	if req.ExcludeSessionID != nil {
		excludeID = *req.ExcludeSessionID
	}
	return s.findConflict(req.CoachID, req.SessionDate, interval, excludeID)
}

// dedupeIDs drops duplicate IDs while preserving order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// diffRoster computes the add-set and remove-set between the current and
// desired participant sets.
func diffRoster(current, desired []int64) (added, removed []int64) {
	currentSet := make(map[int64]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	desiredSet := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	added = []int64{}
	removed = []int64{}
	for _, id := range desired {
		if _, ok := currentSet[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range current {
		if _, ok := desiredSet[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}

// validateRosterStudents checks that every desired student exists and that
// each one's package type and assigned coach match the session's. Any
// mismatch fails the whole roster change; nothing is applied.
func validateRosterStudents(students []models.Student, desired []int64, session *models.TrainingSession) error {
	byID := make(map[int64]*models.Student, len(students))
	for i := range students {
		byID[students[i].ID] = &students[i]
	}

	for _, id := range desired {
		student, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: student %d not found", ErrRosterMismatch, id)
		}
		if session.PackageType != nil && *session.PackageType != "" && student.PackageType != *session.PackageType {
			return fmt.Errorf("%w: student %s has package type '%s', session requires '%s'",
				ErrRosterMismatch, student.FullName, student.PackageType, *session.PackageType)
		}
		if student.CoachID == nil || *student.CoachID != session.CoachID {
			return fmt.Errorf("%w: student %s is not assigned to this session's coach",
				ErrRosterMismatch, student.FullName)
		}
	}
	return nil
}

// SetParticipants replaces the session's roster with the desired student set.
// The change is computed as a diff (add-set and remove-set) and applied in a
// single transaction, keeping participant and attendance rows in lockstep at
// every commit point. Retained students keep their attendance marks; removed
// students lose their rows; added students start pending.
func (s *sessionService) SetParticipants(sessionID int64, studentIDs []int64) ([]models.SessionParticipant, error) {
	session, err := s.sessionRepo.GetSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session for roster update: %w", err)
	}

	desired := dedupeIDs(studentIDs)

	students, err := s.studentRepo.GetStudentsByIDs(desired)
	if err != nil {
		return nil, fmt.Errorf("failed to load students for roster validation: %w", err)
	}
	if err := validateRosterStudents(students, desired, session); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin roster transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := s.sessionRepo.GetParticipantIDs(tx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current roster: %w", err)
	}
	added, removed := diffRoster(current, desired)

	for _, studentID := range removed {
		if err := s.attendanceRepo.DeleteBySessionStudent(tx, sessionID, studentID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to remove attendance for student %d: %w", studentID, err)
		}
		if err := s.sessionRepo.RemoveParticipant(tx, sessionID, studentID); err != nil {
			return nil, fmt.Errorf("failed to remove participant %d: %w", studentID, err)
		}
	}
	for _, studentID := range added {
		if err := s.sessionRepo.AddParticipant(tx, sessionID, studentID); err != nil {
			return nil, fmt.Errorf("failed to add participant %d: %w", studentID, err)
		}
		if _, err := s.attendanceRepo.CreateRecord(tx, sessionID, studentID); err != nil {
			return nil, fmt.Errorf("failed to create attendance for student %d: %w", studentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit roster transaction: %w", err)
	}
	return s.sessionRepo.GetParticipants(sessionID)
}

func (s *sessionService) GetParticipants(principal *models.Principal, sessionID int64) ([]models.SessionParticipant, error) {
	session, err := s.sessionRepo.GetSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session for roster read: %w", err)
	}
	if !principal.IsAdmin() && session.CoachID != principal.CoachID {
		return nil, ErrSessionAccessDenied
	}
	return s.sessionRepo.GetParticipants(sessionID)
}
