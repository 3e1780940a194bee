package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hoop_academy_backend/internal/models"

	"github.com/lib/pq"
)

// SessionRepository defines the interface for training-session database
// operations, including the participant roster rows a session owns.
type SessionRepository interface {
	CreateSession(executor SQLExecutor, session *models.TrainingSession) (*models.TrainingSession, error)
	GetSessionByID(id int64) (*models.TrainingSession, error)
	GetSessions(filters models.SessionFilters) ([]models.TrainingSession, int, error)
	UpdateSession(executor SQLExecutor, session *models.TrainingSession) (*models.TrainingSession, error)
	UpdateSessionStatus(executor SQLExecutor, id int64, status string) error
	DeleteSession(executor SQLExecutor, id int64) error

	// GetCoachDaySlots returns every session for a coach on one date,
	// regardless of status; conflict detection filters cancelled ones itself.
	GetCoachDaySlots(coachID int64, date string) ([]models.TrainingSession, error)

	GetParticipantIDs(executor SQLExecutor, sessionID int64) ([]int64, error)
	GetParticipants(sessionID int64) ([]models.SessionParticipant, error)
	AddParticipant(executor SQLExecutor, sessionID, studentID int64) error
	RemoveParticipant(executor SQLExecutor, sessionID, studentID int64) error
}

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *sql.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// wrapSessionWriteErr maps driver errors on session inserts/updates onto
// repository sentinels. 23P01 is the coach-overlap exclusion constraint.
func wrapSessionWriteErr(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "exclusion_violation":
			return fmt.Errorf("%w: %s", ErrOverlapConstraint, pqErr.Message)
		case "unique_violation":
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
}

const getSessionJoins = `
	FROM training_sessions ts
	JOIN branches b ON ts.branch_id = b.id
	JOIN coaches co ON ts.coach_id = co.id
`

const selectSessionFields = `
	ts.id, to_char(ts.session_date, 'YYYY-MM-DD'), to_char(ts.start_time, 'HH24:MI'), to_char(ts.end_time, 'HH24:MI'),
	ts.branch_id, ts.coach_id, ts.package_type, ts.status, ts.notes, ts.created_at, ts.updated_at,
	b.id, b.name, b.address, b.city, b.phone, b.created_at, b.updated_at,
	co.id, co.user_id, co.full_name, co.email, co.phone, co.package_type, co.role, co.created_at, co.updated_at
`

// scanSessionRow scans a session row with its joined branch and coach details.
func scanSessionRow(row scanner, isList bool) (*models.TrainingSession, int, error) {
	var session models.TrainingSession
	var branch models.Branch
	var coach models.Coach
	var totalCount int

	scanDest := []interface{}{
		&session.ID, &session.SessionDate, &session.StartTime, &session.EndTime,
		&session.BranchID, &session.CoachID, &session.PackageType, &session.Status, &session.Notes,
		&session.CreatedAt, &session.UpdatedAt,
		&branch.ID, &branch.Name, &branch.Address, &branch.City, &branch.Phone, &branch.CreatedAt, &branch.UpdatedAt,
		&coach.ID, &coach.UserID, &coach.FullName, &coach.Email, &coach.Phone, &coach.PackageType, &coach.Role,
		&coach.CreatedAt, &coach.UpdatedAt,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	err := row.Scan(scanDest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning session with details: %v", ErrDatabaseError, err)
	}

	session.Branch = &branch
	session.Coach = &coach
	return &session, totalCount, nil
}

func (r *sessionRepository) CreateSession(executor SQLExecutor, session *models.TrainingSession) (*models.TrainingSession, error) {
	query := `INSERT INTO training_sessions
	            (session_date, start_time, end_time, branch_id, coach_id, package_type, status, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	err := executor.QueryRow(query,
		session.SessionDate, session.StartTime, session.EndTime, session.BranchID, session.CoachID,
		session.PackageType, session.Status, session.Notes, currentTime, currentTime,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return nil, wrapSessionWriteErr(err, "creating session")
	}
	return session, nil
}

func (r *sessionRepository) GetSessionByID(id int64) (*models.TrainingSession, error) {
	query := "SELECT " + selectSessionFields + getSessionJoins + " WHERE ts.id = $1"
	session, _, err := scanSessionRow(r.db.QueryRow(query, id), false)
	return session, err
}

func (r *sessionRepository) GetSessions(filters models.SessionFilters) ([]models.TrainingSession, int, error) {
	sessions := []models.TrainingSession{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectSessionFields + ", COUNT(*) OVER() as total_count " + getSessionJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.CoachID != nil {
		conditions = append(conditions, fmt.Sprintf("ts.coach_id = $%d", argCount))
		args = append(args, *filters.CoachID)
		argCount++
	}
	if filters.BranchID != nil {
		conditions = append(conditions, fmt.Sprintf("ts.branch_id = $%d", argCount))
		args = append(args, *filters.BranchID)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("ts.status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("ts.session_date >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("ts.session_date <= $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY ts.session_date DESC, ts.start_time DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying sessions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		session, scannedTotalCount, scanErr := scanSessionRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		sessions = append(sessions, *session)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating session rows: %v", ErrDatabaseError, err)
	}
	if len(sessions) == 0 {
		totalCount = 0
	}
	return sessions, totalCount, nil
}

func (r *sessionRepository) UpdateSession(executor SQLExecutor, session *models.TrainingSession) (*models.TrainingSession, error) {
	query := `UPDATE training_sessions SET
	            session_date = $1, start_time = $2, end_time = $3, branch_id = $4, coach_id = $5,
	            package_type = $6, status = $7, notes = $8, updated_at = $9
	          WHERE id = $10
	          RETURNING updated_at`
	err := executor.QueryRow(query,
		session.SessionDate, session.StartTime, session.EndTime, session.BranchID, session.CoachID,
		session.PackageType, session.Status, session.Notes, time.Now(), session.ID,
	).Scan(&session.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapSessionWriteErr(err, fmt.Sprintf("updating session ID %d", session.ID))
	}
	return session, nil
}

func (r *sessionRepository) UpdateSessionStatus(executor SQLExecutor, id int64, status string) error {
	result, err := executor.Exec(`UPDATE training_sessions SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return wrapSessionWriteErr(err, fmt.Sprintf("updating status of session ID %d", id))
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSession hard-deletes a session. Participant and attendance rows go
// with it via ON DELETE CASCADE.
func (r *sessionRepository) DeleteSession(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM training_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting session ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepository) GetCoachDaySlots(coachID int64, date string) ([]models.TrainingSession, error) {
	slots := []models.TrainingSession{}
	query := `SELECT id, to_char(session_date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), status
	          FROM training_sessions
	          WHERE coach_id = $1 AND session_date = $2
	          ORDER BY start_time ASC`

	rows, err := r.db.Query(query, coachID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: querying coach day slots: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.TrainingSession
		s.CoachID = coachID
		if err := rows.Scan(&s.ID, &s.SessionDate, &s.StartTime, &s.EndTime, &s.Status); err != nil {
			return nil, fmt.Errorf("%w: scanning coach day slot: %v", ErrDatabaseError, err)
		}
		slots = append(slots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating coach day slots: %v", ErrDatabaseError, err)
	}
	return slots, nil
}

func (r *sessionRepository) GetParticipantIDs(executor SQLExecutor, sessionID int64) ([]int64, error) {
	ids := []int64{}
	rows, err := executor.Query(`SELECT student_id FROM session_participants WHERE session_id = $1 ORDER BY student_id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying participant IDs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning participant ID: %v", ErrDatabaseError, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating participant IDs: %v", ErrDatabaseError, err)
	}
	return ids, nil
}

func (r *sessionRepository) GetParticipants(sessionID int64) ([]models.SessionParticipant, error) {
	participants := []models.SessionParticipant{}
	query := `SELECT sp.session_id, sp.student_id,
	                 s.id, s.full_name, s.email, s.phone, s.package_type, s.coach_id,
	                 s.total_sessions, s.remaining_sessions, s.created_at, s.updated_at
	          FROM session_participants sp
	          JOIN students s ON sp.student_id = s.id
	          WHERE sp.session_id = $1
	          ORDER BY s.full_name ASC`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying participants: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.SessionParticipant
		var student models.Student
		if err := rows.Scan(&p.SessionID, &p.StudentID,
			&student.ID, &student.FullName, &student.Email, &student.Phone, &student.PackageType,
			&student.CoachID, &student.TotalSessions, &student.RemainingSessions,
			&student.CreatedAt, &student.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning participant: %v", ErrDatabaseError, err)
		}
		p.Student = &student
		participants = append(participants, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating participants: %v", ErrDatabaseError, err)
	}
	return participants, nil
}

func (r *sessionRepository) AddParticipant(executor SQLExecutor, sessionID, studentID int64) error {
	_, err := executor.Exec(`INSERT INTO session_participants (session_id, student_id, created_at) VALUES ($1, $2, $3)`,
		sessionID, studentID, time.Now())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: student %d already on session %d", ErrDuplicateKey, studentID, sessionID)
		}
		return fmt.Errorf("%w: adding participant %d to session %d: %v", ErrDatabaseError, studentID, sessionID, err)
	}
	return nil
}

func (r *sessionRepository) RemoveParticipant(executor SQLExecutor, sessionID, studentID int64) error {
	result, err := executor.Exec(`DELETE FROM session_participants WHERE session_id = $1 AND student_id = $2`,
		sessionID, studentID)
	if err != nil {
		return fmt.Errorf("%w: removing participant %d from session %d: %v", ErrDatabaseError, studentID, sessionID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
