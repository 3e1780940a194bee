package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hoop_academy_backend/internal/models"

	"github.com/lib/pq"
)

// AttendanceRepository defines the interface for attendance-record database
// operations. Records are created pending and mutated only by explicit marks.
type AttendanceRepository interface {
	CreateRecord(executor SQLExecutor, sessionID, studentID int64) (*models.AttendanceRecord, error)
	GetRecordByID(id int64) (*models.AttendanceRecord, error)
	GetRecordForUpdate(executor SQLExecutor, id int64) (*models.AttendanceRecord, error)
	GetBySession(sessionID int64) ([]models.AttendanceRecord, error)
	GetByStudent(studentID int64, dateFrom, dateTo *string) ([]models.AttendanceRecord, error)
	UpdateStatus(executor SQLExecutor, id int64, status string, markedAt *time.Time) (*models.AttendanceRecord, error)
	DeleteBySessionStudent(executor SQLExecutor, sessionID, studentID int64) error
}

type attendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) CreateRecord(executor SQLExecutor, sessionID, studentID int64) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{
		SessionID: sessionID,
		StudentID: studentID,
		Status:    string(models.AttendanceStatusPending),
	}
	query := `INSERT INTO attendance_records (session_id, student_id, status, marked_at, created_at, updated_at)
	          VALUES ($1, $2, $3, NULL, $4, $5)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	err := executor.QueryRow(query, sessionID, studentID, record.Status, currentTime, currentTime).
		Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: attendance for student %d on session %d", ErrDuplicateKey, studentID, sessionID)
		}
		return nil, fmt.Errorf("%w: creating attendance record: %v", ErrDatabaseError, err)
	}
	return record, nil
}

const selectAttendanceFields = `a.id, a.session_id, a.student_id, a.status, a.marked_at, a.created_at, a.updated_at`

func scanAttendance(row scanner, record *models.AttendanceRecord, extra ...interface{}) error {
	dest := []interface{}{
		&record.ID, &record.SessionID, &record.StudentID, &record.Status,
		&record.MarkedAt, &record.CreatedAt, &record.UpdatedAt,
	}
	dest = append(dest, extra...)
	err := row.Scan(dest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: scanning attendance record: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *attendanceRepository) GetRecordByID(id int64) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	query := "SELECT " + selectAttendanceFields + " FROM attendance_records a WHERE a.id = $1"
	if err := scanAttendance(r.db.QueryRow(query, id), record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecordForUpdate locks the record row for the duration of the marking
// transaction so the balance adjustment sees a stable previous status.
func (r *attendanceRepository) GetRecordForUpdate(executor SQLExecutor, id int64) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	query := "SELECT " + selectAttendanceFields + " FROM attendance_records a WHERE a.id = $1 FOR UPDATE"
	if err := scanAttendance(executor.QueryRow(query, id), record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *attendanceRepository) GetBySession(sessionID int64) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	query := "SELECT " + selectAttendanceFields + `, s.full_name
	          FROM attendance_records a
	          JOIN students s ON a.student_id = s.id
	          WHERE a.session_id = $1
	          ORDER BY s.full_name ASC`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying attendance for session %d: %v", ErrDatabaseError, sessionID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var record models.AttendanceRecord
		if err := scanAttendance(rows, &record, &record.StudentName); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating attendance rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}

func (r *attendanceRepository) GetByStudent(studentID int64, dateFrom, dateTo *string) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	query := "SELECT " + selectAttendanceFields + `, s.full_name
	          FROM attendance_records a
	          JOIN students s ON a.student_id = s.id
	          JOIN training_sessions ts ON a.session_id = ts.id
	          WHERE a.student_id = $1`

	args := []interface{}{studentID}
	argCount := 2
	if dateFrom != nil {
		query += fmt.Sprintf(" AND ts.session_date >= $%d", argCount)
		args = append(args, *dateFrom)
		argCount++
	}
	if dateTo != nil {
		query += fmt.Sprintf(" AND ts.session_date <= $%d", argCount)
		args = append(args, *dateTo)
	}
	query += " ORDER BY ts.session_date DESC, ts.start_time DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying attendance for student %d: %v", ErrDatabaseError, studentID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var record models.AttendanceRecord
		if err := scanAttendance(rows, &record, &record.StudentName); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating attendance rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}

func (r *attendanceRepository) UpdateStatus(executor SQLExecutor, id int64, status string, markedAt *time.Time) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{ID: id, Status: status, MarkedAt: markedAt}
	query := `UPDATE attendance_records SET status = $1, marked_at = $2, updated_at = $3
	          WHERE id = $4
	          RETURNING session_id, student_id, created_at, updated_at`
	err := executor.QueryRow(query, status, markedAt, time.Now(), id).
		Scan(&record.SessionID, &record.StudentID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating attendance record ID %d: %v", ErrDatabaseError, id, err)
	}
	return record, nil
}

func (r *attendanceRepository) DeleteBySessionStudent(executor SQLExecutor, sessionID, studentID int64) error {
	result, err := executor.Exec(`DELETE FROM attendance_records WHERE session_id = $1 AND student_id = $2`,
		sessionID, studentID)
	if err != nil {
		return fmt.Errorf("%w: deleting attendance for student %d on session %d: %v", ErrDatabaseError, studentID, sessionID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
