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

// StudentRepository defines the interface for student-related database operations.
type StudentRepository interface {
	CreateStudent(executor SQLExecutor, student *models.Student) (*models.Student, error)
	GetStudentByID(id int64) (*models.Student, error)
	GetStudentsByIDs(ids []int64) ([]models.Student, error)
	GetStudents(filters models.StudentFilters) ([]models.Student, int, error)
	UpdateStudent(executor SQLExecutor, student *models.Student) (*models.Student, error)
	DeleteStudent(executor SQLExecutor, id int64) error
	AdjustRemainingSessions(executor SQLExecutor, studentID int64, delta int) error
}

type studentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new instance of StudentRepository.
func NewStudentRepository(db *sql.DB) StudentRepository {
	return &studentRepository{db: db}
}

const selectStudentFields = `id, full_name, email, phone, package_type, coach_id,
	total_sessions, remaining_sessions, created_at, updated_at`

func scanStudent(row scanner, student *models.Student, extra ...interface{}) error {
	dest := []interface{}{
		&student.ID, &student.FullName, &student.Email, &student.Phone, &student.PackageType,
		&student.CoachID, &student.TotalSessions, &student.RemainingSessions,
		&student.CreatedAt, &student.UpdatedAt,
	}
	dest = append(dest, extra...)
	err := row.Scan(dest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: scanning student: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *studentRepository) CreateStudent(executor SQLExecutor, student *models.Student) (*models.Student, error) {
	query := `INSERT INTO students
	            (full_name, email, phone, package_type, coach_id, total_sessions, remaining_sessions, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	err := executor.QueryRow(query,
		student.FullName, student.Email, student.Phone, student.PackageType, student.CoachID,
		student.TotalSessions, student.RemainingSessions, currentTime, currentTime,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating student: %v", ErrDatabaseError, err)
	}
	return student, nil
}

func (r *studentRepository) GetStudentByID(id int64) (*models.Student, error) {
	student := &models.Student{}
	query := "SELECT " + selectStudentFields + " FROM students WHERE id = $1"
	if err := scanStudent(r.db.QueryRow(query, id), student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudentsByIDs fetches a batch of students in one round trip. Used by the
// roster manager to validate a whole participant set before applying it.
func (r *studentRepository) GetStudentsByIDs(ids []int64) ([]models.Student, error) {
	students := []models.Student{}
	if len(ids) == 0 {
		return students, nil
	}

	query := "SELECT " + selectStudentFields + " FROM students WHERE id = ANY($1)"
	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: querying students by IDs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var student models.Student
		if err := scanStudent(rows, &student); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating student rows: %v", ErrDatabaseError, err)
	}
	return students, nil
}

func (r *studentRepository) GetStudents(filters models.StudentFilters) ([]models.Student, int, error) {
	students := []models.Student{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectStudentFields + ", COUNT(*) OVER() as total_count FROM students")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Search != nil && *filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filters.Search+"%")
		argCount++
	}
	if filters.CoachID != nil {
		conditions = append(conditions, fmt.Sprintf("coach_id = $%d", argCount))
		args = append(args, *filters.CoachID)
		argCount++
	}
	if filters.PackageType != nil && *filters.PackageType != "" {
		conditions = append(conditions, fmt.Sprintf("package_type = $%d", argCount))
		args = append(args, *filters.PackageType)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY full_name ASC")

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
		return nil, 0, fmt.Errorf("%w: querying students: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var student models.Student
		if err := scanStudent(rows, &student, &totalCount); err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating student rows: %v", ErrDatabaseError, err)
	}
	return students, totalCount, nil
}

func (r *studentRepository) UpdateStudent(executor SQLExecutor, student *models.Student) (*models.Student, error) {
	query := `UPDATE students SET
	            full_name = $1, email = $2, phone = $3, package_type = $4, coach_id = $5,
	            total_sessions = $6, remaining_sessions = $7, updated_at = $8
	          WHERE id = $9
	          RETURNING updated_at`
	err := executor.QueryRow(query,
		student.FullName, student.Email, student.Phone, student.PackageType, student.CoachID,
		student.TotalSessions, student.RemainingSessions, time.Now(), student.ID,
	).Scan(&student.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating student ID %d: %v", ErrDatabaseError, student.ID, err)
	}
	return student, nil
}

func (r *studentRepository) DeleteStudent(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting student ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustRemainingSessions applies a delta to a student's remaining session
// balance, clamped at zero.
func (r *studentRepository) AdjustRemainingSessions(executor SQLExecutor, studentID int64, delta int) error {
	query := `UPDATE students
	          SET remaining_sessions = GREATEST(remaining_sessions + $1, 0), updated_at = $2
	          WHERE id = $3`
	result, err := executor.Exec(query, delta, time.Now(), studentID)
	if err != nil {
		return fmt.Errorf("%w: adjusting remaining sessions for student %d: %v", ErrDatabaseError, studentID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
