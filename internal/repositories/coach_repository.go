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

// CoachRepository defines the interface for coach-related database operations.
type CoachRepository interface {
	CreateCoach(executor SQLExecutor, coach *models.Coach) (*models.Coach, error)
	GetCoachByID(id int64) (*models.Coach, error)
	GetCoachByUserID(userID int64) (*models.Coach, error)
	GetCoachByEmail(email string) (*models.Coach, error)
	GetCoaches(filters models.CoachFilters) ([]models.Coach, int, error)
	UpdateCoach(executor SQLExecutor, coach *models.Coach) (*models.Coach, error)
	DeleteCoach(executor SQLExecutor, id int64) error
	LinkUser(executor SQLExecutor, coachID, userID int64) error
	UpdateRole(executor SQLExecutor, coachID int64, role string) error
	CountAdmins() (int, error)
}

type coachRepository struct {
	db *sql.DB
}

// NewCoachRepository creates a new instance of CoachRepository.
func NewCoachRepository(db *sql.DB) CoachRepository {
	return &coachRepository{db: db}
}

const selectCoachFields = `id, user_id, full_name, email, phone, package_type, role, created_at, updated_at`

func scanCoach(row scanner, coach *models.Coach, extra ...interface{}) error {
	dest := []interface{}{
		&coach.ID, &coach.UserID, &coach.FullName, &coach.Email, &coach.Phone,
		&coach.PackageType, &coach.Role, &coach.CreatedAt, &coach.UpdatedAt,
	}
	dest = append(dest, extra...)
	err := row.Scan(dest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: scanning coach: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *coachRepository) CreateCoach(executor SQLExecutor, coach *models.Coach) (*models.Coach, error) {
	query := `INSERT INTO coaches (user_id, full_name, email, phone, package_type, role, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	err := executor.QueryRow(query,
		coach.UserID, coach.FullName, coach.Email, coach.Phone,
		coach.PackageType, coach.Role, currentTime, currentTime,
	).Scan(&coach.ID, &coach.CreatedAt, &coach.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: creating coach: %v", ErrDatabaseError, err)
	}
	return coach, nil
}

func (r *coachRepository) GetCoachByID(id int64) (*models.Coach, error) {
	coach := &models.Coach{}
	query := "SELECT " + selectCoachFields + " FROM coaches WHERE id = $1"
	if err := scanCoach(r.db.QueryRow(query, id), coach); err != nil {
		return nil, err
	}
	return coach, nil
}

func (r *coachRepository) GetCoachByUserID(userID int64) (*models.Coach, error) {
	coach := &models.Coach{}
	query := "SELECT " + selectCoachFields + " FROM coaches WHERE user_id = $1"
	if err := scanCoach(r.db.QueryRow(query, userID), coach); err != nil {
		return nil, err
	}
	return coach, nil
}

func (r *coachRepository) GetCoachByEmail(email string) (*models.Coach, error) {
	coach := &models.Coach{}
	query := "SELECT " + selectCoachFields + " FROM coaches WHERE lower(email) = lower($1)"
	if err := scanCoach(r.db.QueryRow(query, email), coach); err != nil {
		return nil, err
	}
	return coach, nil
}

func (r *coachRepository) GetCoaches(filters models.CoachFilters) ([]models.Coach, int, error) {
	coaches := []models.Coach{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectCoachFields + ", COUNT(*) OVER() as total_count FROM coaches")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Search != nil && *filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filters.Search+"%")
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
		return nil, 0, fmt.Errorf("%w: querying coaches: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var coach models.Coach
		if err := scanCoach(rows, &coach, &totalCount); err != nil {
			return nil, 0, err
		}
		coaches = append(coaches, coach)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating coach rows: %v", ErrDatabaseError, err)
	}
	return coaches, totalCount, nil
}

func (r *coachRepository) UpdateCoach(executor SQLExecutor, coach *models.Coach) (*models.Coach, error) {
	query := `UPDATE coaches SET full_name = $1, email = $2, phone = $3, package_type = $4, role = $5, updated_at = $6
	          WHERE id = $7
	          RETURNING updated_at`
	err := executor.QueryRow(query,
		coach.FullName, coach.Email, coach.Phone, coach.PackageType, coach.Role, time.Now(), coach.ID,
	).Scan(&coach.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: updating coach ID %d: %v", ErrDatabaseError, coach.ID, err)
	}
	return coach, nil
}

func (r *coachRepository) DeleteCoach(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM coaches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting coach ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LinkUser establishes the identity link on a coach row. Used by the login
// flow to self-heal coach rows created before their account existed.
func (r *coachRepository) LinkUser(executor SQLExecutor, coachID, userID int64) error {
	result, err := executor.Exec(`UPDATE coaches SET user_id = $1, updated_at = $2 WHERE id = $3`,
		userID, time.Now(), coachID)
	if err != nil {
		return fmt.Errorf("%w: linking user %d to coach %d: %v", ErrDatabaseError, userID, coachID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountAdmins reports how many coach rows carry the admin role. Used by the
// bootstrap registration guard.
func (r *coachRepository) CountAdmins() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM coaches WHERE role = $1`, models.CoachRoleAdmin).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting admins: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// UpdateRole persists a repaired role value back to the store.
func (r *coachRepository) UpdateRole(executor SQLExecutor, coachID int64, role string) error {
	result, err := executor.Exec(`UPDATE coaches SET role = $1, updated_at = $2 WHERE id = $3`,
		role, time.Now(), coachID)
	if err != nil {
		return fmt.Errorf("%w: updating role for coach %d: %v", ErrDatabaseError, coachID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
