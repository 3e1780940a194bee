package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hoop_academy_backend/internal/models"
)

// AvailabilityRepository defines the interface for coach availability windows.
type AvailabilityRepository interface {
	CreateWindow(executor SQLExecutor, window *models.AvailabilityWindow) (*models.AvailabilityWindow, error)
	GetWindowByID(id int64) (*models.AvailabilityWindow, error)
	GetWindowsByCoach(coachID int64) ([]models.AvailabilityWindow, error)
	DeleteWindow(executor SQLExecutor, id int64) error
}

type availabilityRepository struct {
	db *sql.DB
}

// NewAvailabilityRepository creates a new instance of AvailabilityRepository.
func NewAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) CreateWindow(executor SQLExecutor, window *models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	query := `INSERT INTO coach_availability (coach_id, weekday, start_time, end_time, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	err := executor.QueryRow(query,
		window.CoachID, window.Weekday, window.StartTime, window.EndTime, currentTime, currentTime,
	).Scan(&window.ID, &window.CreatedAt, &window.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating availability window: %v", ErrDatabaseError, err)
	}
	return window, nil
}

func (r *availabilityRepository) GetWindowByID(id int64) (*models.AvailabilityWindow, error) {
	window := &models.AvailabilityWindow{}
	query := `SELECT id, coach_id, weekday, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), created_at, updated_at
	          FROM coach_availability WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&window.ID, &window.CoachID, &window.Weekday, &window.StartTime, &window.EndTime,
		&window.CreatedAt, &window.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting availability window ID %d: %v", ErrDatabaseError, id, err)
	}
	return window, nil
}

func (r *availabilityRepository) GetWindowsByCoach(coachID int64) ([]models.AvailabilityWindow, error) {
	windows := []models.AvailabilityWindow{}
	query := `SELECT id, coach_id, weekday, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), created_at, updated_at
	          FROM coach_availability WHERE coach_id = $1
	          ORDER BY weekday ASC, start_time ASC`

	rows, err := r.db.Query(query, coachID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying availability for coach %d: %v", ErrDatabaseError, coachID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var window models.AvailabilityWindow
		if err := rows.Scan(&window.ID, &window.CoachID, &window.Weekday, &window.StartTime, &window.EndTime,
			&window.CreatedAt, &window.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning availability window: %v", ErrDatabaseError, err)
		}
		windows = append(windows, window)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating availability windows: %v", ErrDatabaseError, err)
	}
	return windows, nil
}

func (r *availabilityRepository) DeleteWindow(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM coach_availability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting availability window ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
