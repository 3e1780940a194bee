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

// --- Custom Service Errors for Availability ---
var (
	ErrWindowNotFound     = errors.New("availability window not found")
	ErrWindowValidation   = errors.New("availability window validation error")
	ErrWindowAccessDenied = errors.New("availability window belongs to another coach")
)

// --- Availability DTOs ---
type CreateWindowRequest struct {
	Weekday   int    `json:"weekday"` // 0 = Sunday .. 6 = Saturday
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// AvailabilityCheck reports whether a proposed slot falls inside the coach's
// declared windows. Advisory only; it never blocks scheduling.
type AvailabilityCheck struct {
	Within  bool   `json:"within"`
	Message string `json:"message,omitempty"`
}

// --- AvailabilityService Interface ---
type AvailabilityService interface {
	CreateWindow(principal *models.Principal, coachID int64, req CreateWindowRequest) (*models.AvailabilityWindow, error)
	GetCoachWindows(coachID int64) ([]models.AvailabilityWindow, error)
	DeleteWindow(principal *models.Principal, coachID, windowID int64) error
	CheckSlot(coachID int64, date, startTime, endTime string) (*AvailabilityCheck, error)
}

// --- availabilityService Implementation ---
type availabilityService struct {
	availabilityRepo repositories.AvailabilityRepository
	coachRepo        repositories.CoachRepository
	db               *sql.DB
}

// NewAvailabilityService creates a new instance of AvailabilityService.
func NewAvailabilityService(ar repositories.AvailabilityRepository, cr repositories.CoachRepository, db *sql.DB) AvailabilityService {
	return &availabilityService{availabilityRepo: ar, coachRepo: cr, db: db}
}

// CreateWindow records a weekly availability window. Admins may manage any
// coach's windows; coaches only their own.
func (s *availabilityService) CreateWindow(principal *models.Principal, coachID int64, req CreateWindowRequest) (*models.AvailabilityWindow, error) {
	if !principal.IsAdmin() && principal.CoachID != coachID {
		return nil, ErrWindowAccessDenied
	}
	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, fmt.Errorf("%w: weekday must be between 0 and 6", ErrWindowValidation)
	}
	if _, err := scheduling.NewInterval(req.StartTime, req.EndTime); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWindowValidation, err)
	}
	if _, err := s.coachRepo.GetCoachByID(coachID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to validate coach for window: %w", err)
	}

	window := &models.AvailabilityWindow{
		CoachID:   coachID,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	created, err := s.availabilityRepo.CreateWindow(s.db, window)
	if err != nil {
		return nil, fmt.Errorf("failed to create availability window: %w", err)
	}
	return created, nil
}

func (s *availabilityService) GetCoachWindows(coachID int64) ([]models.AvailabilityWindow, error) {
	if _, err := s.coachRepo.GetCoachByID(coachID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to find coach for windows: %w", err)
	}
	return s.availabilityRepo.GetWindowsByCoach(coachID)
}

func (s *availabilityService) DeleteWindow(principal *models.Principal, coachID, windowID int64) error {
	window, err := s.availabilityRepo.GetWindowByID(windowID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrWindowNotFound
		}
		return fmt.Errorf("failed to find availability window: %w", err)
	}
	if window.CoachID != coachID {
		return ErrWindowNotFound
	}
	if !principal.IsAdmin() && principal.CoachID != window.CoachID {
		return ErrWindowAccessDenied
	}
	if err := s.availabilityRepo.DeleteWindow(s.db, windowID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrWindowNotFound
		}
		return fmt.Errorf("failed to delete availability window: %w", err)
	}
	return nil
}

// CheckSlot evaluates a proposed slot against the coach's windows for that
// day of week. A coach with no windows on that day is treated as available.
func (s *availabilityService) CheckSlot(coachID int64, date, startTime, endTime string) (*AvailabilityCheck, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrWindowValidation, date)
	}
	interval, err := scheduling.NewInterval(startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWindowValidation, err)
	}

	windows, err := s.availabilityRepo.GetWindowsByCoach(coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability windows: %w", err)
	}

	dayWindows := make([]scheduling.Interval, 0, len(windows))
	for _, w := range windows {
		if w.Weekday != int(day.Weekday()) {
			continue
		}
		iv, ivErr := scheduling.NewInterval(w.StartTime, w.EndTime)
		if ivErr != nil {
			return nil, fmt.Errorf("stored availability window %d is unreadable: %w", w.ID, ivErr)
		}
		dayWindows = append(dayWindows, iv)
	}

	check := &AvailabilityCheck{Within: scheduling.WithinAvailability(interval, dayWindows)}
	if !check.Within {
		check.Message = "slot falls outside the coach's declared availability"
	}
	return check, nil
}
