package services

import (
	"database/sql"
	"errors"
	"fmt"

	"hoop_academy_backend/internal/models"
	"hoop_academy_backend/internal/repositories"
	"hoop_academy_backend/internal/scheduling"
	"hoop_academy_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Coach ---
var (
	ErrCoachNotFound       = errors.New("coach not found")
	ErrCoachEmailExists    = errors.New("a coach with this email already exists")
	ErrCoachDataValidation = errors.New("coach data validation error")
	ErrCoachInUse          = errors.New("coach cannot be deleted as they are referenced in other records")
	ErrProvisioning        = errors.New("coach account provisioning failed")
)

// --- Coach DTOs ---
type CreateCoachRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       *string `json:"phone"`
	PackageType *string `json:"package_type"`
	Role        *string `json:"role"`
}

type UpdateCoachRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	PackageType *string `json:"package_type"`
	Role        *string `json:"role"`
}

// CreateCoachAccountRequest provisions a login credential alongside the coach
// row, mirroring the create-coach-account remote function.
type CreateCoachAccountRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       *string `json:"phone"`
	PackageType *string `json:"package_type"`
}

// --- CoachService Interface ---
type CoachService interface {
	CreateCoach(req CreateCoachRequest) (*models.Coach, error)
	CreateCoachAccount(req CreateCoachAccountRequest) (*models.Coach, error)
	GetCoachByID(coachID int64) (*models.Coach, error)
	GetCoaches(filters models.CoachFilters) ([]models.Coach, int, error)
	GetEligibleCoaches(sessionPackageType string) ([]models.Coach, error)
	UpdateCoach(coachID int64, req UpdateCoachRequest) (*models.Coach, error)
	DeleteCoach(coachID int64) error
}

// --- coachService Implementation ---
type coachService struct {
	coachRepo       repositories.CoachRepository
	authRepo        repositories.AuthRepository
	db              *sql.DB
	defaultPassword string
}

// NewCoachService creates a new instance of CoachService. defaultPassword is
// the fixed initial credential issued to provisioned coach accounts.
func NewCoachService(cr repositories.CoachRepository, ar repositories.AuthRepository, db *sql.DB, defaultPassword string) CoachService {
	return &coachService{
		coachRepo:       cr,
		authRepo:        ar,
		db:              db,
		defaultPassword: defaultPassword,
	}
}

func validateCoachFields(packageType *string, role *string) error {
	if packageType != nil && *packageType != "" && !models.IsValidPackageType(*packageType) {
		return fmt.Errorf("%w: invalid package type '%s'", ErrCoachDataValidation, *packageType)
	}
	if role != nil && !models.IsValidCoachRole(*role) {
		return fmt.Errorf("%w: invalid role '%s'", ErrCoachDataValidation, *role)
	}
	return nil
}

func (s *coachService) CreateCoach(req CreateCoachRequest) (*models.Coach, error) {
	if err := validateCoachFields(req.PackageType, req.Role); err != nil {
		return nil, err
	}

	role := models.CoachRoleCoach
	if req.Role != nil {
		role = *req.Role
	}

	coach := &models.Coach{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		PackageType: req.PackageType,
		Role:        role,
	}
	createdCoach, err := s.coachRepo.CreateCoach(s.db, coach)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCoachEmailExists
		}
		return nil, fmt.Errorf("failed to create coach: %w", err)
	}
	return createdCoach, nil
}

// CreateCoachAccount provisions an identity credential with the default
// password and a linked coach row. The two inserts are deliberately separate
// steps, with an explicit compensation that deletes the created credential if
// the coach insert fails, preserving the source saga shape.
func (s *coachService) CreateCoachAccount(req CreateCoachAccountRequest) (*models.Coach, error) {
	if err := validateCoachFields(req.PackageType, nil); err != nil {
		return nil, err
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing default password: %v", ErrProvisioning, err)
	}

	user := models.User{Email: req.Email, FullName: &req.FullName}
	userID, err := s.authRepo.CreateUser(s.db, &user, string(hashedPasswordBytes))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCoachEmailExists
		}
		return nil, fmt.Errorf("%w: creating identity account: %v", ErrProvisioning, err)
	}

	coach := &models.Coach{
		UserID:      &userID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		PackageType: req.PackageType,
		Role:        models.CoachRoleCoach,
	}
	createdCoach, err := s.coachRepo.CreateCoach(s.db, coach)
	if err != nil {
		if delErr := s.authRepo.DeleteUser(s.db, userID); delErr != nil {
			utils.LogError(delErr, "CreateCoachAccount: compensation delete of identity account failed")
			return nil, fmt.Errorf("%w: coach insert failed and compensation also failed: %v", ErrProvisioning, delErr)
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCoachEmailExists
		}
		return nil, fmt.Errorf("%w: creating coach row (identity account rolled back): %v", ErrProvisioning, err)
	}
	return createdCoach, nil
}

func (s *coachService) GetCoachByID(coachID int64) (*models.Coach, error) {
	coach, err := s.coachRepo.GetCoachByID(coachID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to get coach by ID: %w", err)
	}
	return coach, nil
}

func (s *coachService) GetCoaches(filters models.CoachFilters) ([]models.Coach, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}
	coaches, totalCount, err := s.coachRepo.GetCoaches(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get coaches: %w", err)
	}
	return coaches, totalCount, nil
}

// GetEligibleCoaches returns coaches able to run a session of the given
// package type: camp-specialized coaches qualify for both types, personal
// coaches only for personal sessions.
func (s *coachService) GetEligibleCoaches(sessionPackageType string) ([]models.Coach, error) {
	if sessionPackageType != "" && !models.IsValidPackageType(sessionPackageType) {
		return nil, fmt.Errorf("%w: invalid package type '%s'", ErrCoachDataValidation, sessionPackageType)
	}

	coaches, _, err := s.coachRepo.GetCoaches(models.CoachFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load coaches for eligibility check: %w", err)
	}

	eligible := []models.Coach{}
	for _, coach := range coaches {
		if scheduling.CoachEligibleFor(coach.PackageType, sessionPackageType) {
			eligible = append(eligible, coach)
		}
	}
	return eligible, nil
}

func (s *coachService) UpdateCoach(coachID int64, req UpdateCoachRequest) (*models.Coach, error) {
	coach, err := s.coachRepo.GetCoachByID(coachID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to find coach for update: %w", err)
	}

	if err := validateCoachFields(req.PackageType, req.Role); err != nil {
		return nil, err
	}

	if req.FullName != nil {
		coach.FullName = *req.FullName
	}
	if req.Email != nil {
		coach.Email = *req.Email
	}
	if req.Phone != nil {
		coach.Phone = req.Phone
	}
	if req.PackageType != nil {
		coach.PackageType = req.PackageType
	}
	if req.Role != nil {
		coach.Role = *req.Role
	}

	updatedCoach, err := s.coachRepo.UpdateCoach(s.db, coach)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCoachEmailExists
		}
		return nil, fmt.Errorf("failed to update coach: %w", err)
	}
	return updatedCoach, nil
}

func (s *coachService) DeleteCoach(coachID int64) error {
	_, err := s.coachRepo.GetCoachByID(coachID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCoachNotFound
		}
		return fmt.Errorf("failed to find coach for deletion: %w", err)
	}
	if err := s.coachRepo.DeleteCoach(s.db, coachID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCoachNotFound
		}
		// Foreign key references from sessions or students block deletion.
		return fmt.Errorf("%w: %v", ErrCoachInUse, err)
	}
	return nil
}
