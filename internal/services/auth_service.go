package services

import (
	"database/sql"
	"errors"
	"fmt"

	"hoop_academy_backend/internal/models"
	"hoop_academy_backend/internal/repositories"
	"hoop_academy_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrNoCoachProfile     = errors.New("no coach profile is linked to this account")
	ErrAdminExists        = errors.New("an administrator account already exists")
	ErrTokenGeneration    = errors.New("failed to generate token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterAdminRequest bootstraps the first administrator account. Further
// coaches are provisioned by an admin through the coach service.
type RegisterAdminRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	FullName string  `json:"full_name" binding:"required"`
	Phone    *string `json:"phone"`
}

// ChangePasswordRequest DTO
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// AuthResponse DTO
type AuthResponse struct {
	User         *models.User  `json:"user"`
	Coach        *models.Coach `json:"coach"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterAdmin(req RegisterAdminRequest) (*models.Coach, error)
	Login(req LoginRequest) (*AuthResponse, error)
	Refresh(refreshToken string) (*AuthResponse, error)
	GetProfile(userID int64) (*models.User, *models.Coach, error)
	ChangePassword(userID int64, req ChangePasswordRequest) error
}

// --- authService Implementation ---
type authService struct {
	authRepo  repositories.AuthRepository
	coachRepo repositories.CoachRepository
	db        *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, coachRepo repositories.CoachRepository, db *sql.DB) AuthService {
	return &authService{
		authRepo:  authRepo,
		coachRepo: coachRepo,
		db:        db,
	}
}

// RegisterAdmin creates the bootstrap administrator: a user credential plus an
// admin coach row. Refused once any admin exists; provisioning takes over.
func (s *authService) RegisterAdmin(req RegisterAdminRequest) (*models.Coach, error) {
	adminCount, err := s.coachRepo.CountAdmins()
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing administrators: %w", err)
	}
	if adminCount > 0 {
		return nil, ErrAdminExists
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Email: req.Email, FullName: &req.FullName}
	userID, err := s.authRepo.CreateUser(s.db, &user, string(hashedPasswordBytes))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	coach := &models.Coach{
		UserID:   &userID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     models.CoachRoleAdmin,
	}
	createdCoach, err := s.coachRepo.CreateCoach(s.db, coach)
	if err != nil {
		// Compensate: don't leave a credential without a coach profile behind.
		if delErr := s.authRepo.DeleteUser(s.db, userID); delErr != nil {
			utils.LogError(delErr, "RegisterAdmin: failed to compensate user creation")
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create admin coach profile: %w", err)
	}
	return createdCoach, nil
}

// resolveCoach maps an authenticated user onto their coach row. The identity
// link is by user_id, falling back to an email match; a coach row found by
// email with no link yet is self-healed. A missing or invalid role value is
// repaired to "coach" and persisted. No coach row at all means the caller is
// granted no role (fail closed).
func (s *authService) resolveCoach(user *models.User) (*models.Coach, error) {
	coach, err := s.coachRepo.GetCoachByUserID(user.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		coach, err = s.coachRepo.GetCoachByEmail(user.Email)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoCoachProfile
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve coach by email: %w", err)
		}
		if coach.UserID != nil && *coach.UserID != user.ID {
			// The email matches a coach already linked to someone else.
			return nil, ErrNoCoachProfile
		}
		if coach.UserID == nil {
			if linkErr := s.coachRepo.LinkUser(s.db, coach.ID, user.ID); linkErr != nil {
				return nil, fmt.Errorf("failed to self-heal identity link: %w", linkErr)
			}
			coach.UserID = &user.ID
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to resolve coach by user ID: %w", err)
	}

	if normalized, changed := models.NormalizeCoachRole(coach.Role); changed {
		if roleErr := s.coachRepo.UpdateRole(s.db, coach.ID, normalized); roleErr != nil {
			return nil, fmt.Errorf("failed to repair coach role: %w", roleErr)
		}
		coach.Role = normalized
	}
	return coach, nil
}

func (s *authService) buildAuthResponse(user *models.User, coach *models.Coach) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email, coach.Role, coach.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	user.PasswordHash = ""
	return &AuthResponse{
		User:         user,
		Coach:        coach,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login authenticates a credential and resolves its coach profile and role.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	user, storedHashedPassword, err := s.authRepo.FindUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	coach, err := s.resolveCoach(user)
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user, coach)
}

// Refresh issues a fresh token pair from a valid refresh token.
func (s *authService) Refresh(refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.authRepo.FindUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("refresh failed: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	coach, err := s.resolveCoach(user)
	if err != nil {
		return nil, err
	}
	return s.buildAuthResponse(user, coach)
}

// GetProfile retrieves a user and their coach profile by user ID.
func (s *authService) GetProfile(userID int64) (*models.User, *models.Coach, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	user.PasswordHash = ""

	coach, err := s.resolveCoach(user)
	if err != nil {
		return nil, nil, err
	}
	return user, coach, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *authService) ChangePassword(userID int64, req ChangePasswordRequest) error {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user for password change: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if len(req.NewPassword) < 8 {
		return ErrWeakPassword
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	return s.authRepo.UpdatePassword(s.db, userID, string(hashedPasswordBytes))
}
