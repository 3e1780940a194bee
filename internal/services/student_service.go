package services

import (
	"database/sql"
	"errors"
	"fmt"

	"hoop_academy_backend/internal/models"
	"hoop_academy_backend/internal/repositories"
)

// --- Custom Service Errors for Student ---
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrStudentDataValidation  = errors.New("student data validation error")
	ErrStudentAccessDenied    = errors.New("student is assigned to another coach")
	ErrCoachForStudentMissing = errors.New("assigned coach for student not found")
	ErrStudentInUse           = errors.New("student cannot be deleted as they are referenced in other records")
)

// --- Student DTOs ---
type CreateStudentRequest struct {
	FullName      string  `json:"full_name" binding:"required"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	PackageType   string  `json:"package_type" binding:"required"`
	CoachID       *int64  `json:"coach_id"`
	TotalSessions int     `json:"total_sessions"`
}

type UpdateStudentRequest struct {
	FullName          *string `json:"full_name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	PackageType       *string `json:"package_type"`
	CoachID           *int64  `json:"coach_id"`
	TotalSessions     *int    `json:"total_sessions"`
	RemainingSessions *int    `json:"remaining_sessions"`
}

// --- StudentService Interface ---
type StudentService interface {
	CreateStudent(req CreateStudentRequest) (*models.Student, error)
	GetStudentByID(principal *models.Principal, studentID int64) (*models.Student, error)
	GetStudents(principal *models.Principal, filters models.StudentFilters) ([]models.Student, int, error)
	UpdateStudent(studentID int64, req UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(studentID int64) error
}

type studentService struct {
	studentRepo repositories.StudentRepository
	coachRepo   repositories.CoachRepository
	db          *sql.DB
}

// NewStudentService creates a new instance of StudentService.
func NewStudentService(sr repositories.StudentRepository, cr repositories.CoachRepository, db *sql.DB) StudentService {
	return &studentService{studentRepo: sr, coachRepo: cr, db: db}
}

func (s *studentService) validateCoachRef(coachID *int64) error {
	if coachID == nil {
		return nil
	}
	_, err := s.coachRepo.GetCoachByID(*coachID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ID %d", ErrCoachForStudentMissing, *coachID)
		}
		return fmt.Errorf("failed to validate coach for student: %w", err)
	}
	return nil
}

func (s *studentService) CreateStudent(req CreateStudentRequest) (*models.Student, error) {
	if !models.IsValidPackageType(req.PackageType) {
		return nil, fmt.Errorf("%w: invalid package type '%s'", ErrStudentDataValidation, req.PackageType)
	}
	if req.TotalSessions < 0 {
		return nil, fmt.Errorf("%w: total_sessions must not be negative", ErrStudentDataValidation)
	}
	if err := s.validateCoachRef(req.CoachID); err != nil {
		return nil, err
	}

	student := &models.Student{
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		PackageType:       req.PackageType,
		CoachID:           req.CoachID,
		TotalSessions:     req.TotalSessions,
		RemainingSessions: req.TotalSessions,
	}
	createdStudent, err := s.studentRepo.CreateStudent(s.db, student)
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return createdStudent, nil
}

func (s *studentService) GetStudentByID(principal *models.Principal, studentID int64) (*models.Student, error) {
	student, err := s.studentRepo.GetStudentByID(studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student by ID: %w", err)
	}
	if !principal.IsAdmin() && (student.CoachID == nil || *student.CoachID != principal.CoachID) {
		return nil, ErrStudentAccessDenied
	}
	return student, nil
}

// GetStudents lists students. Coaches only ever see their own trainees: the
// coach filter is forced to the caller's coach id regardless of query params.
func (s *studentService) GetStudents(principal *models.Principal, filters models.StudentFilters) ([]models.Student, int, error) {
	if !principal.IsAdmin() {
		coachID := principal.CoachID
		filters.CoachID = &coachID
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}
	students, totalCount, err := s.studentRepo.GetStudents(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get students: %w", err)
	}
	return students, totalCount, nil
}

func (s *studentService) UpdateStudent(studentID int64, req UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetStudentByID(studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student for update: %w", err)
	}

	if req.PackageType != nil {
		if !models.IsValidPackageType(*req.PackageType) {
			return nil, fmt.Errorf("%w: invalid package type '%s'", ErrStudentDataValidation, *req.PackageType)
		}
		student.PackageType = *req.PackageType
	}
	if req.CoachID != nil {
		if err := s.validateCoachRef(req.CoachID); err != nil {
			return nil, err
		}
		student.CoachID = req.CoachID
	}
	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.Email != nil {
		student.Email = req.Email
	}
	if req.Phone != nil {
		student.Phone = req.Phone
	}
	if req.TotalSessions != nil {
		if *req.TotalSessions < 0 {
			return nil, fmt.Errorf("%w: total_sessions must not be negative", ErrStudentDataValidation)
		}
		student.TotalSessions = *req.TotalSessions
	}
	if req.RemainingSessions != nil {
		if *req.RemainingSessions < 0 {
			return nil, fmt.Errorf("%w: remaining_sessions must not be negative", ErrStudentDataValidation)
		}
		student.RemainingSessions = *req.RemainingSessions
	}

	updatedStudent, err := s.studentRepo.UpdateStudent(s.db, student)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to update student: %w", err)
	}
	return updatedStudent, nil
}

func (s *studentService) DeleteStudent(studentID int64) error {
	_, err := s.studentRepo.GetStudentByID(studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to find student for deletion: %w", err)
	}
	if err := s.studentRepo.DeleteStudent(s.db, studentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("%w: %v", ErrStudentInUse, err)
	}
	return nil
}
