package services

import (
	"database/sql"
	"errors"
	"fmt"

	"hoop_academy_backend/internal/models"
	"hoop_academy_backend/internal/repositories"
)

// --- Custom Service Errors for Branch ---
var (
	ErrBranchNotFound       = errors.New("branch not found")
	ErrBranchDataValidation = errors.New("branch data validation error")
	ErrBranchInUse          = errors.New("branch cannot be deleted as sessions are scheduled there")
)

// --- Branch DTOs ---
type CreateBranchRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	Phone   *string `json:"phone"`
}

type UpdateBranchRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Phone   *string `json:"phone"`
}

// --- BranchService Interface ---
type BranchService interface {
	CreateBranch(req CreateBranchRequest) (*models.Branch, error)
	GetBranchByID(branchID int64) (*models.Branch, error)
	GetBranches(search *string, page, pageSize int) ([]models.Branch, int, error)
	UpdateBranch(branchID int64, req UpdateBranchRequest) (*models.Branch, error)
	DeleteBranch(branchID int64) error
}

type branchService struct {
	branchRepo repositories.BranchRepository
	db         *sql.DB
}

// NewBranchService creates a new instance of BranchService.
func NewBranchService(br repositories.BranchRepository, db *sql.DB) BranchService {
	return &branchService{branchRepo: br, db: db}
}

func (s *branchService) CreateBranch(req CreateBranchRequest) (*models.Branch, error) {
	branch := &models.Branch{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
	}
	createdBranch, err := s.branchRepo.CreateBranch(s.db, branch)
	if err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}
	return createdBranch, nil
}

func (s *branchService) GetBranchByID(branchID int64) (*models.Branch, error) {
	branch, err := s.branchRepo.GetBranchByID(branchID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to get branch by ID: %w", err)
	}
	return branch, nil
}

func (s *branchService) GetBranches(search *string, page, pageSize int) ([]models.Branch, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	branches, totalCount, err := s.branchRepo.GetBranches(search, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get branches: %w", err)
	}
	return branches, totalCount, nil
}

func (s *branchService) UpdateBranch(branchID int64, req UpdateBranchRequest) (*models.Branch, error) {
	branch, err := s.branchRepo.GetBranchByID(branchID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to find branch for update: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrBranchDataValidation)
		}
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.City != nil {
		branch.City = *req.City
	}
	if req.Phone != nil {
		branch.Phone = req.Phone
	}

	updatedBranch, err := s.branchRepo.UpdateBranch(s.db, branch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	return updatedBranch, nil
}

func (s *branchService) DeleteBranch(branchID int64) error {
	_, err := s.branchRepo.GetBranchByID(branchID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBranchNotFound
		}
		return fmt.Errorf("failed to find branch for deletion: %w", err)
	}
	if err := s.branchRepo.DeleteBranch(s.db, branchID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBranchNotFound
		}
		return fmt.Errorf("%w: %v", ErrBranchInUse, err)
	}
	return nil
}
