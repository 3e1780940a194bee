package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hoop_academy_backend/internal/models"
)

// BranchRepository defines the interface for branch-related database operations.
type BranchRepository interface {
	CreateBranch(executor SQLExecutor, branch *models.Branch) (*models.Branch, error)
	GetBranchByID(id int64) (*models.Branch, error)
	GetBranches(search *string, page, pageSize int) ([]models.Branch, int, error)
	UpdateBranch(executor SQLExecutor, branch *models.Branch) (*models.Branch, error)
	DeleteBranch(executor SQLExecutor, id int64) error
}

type branchRepository struct {
	db *sql.DB
}

// NewBranchRepository creates a new instance of BranchRepository.
func NewBranchRepository(db *sql.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) CreateBranch(executor SQLExecutor, branch *models.Branch) (*models.Branch, error) {
	query := `INSERT INTO branches (name, address, city, phone, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	err := executor.QueryRow(query,
		branch.Name, branch.Address, branch.City, branch.Phone, currentTime, currentTime,
	).Scan(&branch.ID, &branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating branch: %v", ErrDatabaseError, err)
	}
	return branch, nil
}

func (r *branchRepository) GetBranchByID(id int64) (*models.Branch, error) {
	branch := &models.Branch{}
	query := `SELECT id, name, address, city, phone, created_at, updated_at FROM branches WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&branch.ID, &branch.Name, &branch.Address, &branch.City, &branch.Phone,
		&branch.CreatedAt, &branch.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting branch ID %d: %v", ErrDatabaseError, id, err)
	}
	return branch, nil
}

func (r *branchRepository) GetBranches(search *string, page, pageSize int) ([]models.Branch, int, error) {
	branches := []models.Branch{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, address, city, phone, created_at, updated_at,
	                          COUNT(*) OVER() as total_count FROM branches`)

	var args []interface{}
	if search != nil && *search != "" {
		queryBuilder.WriteString(" WHERE name ILIKE $1 OR city ILIKE $1")
		args = append(args, "%"+*search+"%")
	}
	queryBuilder.WriteString(" ORDER BY name ASC")
	argCount := len(args) + 1
	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying branches: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var branch models.Branch
		if err := rows.Scan(&branch.ID, &branch.Name, &branch.Address, &branch.City, &branch.Phone,
			&branch.CreatedAt, &branch.UpdatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning branch: %v", ErrDatabaseError, err)
		}
		branches = append(branches, branch)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating branch rows: %v", ErrDatabaseError, err)
	}
	return branches, totalCount, nil
}

func (r *branchRepository) UpdateBranch(executor SQLExecutor, branch *models.Branch) (*models.Branch, error) {
	query := `UPDATE branches SET name = $1, address = $2, city = $3, phone = $4, updated_at = $5
	          WHERE id = $6
	          RETURNING updated_at`
	err := executor.QueryRow(query,
		branch.Name, branch.Address, branch.City, branch.Phone, time.Now(), branch.ID,
	).Scan(&branch.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating branch ID %d: %v", ErrDatabaseError, branch.ID, err)
	}
	return branch, nil
}

func (r *branchRepository) DeleteBranch(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting branch ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
