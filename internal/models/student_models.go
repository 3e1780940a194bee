package models

import "time"

// Student represents a trainee. CoachID is nullable; package type and coach
// are validated against a session's when the student joins its roster.
type Student struct {
	ID                int64     `json:"id" db:"id"`
	FullName          string    `json:"full_name" db:"full_name"`
	Email             *string   `json:"email,omitempty" db:"email"`
	Phone             *string   `json:"phone,omitempty" db:"phone"`
	PackageType       string    `json:"package_type" db:"package_type"`
	CoachID           *int64    `json:"coach_id,omitempty" db:"coach_id"`
	TotalSessions     int       `json:"total_sessions" db:"total_sessions"`
	RemainingSessions int       `json:"remaining_sessions" db:"remaining_sessions"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
	Coach             *Coach    `json:"coach,omitempty"`
}

// StudentFilters defines the available filters for querying students.
type StudentFilters struct {
	Search      *string `form:"search"`
	CoachID     *int64  `form:"coach_id"`
	PackageType *string `form:"package_type"`
	Page        int     `form:"page"`
	PageSize    int     `form:"page_size"`
}
