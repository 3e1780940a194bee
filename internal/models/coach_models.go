package models

import (
	"strings"
	"time"
)

// Coach roles form a closed enumeration. Anything else coming out of the
// store is a legacy value and is repaired to "coach" (see NormalizeCoachRole).
const (
	CoachRoleAdmin = "admin"
	CoachRoleCoach = "coach"
)

// IsValidCoachRole checks the closed role enumeration.
func IsValidCoachRole(role string) bool {
	return role == CoachRoleAdmin || role == CoachRoleCoach
}

// NormalizeCoachRole maps a raw role column value onto the closed enumeration.
// Blank, mixed-case or unknown legacy values default to "coach"; only an exact
// (case-insensitive) admin survives as admin. The second return reports whether
// the stored value needs to be written back.
func NormalizeCoachRole(raw string) (string, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	switch trimmed {
	case CoachRoleAdmin, CoachRoleCoach:
		return trimmed, trimmed != raw
	default:
		return CoachRoleCoach, true
	}
}

// Package types offered by the academy. A "Camp Training" coach may also run
// "Personal Training" sessions; a "Personal Training" coach is restricted to
// that package type.
const (
	PackageCampTraining     = "Camp Training"
	PackagePersonalTraining = "Personal Training"
)

// IsValidPackageType checks the closed package type enumeration.
func IsValidPackageType(packageType string) bool {
	return packageType == PackageCampTraining || packageType == PackagePersonalTraining
}

// Coach represents a staff member. UserID links the coach to their login
// credential; it is nullable because a coach row may be created before the
// account is linked (the link self-heals on first login by email match).
type Coach struct {
	ID          int64     `json:"id" db:"id"`
	UserID      *int64    `json:"user_id,omitempty" db:"user_id"`
	FullName    string    `json:"full_name" db:"full_name"`
	Email       string    `json:"email" db:"email"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	PackageType *string   `json:"package_type,omitempty" db:"package_type"`
	Role        string    `json:"role" db:"role"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	User        *User     `json:"user,omitempty"`
}

// CoachFilters defines the available filters for querying coaches.
type CoachFilters struct {
	Search      *string `form:"search"`
	PackageType *string `form:"package_type"`
	Page        int     `form:"page"`
	PageSize    int     `form:"page_size"`
}

// AvailabilityWindow is a recurring weekly window a coach can be scheduled
// into. Advisory: scheduling outside declared windows is flagged, not blocked.
type AvailabilityWindow struct {
	ID        int64     `json:"id" db:"id"`
	CoachID   int64     `json:"coach_id" db:"coach_id"`
	Weekday   int       `json:"weekday" db:"weekday"`       // 0=Sunday .. 6=Saturday
	StartTime string    `json:"start_time" db:"start_time"` // HH:MM
	EndTime   string    `json:"end_time" db:"end_time"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
