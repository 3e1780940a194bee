package models

import "time"

// SessionStatus defines the type for training session statuses.
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// IsValidSessionStatus checks if the provided status string is a valid SessionStatus.
func IsValidSessionStatus(status string) bool {
	switch SessionStatus(status) {
	case SessionStatusScheduled, SessionStatusCompleted, SessionStatusCancelled:
		return true
	default:
		return false
	}
}

// TrainingSession is the scheduling unit. Date and times are stored as
// timezone-free calendar values ("2006-01-02" and "15:04") because the academy
// schedules in local wall-clock time.
//
// Invariant: for a given coach no two sessions with status != cancelled may
// have overlapping [start,end) ranges on the same date. Enforced both by the
// service-level conflict check and by the exclusion constraint in the schema.
type TrainingSession struct {
	ID          int64     `json:"id" db:"id"`
	SessionDate string    `json:"session_date" db:"session_date"` // YYYY-MM-DD
	StartTime   string    `json:"start_time" db:"start_time"`     // HH:MM
	EndTime     string    `json:"end_time" db:"end_time"`         // HH:MM
	BranchID    int64     `json:"branch_id" db:"branch_id"`
	CoachID     int64     `json:"coach_id" db:"coach_id"`
	PackageType *string   `json:"package_type,omitempty" db:"package_type"`
	Status      string    `json:"status" db:"status"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Branch       *Branch              `json:"branch,omitempty"`
	Coach        *Coach               `json:"coach,omitempty"`
	Participants []SessionParticipant `json:"participants,omitempty"`
}

// SessionParticipant links a training session to a student. The participant
// set is always kept in lockstep with the session's attendance records.
type SessionParticipant struct {
	SessionID int64    `json:"session_id" db:"session_id"`
	StudentID int64    `json:"student_id" db:"student_id"`
	Student   *Student `json:"student,omitempty"`
}

// SessionFilters defines the available filters for querying training sessions.
type SessionFilters struct {
	CoachID  *int64  `form:"coach_id"`
	BranchID *int64  `form:"branch_id"`
	Status   *string `form:"status"`
	DateFrom *string `form:"date_from"` // YYYY-MM-DD inclusive
	DateTo   *string `form:"date_to"`   // YYYY-MM-DD inclusive
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
