package models

import "time"

// AttendanceStatus defines the tri-state attendance marking.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusPending AttendanceStatus = "pending"
)

// IsValidAttendanceStatus checks if the provided status string is a valid AttendanceStatus.
func IsValidAttendanceStatus(status string) bool {
	switch AttendanceStatus(status) {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusPending:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one row per (session, student). MarkedAt is set the
// moment status leaves pending and cleared when it returns to pending.
type AttendanceRecord struct {
	ID        int64      `json:"id" db:"id"`
	SessionID int64      `json:"session_id" db:"session_id"`
	StudentID int64      `json:"student_id" db:"student_id"`
	Status    string     `json:"status" db:"status"`
	MarkedAt  *time.Time `json:"marked_at,omitempty" db:"marked_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`

	StudentName string `json:"student_name,omitempty"`
}
