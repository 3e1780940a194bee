package models

// ReportRequestParams holds common query parameters for report endpoints.
type ReportRequestParams struct {
	StartDate string
	EndDate   string
	BranchID  *int64
	CoachID   *int64
}

// DashboardSummary aggregates the headline numbers for the admin dashboard.
type DashboardSummary struct {
	TotalBranches          int `json:"total_branches"`
	TotalCoaches           int `json:"total_coaches"`
	TotalStudents          int `json:"total_students"`
	SessionsToday          int `json:"sessions_today"`
	UpcomingSessionsCount  int `json:"upcoming_sessions_count"` // next 7 days
	PendingAttendanceToday int `json:"pending_attendance_today"`
	LowBalanceStudents     int `json:"low_balance_students"` // remaining_sessions <= 2
}

// AttendanceReportItem is one student's attendance totals over a date range.
type AttendanceReportItem struct {
	StudentID    int64  `json:"student_id"`
	StudentName  string `json:"student_name"`
	PackageType  string `json:"package_type"`
	PresentCount int    `json:"present_count"`
	AbsentCount  int    `json:"absent_count"`
	PendingCount int    `json:"pending_count"`
}

// SessionReportItem aggregates sessions per branch and day.
type SessionReportItem struct {
	Date           string  `json:"date"`
	BranchID       int64   `json:"branch_id"`
	BranchName     string  `json:"branch_name"`
	SessionsCount  int     `json:"sessions_count"`
	CompletedCount int     `json:"completed_count"`
	CancelledCount int     `json:"cancelled_count"`
	TotalHours     float64 `json:"total_hours"`
}
