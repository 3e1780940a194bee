package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hoop_academy_backend/internal/database"
	"hoop_academy_backend/internal/models"

	"github.com/gin-gonic/gin"
)

const DefaultReportDateLayout = "2006-01-02"

// parseReportRequestParams helps parse common query parameters for reports.
func parseReportRequestParams(c *gin.Context) models.ReportRequestParams {
	var params models.ReportRequestParams
	params.StartDate = c.Query("start_date")
	params.EndDate = c.Query("end_date")

	if branchIDStr := c.Query("branch_id"); branchIDStr != "" {
		if id, err := strconv.ParseInt(branchIDStr, 10, 64); err == nil {
			params.BranchID = &id
		}
	}
	if coachIDStr := c.Query("coach_id"); coachIDStr != "" {
		if id, err := strconv.ParseInt(coachIDStr, 10, 64); err == nil {
			params.CoachID = &id
		}
	}
	return params
}

// GetDashboardSummary provides a summary of key metrics for the dashboard.
func GetDashboardSummary(c *gin.Context) {
	db := database.GetDB()
	var summary models.DashboardSummary
	today := time.Now().Format(DefaultReportDateLayout)
	weekAhead := time.Now().AddDate(0, 0, 7).Format(DefaultReportDateLayout)

	err := db.QueryRow(`SELECT COUNT(*) FROM branches`).Scan(&summary.TotalBranches)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count branches: " + err.Error()})
		return
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM coaches`).Scan(&summary.TotalCoaches)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count coaches: " + err.Error()})
		return
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&summary.TotalStudents)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count students: " + err.Error()})
		return
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM training_sessions WHERE session_date = $1::date AND status <> 'cancelled'`, today).Scan(&summary.SessionsToday)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count today's sessions: " + err.Error()})
		return
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM training_sessions WHERE session_date > $1::date AND session_date <= $2::date AND status = 'scheduled'`, today, weekAhead).Scan(&summary.UpcomingSessionsCount)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count upcoming sessions: " + err.Error()})
		return
	}

	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM attendance_records ar
		JOIN training_sessions ts ON ar.session_id = ts.id
		WHERE ts.session_date = $1::date AND ar.status = 'pending'`, today).Scan(&summary.PendingAttendanceToday)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pending attendance: " + err.Error()})
		return
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM students WHERE remaining_sessions <= 2`).Scan(&summary.LowBalanceStudents)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count low balance students: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetAttendanceReports aggregates attendance per student over a date range.
func GetAttendanceReports(c *gin.Context) {
	params := parseReportRequestParams(c)
	db := database.GetDB()

	var queryBuilder strings.Builder
	args := []interface{}{}
	argIdx := 1

	queryBuilder.WriteString(`
		SELECT
			s.id,
			s.full_name,
			s.package_type,
			COUNT(*) FILTER (WHERE ar.status = 'present') as present_count,
			COUNT(*) FILTER (WHERE ar.status = 'absent') as absent_count,
			COUNT(*) FILTER (WHERE ar.status = 'pending') as pending_count
		FROM attendance_records ar
		JOIN students s ON ar.student_id = s.id
		JOIN training_sessions ts ON ar.session_id = ts.id
		WHERE 1=1
	`)

	if params.StartDate != "" {
		queryBuilder.WriteString(" AND ts.session_date >= $" + strconv.Itoa(argIdx) + "::date")
		args = append(args, params.StartDate)
		argIdx++
	}
	if params.EndDate != "" {
		queryBuilder.WriteString(" AND ts.session_date <= $" + strconv.Itoa(argIdx) + "::date")
		args = append(args, params.EndDate)
		argIdx++
	}
	if params.BranchID != nil {
		queryBuilder.WriteString(" AND ts.branch_id = $" + strconv.Itoa(argIdx))
		args = append(args, *params.BranchID)
		argIdx++
	}
	if params.CoachID != nil {
		queryBuilder.WriteString(" AND ts.coach_id = $" + strconv.Itoa(argIdx))
		args = append(args, *params.CoachID)
		argIdx++
	}

	queryBuilder.WriteString(" GROUP BY s.id, s.full_name, s.package_type")
	queryBuilder.WriteString(" ORDER BY s.full_name ASC")

	rows, err := db.Query(queryBuilder.String(), args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query attendance report: " + err.Error()})
		return
	}
	defer rows.Close()

	reportItems := []models.AttendanceReportItem{}
	for rows.Next() {
		var item models.AttendanceReportItem
		if err := rows.Scan(
			&item.StudentID,
			&item.StudentName,
			&item.PackageType,
			&item.PresentCount,
			&item.AbsentCount,
			&item.PendingCount,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan attendance report item: " + err.Error()})
			return
		}
		reportItems = append(reportItems, item)
	}

	c.JSON(http.StatusOK, reportItems)
}

// GetSessionReports aggregates sessions per branch and day.
func GetSessionReports(c *gin.Context) {
	params := parseReportRequestParams(c)
	db := database.GetDB()

	var queryBuilder strings.Builder
	args := []interface{}{}
	argIdx := 1

	queryBuilder.WriteString(`
		SELECT
			TO_CHAR(ts.session_date, 'YYYY-MM-DD') as report_date,
			ts.branch_id,
			b.name as branch_name,
			COUNT(ts.id) as sessions_count,
			COUNT(*) FILTER (WHERE ts.status = 'completed') as completed_count,
			COUNT(*) FILTER (WHERE ts.status = 'cancelled') as cancelled_count,
			SUM(EXTRACT(EPOCH FROM (ts.end_time - ts.start_time))) / 3600.0 as total_hours
		FROM training_sessions ts
		JOIN branches b ON ts.branch_id = b.id
		WHERE 1=1
	`)

	if params.StartDate != "" {
		queryBuilder.WriteString(" AND ts.session_date >= $" + strconv.Itoa(argIdx) + "::date")
		args = append(args, params.StartDate)
		argIdx++
	}
	if params.EndDate != "" {
		queryBuilder.WriteString(" AND ts.session_date <= $" + strconv.Itoa(argIdx) + "::date")
		args = append(args, params.EndDate)
		argIdx++
	}
	if params.BranchID != nil {
		queryBuilder.WriteString(" AND ts.branch_id = $" + strconv.Itoa(argIdx))
		args = append(args, *params.BranchID)
		argIdx++
	}
	if params.CoachID != nil {
		queryBuilder.WriteString(" AND ts.coach_id = $" + strconv.Itoa(argIdx))
		args = append(args, *params.CoachID)
		argIdx++
	}

	queryBuilder.WriteString(" GROUP BY report_date, ts.branch_id, b.name")
	queryBuilder.WriteString(" ORDER BY report_date DESC, branch_name ASC")

	rows, err := db.Query(queryBuilder.String(), args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query session report: " + err.Error()})
		return
	}
	defer rows.Close()

	reportItems := []models.SessionReportItem{}
	for rows.Next() {
		var item models.SessionReportItem
		var totalHours sql.NullFloat64
		if err := rows.Scan(
			&item.Date,
			&item.BranchID,
			&item.BranchName,
			&item.SessionsCount,
			&item.CompletedCount,
			&item.CancelledCount,
			&totalHours,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan session report item: " + err.Error()})
			return
		}
		if totalHours.Valid {
			item.TotalHours = totalHours.Float64
		}
		reportItems = append(reportItems, item)
	}

	c.JSON(http.StatusOK, reportItems)
}
