package router

import (
	"hoop_academy_backend/internal/handlers"
	"hoop_academy_backend/internal/middleware"
	"hoop_academy_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupBranchRoutes sets up the branch routes, admin only. Coaches see
// branch details through their session reads, not the admin list views.
func SetupBranchRoutes(authenticatedGroup *gin.RouterGroup, branchHandler *handlers.BranchHandler) {
	branchRoutes := authenticatedGroup.Group("/branches")
	branchRoutes.Use(middleware.RoleAuthMiddleware(models.CoachRoleAdmin))
	{
		branchRoutes.GET("", branchHandler.GetBranches)
		branchRoutes.GET("/:id", branchHandler.GetBranchByID)
		branchRoutes.POST("", branchHandler.CreateBranch)
		branchRoutes.PUT("/:id", branchHandler.UpdateBranch)
		branchRoutes.DELETE("/:id", branchHandler.DeleteBranch)
	}
}

// SetupCoachRoutes sets up the coach and availability routes.
func SetupCoachRoutes(authenticatedGroup *gin.RouterGroup, coachHandler *handlers.CoachHandler, availabilityHandler *handlers.AvailabilityHandler) {
	coachRoutes := authenticatedGroup.Group("/coaches")
	{
		// Availability stays open to coaches: they read and manage their own
		// windows, with ownership enforced in the service.
		coachRoutes.GET("/:id/availability", availabilityHandler.GetCoachWindows)
		coachRoutes.GET("/:id/availability/check", availabilityHandler.CheckCoachSlot)
		coachRoutes.POST("/:id/availability", availabilityHandler.CreateWindow)
		coachRoutes.DELETE("/:id/availability/:windowId", availabilityHandler.DeleteWindow)

		adminRoutes := coachRoutes.Group("")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.CoachRoleAdmin))
		{
			adminRoutes.GET("", coachHandler.GetCoaches)
			adminRoutes.GET("/eligible", coachHandler.GetEligibleCoaches)
			adminRoutes.GET("/:id", coachHandler.GetCoachByID)
			adminRoutes.POST("", coachHandler.CreateCoach)
			adminRoutes.POST("/accounts", coachHandler.CreateCoachAccount)
			adminRoutes.PUT("/:id", coachHandler.UpdateCoach)
			adminRoutes.DELETE("/:id", coachHandler.DeleteCoach)
		}
	}
}

// SetupStudentRoutes sets up the student routes.
func SetupStudentRoutes(authenticatedGroup *gin.RouterGroup, studentHandler *handlers.StudentHandler) {
	studentRoutes := authenticatedGroup.Group("/students")
	{
		studentRoutes.GET("", studentHandler.GetStudents)
		studentRoutes.GET("/:id", studentHandler.GetStudentByID)
		studentRoutes.GET("/:id/attendance", studentHandler.GetStudentAttendance)

		adminRoutes := studentRoutes.Group("")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.CoachRoleAdmin))
		{
			adminRoutes.POST("", studentHandler.CreateStudent)
			adminRoutes.PUT("/:id", studentHandler.UpdateStudent)
			adminRoutes.DELETE("/:id", studentHandler.DeleteStudent)
		}
	}
}

// SetupSessionRoutes sets up the training session routes. Listing and reads
// are visible to coaches (scoped to their own schedule inside the service);
// scheduling mutations are admin only.
func SetupSessionRoutes(authenticatedGroup *gin.RouterGroup, sessionHandler *handlers.SessionHandler, attendanceHandler *handlers.AttendanceHandler) {
	sessionRoutes := authenticatedGroup.Group("/sessions")
	{
		sessionRoutes.GET("", sessionHandler.GetSessions)
		sessionRoutes.GET("/:id", sessionHandler.GetSessionByID)
		sessionRoutes.GET("/:id/participants", sessionHandler.GetParticipants)
		sessionRoutes.GET("/:id/attendance", attendanceHandler.GetSessionAttendance)
		sessionRoutes.POST("/check-conflict", sessionHandler.CheckConflict)

		adminRoutes := sessionRoutes.Group("")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.CoachRoleAdmin))
		{
			adminRoutes.POST("", sessionHandler.CreateSession)
			adminRoutes.PUT("/:id", sessionHandler.UpdateSession)
			adminRoutes.PATCH("/:id/cancel", sessionHandler.CancelSession)
			adminRoutes.PATCH("/:id/complete", sessionHandler.CompleteSession)
			adminRoutes.DELETE("/:id", sessionHandler.DeleteSession)
			adminRoutes.PUT("/:id/participants", sessionHandler.SetParticipants)
		}
	}
}

// SetupAttendanceRoutes sets up the attendance marking route. Both roles may
// mark; coaches are restricted to their own sessions inside the service.
func SetupAttendanceRoutes(authenticatedGroup *gin.RouterGroup, attendanceHandler *handlers.AttendanceHandler) {
	attendanceRoutes := authenticatedGroup.Group("/attendance")
	{
		attendanceRoutes.PATCH("/:id", attendanceHandler.MarkAttendance)
	}
}

// SetupReportRoutes sets up the reporting and dashboard routes, admin only.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.CoachRoleAdmin))
	{
		reportRoutes.GET("/attendance", handlers.GetAttendanceReports)
		reportRoutes.GET("/sessions", handlers.GetSessionReports)
	}

	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	dashboardRoutes.Use(middleware.RoleAuthMiddleware(models.CoachRoleAdmin))
	{
		dashboardRoutes.GET("/summary", handlers.GetDashboardSummary)
	}
}
