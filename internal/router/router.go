package router

import (
	"database/sql"

	"hoop_academy_backend/internal/handlers"
	"hoop_academy_backend/internal/middleware"
	"hoop_academy_backend/internal/repositories"
	"hoop_academy_backend/internal/services"
	"hoop_academy_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	branchRepo := repositories.NewBranchRepository(db)
	coachRepo := repositories.NewCoachRepository(db)
	studentRepo := repositories.NewStudentRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	availabilityRepo := repositories.NewAvailabilityRepository(db)

	// Initialize Services
	defaultCoachPassword := utils.Getenv("DEFAULT_COACH_PASSWORD", "ChangeMe123!")

	authService := services.NewAuthService(authRepo, coachRepo, db)
	branchService := services.NewBranchService(branchRepo, db)
	coachService := services.NewCoachService(coachRepo, authRepo, db, defaultCoachPassword)
	studentService := services.NewStudentService(studentRepo, coachRepo, db)
	sessionService := services.NewSessionService(sessionRepo, attendanceRepo, studentRepo, coachRepo, branchRepo, db)
	attendanceService := services.NewAttendanceService(attendanceRepo, sessionRepo, studentRepo, db)
	availabilityService := services.NewAvailabilityService(availabilityRepo, coachRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	branchHandler := handlers.NewBranchHandler(branchService)
	coachHandler := handlers.NewCoachHandler(coachService)
	studentHandler := handlers.NewStudentHandler(studentService, attendanceService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	authPublic := apiV1.Group("/auth")
	{
		authPublic.POST("/register-admin", authHandler.RegisterAdmin)
		authPublic.POST("/login", authHandler.Login)
		authPublic.POST("/refresh", authHandler.Refresh)
	}

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		authMe := authenticated.Group("/auth")
		{
			authMe.GET("/me", authHandler.GetProfile)
			authMe.POST("/change-password", authHandler.ChangePassword)
			authMe.POST("/logout", authHandler.Logout)
		}

		SetupBranchRoutes(authenticated, branchHandler)
		SetupCoachRoutes(authenticated, coachHandler, availabilityHandler)
		SetupStudentRoutes(authenticated, studentHandler)
		SetupSessionRoutes(authenticated, sessionHandler, attendanceHandler)
		SetupAttendanceRoutes(authenticated, attendanceHandler)
		SetupReportRoutes(authenticated)
	}
}
