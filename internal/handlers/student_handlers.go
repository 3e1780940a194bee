package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hoop_academy_backend/internal/middleware"
	"hoop_academy_backend/internal/models"
	"hoop_academy_backend/internal/services"
	"hoop_academy_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StudentHandler holds the student and attendance services.
type StudentHandler struct {
	studentService    services.StudentService
	attendanceService services.AttendanceService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(ss services.StudentService, as services.AttendanceService) *StudentHandler {
	return &StudentHandler{studentService: ss, attendanceService: as}
}

// CreateStudent handles the creation of a new student.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req services.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	student, err := h.studentService.CreateStudent(req)
	if err != nil {
		utils.LogError(err, "CreateStudent: Error from studentService.CreateStudent")
		if errors.Is(err, services.ErrStudentDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrCoachForStudentMissing) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Assigned coach not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create student.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, student)
}

// GetStudents handles fetching students with pagination and filters.
func (h *StudentHandler) GetStudents(c *gin.Context) {
	var filters models.StudentFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}

	students, totalCount, err := h.studentService.GetStudents(middleware.GetPrincipal(c), filters)
	if err != nil {
		utils.LogError(err, "GetStudents: Error from studentService.GetStudents")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch students.", "Internal error"))
		return
	}

	if students == nil {
		students = []models.Student{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      students,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetStudentByID handles fetching a single student by ID.
func (h *StudentHandler) GetStudentByID(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid student ID format.", err.Error()))
		return
	}

	student, err := h.studentService.GetStudentByID(middleware.GetPrincipal(c), studentID)
	if err != nil {
		utils.LogError(err, "GetStudentByID: Error from studentService.GetStudentByID")
		if errors.Is(err, services.ErrStudentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Student not found.", err.Error()))
		} else if errors.Is(err, services.ErrStudentAccessDenied) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You can only view your own students.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch student.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, student)
}

// UpdateStudent handles updating a student.
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid student ID format.", err.Error()))
		return
	}

	var req services.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	student, err := h.studentService.UpdateStudent(studentID, req)
	if err != nil {
		utils.LogError(err, "UpdateStudent: Error from studentService.UpdateStudent")
		if errors.Is(err, services.ErrStudentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Student not found.", err.Error()))
		} else if errors.Is(err, services.ErrStudentDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrCoachForStudentMissing) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Assigned coach not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update student.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudent handles deleting a student.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid student ID format.", err.Error()))
		return
	}

	if err := h.studentService.DeleteStudent(studentID); err != nil {
		utils.LogError(err, "DeleteStudent: Error from studentService.DeleteStudent")
		if errors.Is(err, services.ErrStudentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Student not found.", err.Error()))
		} else if errors.Is(err, services.ErrStudentInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Student is enrolled in sessions and cannot be deleted.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete student.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully"})
}

// GetStudentAttendance lists a student's attendance history, optionally
// bounded by date_from and date_to query parameters.
func (h *StudentHandler) GetStudentAttendance(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid student ID format.", err.Error()))
		return
	}

	var dateFrom, dateTo *string
	if v := c.Query("date_from"); v != "" {
		dateFrom = &v
	}
	if v := c.Query("date_to"); v != "" {
		dateTo = &v
	}

	records, err := h.attendanceService.GetStudentAttendance(middleware.GetPrincipal(c), studentID, dateFrom, dateTo)
	if err != nil {
		utils.LogError(err, "GetStudentAttendance: Error from attendanceService.GetStudentAttendance")
		if errors.Is(err, services.ErrStudentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Student not found.", err.Error()))
		} else if errors.Is(err, services.ErrStudentAccessDenied) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You can only view your own students.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch attendance.", "Internal error"))
		}
		return
	}

	if records == nil {
		records = []models.AttendanceRecord{}
	}
	c.JSON(http.StatusOK, records)
}
