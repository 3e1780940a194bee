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

// AttendanceHandler holds the attendance service.
type AttendanceHandler struct {
	attendanceService services.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(as services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as}
}

// MarkAttendance sets an attendance record's status. Coaches may only mark
// records for their own sessions.
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", "missing principal"))
		return
	}

	recordID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid attendance record ID format.", err.Error()))
		return
	}

	var req services.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.attendanceService.MarkAttendance(principal, recordID, req)
	if err != nil {
		utils.LogError(err, "MarkAttendance: Error from attendanceService.MarkAttendance")
		if errors.Is(err, services.ErrAttendanceNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Attendance record not found.", err.Error()))
		} else if errors.Is(err, services.ErrAttendanceValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrAttendanceAccessDenied) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Attendance record belongs to another coach's session.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to mark attendance.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetSessionAttendance lists attendance records for one session.
func (h *AttendanceHandler) GetSessionAttendance(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", "missing principal"))
		return
	}

	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid session ID format.", err.Error()))
		return
	}

	records, err := h.attendanceService.GetSessionAttendance(principal, sessionID)
	if err != nil {
		utils.LogError(err, "GetSessionAttendance: Error from attendanceService.GetSessionAttendance")
		if errors.Is(err, services.ErrSessionNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Training session not found.", err.Error()))
		} else if errors.Is(err, services.ErrAttendanceAccessDenied) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Session is not visible to this coach.", err.Error()))
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
