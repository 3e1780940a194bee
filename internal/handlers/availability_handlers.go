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

// AvailabilityHandler holds the availability service.
type AvailabilityHandler struct {
	availabilityService services.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(as services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: as}
}

// CreateWindow declares a recurring weekly availability window for a coach.
func (h *AvailabilityHandler) CreateWindow(c *gin.Context) {
	coachID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid coach ID format.", err.Error()))
		return
	}

	var req services.CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	window, err := h.availabilityService.CreateWindow(middleware.GetPrincipal(c), coachID, req)
	if err != nil {
		utils.LogError(err, "CreateWindow: Error from availabilityService.CreateWindow")
		if errors.Is(err, services.ErrWindowAccessDenied) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You can only manage your own availability.", err.Error()))
		} else if errors.Is(err, services.ErrCoachNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Coach not found.", err.Error()))
		} else if errors.Is(err, services.ErrWindowValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create availability window.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, window)
}

// GetCoachWindows lists a coach's declared availability windows.
func (h *AvailabilityHandler) GetCoachWindows(c *gin.Context) {
	coachID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid coach ID format.", err.Error()))
		return
	}

	windows, err := h.availabilityService.GetCoachWindows(coachID)
	if err != nil {
		utils.LogError(err, "GetCoachWindows: Error from availabilityService.GetCoachWindows")
		if errors.Is(err, services.ErrCoachNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Coach not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch availability windows.", "Internal error"))
		}
		return
	}

	if windows == nil {
		windows = []models.AvailabilityWindow{}
	}
	c.JSON(http.StatusOK, windows)
}

// DeleteWindow removes an availability window.
func (h *AvailabilityHandler) DeleteWindow(c *gin.Context) {
	coachID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid coach ID format.", err.Error()))
		return
	}
	windowID, err := strconv.ParseInt(c.Param("windowId"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid window ID format.", err.Error()))
		return
	}

	if err := h.availabilityService.DeleteWindow(middleware.GetPrincipal(c), coachID, windowID); err != nil {
		utils.LogError(err, "DeleteWindow: Error from availabilityService.DeleteWindow")
		if errors.Is(err, services.ErrWindowAccessDenied) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You can only manage your own availability.", err.Error()))
		} else if errors.Is(err, services.ErrWindowNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Availability window not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete availability window.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability window deleted successfully"})
}

// CheckCoachSlot reports whether a proposed slot falls within the coach's
// declared availability for that date.
func (h *AvailabilityHandler) CheckCoachSlot(c *gin.Context) {
	coachID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid coach ID format.", err.Error()))
		return
	}

	date := c.Query("date")
	startTime := c.Query("start_time")
	endTime := c.Query("end_time")
	if date == "" || startTime == "" || endTime == "" {
		utils.RespondValidationFailed(c, "date, start_time and end_time query parameters are required")
		return
	}

	check, err := h.availabilityService.CheckSlot(coachID, date, startTime, endTime)
	if err != nil {
		utils.LogError(err, "CheckCoachSlot: Error from availabilityService.CheckSlot")
		if errors.Is(err, services.ErrWindowValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to check availability.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, check)
}
