package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hoop_academy_backend/internal/models"
	"hoop_academy_backend/internal/services"
	"hoop_academy_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CoachHandler holds the coach service.
type CoachHandler struct {
	coachService services.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(cs services.CoachService) *CoachHandler {
	return &CoachHandler{coachService: cs}
}

func respondCoachWriteError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": Error from coachService")
	switch {
	case errors.Is(err, services.ErrCoachNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Coach not found.", err.Error()))
	case errors.Is(err, services.ErrCoachEmailExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A coach with this email already exists.", err.Error()))
	case errors.Is(err, services.ErrCoachDataValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	case errors.Is(err, services.ErrProvisioning):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeProvisioningFailed, "Failed to provision coach account.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process coach.", "Internal error"))
	}
}

// CreateCoach handles the creation of a coach profile without a login.
func (h *CoachHandler) CreateCoach(c *gin.Context) {
	var req services.CreateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	coach, err := h.coachService.CreateCoach(req)
	if err != nil {
		respondCoachWriteError(c, err, "CreateCoach")
		return
	}
	c.JSON(http.StatusCreated, coach)
}

// CreateCoachAccount provisions a coach together with a login credential.
func (h *CoachHandler) CreateCoachAccount(c *gin.Context) {
	var req services.CreateCoachAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	coach, err := h.coachService.CreateCoachAccount(req)
	if err != nil {
		respondCoachWriteError(c, err, "CreateCoachAccount")
		return
	}
	c.JSON(http.StatusCreated, coach)
}

// GetCoaches handles fetching coaches with pagination and filters.
func (h *CoachHandler) GetCoaches(c *gin.Context) {
	var filters models.CoachFilters
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

	coaches, totalCount, err := h.coachService.GetCoaches(filters)
	if err != nil {
		utils.LogError(err, "GetCoaches: Error from coachService.GetCoaches")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch coaches.", "Internal error"))
		return
	}

	if coaches == nil {
		coaches = []models.Coach{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      coaches,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetEligibleCoaches lists coaches whose package assignment permits running
// sessions of the given package type.
func (h *CoachHandler) GetEligibleCoaches(c *gin.Context) {
	packageType := c.Query("package_type")

	coaches, err := h.coachService.GetEligibleCoaches(packageType)
	if err != nil {
		utils.LogError(err, "GetEligibleCoaches: Error from coachService.GetEligibleCoaches")
		if errors.Is(err, services.ErrCoachDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch eligible coaches.", "Internal error"))
		}
		return
	}

	if coaches == nil {
		coaches = []models.Coach{}
	}
	c.JSON(http.StatusOK, coaches)
}

// GetCoachByID handles fetching a single coach by ID.
func (h *CoachHandler) GetCoachByID(c *gin.Context) {
	coachID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid coach ID format.", err.Error()))
		return
	}

	coach, err := h.coachService.GetCoachByID(coachID)
	if err != nil {
		utils.LogError(err, "GetCoachByID: Error from coachService.GetCoachByID")
		if errors.Is(err, services.ErrCoachNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Coach not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch coach.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, coach)
}

// UpdateCoach handles updating a coach.
func (h *CoachHandler) UpdateCoach(c *gin.Context) {
	coachID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid coach ID format.", err.Error()))
		return
	}

	var req services.UpdateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	coach, err := h.coachService.UpdateCoach(coachID, req)
	if err != nil {
		respondCoachWriteError(c, err, "UpdateCoach")
		return
	}
	c.JSON(http.StatusOK, coach)
}

// DeleteCoach handles deleting a coach.
func (h *CoachHandler) DeleteCoach(c *gin.Context) {
	coachID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid coach ID format.", err.Error()))
		return
	}

	if err := h.coachService.DeleteCoach(coachID); err != nil {
		utils.LogError(err, "DeleteCoach: Error from coachService.DeleteCoach")
		if errors.Is(err, services.ErrCoachNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Coach not found.", err.Error()))
		} else if errors.Is(err, services.ErrCoachInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Coach is referenced by sessions or students and cannot be deleted.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete coach.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coach deleted successfully"})
}
