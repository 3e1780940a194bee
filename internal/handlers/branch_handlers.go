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

// BranchHandler holds the branch service.
type BranchHandler struct {
	branchService services.BranchService
}

// NewBranchHandler creates a new BranchHandler.
func NewBranchHandler(bs services.BranchService) *BranchHandler {
	return &BranchHandler{branchService: bs}
}

// CreateBranch handles the creation of a new branch.
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req services.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	branch, err := h.branchService.CreateBranch(req)
	if err != nil {
		utils.LogError(err, "CreateBranch: Error from branchService.CreateBranch")
		if errors.Is(err, services.ErrBranchDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create branch.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, branch)
}

// GetBranches handles fetching all branches with pagination and search.
func (h *BranchHandler) GetBranches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	searchTerm := c.Query("search")

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	var pSearchTerm *string
	if searchTerm != "" {
		pSearchTerm = &searchTerm
	}

	branches, totalCount, err := h.branchService.GetBranches(pSearchTerm, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetBranches: Error from branchService.GetBranches")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch branches.", "Internal error"))
		return
	}

	if branches == nil {
		branches = []models.Branch{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      branches,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetBranchByID handles fetching a single branch by ID.
func (h *BranchHandler) GetBranchByID(c *gin.Context) {
	branchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid branch ID format.", err.Error()))
		return
	}

	branch, err := h.branchService.GetBranchByID(branchID)
	if err != nil {
		utils.LogError(err, "GetBranchByID: Error from branchService.GetBranchByID")
		if errors.Is(err, services.ErrBranchNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Branch not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch branch.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, branch)
}

// UpdateBranch handles updating a branch.
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	branchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid branch ID format.", err.Error()))
		return
	}

	var req services.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	branch, err := h.branchService.UpdateBranch(branchID, req)
	if err != nil {
		utils.LogError(err, "UpdateBranch: Error from branchService.UpdateBranch")
		if errors.Is(err, services.ErrBranchNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Branch not found.", err.Error()))
		} else if errors.Is(err, services.ErrBranchDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update branch.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, branch)
}

// DeleteBranch handles deleting a branch.
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	branchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid branch ID format.", err.Error()))
		return
	}

	if err := h.branchService.DeleteBranch(branchID); err != nil {
		utils.LogError(err, "DeleteBranch: Error from branchService.DeleteBranch")
		if errors.Is(err, services.ErrBranchNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Branch not found.", err.Error()))
		} else if errors.Is(err, services.ErrBranchInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Branch has scheduled sessions and cannot be deleted.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete branch.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted successfully"})
}
