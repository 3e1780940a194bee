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

// SessionHandler holds the session service.
type SessionHandler struct {
	sessionService services.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(ss services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: ss}
}

func respondSessionWriteError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": Error from sessionService")
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Training session not found.", err.Error()))
	case errors.Is(err, services.ErrSessionConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Coach is already booked in an overlapping time window.", err.Error()))
	case errors.Is(err, services.ErrSessionDateFormat),
		errors.Is(err, services.ErrSessionValidation),
		errors.Is(err, services.ErrCoachNotEligible):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	case errors.Is(err, services.ErrBranchForSessionMissing),
		errors.Is(err, services.ErrCoachForSessionMissing):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Referenced record not found: "+err.Error(), err.Error()))
	case errors.Is(err, services.ErrSessionStatusUpdate):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Invalid status transition: "+err.Error(), err.Error()))
	case errors.Is(err, services.ErrSessionAccessDenied):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Session is not visible to this coach.", err.Error()))
	case errors.Is(err, services.ErrRosterMismatch):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Roster validation failed: "+err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process session.", "Internal error"))
	}
}

// CreateSession schedules a new training session.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	session, err := h.sessionService.CreateSession(req)
	if err != nil {
		respondSessionWriteError(c, err, "CreateSession")
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSessions lists sessions. Coaches are scoped to their own schedule.
func (h *SessionHandler) GetSessions(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", "missing principal"))
		return
	}

	var filters models.SessionFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}

	sessions, totalCount, err := h.sessionService.GetSessions(principal, filters)
	if err != nil {
		utils.LogError(err, "GetSessions: Error from sessionService.GetSessions")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch sessions.", "Internal error"))
		return
	}

	if sessions == nil {
		sessions = []models.TrainingSession{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      sessions,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetSessionByID fetches a single session with its roster.
func (h *SessionHandler) GetSessionByID(c *gin.Context) {
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

	session, err := h.sessionService.GetSessionByID(principal, sessionID)
	if err != nil {
		respondSessionWriteError(c, err, "GetSessionByID")
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateSession edits a scheduled session.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid session ID format.", err.Error()))
		return
	}

	var req services.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	session, err := h.sessionService.UpdateSession(sessionID, req)
	if err != nil {
		respondSessionWriteError(c, err, "UpdateSession")
		return
	}
	c.JSON(http.StatusOK, session)
}

// CancelSession marks a session cancelled, freeing its time slot.
func (h *SessionHandler) CancelSession(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid session ID format.", err.Error()))
		return
	}

	session, err := h.sessionService.CancelSession(sessionID)
	if err != nil {
		respondSessionWriteError(c, err, "CancelSession")
		return
	}
	c.JSON(http.StatusOK, session)
}

// CompleteSession marks a session completed.
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid session ID format.", err.Error()))
		return
	}

	session, err := h.sessionService.CompleteSession(sessionID)
	if err != nil {
		respondSessionWriteError(c, err, "CompleteSession")
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession removes a session and its roster entirely.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid session ID format.", err.Error()))
		return
	}

	if err := h.sessionService.DeleteSession(sessionID); err != nil {
		respondSessionWriteError(c, err, "DeleteSession")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

// CheckConflict reports whether a proposed slot collides with the coach's
// existing schedule, without creating anything.
func (h *SessionHandler) CheckConflict(c *gin.Context) {
	var req services.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	conflict, err := h.sessionService.CheckConflict(req)
	if err != nil {
		respondSessionWriteError(c, err, "CheckConflict")
		return
	}

	if conflict == nil {
		c.JSON(http.StatusOK, gin.H{"has_conflict": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_conflict": true, "conflict": conflict})
}

// SetParticipantsRequest carries the desired participant set for a session.
type SetParticipantsRequest struct {
	StudentIDs []int64 `json:"student_ids" binding:"required"`
}

// SetParticipants replaces a session's roster with the given student set.
func (h *SessionHandler) SetParticipants(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid session ID format.", err.Error()))
		return
	}

	var req SetParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	participants, err := h.sessionService.SetParticipants(sessionID, req.StudentIDs)
	if err != nil {
		respondSessionWriteError(c, err, "SetParticipants")
		return
	}

	if participants == nil {
		participants = []models.SessionParticipant{}
	}
	c.JSON(http.StatusOK, participants)
}

// GetParticipants lists a session's roster.
func (h *SessionHandler) GetParticipants(c *gin.Context) {
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

	participants, err := h.sessionService.GetParticipants(principal, sessionID)
	if err != nil {
		respondSessionWriteError(c, err, "GetParticipants")
		return
	}

	if participants == nil {
		participants = []models.SessionParticipant{}
	}
	c.JSON(http.StatusOK, participants)
}
