package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hoop_academy_backend/internal/models"
	"hoop_academy_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubSessionService lets each test pin the error or value a handler sees.
type stubSessionService struct {
	createErr   error
	conflict    *services.ConflictInfo
	conflictErr error
}

func (s *stubSessionService) CreateSession(req services.CreateSessionRequest) (*models.TrainingSession, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.TrainingSession{ID: 1, Status: "scheduled"}, nil
}

func (s *stubSessionService) GetSessionByID(principal *models.Principal, sessionID int64) (*models.TrainingSession, error) {
	return nil, services.ErrSessionNotFound
}

func (s *stubSessionService) GetSessions(principal *models.Principal, filters models.SessionFilters) ([]models.TrainingSession, int, error) {
	return nil, 0, nil
}

func (s *stubSessionService) UpdateSession(sessionID int64, req services.UpdateSessionRequest) (*models.TrainingSession, error) {
	return nil, services.ErrSessionNotFound
}

func (s *stubSessionService) CancelSession(sessionID int64) (*models.TrainingSession, error) {
	return nil, services.ErrSessionNotFound
}

func (s *stubSessionService) CompleteSession(sessionID int64) (*models.TrainingSession, error) {
	return nil, services.ErrSessionNotFound
}

func (s *stubSessionService) DeleteSession(sessionID int64) error {
	return services.ErrSessionNotFound
}

func (s *stubSessionService) CheckConflict(req services.ConflictCheckRequest) (*services.ConflictInfo, error) {
	return s.conflict, s.conflictErr
}

func (s *stubSessionService) SetParticipants(sessionID int64, studentIDs []int64) ([]models.SessionParticipant, error) {
	return nil, services.ErrSessionNotFound
}

func (s *stubSessionService) GetParticipants(principal *models.Principal, sessionID int64) ([]models.SessionParticipant, error) {
	return nil, services.ErrSessionNotFound
}

func newSessionTestRouter(svc services.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewSessionHandler(svc)
	engine.POST("/sessions", handler.CreateSession)
	engine.POST("/sessions/check-conflict", handler.CheckConflict)
	return engine
}

const validSessionPayload = `{
	"session_date": "2026-09-01",
	"start_time": "10:00",
	"end_time": "11:00",
	"branch_id": 1,
	"coach_id": 7
}`

func TestCreateSessionConflictMapsTo409(t *testing.T) {
	engine := newSessionTestRouter(&stubSessionService{createErr: services.ErrSessionConflict})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(validSessionPayload))
	req.Header.Set("Content-Type", "application/json")

	engine.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "CONFLICT")
}

func TestCreateSessionValidationMapsTo400(t *testing.T) {
	engine := newSessionTestRouter(&stubSessionService{createErr: services.ErrSessionDateFormat})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(validSessionPayload))
	req.Header.Set("Content-Type", "application/json")

	engine.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckConflictResponseShape(t *testing.T) {
	t.Run("no conflict", func(t *testing.T) {
		engine := newSessionTestRouter(&stubSessionService{})

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sessions/check-conflict", strings.NewReader(`{
			"coach_id": 7, "session_date": "2026-09-01", "start_time": "10:00", "end_time": "11:00"
		}`))
		req.Header.Set("Content-Type", "application/json")

		engine.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"has_conflict":false`)
	})

	t.Run("conflict names the clashing session", func(t *testing.T) {
		engine := newSessionTestRouter(&stubSessionService{
			conflict: &services.ConflictInfo{SessionID: 3, StartTime: "10:00", EndTime: "11:00"},
		})

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sessions/check-conflict", strings.NewReader(`{
			"coach_id": 7, "session_date": "2026-09-01", "start_time": "10:30", "end_time": "11:30"
		}`))
		req.Header.Set("Content-Type", "application/json")

		engine.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"has_conflict":true`)
		assert.Contains(t, recorder.Body.String(), `"session_id":3`)
	})
}
