package services

import (
	"time"

	"hoop_academy_backend/internal/models"
	"hoop_academy_backend/internal/repositories"
)

// Function-field fakes for repository interfaces. Unset functions fall back
// to ErrNotFound or empty results so each test only wires what it needs.

var (
	_ repositories.AuthRepository         = (*fakeAuthRepo)(nil)
	_ repositories.CoachRepository        = (*fakeCoachRepo)(nil)
	_ repositories.BranchRepository       = (*fakeBranchRepo)(nil)
	_ repositories.StudentRepository      = (*fakeStudentRepo)(nil)
	_ repositories.SessionRepository      = (*fakeSessionRepo)(nil)
	_ repositories.AttendanceRepository   = (*fakeAttendanceRepo)(nil)
	_ repositories.AvailabilityRepository = (*fakeAvailabilityRepo)(nil)
)

type fakeAuthRepo struct {
	createUserFn      func(user *models.User, hashedPassword string) (int64, error)
	findUserByEmailFn func(email string) (*models.User, string, error)
	findUserByIDFn    func(userID int64) (*models.User, error)
	updatePasswordFn  func(userID int64, hashedPassword string) error
	deleteUserFn      func(userID int64) error

	deletedUserIDs []int64
}

func (f *fakeAuthRepo) CreateUser(_ repositories.SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	if f.createUserFn != nil {
		return f.createUserFn(user, hashedPassword)
	}
	return 0, repositories.ErrDatabaseError
}

func (f *fakeAuthRepo) FindUserByEmail(email string) (*models.User, string, error) {
	if f.findUserByEmailFn != nil {
		return f.findUserByEmailFn(email)
	}
	return nil, "", repositories.ErrNotFound
}

func (f *fakeAuthRepo) FindUserByID(userID int64) (*models.User, error) {
	if f.findUserByIDFn != nil {
		return f.findUserByIDFn(userID)
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAuthRepo) UpdatePassword(_ repositories.SQLExecutor, userID int64, hashedPassword string) error {
	if f.updatePasswordFn != nil {
		return f.updatePasswordFn(userID, hashedPassword)
	}
	return nil
}

func (f *fakeAuthRepo) DeleteUser(_ repositories.SQLExecutor, userID int64) error {
	f.deletedUserIDs = append(f.deletedUserIDs, userID)
	if f.deleteUserFn != nil {
		return f.deleteUserFn(userID)
	}
	return nil
}

type fakeCoachRepo struct {
	createCoachFn      func(coach *models.Coach) (*models.Coach, error)
	getCoachByIDFn     func(id int64) (*models.Coach, error)
	getCoachByUserIDFn func(userID int64) (*models.Coach, error)
	getCoachByEmailFn  func(email string) (*models.Coach, error)
	getCoachesFn       func(filters models.CoachFilters) ([]models.Coach, int, error)
	updateCoachFn      func(coach *models.Coach) (*models.Coach, error)
	deleteCoachFn      func(id int64) error
	linkUserFn         func(coachID, userID int64) error
	updateRoleFn       func(coachID int64, role string) error
	countAdminsFn      func() (int, error)

	linkedPairs   [][2]int64
	repairedRoles map[int64]string
}

func (f *fakeCoachRepo) CreateCoach(_ repositories.SQLExecutor, coach *models.Coach) (*models.Coach, error) {
	if f.createCoachFn != nil {
		return f.createCoachFn(coach)
	}
	return nil, repositories.ErrDatabaseError
}

func (f *fakeCoachRepo) GetCoachByID(id int64) (*models.Coach, error) {
	if f.getCoachByIDFn != nil {
		return f.getCoachByIDFn(id)
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCoachRepo) GetCoachByUserID(userID int64) (*models.Coach, error) {
	if f.getCoachByUserIDFn != nil {
		return f.getCoachByUserIDFn(userID)
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCoachRepo) GetCoachByEmail(email string) (*models.Coach, error) {
	if f.getCoachByEmailFn != nil {
		return f.getCoachByEmailFn(email)
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCoachRepo) GetCoaches(filters models.CoachFilters) ([]models.Coach, int, error) {
	if f.getCoachesFn != nil {
		return f.getCoachesFn(filters)
	}
	return nil, 0, nil
}

func (f *fakeCoachRepo) UpdateCoach(_ repositories.SQLExecutor, coach *models.Coach) (*models.Coach, error) {
	if f.updateCoachFn != nil {
		return f.updateCoachFn(coach)
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCoachRepo) DeleteCoach(_ repositories.SQLExecutor, id int64) error {
	if f.deleteCoachFn != nil {
		return f.deleteCoachFn(id)
	}
	return nil
}

func (f *fakeCoachRepo) LinkUser(_ repositories.SQLExecutor, coachID, userID int64) error {
	f.linkedPairs = append(f.linkedPairs, [2]int64{coachID, userID})
	if f.linkUserFn != nil {
		return f.linkUserFn(coachID, userID)
	}
	return nil
}

func (f *fakeCoachRepo) UpdateRole(_ repositories.SQLExecutor, coachID int64, role string) error {
	if f.repairedRoles == nil {
		f.repairedRoles = make(map[int64]string)
	}
	f.repairedRoles[coachID] = role
	if f.updateRoleFn != nil {
		return f.updateRoleFn(coachID, role)
	}
	return nil
}

func (f *fakeCoachRepo) CountAdmins() (int, error) {
	if f.countAdminsFn != nil {
		return f.countAdminsFn()
	}
	return 0, nil
}

type fakeBranchRepo struct {
	getBranchByIDFn func(id int64) (*models.Branch, error)
}

func (f *fakeBranchRepo) CreateBranch(_ repositories.SQLExecutor, branch *models.Branch) (*models.Branch, error) {
	return branch, nil
}

func (f *fakeBranchRepo) GetBranchByID(id int64) (*models.Branch, error) {
	if f.getBranchByIDFn != nil {
		return f.getBranchByIDFn(id)
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeBranchRepo) GetBranches(search *string, page, pageSize int) ([]models.Branch, int, error) {
	return nil, 0, nil
}

func (f *fakeBranchRepo) UpdateBranch(_ repositories.SQLExecutor, branch *models.Branch) (*models.Branch, error) {
	return branch, nil
}

func (f *fakeBranchRepo) DeleteBranch(_ repositories.SQLExecutor, id int64) error {
	return nil
}

type fakeStudentRepo struct {
	getStudentByIDFn   func(id int64) (*models.Student, error)
	getStudentsByIDsFn func(ids []int64) ([]models.Student, error)
	getStudentsFn      func(filters models.StudentFilters) ([]models.Student, int, error)

	adjustments []struct {
		StudentID int64
		Delta     int
	}
}

func (f *fakeStudentRepo) CreateStudent(_ repositories.SQLExecutor, student *models.Student) (*models.Student, error) {
	return student, nil
}

func (f *fakeStudentRepo) GetStudentByID(id int64) (*models.Student, error) {
	if f.getStudentByIDFn != nil {
		return f.getStudentByIDFn(id)
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeStudentRepo) GetStudentsByIDs(ids []int64) ([]models.Student, error) {
	if f.getStudentsByIDsFn != nil {
		return f.getStudentsByIDsFn(ids)
	}
	return nil, nil
}

func (f *fakeStudentRepo) GetStudents(filters models.StudentFilters) ([]models.Student, int, error) {
	if f.getStudentsFn != nil {
		return f.getStudentsFn(filters)
	}
	return nil, 0, nil
}

func (f *fakeStudentRepo) UpdateStudent(_ repositories.SQLExecutor, student *models.Student) (*models.Student, error) {
	return student, nil
}

func (f *fakeStudentRepo) DeleteStudent(_ repositories.SQLExecutor, id int64) error {
	return nil
}

func (f *fakeStudentRepo) AdjustRemainingSessions(_ repositories.SQLExecutor, studentID int64, delta int) error {
	f.adjustments = append(f.adjustments, struct {
		StudentID int64
		Delta     int
	}{studentID, delta})
	return nil
}

type fakeSessionRepo struct {
	createSessionFn       func(session *models.TrainingSession) (*models.TrainingSession, error)
	getSessionByIDFn      func(id int64) (*models.TrainingSession, error)
	getSessionsFn         func(filters models.SessionFilters) ([]models.TrainingSession, int, error)
	updateSessionFn       func(session *models.TrainingSession) (*models.TrainingSession, error)
	updateSessionStatusFn func(id int64, status string) error
	getCoachDaySlotsFn    func(coachID int64, date string) ([]models.TrainingSession, error)
	getParticipantIDsFn   func(sessionID int64) ([]int64, error)
	getParticipantsFn     func(sessionID int64) ([]models.SessionParticipant, error)

	addedParticipants   [][2]int64
	removedParticipants [][2]int64
}

func (f *fakeSessionRepo) CreateSession(_ repositories.SQLExecutor, session *models.TrainingSession) (*models.TrainingSession, error) {
	if f.createSessionFn != nil {
		return f.createSessionFn(session)
	}
	return nil, repositories.ErrDatabaseError
}

func (f *fakeSessionRepo) GetSessionByID(id int64) (*models.TrainingSession, error) {
	if f.getSessionByIDFn != nil {
		return f.getSessionByIDFn(id)
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeSessionRepo) GetSessions(filters models.SessionFilters) ([]models.TrainingSession, int, error) {
	if f.getSessionsFn != nil {
		return f.getSessionsFn(filters)
	}
	return nil, 0, nil
}

func (f *fakeSessionRepo) UpdateSession(_ repositories.SQLExecutor, session *models.TrainingSession) (*models.TrainingSession, error) {
	if f.updateSessionFn != nil {
		return f.updateSessionFn(session)
	}
	return session, nil
}

func (f *fakeSessionRepo) UpdateSessionStatus(_ repositories.SQLExecutor, id int64, status string) error {
	if f.updateSessionStatusFn != nil {
		return f.updateSessionStatusFn(id, status)
	}
	return nil
}

func (f *fakeSessionRepo) DeleteSession(_ repositories.SQLExecutor, id int64) error {
	return nil
}

func (f *fakeSessionRepo) GetCoachDaySlots(coachID int64, date string) ([]models.TrainingSession, error) {
	if f.getCoachDaySlotsFn != nil {
		return f.getCoachDaySlotsFn(coachID, date)
	}
	return nil, nil
}

func (f *fakeSessionRepo) GetParticipantIDs(_ repositories.SQLExecutor, sessionID int64) ([]int64, error) {
	if f.getParticipantIDsFn != nil {
		return f.getParticipantIDsFn(sessionID)
	}
	return nil, nil
}

func (f *fakeSessionRepo) GetParticipants(sessionID int64) ([]models.SessionParticipant, error) {
	if f.getParticipantsFn != nil {
		return f.getParticipantsFn(sessionID)
	}
	return nil, nil
}

func (f *fakeSessionRepo) AddParticipant(_ repositories.SQLExecutor, sessionID, studentID int64) error {
	f.addedParticipants = append(f.addedParticipants, [2]int64{sessionID, studentID})
	return nil
}

func (f *fakeSessionRepo) RemoveParticipant(_ repositories.SQLExecutor, sessionID, studentID int64) error {
	f.removedParticipants = append(f.removedParticipants, [2]int64{sessionID, studentID})
	return nil
}

type fakeAttendanceRepo struct {
	getRecordByIDFn      func(id int64) (*models.AttendanceRecord, error)
	getRecordForUpdateFn func(id int64) (*models.AttendanceRecord, error)
	getBySessionFn       func(sessionID int64) ([]models.AttendanceRecord, error)
	getByStudentFn       func(studentID int64, dateFrom, dateTo *string) ([]models.AttendanceRecord, error)
	updateStatusFn       func(id int64, status string, markedAt *time.Time) (*models.AttendanceRecord, error)

	createdRecords [][2]int64
	deletedRecords [][2]int64
}

func (f *fakeAttendanceRepo) CreateRecord(_ repositories.SQLExecutor, sessionID, studentID int64) (*models.AttendanceRecord, error) {
	f.createdRecords = append(f.createdRecords, [2]int64{sessionID, studentID})
	return &models.AttendanceRecord{
		SessionID: sessionID,
		StudentID: studentID,
		Status:    string(models.AttendanceStatusPending),
	}, nil
}

func (f *fakeAttendanceRepo) DeleteBySessionStudent(_ repositories.SQLExecutor, sessionID, studentID int64) error {
	f.deletedRecords = append(f.deletedRecords, [2]int64{sessionID, studentID})
	return nil
}

func (f *fakeAttendanceRepo) GetRecordByID(id int64) (*models.AttendanceRecord, error) {
	if f.getRecordByIDFn != nil {
		return f.getRecordByIDFn(id)
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAttendanceRepo) GetRecordForUpdate(_ repositories.SQLExecutor, id int64) (*models.AttendanceRecord, error) {
	if f.getRecordForUpdateFn != nil {
		return f.getRecordForUpdateFn(id)
	}
	return f.GetRecordByID(id)
}

func (f *fakeAttendanceRepo) GetBySession(sessionID int64) ([]models.AttendanceRecord, error) {
	if f.getBySessionFn != nil {
		return f.getBySessionFn(sessionID)
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetByStudent(studentID int64, dateFrom, dateTo *string) ([]models.AttendanceRecord, error) {
	if f.getByStudentFn != nil {
		return f.getByStudentFn(studentID, dateFrom, dateTo)
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) UpdateStatus(_ repositories.SQLExecutor, id int64, status string, markedAt *time.Time) (*models.AttendanceRecord, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(id, status, markedAt)
	}
	return &models.AttendanceRecord{ID: id, Status: status, MarkedAt: markedAt}, nil
}

type fakeAvailabilityRepo struct {
	createWindowFn      func(window *models.AvailabilityWindow) (*models.AvailabilityWindow, error)
	getWindowByIDFn     func(id int64) (*models.AvailabilityWindow, error)
	getWindowsByCoachFn func(coachID int64) ([]models.AvailabilityWindow, error)
	deleteWindowFn      func(id int64) error

	deletedWindowIDs []int64
}

func (f *fakeAvailabilityRepo) CreateWindow(_ repositories.SQLExecutor, window *models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	if f.createWindowFn != nil {
		return f.createWindowFn(window)
	}
	created := *window
	created.ID = 1
	return &created, nil
}

func (f *fakeAvailabilityRepo) GetWindowByID(id int64) (*models.AvailabilityWindow, error) {
	if f.getWindowByIDFn != nil {
		return f.getWindowByIDFn(id)
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAvailabilityRepo) GetWindowsByCoach(coachID int64) ([]models.AvailabilityWindow, error) {
	if f.getWindowsByCoachFn != nil {
		return f.getWindowsByCoachFn(coachID)
	}
	return nil, nil
}

func (f *fakeAvailabilityRepo) DeleteWindow(_ repositories.SQLExecutor, id int64) error {
	f.deletedWindowIDs = append(f.deletedWindowIDs, id)
	if f.deleteWindowFn != nil {
		return f.deleteWindowFn(id)
	}
	return nil
}
