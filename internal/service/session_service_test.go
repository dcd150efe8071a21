package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
)

type mockSessionRepo struct {
	sessions   map[string]models.Session
	details    map[string]models.SessionDetail
	roster     []models.RosterRow
	lastFilter models.SessionFilter
	created    *models.Session
}

func (m *mockSessionRepo) List(ctx context.Context, filter models.SessionFilter) ([]models.SessionDetail, error) {
	m.lastFilter = filter
	var out []models.SessionDetail
	for _, d := range m.details {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (*models.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSessionRepo) FindDetailByID(ctx context.Context, id string) (*models.SessionDetail, error) {
	if d, ok := m.details[id]; ok {
		return &d, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = "new-session"
	}
	m.created = session
	return nil
}

func (m *mockSessionRepo) Roster(ctx context.Context, sessionID string) ([]models.RosterRow, error) {
	return m.roster, nil
}

type mockAttendanceRepo struct {
	replaced  map[string][]models.Attendance
	callCount int
}

func (m *mockAttendanceRepo) ReplaceForSession(ctx context.Context, sessionID string, records []models.Attendance) error {
	if m.replaced == nil {
		m.replaced = make(map[string][]models.Attendance)
	}
	m.replaced[sessionID] = records
	m.callCount++
	return nil
}

func sessionFixtures() (*mockSessionRepo, *mockAttendanceRepo, *mockCourseRepo) {
	sessions := &mockSessionRepo{
		sessions: map[string]models.Session{"ses-1": {ID: "ses-1", CourseID: "crs-1", BranchID: "br-1"}},
		details: map[string]models.SessionDetail{"ses-1": {
			SessionID: "ses-1", CourseTitle: "Math Foundations", SubjectName: "Math", BranchName: "Central",
		}},
	}
	courses := &mockCourseRepo{
		courses:   map[string]models.Course{"crs-1": {ID: "crs-1", SubjectID: "sub-1", Title: "Math Foundations", TotalSessions: 12}},
		branchIDs: map[string][]string{"crs-1": {"br-1"}},
	}
	return sessions, &mockAttendanceRepo{}, courses
}

func TestSessionListDayFilterUsesICT(t *testing.T) {
	repo, attendance, courses := sessionFixtures()
	svc := NewSessionService(repo, attendance, courses, nil, nil, nil)

	_, err := svc.List(context.Background(), ListSessionsQuery{Date: "2026-03-01"})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.StartFrom)
	require.NotNil(t, repo.lastFilter.StartTo)
	// 2026-03-01 00:00 ICT is 2026-02-28 17:00 UTC
	require.Equal(t, time.Date(2026, 2, 28, 17, 0, 0, 0, time.UTC), repo.lastFilter.StartFrom.UTC())
	require.Equal(t, time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC), repo.lastFilter.StartTo.UTC())
}

func TestSessionListBadDate(t *testing.T) {
	repo, attendance, courses := sessionFixtures()
	svc := NewSessionService(repo, attendance, courses, nil, nil, nil)

	_, err := svc.List(context.Background(), ListSessionsQuery{Date: "01-03-2026"})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSessionCreateGuards(t *testing.T) {
	repo, attendance, courses := sessionFixtures()
	svc := NewSessionService(repo, attendance, courses, nil, nil, nil)
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), CreateSessionRequest{
		CourseID: "crs-1", BranchID: "br-1", StartAt: start, EndAt: start,
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), CreateSessionRequest{
		CourseID: "missing", BranchID: "br-1", StartAt: start, EndAt: start.Add(2 * time.Hour),
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), CreateSessionRequest{
		CourseID: "crs-1", BranchID: "br-9", StartAt: start, EndAt: start.Add(2 * time.Hour),
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrBranchNotAllowed.Code, appErrors.FromError(err).Code)

	session, err := svc.Create(context.Background(), CreateSessionRequest{
		CourseID: "crs-1", BranchID: "br-1", StartAt: start, EndAt: start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	require.Equal(t, session.ID, repo.created.ID)
}

func TestSessionRoster(t *testing.T) {
	repo, attendance, courses := sessionFixtures()
	status := models.AttendanceStatusPresent
	repo.roster = []models.RosterRow{
		{StudentID: "stu-1", StudentName: "S001 - Alice Tan", Status: &status, Enrolled: true},
		{StudentID: "stu-2", StudentName: "S002 - Ben Koh", Enrolled: true},
	}
	svc := NewSessionService(repo, attendance, courses, nil, nil, nil)

	roster, err := svc.Roster(context.Background(), "ses-1")
	require.NoError(t, err)
	require.Equal(t, "Math Foundations", roster.CourseTitle)
	require.Len(t, roster.Rows, 2)

	_, err = svc.Roster(context.Background(), "missing")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSaveAttendanceValidatesBeforeStore(t *testing.T) {
	repo, attendance, courses := sessionFixtures()
	svc := NewSessionService(repo, attendance, courses, nil, nil, nil)

	err := svc.SaveAttendance(context.Background(), "ses-1", SaveAttendanceRequest{
		Items: []AttendanceItem{{StudentID: "stu-1", Status: "MAYBE"}},
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Zero(t, attendance.callCount)

	err = svc.SaveAttendance(context.Background(), "ses-1", SaveAttendanceRequest{
		Items: []AttendanceItem{{Status: models.AttendanceStatusPresent}},
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	longNote := strings.Repeat("x", 501)
	err = svc.SaveAttendance(context.Background(), "ses-1", SaveAttendanceRequest{
		Items: []AttendanceItem{{StudentID: "stu-1", Status: models.AttendanceStatusLeave, Note: &longNote}},
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Zero(t, attendance.callCount)
}

func TestSaveAttendanceUnknownSession(t *testing.T) {
	repo, attendance, courses := sessionFixtures()
	svc := NewSessionService(repo, attendance, courses, nil, nil, nil)

	err := svc.SaveAttendance(context.Background(), "missing", SaveAttendanceRequest{
		Items: []AttendanceItem{{StudentID: "stu-1", Status: models.AttendanceStatusPresent}},
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	require.Zero(t, attendance.callCount)
}

func TestSaveAttendanceReplacesRoster(t *testing.T) {
	repo, attendance, courses := sessionFixtures()
	svc := NewSessionService(repo, attendance, courses, nil, nil, nil)

	note := "left early"
	err := svc.SaveAttendance(context.Background(), "ses-1", SaveAttendanceRequest{
		Items: []AttendanceItem{
			{StudentID: "stu-1", Status: models.AttendanceStatusPresent},
			{StudentID: "stu-2", Status: models.AttendanceStatusLeave, Note: &note},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, attendance.callCount)
	require.Len(t, attendance.replaced["ses-1"], 2)
	require.Equal(t, models.AttendanceStatusLeave, attendance.replaced["ses-1"][1].Status)

	// empty list clears the roster
	require.NoError(t, svc.SaveAttendance(context.Background(), "ses-1", SaveAttendanceRequest{}))
	require.Equal(t, 2, attendance.callCount)
	require.Empty(t, attendance.replaced["ses-1"])
}
