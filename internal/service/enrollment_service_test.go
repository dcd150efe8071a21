package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
)

type mockCourseRepo struct {
	courses   map[string]models.Course
	branchIDs map[string][]string
	created   *models.Course
}

func (m *mockCourseRepo) List(ctx context.Context) ([]models.CourseDetail, error) {
	return nil, nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) BranchIDs(ctx context.Context, courseID string) ([]string, error) {
	return m.branchIDs[courseID], nil
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course, branchIDs []string) error {
	if course.ID == "" {
		course.ID = "new-course"
	}
	if m.courses == nil {
		m.courses = make(map[string]models.Course)
	}
	m.courses[course.ID] = *course
	if m.branchIDs == nil {
		m.branchIDs = make(map[string][]string)
	}
	m.branchIDs[course.ID] = branchIDs
	m.created = course
	return nil
}

type mockEnrollmentRepo struct {
	existing map[string]bool
	details  map[string]models.EnrollmentDetail
	created  *models.Enrollment
	rows     []models.EnrollmentReportRow
}

func (m *mockEnrollmentRepo) ExistsForStudentCourse(ctx context.Context, studentID, courseID string) (bool, error) {
	return m.existing[studentID+"|"+courseID], nil
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = "new-enroll"
	}
	m.created = enrollment
	return nil
}

func (m *mockEnrollmentRepo) FindDetailByID(ctx context.Context, id string) (*models.EnrollmentDetail, error) {
	if d, ok := m.details[id]; ok {
		return &d, nil
	}
	if m.created != nil && m.created.ID == id {
		return &models.EnrollmentDetail{Enrollment: *m.created}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEnrollmentRepo) ReportRows(ctx context.Context, filter models.ReportFilter) ([]models.EnrollmentReportRow, error) {
	return m.rows, nil
}

func enrollmentFixtures() (*mockEnrollmentRepo, *mockCourseRepo) {
	courses := &mockCourseRepo{
		courses:   map[string]models.Course{"crs-1": {ID: "crs-1", SubjectID: "sub-1", Title: "Math Foundations", TotalSessions: 12}},
		branchIDs: map[string][]string{"crs-1": {"br-1", "br-2"}},
	}
	return &mockEnrollmentRepo{existing: map[string]bool{}}, courses
}

func TestEnrollmentCreateCourseNotFound(t *testing.T) {
	repo, courses := enrollmentFixtures()
	svc := NewEnrollmentService(repo, courses, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID: "stu-1", CourseID: "missing", BranchID: "br-1", SessionsPurchased: 10,
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentCreateBranchNotAllowed(t *testing.T) {
	repo, courses := enrollmentFixtures()
	svc := NewEnrollmentService(repo, courses, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID: "stu-1", CourseID: "crs-1", BranchID: "br-9", SessionsPurchased: 10,
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrBranchNotAllowed.Code, appErrors.FromError(err).Code)
	require.Nil(t, repo.created)
}

func TestEnrollmentCreateDuplicate(t *testing.T) {
	repo, courses := enrollmentFixtures()
	repo.existing["stu-1|crs-1"] = true
	svc := NewEnrollmentService(repo, courses, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID: "stu-1", CourseID: "crs-1", BranchID: "br-1", SessionsPurchased: 10,
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrDuplicateEnrollment.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentCreateSuccess(t *testing.T) {
	repo, courses := enrollmentFixtures()
	svc := NewEnrollmentService(repo, courses, nil, nil, nil)

	detail, err := svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID: "stu-1", CourseID: "crs-1", BranchID: "br-2", SessionsPurchased: 12,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	require.Equal(t, models.EnrollmentStatusActive, repo.created.Status)
	require.Zero(t, repo.created.SessionsAttended)
	require.Equal(t, 12, detail.SessionsPurchased)
}

func TestEnrollmentCreateValidation(t *testing.T) {
	repo, courses := enrollmentFixtures()
	svc := NewEnrollmentService(repo, courses, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID: "stu-1", CourseID: "crs-1", BranchID: "br-1", SessionsPurchased: 0,
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
