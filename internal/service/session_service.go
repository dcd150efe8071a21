package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
)

// Session timestamps are stored in UTC; the calendar-day filter is anchored
// to Indochina Time (UTC+7), where the branches operate.
var sessionDayZone = time.FixedZone("ICT", 7*3600)

const attendanceNoteMaxLen = 500

type sessionRepository interface {
	List(ctx context.Context, filter models.SessionFilter) ([]models.SessionDetail, error)
	FindByID(ctx context.Context, id string) (*models.Session, error)
	FindDetailByID(ctx context.Context, id string) (*models.SessionDetail, error)
	Create(ctx context.Context, session *models.Session) error
	Roster(ctx context.Context, sessionID string) ([]models.RosterRow, error)
}

type attendanceRepository interface {
	ReplaceForSession(ctx context.Context, sessionID string, records []models.Attendance) error
}

// CreateSessionRequest schedules one occurrence of a course at a branch.
type CreateSessionRequest struct {
	CourseID string    `json:"courseId" validate:"required"`
	BranchID string    `json:"branchId" validate:"required"`
	StartAt  time.Time `json:"startAt" validate:"required"`
	EndAt    time.Time `json:"endAt" validate:"required"`
	Teacher  *string   `json:"teacher" validate:"omitempty,max=200"`
}

// AttendanceItem is one roster entry in a save-attendance payload.
type AttendanceItem struct {
	StudentID string                  `json:"studentId"`
	Status    models.AttendanceStatus `json:"status"`
	Note      *string                 `json:"note"`
}

// SaveAttendanceRequest replaces the whole roster of one session.
type SaveAttendanceRequest struct {
	Items []AttendanceItem `json:"items"`
}

// ListSessionsQuery carries the raw query parameters of the session listing.
type ListSessionsQuery struct {
	Date      string
	BranchID  string
	SubjectID string
}

// SessionService handles session scheduling and attendance capture.
type SessionService struct {
	repo       sessionRepository
	attendance attendanceRepository
	courses    courseRepository
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewSessionService constructs the session service.
func NewSessionService(repo sessionRepository, attendance attendanceRepository, courses courseRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, attendance: attendance, courses: courses, cache: cache, validator: validate, logger: logger}
}

// List returns sessions, optionally scoped to a branch, a subject and a
// single ICT calendar day.
func (s *SessionService) List(ctx context.Context, query ListSessionsQuery) ([]models.SessionDetail, error) {
	filter := models.SessionFilter{BranchID: query.BranchID, SubjectID: query.SubjectID}

	if query.Date != "" {
		from, to, err := dayRange(query.Date)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "date must be formatted as YYYY-MM-DD")
		}
		filter.StartFrom = &from
		filter.StartTo = &to
	}

	sessions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}
	return sessions, nil
}

// Create schedules a session. The course must exist and must be offered at
// the requested branch, and the session must end after it starts.
func (s *SessionService) Create(ctx context.Context, req CreateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	if !req.EndAt.After(req.StartAt) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endAt must be after startAt")
	}

	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	branchIDs, err := s.courses.BranchIDs(ctx, req.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course branches")
	}
	if !containsString(branchIDs, req.BranchID) {
		return nil, appErrors.Clone(appErrors.ErrBranchNotAllowed, "branch does not offer this course")
	}

	session := &models.Session{
		CourseID: req.CourseID,
		BranchID: req.BranchID,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
		Teacher:  req.Teacher,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	return session, nil
}

// Roster returns the session header joined with every enrolled student and
// that student's attendance mark, if one was saved.
func (s *SessionService) Roster(ctx context.Context, id string) (*models.SessionRoster, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	rows, err := s.repo.Roster(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session roster")
	}

	return &models.SessionRoster{
		SessionID:   detail.SessionID,
		CourseTitle: detail.CourseTitle,
		SubjectName: detail.SubjectName,
		BranchName:  detail.BranchName,
		StartAt:     detail.StartAt,
		EndAt:       detail.EndAt,
		Teacher:     detail.Teacher,
		Rows:        rows,
	}, nil
}

// SaveAttendance replaces the session's whole roster in one transaction.
// An empty items list clears the roster. The payload is validated in full
// before any store access, so a bad item never leaves a partial write.
func (s *SessionService) SaveAttendance(ctx context.Context, sessionID string, req SaveAttendanceRequest) error {
	for i, item := range req.Items {
		if item.StudentID == "" {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("items[%d]: studentId is required", i))
		}
		if !item.Status.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("items[%d]: status must be PRESENT, ABSENT or LEAVE", i))
		}
		if item.Note != nil && len(*item.Note) > attendanceNoteMaxLen {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("items[%d]: note exceeds %d characters", i, attendanceNoteMaxLen))
		}
	}

	if _, err := s.repo.FindByID(ctx, sessionID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	records := make([]models.Attendance, 0, len(req.Items))
	for _, item := range req.Items {
		records = append(records, models.Attendance{
			SessionID: sessionID,
			StudentID: item.StudentID,
			Status:    item.Status,
			Note:      item.Note,
		})
	}

	if err := s.attendance.ReplaceForSession(ctx, sessionID, records); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, "report:enrollments:*")
	}
	return nil
}

// dayRange resolves a YYYY-MM-DD value to the half-open UTC interval
// covering that calendar day in ICT.
func dayRange(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, sessionDayZone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from := day.UTC()
	to := day.AddDate(0, 0, 1).UTC()
	return from, to, nil
}
