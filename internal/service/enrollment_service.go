package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/acalderonq/registro-academico/internal/models"
	appErrors "github.com/acalderonq/registro-academico/pkg/errors"
)

type enrollmentRepository interface {
	Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	Unenroll(ctx context.Context, studentID, courseID int64) error
	CancelSemester(ctx context.Context, studentID int64) (int64, error)
}

type studentReader interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
}

// EnrollmentService orchestrates enrollment workflows. The business rules
// themselves run inside the repository transaction; this layer resolves the
// referenced entities and translates outcomes into API errors.
type EnrollmentService struct {
	repo     enrollmentRepository
	students studentReader
	courses  courseReader
	logger   *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, students studentReader, courses courseReader, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, students: students, courses: courses, logger: logger}
}

// Enroll registers a student into a course if every enrollment rule passes.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	enrollment, err := s.repo.Enroll(ctx, studentID, courseID)
	if err != nil {
		var violation *models.RuleViolationError
		if errors.As(err, &violation) {
			s.logger.Info("enrollment rejected",
				zap.Int64("student_id", studentID),
				zap.Int64("course_id", courseID),
				zap.String("rule", string(violation.Rule)),
			)
			if violation.Rule == models.RuleDuplicate {
				return nil, appErrors.Clone(appErrors.ErrConflict, violation.Message)
			}
			return nil, appErrors.Clone(appErrors.ErrRuleViolation, violation.Message)
		}
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student or course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}
	return enrollment, nil
}

// Unenroll removes a single enrollment.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if err := s.repo.Unenroll(ctx, studentID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enrollment")
	}
	return nil
}

// CancelSemester removes every enrollment of a student. Idempotent: a student
// with no enrollments cancels successfully.
func (s *EnrollmentService) CancelSemester(ctx context.Context, studentID int64) (int64, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if err == sql.ErrNoRows {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	removed, err := s.repo.CancelSemester(ctx, studentID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel semester")
	}
	return removed, nil
}
