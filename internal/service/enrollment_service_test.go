package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acalderonq/registro-academico/internal/models"
	appErrors "github.com/acalderonq/registro-academico/pkg/errors"
)

type mockEnrollmentRepo struct {
	enrollErr   error
	enrolled    []models.Enrollment
	unenrollErr error
	cancelled   int64
}

func (m *mockEnrollmentRepo) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if m.enrollErr != nil {
		return nil, m.enrollErr
	}
	enrollment := models.Enrollment{ID: "generated", StudentID: studentID, CourseID: courseID}
	m.enrolled = append(m.enrolled, enrollment)
	return &enrollment, nil
}

func (m *mockEnrollmentRepo) Unenroll(ctx context.Context, studentID, courseID int64) error {
	return m.unenrollErr
}

func (m *mockEnrollmentRepo) CancelSemester(ctx context.Context, studentID int64) (int64, error) {
	return m.cancelled, nil
}

type mockStudentReader struct {
	students map[int64]models.Student
}

func (m *mockStudentReader) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

type mockCourseReader struct {
	courses map[int64]models.Course
}

func (m *mockCourseReader) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func newEnrollmentFixture(repo *mockEnrollmentRepo) *EnrollmentService {
	students := &mockStudentReader{students: map[int64]models.Student{1: {ID: 1, Name: "Ana Morales"}}}
	courses := &mockCourseReader{courses: map[int64]models.Course{10: {ID: 10, Code: "MAT101"}}}
	return NewEnrollmentService(repo, students, courses, nil)
}

func TestEnrollmentServiceEnroll(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	svc := newEnrollmentFixture(repo)

	enrollment, err := svc.Enroll(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), enrollment.StudentID)
	assert.Equal(t, int64(10), enrollment.CourseID)
	assert.Len(t, repo.enrolled, 1)
}

func TestEnrollmentServiceEnrollStudentNotFound(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	svc := newEnrollmentFixture(repo)

	_, err := svc.Enroll(context.Background(), 99, 10)
	assertAPIErrorCode(t, err, appErrors.ErrNotFound.Code)
	assert.Empty(t, repo.enrolled)
}

func TestEnrollmentServiceEnrollCourseNotFound(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	svc := newEnrollmentFixture(repo)

	_, err := svc.Enroll(context.Background(), 1, 99)
	assertAPIErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestEnrollmentServiceDuplicateMapsToConflict(t *testing.T) {
	repo := &mockEnrollmentRepo{enrollErr: &models.RuleViolationError{
		Rule:    models.RuleDuplicate,
		Message: "already enrolled",
	}}
	svc := newEnrollmentFixture(repo)

	_, err := svc.Enroll(context.Background(), 1, 10)
	assertAPIErrorCode(t, err, appErrors.ErrConflict.Code)
}

func TestEnrollmentServiceRuleViolations(t *testing.T) {
	for _, rule := range []models.Rule{models.RuleCreditLimit, models.RuleScheduleConflict, models.RuleCapacity} {
		repo := &mockEnrollmentRepo{enrollErr: &models.RuleViolationError{Rule: rule, Message: string(rule)}}
		svc := newEnrollmentFixture(repo)

		_, err := svc.Enroll(context.Background(), 1, 10)
		assertAPIErrorCode(t, err, appErrors.ErrRuleViolation.Code)
		apiErr := appErrors.FromError(err)
		assert.Equal(t, 409, apiErr.Status, string(rule))
	}
}

func TestEnrollmentServiceUnenrollNotFound(t *testing.T) {
	repo := &mockEnrollmentRepo{unenrollErr: sql.ErrNoRows}
	svc := newEnrollmentFixture(repo)

	err := svc.Unenroll(context.Background(), 1, 10)
	assertAPIErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestEnrollmentServiceCancelSemester(t *testing.T) {
	repo := &mockEnrollmentRepo{cancelled: 3}
	svc := newEnrollmentFixture(repo)

	removed, err := svc.CancelSemester(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}

func TestEnrollmentServiceCancelSemesterIdempotent(t *testing.T) {
	repo := &mockEnrollmentRepo{cancelled: 0}
	svc := newEnrollmentFixture(repo)

	removed, err := svc.CancelSemester(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestEnrollmentServiceCancelSemesterStudentMissing(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	svc := newEnrollmentFixture(repo)

	_, err := svc.CancelSemester(context.Background(), 99)
	assertAPIErrorCode(t, err, appErrors.ErrNotFound.Code)
}
