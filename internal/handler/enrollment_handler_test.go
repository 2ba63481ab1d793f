package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acalderonq/registro-academico/internal/models"
	appErrors "github.com/acalderonq/registro-academico/pkg/errors"
)

type enrollmentServiceMock struct {
	enrollResp  *models.Enrollment
	enrollErr   error
	unenrollErr error
	lastStudent int64
	lastCourse  int64
}

func (m *enrollmentServiceMock) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	m.lastStudent = studentID
	m.lastCourse = courseID
	return m.enrollResp, m.enrollErr
}

func (m *enrollmentServiceMock) Unenroll(ctx context.Context, studentID, courseID int64) error {
	m.lastStudent = studentID
	m.lastCourse = courseID
	return m.unenrollErr
}

func TestEnrollmentHandlerCreate(t *testing.T) {
	mockSvc := &enrollmentServiceMock{enrollResp: &models.Enrollment{ID: "m-1", StudentID: 1, CourseID: 10}}
	h := NewEnrollmentHandler(mockSvc)

	c, w := testContext(t, http.MethodPost, "/matriculas?estudiante_id=1&curso_id=10", nil)
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), mockSvc.lastStudent)
	assert.Equal(t, int64(10), mockSvc.lastCourse)
}

func TestEnrollmentHandlerCreateMissingParams(t *testing.T) {
	h := NewEnrollmentHandler(&enrollmentServiceMock{})

	c, w := testContext(t, http.MethodPost, "/matriculas?estudiante_id=1", nil)
	h.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollmentHandlerCreateRuleViolation(t *testing.T) {
	mockSvc := &enrollmentServiceMock{enrollErr: appErrors.Clone(appErrors.ErrRuleViolation, "course is full")}
	h := NewEnrollmentHandler(mockSvc)

	c, w := testContext(t, http.MethodPost, "/matriculas?estudiante_id=1&curso_id=10", nil)
	h.Create(c)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "RULE_VIOLATION")
}

func TestEnrollmentHandlerDelete(t *testing.T) {
	h := NewEnrollmentHandler(&enrollmentServiceMock{})

	c, w := testContext(t, http.MethodDelete, "/matriculas?estudiante_id=1&curso_id=10", nil)
	h.Delete(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestEnrollmentHandlerDeleteNotFound(t *testing.T) {
	mockSvc := &enrollmentServiceMock{unenrollErr: appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")}
	h := NewEnrollmentHandler(mockSvc)

	c, w := testContext(t, http.MethodDelete, "/matriculas?estudiante_id=1&curso_id=10", nil)
	h.Delete(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
