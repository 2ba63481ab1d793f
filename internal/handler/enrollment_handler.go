package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acalderonq/registro-academico/internal/models"
	appErrors "github.com/acalderonq/registro-academico/pkg/errors"
	"github.com/acalderonq/registro-academico/pkg/response"
)

type enrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	Unenroll(ctx context.Context, studentID, courseID int64) error
}

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

func enrollmentPair(c *gin.Context) (int64, int64, error) {
	studentID, err := strconv.ParseInt(c.Query("estudiante_id"), 10, 64)
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "invalid estudiante_id")
	}
	courseID, err := strconv.ParseInt(c.Query("curso_id"), 10, 64)
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "invalid curso_id")
	}
	return studentID, courseID, nil
}

// Create godoc
// @Summary Enroll a student into a course
// @Tags Matriculas
// @Produce json
// @Param estudiante_id query int true "Student ID"
// @Param curso_id query int true "Course ID"
// @Success 201 {object} response.Envelope
// @Router /matriculas [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	studentID, courseID, err := enrollmentPair(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	enrollment, err := h.enrollments.Enroll(c.Request.Context(), studentID, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Delete godoc
// @Summary Withdraw a student from a course
// @Tags Matriculas
// @Produce json
// @Param estudiante_id query int true "Student ID"
// @Param curso_id query int true "Course ID"
// @Success 204
// @Router /matriculas [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	studentID, courseID, err := enrollmentPair(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.enrollments.Unenroll(c.Request.Context(), studentID, courseID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
