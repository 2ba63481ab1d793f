package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acalderonq/registro-academico/internal/models"
	"github.com/acalderonq/registro-academico/internal/service"
	appErrors "github.com/acalderonq/registro-academico/pkg/errors"
	"github.com/acalderonq/registro-academico/pkg/response"
)

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.StudentDetail, error)
	Courses(ctx context.Context, id int64) ([]models.Course, error)
	Create(ctx context.Context, req service.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id int64, req service.UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

type semesterCanceller interface {
	CancelSemester(ctx context.Context, studentID int64) (int64, error)
}

type scheduleExporter interface {
	Schedule(ctx context.Context, studentID int64, format string) (*service.ExportedSchedule, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students    studentService
	enrollments semesterCanceller
	exports     scheduleExporter
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService, enrollments semesterCanceller, exports scheduleExporter) *StudentHandler {
	return &StudentHandler{students: students, enrollments: enrollments, exports: exports}
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid id")
	}
	return id, nil
}

// List godoc
// @Summary List students
// @Tags Estudiantes
// @Produce json
// @Param semestre query int false "Filter by semester"
// @Param curso query string false "Filter by enrolled course code"
// @Success 200 {object} response.Envelope
// @Router /estudiantes [get]
func (h *StudentHandler) List(c *gin.Context) {
	var filter models.StudentFilter
	if raw := c.Query("semestre"); raw != "" {
		semester, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid semestre filter"))
			return
		}
		filter.Semester = &semester
	}
	filter.CourseCode = strings.TrimSpace(c.Query("curso"))

	students, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Get godoc
// @Summary Get student with enrolled courses
// @Tags Estudiantes
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Courses godoc
// @Summary List a student's enrolled courses
// @Tags Estudiantes
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id}/cursos [get]
func (h *StudentHandler) Courses(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	courses, err := h.students.Courses(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// Create godoc
// @Summary Create student
// @Tags Estudiantes
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /estudiantes [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student (partial)
// @Tags Estudiantes
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body service.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete student and their enrollments
// @Tags Estudiantes
// @Produce json
// @Param id path int true "Student ID"
// @Success 204
// @Router /estudiantes/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CancelSemester godoc
// @Summary Remove every enrollment of a student
// @Tags Estudiantes
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id}/cancelar-semestre [post]
func (h *StudentHandler) CancelSemester(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	removed, err := h.enrollments.CancelSemester(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"matriculas_eliminadas": removed})
}

// ExportSchedule godoc
// @Summary Export a student's schedule as CSV or PDF
// @Tags Estudiantes
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Student ID"
// @Param formato query string false "csv (default) or pdf"
// @Success 200 {file} binary
// @Router /estudiantes/{id}/horario [get]
func (h *StudentHandler) ExportSchedule(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := c.DefaultQuery("formato", service.FormatCSV)
	doc, err := h.exports.Schedule(c.Request.Context(), id, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
