package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/acalderonq/registro-academico/internal/models"
	appErrors "github.com/acalderonq/registro-academico/pkg/errors"
	"github.com/acalderonq/registro-academico/pkg/export"
)

type scheduleSource interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ListCourses(ctx context.Context, studentID int64) ([]models.Course, error)
}

// Export formats accepted by the schedule export endpoint.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExportedSchedule is a rendered schedule document ready to be served.
type ExportedSchedule struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders a student's weekly schedule as a downloadable file.
type ExportService struct {
	students scheduleSource
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(students scheduleSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students: students,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// Schedule renders the student's enrolled courses in the requested format.
func (s *ExportService) Schedule(ctx context.Context, studentID int64, format string) (*ExportedSchedule, error) {
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	courses, err := s.students.ListCourses(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student courses")
	}

	dataset := export.Dataset{
		Headers: []string{"Codigo", "Nombre", "Creditos", "Horario"},
		Rows:    make([]map[string]string, 0, len(courses)),
	}
	for _, course := range courses {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Codigo":   course.Code,
			"Nombre":   course.Name,
			"Creditos": strconv.Itoa(course.Credits),
			"Horario":  course.Schedule.String(),
		})
	}

	switch format {
	case FormatPDF:
		content, err := s.pdf.Render(dataset, fmt.Sprintf("Horario de %s", student.Name))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportedSchedule{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("horario-%s.pdf", student.NationalID),
		}, nil
	default:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportedSchedule{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("horario-%s.csv", student.NationalID),
		}, nil
	}
}
