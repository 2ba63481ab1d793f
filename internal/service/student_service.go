package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acalderonq/registro-academico/internal/models"
	appErrors "github.com/acalderonq/registro-academico/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ListCourses(ctx context.Context, studentID int64) ([]models.Course, error)
	ExistsByNationalID(ctx context.Context, nationalID string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	NationalID string `json:"cedula" validate:"required"`
	Name       string `json:"nombre" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Semester   int    `json:"semestre" validate:"required,gt=0"`
}

// UpdateStudentRequest holds a partial update; only non-nil fields are applied.
type UpdateStudentRequest struct {
	NationalID *string `json:"cedula" validate:"omitempty,min=1"`
	Name       *string `json:"nombre" validate:"omitempty,min=1"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Semester   *int    `json:"semestre" validate:"omitempty,gt=0"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students matching the filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// Get returns a student together with their enrolled courses.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	courses, err := s.repo.ListCourses(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student courses")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return &models.StudentDetail{Student: *student, Courses: courses}, nil
}

// Courses returns only the enrolled courses of a student.
func (s *StudentService) Courses(ctx context.Context, id int64) ([]models.Course, error) {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return detail.Courses, nil
}

// Create registers a new student after checking cedula uniqueness.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	exists, err := s.repo.ExistsByNationalID(ctx, req.NationalID, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate cedula")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "cedula already registered")
	}
	student := &models.Student{
		NationalID: req.NationalID,
		Name:       req.Name,
		Email:      req.Email,
		Semester:   req.Semester,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update applies a partial update, re-validating cedula uniqueness when the
// business key changes.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if req.NationalID != nil && *req.NationalID != student.NationalID {
		exists, err := s.repo.ExistsByNationalID(ctx, *req.NationalID, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate cedula")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "cedula already registered to another student")
		}
		student.NationalID = *req.NationalID
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Semester != nil {
		student.Semester = *req.Semester
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student and, transactionally, all their enrollments.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}
