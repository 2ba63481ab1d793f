package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acalderonq/registro-academico/internal/models"
	appErrors "github.com/acalderonq/registro-academico/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	ListStudents(ctx context.Context, courseID int64) ([]models.Student, error)
	CountEnrollments(ctx context.Context, courseID int64) (int, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cacheMetrics interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	ObserveCacheWrite(duration time.Duration)
}

const courseListCachePrefix = "cursos:list"

// CreateCourseRequest holds payload for creating courses. The horario string
// is validated at this boundary before any persistence access.
type CreateCourseRequest struct {
	Code     string `json:"codigo" validate:"required"`
	Name     string `json:"nombre" validate:"required"`
	Credits  int    `json:"creditos" validate:"required,gt=0"`
	Schedule string `json:"horario" validate:"required"`
	Capacity int    `json:"cupo_maximo" validate:"required,gt=0"`
}

// UpdateCourseRequest holds a partial update; only non-nil fields are applied.
type UpdateCourseRequest struct {
	Code     *string `json:"codigo" validate:"omitempty,min=1"`
	Name     *string `json:"nombre" validate:"omitempty,min=1"`
	Credits  *int    `json:"creditos" validate:"omitempty,gt=0"`
	Schedule *string `json:"horario"`
	Capacity *int    `json:"cupo_maximo" validate:"omitempty,gt=0"`
}

// CourseService handles course use-cases with an optional read-through cache
// over the list endpoint.
type CourseService struct {
	repo      courseRepository
	cache     cacheStore
	metrics   cacheMetrics
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service. cache and metrics may be nil.
func NewCourseService(repo courseRepository, cache cacheStore, metrics cacheMetrics, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, metrics: metrics, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// List returns courses matching the filter, served from cache when possible.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	key := courseListCacheKey(filter)

	if s.cache != nil {
		start := time.Now()
		var cached []models.Course
		err := s.cache.Get(ctx, key, &cached)
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(err == nil, time.Since(start))
		}
		if err == nil {
			return cached, nil
		}
		if err != appErrors.ErrCacheMiss {
			s.logger.Warn("course list cache read failed", zap.Error(err))
		}
	}

	courses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	if courses == nil {
		courses = []models.Course{}
	}

	if s.cache != nil {
		start := time.Now()
		if err := s.cache.Set(ctx, key, courses, s.cacheTTL); err != nil {
			s.logger.Warn("course list cache write failed", zap.Error(err))
		} else if s.metrics != nil {
			s.metrics.ObserveCacheWrite(time.Since(start))
		}
	}

	return courses, nil
}

// Get returns a course together with its enrolled students and head count.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.CourseDetail, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	students, err := s.repo.ListStudents(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course students")
	}
	if students == nil {
		students = []models.Student{}
	}
	return &models.CourseDetail{Course: *course, Students: students, Enrolled: len(students)}, nil
}

// Students returns only the enrolled students of a course.
func (s *CourseService) Students(ctx context.Context, id int64) ([]models.Student, error) {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return detail.Students, nil
}

// Create registers a new course after checking codigo uniqueness.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	slot, err := models.ParseTimeSlot(req.Schedule)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	exists, err := s.repo.ExistsByCode(ctx, req.Code, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate codigo")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "codigo already registered")
	}
	course := &models.Course{
		Code:     req.Code,
		Name:     req.Name,
		Credits:  req.Credits,
		Schedule: slot,
		Capacity: req.Capacity,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	s.invalidateListCache(ctx)
	return course, nil
}

// Update applies a partial update, re-validating codigo uniqueness when the
// business key changes and the horario format when the window changes.
func (s *CourseService) Update(ctx context.Context, id int64, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if req.Code != nil && *req.Code != course.Code {
		exists, err := s.repo.ExistsByCode(ctx, *req.Code, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate codigo")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "codigo already registered to another course")
		}
		course.Code = *req.Code
	}
	if req.Schedule != nil {
		slot, err := models.ParseTimeSlot(*req.Schedule)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
		course.Schedule = slot
	}
	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	}
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	s.invalidateListCache(ctx)
	return course, nil
}

// Delete removes a course and, transactionally, all its enrollments.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *CourseService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, courseListCachePrefix+":*"); err != nil {
		s.logger.Warn("course list cache invalidation failed", zap.Error(err))
	}
}

func courseListCacheKey(filter models.CourseFilter) string {
	credits := 0
	if filter.Credits != nil {
		credits = *filter.Credits
	}
	return fmt.Sprintf("%s:%s:%d", courseListCachePrefix, filter.Code, credits)
}
