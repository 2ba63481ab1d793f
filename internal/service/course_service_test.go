package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acalderonq/registro-academico/internal/models"
	appErrors "github.com/acalderonq/registro-academico/pkg/errors"
)

type mockCourseRepo struct {
	courses   map[int64]models.Course
	students  map[int64][]models.Student
	nextID    int64
	listCalls int
}

func (m *mockCourseRepo) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	m.listCalls++
	out := make([]models.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) ListStudents(ctx context.Context, courseID int64) ([]models.Student, error) {
	return m.students[courseID], nil
}

func (m *mockCourseRepo) CountEnrollments(ctx context.Context, courseID int64) (int, error) {
	return len(m.students[courseID]), nil
}

func (m *mockCourseRepo) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	for id, c := range m.courses {
		if c.Code == code && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if m.courses == nil {
		m.courses = make(map[int64]models.Course)
	}
	m.nextID++
	course.ID = m.nextID
	m.courses[course.ID] = *course
	return nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	m.courses[course.ID] = *course
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.courses[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.courses, id)
	return nil
}

type mockCache struct {
	entries map[string][]byte
	deletes []string
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *mockCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.deletes = append(m.deletes, pattern)
	m.entries = nil
	return nil
}

func TestCourseServiceCreate(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := NewCourseService(repo, nil, nil, 0, nil, nil)

	course, err := svc.Create(context.Background(), CreateCourseRequest{
		Code:     "MAT101",
		Name:     "Calculo I",
		Credits:  4,
		Schedule: "08:00-10:00",
		Capacity: 30,
	})
	require.NoError(t, err)
	assert.NotZero(t, course.ID)
	assert.Equal(t, "08:00-10:00", course.Schedule.String())
}

func TestCourseServiceCreateBadSchedule(t *testing.T) {
	svc := NewCourseService(&mockCourseRepo{}, nil, nil, 0, nil, nil)

	_, err := svc.Create(context.Background(), CreateCourseRequest{
		Code:     "MAT101",
		Name:     "Calculo I",
		Credits:  4,
		Schedule: "10:00-08:00",
		Capacity: 30,
	})
	assertAPIErrorCode(t, err, appErrors.ErrValidation.Code)
}

func TestCourseServiceCreateDuplicateCode(t *testing.T) {
	repo := &mockCourseRepo{courses: map[int64]models.Course{
		1: {ID: 1, Code: "MAT101"},
	}}
	svc := NewCourseService(repo, nil, nil, 0, nil, nil)

	_, err := svc.Create(context.Background(), CreateCourseRequest{
		Code:     "MAT101",
		Name:     "Otro Calculo",
		Credits:  3,
		Schedule: "08:00-10:00",
		Capacity: 20,
	})
	assertAPIErrorCode(t, err, appErrors.ErrConflict.Code)
}

func TestCourseServiceListUsesCache(t *testing.T) {
	schedule, err := models.ParseTimeSlot("08:00-10:00")
	require.NoError(t, err)
	repo := &mockCourseRepo{courses: map[int64]models.Course{
		1: {ID: 1, Code: "MAT101", Name: "Calculo I", Credits: 4, Schedule: schedule, Capacity: 30},
	}}
	cache := &mockCache{}
	svc := NewCourseService(repo, cache, nil, time.Minute, nil, nil)

	first, err := svc.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, repo.listCalls, "second list should be served from cache")
}

func TestCourseServiceMutationsInvalidateCache(t *testing.T) {
	repo := &mockCourseRepo{}
	cache := &mockCache{}
	svc := NewCourseService(repo, cache, nil, time.Minute, nil, nil)

	_, err := svc.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)

	course, err := svc.Create(context.Background(), CreateCourseRequest{
		Code: "MAT101", Name: "Calculo I", Credits: 4, Schedule: "08:00-10:00", Capacity: 30,
	})
	require.NoError(t, err)
	require.Len(t, cache.deletes, 1)

	courses, err := svc.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, course.ID, courses[0].ID)
}

func TestCourseServiceGetWithStudents(t *testing.T) {
	repo := &mockCourseRepo{
		courses:  map[int64]models.Course{1: {ID: 1, Code: "MAT101", Capacity: 30}},
		students: map[int64][]models.Student{1: {{ID: 5, Name: "Ana Morales"}}},
	}
	svc := NewCourseService(repo, nil, nil, 0, nil, nil)

	detail, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "MAT101", detail.Code)
	assert.Equal(t, 1, detail.Enrolled)
	require.Len(t, detail.Students, 1)
}

func TestCourseServiceUpdateSchedule(t *testing.T) {
	schedule, err := models.ParseTimeSlot("08:00-10:00")
	require.NoError(t, err)
	repo := &mockCourseRepo{courses: map[int64]models.Course{
		1: {ID: 1, Code: "MAT101", Name: "Calculo I", Credits: 4, Schedule: schedule, Capacity: 30},
	}}
	svc := NewCourseService(repo, nil, nil, 0, nil, nil)

	newSchedule := "14:00-16:00"
	course, err := svc.Update(context.Background(), 1, UpdateCourseRequest{Schedule: &newSchedule})
	require.NoError(t, err)
	assert.Equal(t, "14:00-16:00", course.Schedule.String())
	assert.Equal(t, "MAT101", course.Code)

	bad := "16:00-14:00"
	_, err = svc.Update(context.Background(), 1, UpdateCourseRequest{Schedule: &bad})
	assertAPIErrorCode(t, err, appErrors.ErrValidation.Code)
}

func TestCourseServiceDeleteNotFound(t *testing.T) {
	svc := NewCourseService(&mockCourseRepo{}, nil, nil, 0, nil, nil)

	err := svc.Delete(context.Background(), 99)
	assertAPIErrorCode(t, err, appErrors.ErrNotFound.Code)
}
