package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acalderonq/registro-academico/internal/models"
)

func expectEnrollSnapshot(mock sqlmock.Sqlmock, studentID, courseID int64, course *sqlmock.Rows, enrolled int, load *sqlmock.Rows) {
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM estudiantes WHERE id = $1 FOR UPDATE")).
		WithArgs(studentID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(studentID))
	mock.ExpectQuery("SELECT id, codigo, nombre, creditos, horario, cupo_maximo, created_at, updated_at\\s+FROM cursos WHERE id = \\$1 FOR UPDATE").
		WithArgs(courseID).
		WillReturnRows(course)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM matriculas WHERE curso_id = $1")).
		WithArgs(courseID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(enrolled))
	mock.ExpectQuery("SELECT m.curso_id, c.creditos, c.horario\\s+FROM matriculas m JOIN cursos c ON c.id = m.curso_id\\s+WHERE m.estudiante_id = \\$1").
		WithArgs(studentID).
		WillReturnRows(load)
}

func enrollCourseRow(id int64, code string, credits int, horario string, capacity int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "codigo", "nombre", "creditos", "horario", "cupo_maximo", "created_at", "updated_at"}).
		AddRow(id, code, "Curso", credits, horario, capacity, time.Now(), time.Now())
}

func loadRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"curso_id", "creditos", "horario"})
}

func TestEnrollmentRepositoryEnroll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	expectEnrollSnapshot(mock, 1, 10,
		enrollCourseRow(10, "MAT101", 4, "08:00-10:00", 30), 5,
		loadRows().AddRow(20, 3, "10:00-12:00"))
	mock.ExpectExec("INSERT INTO matriculas").
		WithArgs(sqlmock.AnyArg(), int64(1), int64(10), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	enrollment, err := repo.Enroll(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, enrollment.ID)
	assert.Equal(t, int64(1), enrollment.StudentID)
	assert.Equal(t, int64(10), enrollment.CourseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryEnrollStudentMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM estudiantes WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Enroll(context.Background(), 99, 10)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryEnrollCourseFull(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	expectEnrollSnapshot(mock, 1, 10,
		enrollCourseRow(10, "MAT101", 4, "08:00-10:00", 25), 25,
		loadRows())
	mock.ExpectRollback()

	_, err := repo.Enroll(context.Background(), 1, 10)
	var violation *models.RuleViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, models.RuleCapacity, violation.Rule)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryEnrollScheduleConflict(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	expectEnrollSnapshot(mock, 1, 10,
		enrollCourseRow(10, "MAT101", 4, "09:00-11:00", 30), 5,
		loadRows().AddRow(20, 3, "10:00-12:00"))
	mock.ExpectRollback()

	_, err := repo.Enroll(context.Background(), 1, 10)
	var violation *models.RuleViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, models.RuleScheduleConflict, violation.Rule)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryUnenroll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM matriculas WHERE estudiante_id = $1 AND curso_id = $2")).
		WithArgs(int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Unenroll(context.Background(), 1, 10))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryUnenrollMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM matriculas WHERE estudiante_id = $1 AND curso_id = $2")).
		WithArgs(int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Unenroll(context.Background(), 1, 10)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCancelSemester(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM matriculas WHERE estudiante_id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	affected, err := repo.CancelSemester(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
