package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acalderonq/registro-academico/internal/models"
)

// EnrollmentRepository handles persistence of enrollments. Rule evaluation for
// enrollment creation happens inside a single transaction here: the course and
// student rows are locked so two concurrent attempts cannot both observe a free
// seat or spare credits and both commit.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll creates an enrollment after re-validating every business rule against
// a snapshot loaded under row locks. A *models.RuleViolationError is returned
// when a rule rejects the candidate; sql.ErrNoRows when either side is gone.
func (r *EnrollmentRepository) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin enroll: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Lock the student row: the credit and schedule checks read this
	// student's load and must not race a parallel enrollment of theirs.
	var lockedStudent int64
	if err := tx.GetContext(ctx, &lockedStudent, "SELECT id FROM estudiantes WHERE id = $1 FOR UPDATE", studentID); err != nil {
		return nil, err
	}

	// Lock the course row: serializes the capacity check.
	var course models.Course
	const courseQuery = `SELECT id, codigo, nombre, creditos, horario, cupo_maximo, created_at, updated_at
        FROM cursos WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &course, courseQuery, courseID); err != nil {
		return nil, err
	}

	var enrolled int
	if err := tx.GetContext(ctx, &enrolled, "SELECT COUNT(*) FROM matriculas WHERE curso_id = $1", courseID); err != nil {
		return nil, fmt.Errorf("count course enrollments: %w", err)
	}

	var load []models.CourseLoad
	const loadQuery = `SELECT m.curso_id, c.creditos, c.horario
        FROM matriculas m JOIN cursos c ON c.id = m.curso_id
        WHERE m.estudiante_id = $1`
	if err := tx.SelectContext(ctx, &load, loadQuery, studentID); err != nil {
		return nil, fmt.Errorf("load student enrollments: %w", err)
	}

	snapshot := models.EnrollmentSnapshot{
		StudentID: studentID,
		Course:    course,
		Enrolled:  enrolled,
		Load:      load,
	}
	if violation := models.ValidateEnrollment(snapshot); violation != nil {
		return nil, violation
	}

	enrollment := &models.Enrollment{
		ID:        uuid.NewString(),
		StudentID: studentID,
		CourseID:  courseID,
		CreatedAt: time.Now().UTC(),
	}
	const insertQuery = `INSERT INTO matriculas (id, estudiante_id, curso_id, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, insertQuery, enrollment.ID, enrollment.StudentID, enrollment.CourseID, enrollment.CreatedAt); err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit enroll: %w", err)
	}
	return enrollment, nil
}

// Unenroll removes the enrollment linking a student and a course. Returns
// sql.ErrNoRows when no such enrollment exists.
func (r *EnrollmentRepository) Unenroll(ctx context.Context, studentID, courseID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM matriculas WHERE estudiante_id = $1 AND curso_id = $2", studentID, courseID)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CancelSemester removes every enrollment owned by the student, leaving the
// student row intact. Deleting zero rows is a valid outcome.
func (r *EnrollmentRepository) CancelSemester(ctx context.Context, studentID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM matriculas WHERE estudiante_id = $1", studentID)
	if err != nil {
		return 0, fmt.Errorf("cancel semester: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cancel semester: %w", err)
	}
	return affected, nil
}

// Exists reports whether an enrollment links the given student and course.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM matriculas WHERE estudiante_id = $1 AND curso_id = $2 LIMIT 1", studentID, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}
