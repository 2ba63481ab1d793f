package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acalderonq/registro-academico/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = "s.id, s.cedula, s.nombre, s.email, s.semestre, s.created_at, s.updated_at"

// List returns students matching the provided filters in primary-key order.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	base := fmt.Sprintf("SELECT DISTINCT %s FROM estudiantes s", studentColumns)
	var conditions []string
	var args []interface{}

	if filter.CourseCode != "" {
		base += " JOIN matriculas m ON m.estudiante_id = s.id JOIN cursos c ON c.id = m.curso_id"
		conditions = append(conditions, fmt.Sprintf("c.codigo = $%d", len(args)+1))
		args = append(args, filter.CourseCode)
	}
	if filter.Semester != nil {
		conditions = append(conditions, fmt.Sprintf("s.semestre = $%d", len(args)+1))
		args = append(args, *filter.Semester)
	}

	if len(conditions) > 0 {
		base += " WHERE " + strings.Join(conditions, " AND ")
	}
	base += " ORDER BY s.id"

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, base, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID returns a student by its internal identifier.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM estudiantes s WHERE s.id = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListCourses returns the courses the student is enrolled in.
func (r *StudentRepository) ListCourses(ctx context.Context, studentID int64) ([]models.Course, error) {
	const query = `SELECT c.id, c.codigo, c.nombre, c.creditos, c.horario, c.cupo_maximo, c.created_at, c.updated_at
        FROM matriculas m JOIN cursos c ON c.id = m.curso_id
        WHERE m.estudiante_id = $1 ORDER BY c.id`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, studentID); err != nil {
		return nil, fmt.Errorf("list student courses: %w", err)
	}
	return courses, nil
}

// ExistsByNationalID checks whether a cedula is already registered, optionally
// excluding one row (used when updating the business key).
func (r *StudentRepository) ExistsByNationalID(ctx context.Context, nationalID string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM estudiantes WHERE cedula = $1"
	args := []interface{}{nationalID}
	if excludeID != 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	query += " LIMIT 1"
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check cedula: %w", err)
	}
	return true, nil
}

// Create persists a new student and fills in the generated identifier.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO estudiantes (cedula, nombre, email, semestre, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		student.NationalID, student.Name, student.Email, student.Semester,
		student.CreatedAt, student.UpdatedAt,
	).Scan(&student.ID); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of a student row.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE estudiantes SET cedula = $2, nombre = $3, email = $4, semestre = $5, updated_at = $6 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		student.ID, student.NationalID, student.Name, student.Email, student.Semester, student.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student and every enrollment referencing it within one
// transaction so no orphaned enrollment survives.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete student: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM matriculas WHERE estudiante_id = $1", id); err != nil {
		return fmt.Errorf("delete student enrollments: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM estudiantes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}
