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

// CourseRepository manages persistence for course records.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = "c.id, c.codigo, c.nombre, c.creditos, c.horario, c.cupo_maximo, c.created_at, c.updated_at"

// List returns courses matching the provided filters in primary-key order.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	base := fmt.Sprintf("SELECT %s FROM cursos c", courseColumns)
	var conditions []string
	var args []interface{}

	if filter.Code != "" {
		conditions = append(conditions, fmt.Sprintf("c.codigo = $%d", len(args)+1))
		args = append(args, filter.Code)
	}
	if filter.Credits != nil {
		conditions = append(conditions, fmt.Sprintf("c.creditos = $%d", len(args)+1))
		args = append(args, *filter.Credits)
	}

	if len(conditions) > 0 {
		base += " WHERE " + strings.Join(conditions, " AND ")
	}
	base += " ORDER BY c.id"

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, base, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID returns a course by its internal identifier.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM cursos c WHERE c.id = $1", courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListStudents returns the students enrolled in the course.
func (r *CourseRepository) ListStudents(ctx context.Context, courseID int64) ([]models.Student, error) {
	const query = `SELECT s.id, s.cedula, s.nombre, s.email, s.semestre, s.created_at, s.updated_at
        FROM matriculas m JOIN estudiantes s ON s.id = m.estudiante_id
        WHERE m.curso_id = $1 ORDER BY s.id`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, courseID); err != nil {
		return nil, fmt.Errorf("list course students: %w", err)
	}
	return students, nil
}

// CountEnrollments returns the active head count of a course.
func (r *CourseRepository) CountEnrollments(ctx context.Context, courseID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM matriculas WHERE curso_id = $1", courseID); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return count, nil
}

// ExistsByCode checks whether a course code is taken, optionally excluding one
// row (used when updating the business key).
func (r *CourseRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM cursos WHERE codigo = $1"
	args := []interface{}{code}
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
		return false, fmt.Errorf("check codigo: %w", err)
	}
	return true, nil
}

// Create persists a new course and fills in the generated identifier.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	const query = `INSERT INTO cursos (codigo, nombre, creditos, horario, cupo_maximo, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		course.Code, course.Name, course.Credits, course.Schedule, course.Capacity,
		course.CreatedAt, course.UpdatedAt,
	).Scan(&course.ID); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of a course row.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE cursos SET codigo = $2, nombre = $3, creditos = $4, horario = $5, cupo_maximo = $6, updated_at = $7 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		course.ID, course.Code, course.Name, course.Credits, course.Schedule, course.Capacity, course.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Delete removes a course and every enrollment referencing it within one
// transaction so no orphaned enrollment survives.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete course: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM matriculas WHERE curso_id = $1", id); err != nil {
		return fmt.Errorf("delete course enrollments: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM cursos WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}
