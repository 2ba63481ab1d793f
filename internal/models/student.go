package models

import "time"

// Student represents a learner registered in the institution. The cedula is
// the immutable-in-practice business key; id is the internal row identifier.
type Student struct {
	ID         int64     `db:"id" json:"id"`
	NationalID string    `db:"cedula" json:"cedula"`
	Name       string    `db:"nombre" json:"nombre"`
	Email      string    `db:"email" json:"email"`
	Semester   int       `db:"semestre" json:"semestre"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Semester   *int
	CourseCode string
}

// StudentDetail contains student information with the enrolled courses.
type StudentDetail struct {
	Student
	Courses []Course `json:"cursos"`
}
