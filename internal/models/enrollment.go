package models

import "time"

// Enrollment is the join record between a student and a course. A (student,
// course) pair exists at most once; removal is physical deletion.
type Enrollment struct {
	ID        string    `db:"id" json:"id"`
	StudentID int64     `db:"estudiante_id" json:"estudiante_id"`
	CourseID  int64     `db:"curso_id" json:"curso_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CourseLoad is one row of a student's current load: the per-course data the
// enrollment rules inspect.
type CourseLoad struct {
	CourseID int64    `db:"curso_id"`
	Credits  int      `db:"creditos"`
	Schedule TimeSlot `db:"horario"`
}

// EnrollmentSnapshot is the state the enrollment rules evaluate: the candidate
// course, its current active head count and the student's existing load. It is
// assembled inside the enrolling transaction so no concurrent writer can move
// the numbers underneath the checks.
type EnrollmentSnapshot struct {
	StudentID int64
	Course    Course
	Enrolled  int
	Load      []CourseLoad
}
