package models

import "time"

// Course represents an offered course. The codigo is the business key; the
// schedule window applies to every session of the course.
type Course struct {
	ID        int64     `db:"id" json:"id"`
	Code      string    `db:"codigo" json:"codigo"`
	Name      string    `db:"nombre" json:"nombre"`
	Credits   int       `db:"creditos" json:"creditos"`
	Schedule  TimeSlot  `db:"horario" json:"horario"`
	Capacity  int       `db:"cupo_maximo" json:"cupo_maximo"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFilter describes query params for listing courses.
type CourseFilter struct {
	Code    string
	Credits *int
}

// CourseDetail enriches Course with the enrolled students.
type CourseDetail struct {
	Course
	Students []Student `json:"estudiantes"`
	Enrolled int       `json:"matriculados"`
}
