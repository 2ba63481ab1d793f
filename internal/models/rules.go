package models

import "fmt"

// MaxSemesterCredits is the ceiling on the sum of credits a student may carry
// across active enrollments.
const MaxSemesterCredits = 20

// Rule identifies which enrollment rule rejected an operation.
type Rule string

// Enrollment rules, evaluated in this order.
const (
	RuleDuplicate        Rule = "DUPLICATE"
	RuleCreditLimit      Rule = "CREDIT_LIMIT"
	RuleScheduleConflict Rule = "SCHEDULE_CONFLICT"
	RuleCapacity         Rule = "CAPACITY"
)

// RuleViolationError is returned when a candidate enrollment breaks one of the
// business rules.
type RuleViolationError struct {
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *RuleViolationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// ValidateEnrollment applies the enrollment rules to a snapshot. All checks
// must pass; the first failure wins and identifies the violated rule.
func ValidateEnrollment(s EnrollmentSnapshot) *RuleViolationError {
	credits := 0
	for _, load := range s.Load {
		if load.CourseID == s.Course.ID {
			return &RuleViolationError{
				Rule:    RuleDuplicate,
				Message: fmt.Sprintf("student %d is already enrolled in course %s", s.StudentID, s.Course.Code),
			}
		}
		credits += load.Credits
	}

	if credits+s.Course.Credits > MaxSemesterCredits {
		return &RuleViolationError{
			Rule: RuleCreditLimit,
			Message: fmt.Sprintf("credit limit exceeded: %d current + %d requested > %d",
				credits, s.Course.Credits, MaxSemesterCredits),
		}
	}

	for _, load := range s.Load {
		if load.Schedule.Overlaps(s.Course.Schedule) {
			return &RuleViolationError{
				Rule: RuleScheduleConflict,
				Message: fmt.Sprintf("schedule conflict: %s overlaps an existing enrollment at %s",
					s.Course.Schedule, load.Schedule),
			}
		}
	}

	if s.Enrolled >= s.Course.Capacity {
		return &RuleViolationError{
			Rule:    RuleCapacity,
			Message: fmt.Sprintf("course %s is full (%d/%d)", s.Course.Code, s.Enrolled, s.Course.Capacity),
		}
	}

	return nil
}
