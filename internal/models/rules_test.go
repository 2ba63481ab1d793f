package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSlot(t *testing.T, raw string) TimeSlot {
	t.Helper()
	slot, err := ParseTimeSlot(raw)
	require.NoError(t, err)
	return slot
}

func TestValidateEnrollmentAccepts(t *testing.T) {
	snapshot := EnrollmentSnapshot{
		StudentID: 1,
		Course:    Course{ID: 10, Code: "MAT101", Credits: 4, Schedule: mustSlot(t, "08:00-10:00"), Capacity: 30},
		Enrolled:  12,
		Load: []CourseLoad{
			{CourseID: 20, Credits: 3, Schedule: mustSlot(t, "10:00-12:00")},
			{CourseID: 21, Credits: 5, Schedule: mustSlot(t, "14:00-16:00")},
		},
	}
	assert.Nil(t, ValidateEnrollment(snapshot))
}

func TestValidateEnrollmentDuplicate(t *testing.T) {
	snapshot := EnrollmentSnapshot{
		StudentID: 1,
		Course:    Course{ID: 10, Code: "MAT101", Credits: 4, Schedule: mustSlot(t, "08:00-10:00"), Capacity: 30},
		Load: []CourseLoad{
			{CourseID: 10, Credits: 4, Schedule: mustSlot(t, "08:00-10:00")},
		},
	}
	violation := ValidateEnrollment(snapshot)
	require.NotNil(t, violation)
	assert.Equal(t, RuleDuplicate, violation.Rule)
}

func TestValidateEnrollmentCreditLimit(t *testing.T) {
	snapshot := EnrollmentSnapshot{
		StudentID: 1,
		Course:    Course{ID: 10, Code: "FIS301", Credits: 5, Schedule: mustSlot(t, "08:00-10:00"), Capacity: 30},
		Load: []CourseLoad{
			{CourseID: 20, Credits: 10, Schedule: mustSlot(t, "10:00-12:00")},
			{CourseID: 21, Credits: 6, Schedule: mustSlot(t, "14:00-16:00")},
		},
	}
	violation := ValidateEnrollment(snapshot)
	require.NotNil(t, violation)
	assert.Equal(t, RuleCreditLimit, violation.Rule)
}

func TestValidateEnrollmentCreditLimitExactFitPasses(t *testing.T) {
	snapshot := EnrollmentSnapshot{
		StudentID: 1,
		Course:    Course{ID: 10, Code: "FIS301", Credits: 4, Schedule: mustSlot(t, "08:00-10:00"), Capacity: 30},
		Load: []CourseLoad{
			{CourseID: 20, Credits: 16, Schedule: mustSlot(t, "10:00-12:00")},
		},
	}
	assert.Nil(t, ValidateEnrollment(snapshot))
}

func TestValidateEnrollmentScheduleConflict(t *testing.T) {
	snapshot := EnrollmentSnapshot{
		StudentID: 1,
		Course:    Course{ID: 10, Code: "QUI201", Credits: 3, Schedule: mustSlot(t, "09:00-11:00"), Capacity: 30},
		Load: []CourseLoad{
			{CourseID: 20, Credits: 3, Schedule: mustSlot(t, "10:00-12:00")},
		},
	}
	violation := ValidateEnrollment(snapshot)
	require.NotNil(t, violation)
	assert.Equal(t, RuleScheduleConflict, violation.Rule)
}

func TestValidateEnrollmentCapacity(t *testing.T) {
	snapshot := EnrollmentSnapshot{
		StudentID: 1,
		Course:    Course{ID: 10, Code: "BIO101", Credits: 3, Schedule: mustSlot(t, "08:00-10:00"), Capacity: 25},
		Enrolled:  25,
	}
	violation := ValidateEnrollment(snapshot)
	require.NotNil(t, violation)
	assert.Equal(t, RuleCapacity, violation.Rule)
}

// Credit limit is reported before schedule conflict or capacity when several
// rules would fail at once.
func TestValidateEnrollmentRuleOrder(t *testing.T) {
	snapshot := EnrollmentSnapshot{
		StudentID: 1,
		Course:    Course{ID: 10, Code: "MAT101", Credits: 10, Schedule: mustSlot(t, "08:00-10:00"), Capacity: 1},
		Enrolled:  1,
		Load: []CourseLoad{
			{CourseID: 20, Credits: 15, Schedule: mustSlot(t, "08:00-10:00")},
		},
	}
	violation := ValidateEnrollment(snapshot)
	require.NotNil(t, violation)
	assert.Equal(t, RuleCreditLimit, violation.Rule)
}
