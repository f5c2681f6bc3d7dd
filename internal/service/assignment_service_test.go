package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/dto"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/models"
)

func TestAssignmentCreateDefaults(t *testing.T) {
	e := newEnv(t)
	teacher := e.registerTeacher(t, "jsmith")
	course := e.createCourse(t, teacher.ID, "CS101", 10)

	assignment := e.createAssignment(t, course.ID, 100)
	require.Equal(t, models.AssignmentStatusActive, assignment.Status)
	require.Empty(t, assignment.SubmissionStudentIDs)
}

func TestAssignmentCreateRejectsPastDue(t *testing.T) {
	e := newEnv(t)
	teacher := e.registerTeacher(t, "jsmith")
	course := e.createCourse(t, teacher.ID, "CS101", 10)

	_, err := e.assignments.Create(dto.AssignmentCreateRequest{
		CourseID: course.ID,
		Title:    "Late",
		Type:     "HOMEWORK",
		MaxScore: 100,
		DueDate:  time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	require.Error(t, err)
}

func TestSubmitScenario(t *testing.T) {
	e := newEnv(t)
	teacher := e.registerTeacher(t, "jsmith")
	student := e.registerStudent(t, "jchen")
	course := e.createCourse(t, teacher.ID, "CS101", 10)
	assignment := e.createAssignment(t, course.ID, 100)
	e.enroll(t, student.ID, course.ID)

	_, err := e.assignments.Submit(assignment.ID, dto.SubmissionRequest{StudentID: student.ID, Score: 105})
	require.ErrorIs(t, err, ErrScoreOutOfRange)

	grade, err := e.assignments.Submit(assignment.ID, dto.SubmissionRequest{StudentID: student.ID, Score: 85, GradedBy: teacher.ID})
	require.NoError(t, err)
	require.Equal(t, "A", grade.LetterGrade)
	require.InDelta(t, 85.0, grade.Percentage, 1e-9)

	stored, _ := e.assignments.Get(assignment.ID)
	require.Equal(t, []string{student.ID}, stored.SubmissionStudentIDs)
}

func TestSubmitTwiceRejected(t *testing.T) {
	e := newEnv(t)
	teacher := e.registerTeacher(t, "jsmith")
	student := e.registerStudent(t, "jchen")
	course := e.createCourse(t, teacher.ID, "CS101", 10)
	assignment := e.createAssignment(t, course.ID, 100)
	e.enroll(t, student.ID, course.ID)

	_, err := e.assignments.Submit(assignment.ID, dto.SubmissionRequest{StudentID: student.ID, Score: 70})
	require.NoError(t, err)

	_, err = e.assignments.Submit(assignment.ID, dto.SubmissionRequest{StudentID: student.ID, Score: 90})
	require.ErrorIs(t, err, ErrSubmissionNotAllowed)

	stored, _ := e.assignments.Get(assignment.ID)
	require.Len(t, stored.SubmissionStudentIDs, 1)
}

func TestSubmitClosedAssignmentRejected(t *testing.T) {
	e := newEnv(t)
	teacher := e.registerTeacher(t, "jsmith")
	student := e.registerStudent(t, "jchen")
	course := e.createCourse(t, teacher.ID, "CS101", 10)
	assignment := e.createAssignment(t, course.ID, 100)
	e.enroll(t, student.ID, course.ID)

	require.NoError(t, e.assignments.Close(assignment.ID))

	_, err := e.assignments.Submit(assignment.ID, dto.SubmissionRequest{StudentID: student.ID, Score: 80})
	require.ErrorIs(t, err, ErrSubmissionNotAllowed)
}

func TestDeleteGuardedBySubmissions(t *testing.T) {
	e := newEnv(t)
	teacher := e.registerTeacher(t, "jsmith")
	student := e.registerStudent(t, "jchen")
	course := e.createCourse(t, teacher.ID, "CS101", 10)
	assignment := e.createAssignment(t, course.ID, 100)
	e.enroll(t, student.ID, course.ID)

	_, err := e.assignments.Submit(assignment.ID, dto.SubmissionRequest{StudentID: student.ID, Score: 60})
	require.NoError(t, err)

	require.ErrorIs(t, e.assignments.Delete(assignment.ID), ErrAssignmentHasSubmissions)

	empty := e.createAssignment(t, course.ID, 50)
	require.NoError(t, e.assignments.Delete(empty.ID))
}

func TestSubmitRequiresActiveEnrollment(t *testing.T) {
	e := newEnv(t)
	teacher := e.registerTeacher(t, "jsmith")
	outsider := e.registerStudent(t, "nadia")
	course := e.createCourse(t, teacher.ID, "CS101", 10)
	assignment := e.createAssignment(t, course.ID, 100)

	// Never enrolled: the submission set must stay empty.
	_, err := e.assignments.Submit(assignment.ID, dto.SubmissionRequest{StudentID: outsider.ID, Score: 80})
	require.ErrorIs(t, err, ErrNotEnrolled)

	stored, _ := e.assignments.Get(assignment.ID)
	require.Empty(t, stored.SubmissionStudentIDs)
	require.Empty(t, e.grades.ListByAssignment(assignment.ID))

	// A dropped enrollment does not reopen the gate.
	e.enroll(t, outsider.ID, course.ID)
	require.NoError(t, e.enrollments.Drop(outsider.ID, course.ID))
	_, err = e.assignments.Submit(assignment.ID, dto.SubmissionRequest{StudentID: outsider.ID, Score: 80})
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestSubmitUpdatesExistingGrade(t *testing.T) {
	e := newEnv(t)
	teacher := e.registerTeacher(t, "jsmith")
	student := e.registerStudent(t, "jchen")
	course := e.createCourse(t, teacher.ID, "CS101", 10)
	assignment := e.createAssignment(t, course.ID, 100)
	e.enroll(t, student.ID, course.ID)

	// A grade recorded ahead of submission is updated, not duplicated.
	existing, err := e.grades.Record(dto.GradeRequest{
		StudentID:    student.ID,
		CourseID:     course.ID,
		AssignmentID: assignment.ID,
		Score:        10,
		MaxScore:     100,
	})
	require.NoError(t, err)

	grade, err := e.assignments.Submit(assignment.ID, dto.SubmissionRequest{StudentID: student.ID, Score: 92})
	require.NoError(t, err)
	require.Equal(t, existing.ID, grade.ID)
	require.Equal(t, "A+", grade.LetterGrade)
	require.Len(t, e.grades.ListByAssignment(assignment.ID), 1)
}
