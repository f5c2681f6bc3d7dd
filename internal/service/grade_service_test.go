package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/dto"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/models"
)

func TestLetterGradeBoundaries(t *testing.T) {
	require.Equal(t, "A+", models.LetterGradeFor(90))
	require.Equal(t, "A", models.LetterGradeFor(85))
	require.Equal(t, "B+", models.LetterGradeFor(84.99))
	require.Equal(t, "B+", models.LetterGradeFor(75))
	require.Equal(t, "B", models.LetterGradeFor(70))
	require.Equal(t, "C+", models.LetterGradeFor(65))
	require.Equal(t, "C", models.LetterGradeFor(60))
	require.Equal(t, "D", models.LetterGradeFor(50))
	require.Equal(t, "F", models.LetterGradeFor(49.99))
}

func recordGrade(t *testing.T, e *env, studentID, courseID, assignmentID string, score, max float64) *models.Grade {
	t.Helper()
	grade, err := e.grades.Record(dto.GradeRequest{
		StudentID:    studentID,
		CourseID:     courseID,
		AssignmentID: assignmentID,
		Score:        score,
		MaxScore:     max,
	})
	require.NoError(t, err)
	return grade
}

func TestRecordDerivesLetterAndPercentage(t *testing.T) {
	e := newEnv(t)

	grade := recordGrade(t, e, "USR-s1", "CRS-c1", "ASG-a1", 90, 100)
	require.Equal(t, "A+", grade.LetterGrade)
	require.InDelta(t, 90.0, grade.Percentage, 1e-9)
	require.False(t, grade.Published)

	_, err := e.grades.Record(dto.GradeRequest{
		StudentID:    "USR-s1",
		CourseID:     "CRS-c1",
		AssignmentID: "ASG-a2",
		Score:        120,
		MaxScore:     100,
	})
	require.ErrorIs(t, err, ErrScoreOutOfRange)
}

func TestUpdateRecalculates(t *testing.T) {
	e := newEnv(t)
	grade := recordGrade(t, e, "USR-s1", "CRS-c1", "ASG-a1", 60, 100)

	score := 85.0
	updated, err := e.grades.Update(grade.ID, dto.GradeUpdateRequest{Score: &score})
	require.NoError(t, err)
	require.Equal(t, "A", updated.LetterGrade)
	require.InDelta(t, 85.0, updated.Percentage, 1e-9)
}

func TestPublishByAssignment(t *testing.T) {
	e := newEnv(t)
	recordGrade(t, e, "USR-s1", "CRS-c1", "ASG-a1", 80, 100)
	recordGrade(t, e, "USR-s2", "CRS-c1", "ASG-a1", 60, 100)
	recordGrade(t, e, "USR-s3", "CRS-c1", "ASG-other", 70, 100)

	published := e.grades.PublishByAssignment("ASG-a1")
	require.Equal(t, 2, published)

	for _, g := range e.grades.ListByAssignment("ASG-a1") {
		require.True(t, g.Published)
	}
	for _, g := range e.grades.ListByAssignment("ASG-other") {
		require.False(t, g.Published)
	}

	// Second pass publishes nothing new.
	require.Zero(t, e.grades.PublishByAssignment("ASG-a1"))
}

func TestAveragesCoverPublishedOnly(t *testing.T) {
	e := newEnv(t)
	recordGrade(t, e, "USR-s1", "CRS-c1", "ASG-a1", 80, 100)
	recordGrade(t, e, "USR-s1", "CRS-c1", "ASG-a2", 60, 100)
	recordGrade(t, e, "USR-s1", "CRS-c1", "ASG-a3", 100, 100) // stays unpublished

	_, ok := e.grades.StudentAverage("USR-s1")
	require.False(t, ok)

	e.grades.PublishByAssignment("ASG-a1")
	e.grades.PublishByAssignment("ASG-a2")

	avg, ok := e.grades.StudentAverage("USR-s1")
	require.True(t, ok)
	require.InDelta(t, 70.0, avg, 1e-9)

	avg, ok = e.grades.CourseAverage("CRS-c1")
	require.True(t, ok)
	require.InDelta(t, 70.0, avg, 1e-9)

	_, ok = e.grades.CourseAverage("CRS-empty")
	require.False(t, ok)
}
