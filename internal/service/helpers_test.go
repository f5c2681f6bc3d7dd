package service

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/dto"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/identifier"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/models"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/storage"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/store"
)

const testSecret = "test-secret"

type env struct {
	store       *store.Store
	users       UserService
	courses     CourseService
	enrollments EnrollmentService
	assignments AssignmentService
	grades      GradeService
}

// newEnv wires every service over a store primed with one sentinel user so
// default seeding stays out of the way.
func newEnv(t *testing.T) *env {
	t.Helper()

	fs := storage.New(t.TempDir(), zerolog.Nop())
	sentinel := &models.User{ID: "USR-sentinel", Username: "sentinel", Email: "sentinel@university.edu", Role: models.RoleAdmin, Status: models.UserStatusActive}
	require.NoError(t, fs.Save(storage.KindUsers, sentinel.ID, sentinel))

	gen := identifier.New()
	st := store.Open(fs, gen, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.Nop()

	return &env{
		store:       st,
		users:       NewUserService(st, gen, validate, testSecret, time.Hour, logger),
		courses:     NewCourseService(st, gen, validate, logger),
		enrollments: NewEnrollmentService(st, gen, logger),
		assignments: NewAssignmentService(st, gen, validate, logger),
		grades:      NewGradeService(st, gen, validate, logger),
	}
}

func (e *env) registerStudent(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.users.Register(dto.RegisterUserRequest{
		Username:  username,
		Email:     username + "@university.edu",
		Password:  "sup3rsecret",
		FirstName: "Test",
		LastName:  "Student",
		Role:      "student",
		Student:   &dto.StudentInput{Department: "CS", Semester: 2},
	})
	require.NoError(t, err)
	return user
}

func (e *env) registerTeacher(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.users.Register(dto.RegisterUserRequest{
		Username:  username,
		Email:     username + "@university.edu",
		Password:  "sup3rsecret",
		FirstName: "Test",
		LastName:  "Teacher",
		Role:      "teacher",
		Teacher:   &dto.TeacherInput{Department: "CS"},
	})
	require.NoError(t, err)
	return user
}

func (e *env) createCourse(t *testing.T, teacherID, code string, maxStudents int) *models.Course {
	t.Helper()
	course, err := e.courses.Create(dto.CourseCreateRequest{
		Code:        code,
		Title:       "Course " + code,
		Credits:     3,
		Department:  "CS",
		Semester:    2,
		TeacherID:   teacherID,
		MaxStudents: maxStudents,
	})
	require.NoError(t, err)
	return course
}

func (e *env) enroll(t *testing.T, studentID, courseID string) {
	t.Helper()
	_, err := e.enrollments.Enroll(studentID, courseID)
	require.NoError(t, err)
}

func (e *env) createAssignment(t *testing.T, courseID string, maxScore float64) *models.Assignment {
	t.Helper()
	assignment, err := e.assignments.Create(dto.AssignmentCreateRequest{
		CourseID: courseID,
		Title:    "Problem Set",
		Type:     "HOMEWORK",
		MaxScore: maxScore,
		Weight:   0.2,
		DueDate:  time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	return assignment
}
