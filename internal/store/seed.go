package store

import (
	"time"

	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/identifier"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/models"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/pkg/password"
)

// seedDefaults writes one record of each kind so a fresh installation has an
// admin to log in with and sample data to explore.
func (s *Store) seedDefaults(gen *identifier.Generator) {
	now := time.Now()

	hash, err := password.Hash("changeme123")
	if err != nil {
		s.logger.Error().Err(err).Msg("seed password hash failed")
		return
	}

	admin := &models.User{
		ID:           gen.Next(identifier.PrefixUser),
		Username:     "admin",
		Email:        "admin@university.edu",
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Administrator",
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
		Admin: &models.AdminProfile{
			AdminID:     gen.Next(identifier.PrefixAdmin),
			AccessLevel: "FULL",
			Permissions: []string{"users", "courses", "grades"},
		},
	}

	teacher := &models.User{
		ID:           gen.Next(identifier.PrefixUser),
		Username:     "jsmith",
		Email:        "j.smith@university.edu",
		PasswordHash: hash,
		FirstName:    "Jane",
		LastName:     "Smith",
		Role:         models.RoleTeacher,
		Status:       models.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
		Teacher: &models.TeacherProfile{
			EmployeeID: gen.Next(identifier.PrefixTeacher),
			Department: "Computer Science",
		},
	}

	student := &models.User{
		ID:           gen.Next(identifier.PrefixUser),
		Username:     "mlopez",
		Email:        "m.lopez@university.edu",
		PasswordHash: hash,
		FirstName:    "Maria",
		LastName:     "Lopez",
		Role:         models.RoleStudent,
		Status:       models.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
		Student: &models.StudentProfile{
			StudentID:  gen.Next(identifier.PrefixStudent),
			Department: "Computer Science",
			Semester:   3,
		},
	}

	course := &models.Course{
		ID:          gen.Next(identifier.PrefixCourse),
		Code:        "CS101",
		Title:       "Introduction to Programming",
		Credits:     3,
		Department:  "Computer Science",
		Semester:    3,
		TeacherID:   teacher.ID,
		MaxStudents: 40,
		Active:      true,
		Schedule:    "Mon/Wed 10:00-11:30",
		Classroom:   "B-204",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	teacher.Teacher.AssignCourse(course.ID)

	enrollment := &models.Enrollment{
		ID:         gen.Next(identifier.PrefixEnrollment),
		StudentID:  student.ID,
		CourseID:   course.ID,
		Status:     models.EnrollmentStatusEnrolled,
		EnrolledAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	course.CurrentEnrollment = 1
	student.Student.AddEnrolledCourse(course.ID)

	assignment := &models.Assignment{
		ID:        gen.Next(identifier.PrefixAssignment),
		CourseID:  course.ID,
		Title:     "Problem Set 1",
		Type:      "HOMEWORK",
		MaxScore:  100,
		Weight:    0.1,
		DueDate:   now.AddDate(0, 0, 14),
		Status:    models.AssignmentStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	grade := &models.Grade{
		ID:           gen.Next(identifier.PrefixGrade),
		StudentID:    student.ID,
		CourseID:     course.ID,
		AssignmentID: assignment.ID,
		Score:        88,
		MaxScore:     100,
		GradedBy:     teacher.ID,
		GradedAt:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	grade.Recalculate()

	s.SaveUser(admin)
	s.SaveUser(teacher)
	s.SaveUser(student)
	s.SaveCourse(course)
	s.SaveEnrollment(enrollment)
	s.SaveAssignment(assignment)
	s.SaveGrade(grade)

	s.logger.Info().Msg("empty store seeded with default records")
}
