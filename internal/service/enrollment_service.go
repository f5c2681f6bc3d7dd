package service

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/identifier"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/models"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/store"
)

var (
	// ErrEnrollmentNotFound indicates no matching enrollment record exists.
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	// ErrNotAStudent indicates the user exists but is not a student account.
	ErrNotAStudent = errors.New("user is not a student")
	// ErrCourseFull indicates the course has reached its enrollment capacity.
	ErrCourseFull = errors.New("course is full or inactive")
	// ErrAlreadyEnrolled indicates an ENROLLED record already exists for the pair.
	ErrAlreadyEnrolled = errors.New("student already enrolled in course")
)

// EnrollmentService manages the student/course enrollment lifecycle.
type EnrollmentService interface {
	Enroll(studentID, courseID string) (*models.Enrollment, error)
	Drop(studentID, courseID string) error
	Complete(studentID, courseID string, finalScore float64) (*models.Enrollment, error)
	Get(id string) (*models.Enrollment, error)
	ListByStudent(studentID string) []*models.Enrollment
	ListByCourse(courseID string) []*models.Enrollment
}

type enrollmentService struct {
	store  *store.Store
	gen    *identifier.Generator
	logger zerolog.Logger
	now    func() time.Time
}

// NewEnrollmentService builds a new enrollment service.
func NewEnrollmentService(st *store.Store, gen *identifier.Generator, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		store:  st,
		gen:    gen,
		logger: logger.With().Str("component", "enrollment_service").Logger(),
		now:    time.Now,
	}
}

// Enroll creates an ENROLLED record, increments the course counter and adds
// the course to the student's enrolled set. The three writes are individually
// persisted but not atomic as a unit: two concurrent enrolls on the same
// course can both pass the capacity check.
func (s *enrollmentService) Enroll(studentID, courseID string) (*models.Enrollment, error) {
	student, ok := s.store.User(studentID)
	if !ok {
		return nil, ErrUserNotFound
	}
	if student.Role != models.RoleStudent || student.Student == nil {
		return nil, ErrNotAStudent
	}

	course, ok := s.store.Course(courseID)
	if !ok {
		return nil, ErrCourseNotFound
	}
	if !course.CanEnroll() {
		return nil, ErrCourseFull
	}

	if _, ok := s.activeEnrollment(studentID, courseID); ok {
		return nil, ErrAlreadyEnrolled
	}

	now := s.now()
	enrollment := &models.Enrollment{
		ID:         s.gen.Next(identifier.PrefixEnrollment),
		StudentID:  studentID,
		CourseID:   courseID,
		Status:     models.EnrollmentStatusEnrolled,
		EnrolledAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.store.SaveEnrollment(enrollment)

	course.CurrentEnrollment++
	course.UpdatedAt = now
	s.store.SaveCourse(course)

	student.Student.AddEnrolledCourse(courseID)
	student.UpdatedAt = now
	s.store.SaveUser(student)

	s.logger.Info().Str("student_id", studentID).Str("course_id", courseID).Int("enrolled", course.CurrentEnrollment).Msg("student enrolled")
	return enrollment, nil
}

func (s *enrollmentService) Drop(studentID, courseID string) error {
	enrollment, ok := s.activeEnrollment(studentID, courseID)
	if !ok {
		return ErrEnrollmentNotFound
	}

	now := s.now()
	enrollment.Status = models.EnrollmentStatusDropped
	enrollment.UpdatedAt = now
	s.store.SaveEnrollment(enrollment)

	if course, ok := s.store.Course(courseID); ok {
		if course.CurrentEnrollment > 0 {
			course.CurrentEnrollment--
		}
		course.UpdatedAt = now
		s.store.SaveCourse(course)
	}

	if student, ok := s.store.User(studentID); ok && student.Student != nil {
		student.Student.RemoveEnrolledCourse(courseID)
		student.UpdatedAt = now
		s.store.SaveUser(student)
	}

	s.logger.Info().Str("student_id", studentID).Str("course_id", courseID).Msg("student dropped course")
	return nil
}

// Complete finishes an enrollment with a final score out of 100, credits the
// student and records the letter grade on the enrollment row.
func (s *enrollmentService) Complete(studentID, courseID string, finalScore float64) (*models.Enrollment, error) {
	if finalScore < 0 || finalScore > 100 {
		return nil, ErrScoreOutOfRange
	}
	enrollment, ok := s.activeEnrollment(studentID, courseID)
	if !ok {
		return nil, ErrEnrollmentNotFound
	}

	now := s.now()
	enrollment.Status = models.EnrollmentStatusCompleted
	enrollment.CompletedAt = &now
	enrollment.FinalScore = finalScore
	enrollment.Grade = models.LetterGradeFor(finalScore)
	enrollment.UpdatedAt = now
	s.store.SaveEnrollment(enrollment)

	credits := 0
	if course, ok := s.store.Course(courseID); ok {
		credits = course.Credits
	}

	if student, ok := s.store.User(studentID); ok && student.Student != nil {
		student.Student.CompleteCourse(courseID, credits)
		student.UpdatedAt = now
		s.store.SaveUser(student)
	}

	s.logger.Info().Str("student_id", studentID).Str("course_id", courseID).Str("grade", enrollment.Grade).Msg("enrollment completed")
	return enrollment, nil
}

func (s *enrollmentService) Get(id string) (*models.Enrollment, error) {
	enrollment, ok := s.store.Enrollment(id)
	if !ok {
		return nil, ErrEnrollmentNotFound
	}
	return enrollment, nil
}

func (s *enrollmentService) ListByStudent(studentID string) []*models.Enrollment {
	var out []*models.Enrollment
	for _, e := range s.store.Enrollments() {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out
}

func (s *enrollmentService) ListByCourse(courseID string) []*models.Enrollment {
	var out []*models.Enrollment
	for _, e := range s.store.Enrollments() {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out
}

func (s *enrollmentService) activeEnrollment(studentID, courseID string) (*models.Enrollment, bool) {
	for _, e := range s.store.Enrollments() {
		if e.StudentID == studentID && e.CourseID == courseID && e.IsEnrolled() {
			return e, true
		}
	}
	return nil, false
}
