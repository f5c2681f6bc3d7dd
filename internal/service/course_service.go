package service

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/dto"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/identifier"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/models"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/store"
)

var (
	// ErrCourseNotFound indicates the requested course does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrDuplicateCourse indicates the course code is already taken.
	ErrDuplicateCourse = errors.New("course code already in use")
	// ErrInvalidTeacher indicates the referenced teacher does not exist or has the wrong role.
	ErrInvalidTeacher = errors.New("teacher not found or not a teacher account")
	// ErrCourseNotOpen indicates the course cannot accept enrollments.
	ErrCourseNotOpen = errors.New("course is not open for enrollment")
	// ErrCourseInUse indicates active enrollments still reference the course.
	ErrCourseInUse = errors.New("course still has enrolled students")
	// ErrCapacityBelowEnrollment indicates a capacity smaller than the current enrollment.
	ErrCapacityBelowEnrollment = errors.New("max students below current enrollment")
)

// CourseService exposes course catalogue use cases.
type CourseService interface {
	Create(payload dto.CourseCreateRequest) (*models.Course, error)
	Get(id string) (*models.Course, error)
	List() []*models.Course
	ListByTeacher(teacherID string) []*models.Course
	Update(id string, payload dto.CourseUpdateRequest) (*models.Course, error)
	Delete(id string) error
	Activate(id string) error
	Deactivate(id string) error
}

type courseService struct {
	store     *store.Store
	gen       *identifier.Generator
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCourseService builds a new course service.
func NewCourseService(st *store.Store, gen *identifier.Generator, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		store:     st,
		gen:       gen,
		validator: validate,
		logger:    logger.With().Str("component", "course_service").Logger(),
		now:       time.Now,
	}
}

func (s *courseService) Create(payload dto.CourseCreateRequest) (*models.Course, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	for _, existing := range s.store.Courses() {
		if existing.Code == payload.Code {
			return nil, ErrDuplicateCourse
		}
	}

	teacher, ok := s.store.User(payload.TeacherID)
	if !ok || teacher.Role != models.RoleTeacher || teacher.Teacher == nil {
		return nil, ErrInvalidTeacher
	}

	now := s.now()
	course := &models.Course{
		ID:          s.gen.Next(identifier.PrefixCourse),
		Code:        payload.Code,
		Title:       payload.Title,
		Credits:     payload.Credits,
		Department:  payload.Department,
		Semester:    payload.Semester,
		TeacherID:   teacher.ID,
		MaxStudents: payload.MaxStudents,
		Active:      true,
		Schedule:    payload.Schedule,
		Classroom:   payload.Classroom,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// A course that cannot take a single enrollment is rejected outright.
	if !course.CanEnroll() {
		return nil, ErrCourseNotOpen
	}

	s.store.SaveCourse(course)

	teacher.Teacher.AssignCourse(course.ID)
	teacher.UpdatedAt = now
	s.store.SaveUser(teacher)

	s.logger.Info().Str("course_id", course.ID).Str("code", course.Code).Msg("course created")
	return course, nil
}

func (s *courseService) Get(id string) (*models.Course, error) {
	course, ok := s.store.Course(id)
	if !ok {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (s *courseService) List() []*models.Course {
	return s.store.Courses()
}

func (s *courseService) ListByTeacher(teacherID string) []*models.Course {
	var out []*models.Course
	for _, c := range s.store.Courses() {
		if c.TeacherID == teacherID {
			out = append(out, c)
		}
	}
	return out
}

func (s *courseService) Update(id string, payload dto.CourseUpdateRequest) (*models.Course, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	course, ok := s.store.Course(id)
	if !ok {
		return nil, ErrCourseNotFound
	}

	if payload.Title != nil {
		course.Title = *payload.Title
	}
	if payload.Credits != nil {
		course.Credits = *payload.Credits
	}
	if payload.MaxStudents != nil {
		if *payload.MaxStudents < course.CurrentEnrollment {
			return nil, ErrCapacityBelowEnrollment
		}
		course.MaxStudents = *payload.MaxStudents
	}
	if payload.Schedule != nil {
		course.Schedule = *payload.Schedule
	}
	if payload.Classroom != nil {
		course.Classroom = *payload.Classroom
	}
	if payload.TeacherID != nil && *payload.TeacherID != course.TeacherID {
		next, ok := s.store.User(*payload.TeacherID)
		if !ok || next.Role != models.RoleTeacher || next.Teacher == nil {
			return nil, ErrInvalidTeacher
		}
		if prev, ok := s.store.User(course.TeacherID); ok && prev.Teacher != nil {
			prev.Teacher.UnassignCourse(course.ID)
			s.store.SaveUser(prev)
		}
		next.Teacher.AssignCourse(course.ID)
		s.store.SaveUser(next)
		course.TeacherID = next.ID
	}

	// CurrentEnrollment is owned by the enrollment workflow and survives
	// updates untouched.
	course.UpdatedAt = s.now()
	s.store.SaveCourse(course)
	s.logger.Info().Str("course_id", id).Msg("course updated")

	return course, nil
}

func (s *courseService) Delete(id string) error {
	course, ok := s.store.Course(id)
	if !ok {
		return ErrCourseNotFound
	}

	for _, e := range s.store.Enrollments() {
		if e.CourseID == id && e.IsEnrolled() {
			return ErrCourseInUse
		}
	}

	if teacher, ok := s.store.User(course.TeacherID); ok && teacher.Teacher != nil {
		teacher.Teacher.UnassignCourse(id)
		s.store.SaveUser(teacher)
	}

	s.store.DeleteCourse(id)
	s.logger.Info().Str("course_id", id).Msg("course deleted")

	return nil
}

func (s *courseService) Activate(id string) error {
	return s.setActive(id, true)
}

func (s *courseService) Deactivate(id string) error {
	return s.setActive(id, false)
}

func (s *courseService) setActive(id string, active bool) error {
	course, ok := s.store.Course(id)
	if !ok {
		return ErrCourseNotFound
	}

	course.Active = active
	course.UpdatedAt = s.now()
	s.store.SaveCourse(course)
	s.logger.Info().Str("course_id", id).Bool("active", active).Msg("course availability changed")

	return nil
}
