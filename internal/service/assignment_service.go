package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/dto"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/identifier"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/models"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/store"
)

var (
	// ErrAssignmentNotFound indicates the requested assignment does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrSubmissionNotAllowed indicates the assignment is closed, overdue or already submitted to.
	ErrSubmissionNotAllowed = errors.New("submission not allowed")
	// ErrScoreOutOfRange indicates a score outside [0, max score].
	ErrScoreOutOfRange = errors.New("score out of range")
	// ErrAssignmentHasSubmissions indicates the assignment cannot be deleted while submissions exist.
	ErrAssignmentHasSubmissions = errors.New("assignment has submissions")
	// ErrNotEnrolled indicates the student has no active enrollment in the assignment's course.
	ErrNotEnrolled = errors.New("student not enrolled in course")
)

// AssignmentService exposes assignment and submission use cases.
type AssignmentService interface {
	Create(payload dto.AssignmentCreateRequest) (*models.Assignment, error)
	Get(id string) (*models.Assignment, error)
	ListByCourse(courseID string) []*models.Assignment
	Submit(assignmentID string, payload dto.SubmissionRequest) (*models.Grade, error)
	Close(id string) error
	Archive(id string) error
	Delete(id string) error
}

type assignmentService struct {
	store     *store.Store
	gen       *identifier.Generator
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(st *store.Store, gen *identifier.Generator, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		store:     st,
		gen:       gen,
		validator: validate,
		logger:    logger.With().Str("component", "assignment_service").Logger(),
		now:       time.Now,
	}
}

func (s *assignmentService) Create(payload dto.AssignmentCreateRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	if _, ok := s.store.Course(payload.CourseID); !ok {
		return nil, ErrCourseNotFound
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due date: %w", err)
	}
	if !dueDate.After(s.now()) {
		return nil, fmt.Errorf("due date must be in the future")
	}

	now := s.now()
	assignment := &models.Assignment{
		ID:                   s.gen.Next(identifier.PrefixAssignment),
		CourseID:             payload.CourseID,
		Title:                payload.Title,
		Description:          payload.Description,
		Type:                 payload.Type,
		MaxScore:             payload.MaxScore,
		Weight:               payload.Weight,
		DueDate:              dueDate,
		Status:               models.AssignmentStatusActive,
		SubmissionStudentIDs: []string{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	s.store.SaveAssignment(assignment)
	s.logger.Info().Str("assignment_id", assignment.ID).Str("course_id", assignment.CourseID).Msg("assignment created")

	return assignment, nil
}

func (s *assignmentService) Get(id string) (*models.Assignment, error) {
	assignment, ok := s.store.Assignment(id)
	if !ok {
		return nil, ErrAssignmentNotFound
	}
	return assignment, nil
}

func (s *assignmentService) ListByCourse(courseID string) []*models.Assignment {
	var out []*models.Assignment
	for _, a := range s.store.Assignments() {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out
}

// Submit records a scored submission. The student must hold an active
// enrollment in the assignment's course and be allowed to submit right now,
// and the score must fit the assignment's scale; on success the student joins
// the submission set and the matching grade is created or updated. The
// enrollment gate keeps the submission set within the enrolled population.
func (s *assignmentService) Submit(assignmentID string, payload dto.SubmissionRequest) (*models.Grade, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	assignment, ok := s.store.Assignment(assignmentID)
	if !ok {
		return nil, ErrAssignmentNotFound
	}

	student, ok := s.store.User(payload.StudentID)
	if !ok {
		return nil, ErrUserNotFound
	}
	if student.Role != models.RoleStudent {
		return nil, ErrNotAStudent
	}

	if !s.hasActiveEnrollment(payload.StudentID, assignment.CourseID) {
		return nil, ErrNotEnrolled
	}

	if payload.Score < 0 || payload.Score > assignment.MaxScore {
		return nil, ErrScoreOutOfRange
	}

	now := s.now()
	if !assignment.CanSubmit(payload.StudentID, now) {
		return nil, ErrSubmissionNotAllowed
	}

	assignment.RecordSubmission(payload.StudentID)
	assignment.UpdatedAt = now
	s.store.SaveAssignment(assignment)

	grade := s.findGrade(payload.StudentID, assignmentID)
	if grade == nil {
		grade = &models.Grade{
			ID:           s.gen.Next(identifier.PrefixGrade),
			StudentID:    payload.StudentID,
			CourseID:     assignment.CourseID,
			AssignmentID: assignmentID,
			CreatedAt:    now,
		}
	}
	grade.Score = payload.Score
	grade.MaxScore = assignment.MaxScore
	grade.Feedback = payload.Feedback
	grade.GradedBy = payload.GradedBy
	grade.GradedAt = now
	grade.UpdatedAt = now
	grade.Recalculate()
	s.store.SaveGrade(grade)

	s.logger.Info().Str("assignment_id", assignmentID).Str("student_id", payload.StudentID).Str("letter", grade.LetterGrade).Msg("submission recorded")
	return grade, nil
}

func (s *assignmentService) Close(id string) error {
	return s.setStatus(id, models.AssignmentStatusClosed)
}

func (s *assignmentService) Archive(id string) error {
	return s.setStatus(id, models.AssignmentStatusArchived)
}

func (s *assignmentService) setStatus(id, status string) error {
	assignment, ok := s.store.Assignment(id)
	if !ok {
		return ErrAssignmentNotFound
	}

	assignment.Status = status
	assignment.UpdatedAt = s.now()
	s.store.SaveAssignment(assignment)
	s.logger.Info().Str("assignment_id", id).Str("status", status).Msg("assignment status changed")

	return nil
}

func (s *assignmentService) Delete(id string) error {
	assignment, ok := s.store.Assignment(id)
	if !ok {
		return ErrAssignmentNotFound
	}
	if len(assignment.SubmissionStudentIDs) > 0 {
		return ErrAssignmentHasSubmissions
	}

	s.store.DeleteAssignment(id)
	s.logger.Info().Str("assignment_id", id).Msg("assignment deleted")

	return nil
}

func (s *assignmentService) hasActiveEnrollment(studentID, courseID string) bool {
	for _, e := range s.store.Enrollments() {
		if e.StudentID == studentID && e.CourseID == courseID && e.IsEnrolled() {
			return true
		}
	}
	return false
}

func (s *assignmentService) findGrade(studentID, assignmentID string) *models.Grade {
	for _, g := range s.store.Grades() {
		if g.StudentID == studentID && g.AssignmentID == assignmentID {
			return g
		}
	}
	return nil
}
