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

// ErrGradeNotFound indicates the requested grade does not exist.
var ErrGradeNotFound = errors.New("grade not found")

// GradeService exposes grading and reporting use cases.
type GradeService interface {
	Record(payload dto.GradeRequest) (*models.Grade, error)
	Update(id string, payload dto.GradeUpdateRequest) (*models.Grade, error)
	Get(id string) (*models.Grade, error)
	ListByStudent(studentID string) []*models.Grade
	ListByAssignment(assignmentID string) []*models.Grade
	PublishByAssignment(assignmentID string) int
	StudentAverage(studentID string) (float64, bool)
	CourseAverage(courseID string) (float64, bool)
}

type gradeService struct {
	store     *store.Store
	gen       *identifier.Generator
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewGradeService builds a new grade service.
func NewGradeService(st *store.Store, gen *identifier.Generator, validate *validator.Validate, logger zerolog.Logger) GradeService {
	return &gradeService{
		store:     st,
		gen:       gen,
		validator: validate,
		logger:    logger.With().Str("component", "grade_service").Logger(),
		now:       time.Now,
	}
}

func (s *gradeService) Record(payload dto.GradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}
	if payload.Score > payload.MaxScore {
		return nil, ErrScoreOutOfRange
	}

	now := s.now()
	grade := &models.Grade{
		ID:           s.gen.Next(identifier.PrefixGrade),
		StudentID:    payload.StudentID,
		CourseID:     payload.CourseID,
		AssignmentID: payload.AssignmentID,
		Score:        payload.Score,
		MaxScore:     payload.MaxScore,
		Feedback:     payload.Feedback,
		GradedBy:     payload.GradedBy,
		GradedAt:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	grade.Recalculate()

	s.store.SaveGrade(grade)
	s.logger.Info().Str("grade_id", grade.ID).Str("letter", grade.LetterGrade).Msg("grade recorded")

	return grade, nil
}

func (s *gradeService) Update(id string, payload dto.GradeUpdateRequest) (*models.Grade, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	grade, ok := s.store.Grade(id)
	if !ok {
		return nil, ErrGradeNotFound
	}

	if payload.Score != nil {
		if *payload.Score > grade.MaxScore {
			return nil, ErrScoreOutOfRange
		}
		grade.Score = *payload.Score
		grade.Recalculate()
	}
	if payload.Feedback != nil {
		grade.Feedback = *payload.Feedback
	}
	if payload.GradedBy != nil {
		grade.GradedBy = *payload.GradedBy
	}

	now := s.now()
	grade.GradedAt = now
	grade.UpdatedAt = now
	s.store.SaveGrade(grade)
	s.logger.Info().Str("grade_id", id).Str("letter", grade.LetterGrade).Msg("grade updated")

	return grade, nil
}

func (s *gradeService) Get(id string) (*models.Grade, error) {
	grade, ok := s.store.Grade(id)
	if !ok {
		return nil, ErrGradeNotFound
	}
	return grade, nil
}

func (s *gradeService) ListByStudent(studentID string) []*models.Grade {
	var out []*models.Grade
	for _, g := range s.store.Grades() {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out
}

func (s *gradeService) ListByAssignment(assignmentID string) []*models.Grade {
	var out []*models.Grade
	for _, g := range s.store.Grades() {
		if g.AssignmentID == assignmentID {
			out = append(out, g)
		}
	}
	return out
}

// PublishByAssignment marks every grade for the assignment as published in a
// single pass and returns how many records changed.
func (s *gradeService) PublishByAssignment(assignmentID string) int {
	now := s.now()
	published := 0
	for _, g := range s.store.Grades() {
		if g.AssignmentID != assignmentID || g.Published {
			continue
		}
		g.Published = true
		g.UpdatedAt = now
		s.store.SaveGrade(g)
		published++
	}

	s.logger.Info().Str("assignment_id", assignmentID).Int("published", published).Msg("grades published")
	return published
}

// StudentAverage returns the mean percentage over the student's published
// grades. The second return value is false when no published grade exists.
func (s *gradeService) StudentAverage(studentID string) (float64, bool) {
	return s.average(func(g *models.Grade) bool { return g.StudentID == studentID })
}

// CourseAverage returns the mean percentage over the course's published
// grades. The second return value is false when no published grade exists.
func (s *gradeService) CourseAverage(courseID string) (float64, bool) {
	return s.average(func(g *models.Grade) bool { return g.CourseID == courseID })
}

func (s *gradeService) average(match func(*models.Grade) bool) (float64, bool) {
	var sum float64
	count := 0
	for _, g := range s.store.Grades() {
		if !g.Published || !match(g) || g.MaxScore <= 0 {
			continue
		}
		sum += g.Score / g.MaxScore * 100
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
