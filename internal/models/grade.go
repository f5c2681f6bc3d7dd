package models

import "time"

// Grade records a scored submission for one student on one assignment.
type Grade struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	CourseID     string    `json:"course_id"`
	AssignmentID string    `json:"assignment_id"`
	Score        float64   `json:"score"`
	MaxScore     float64   `json:"max_score"`
	Percentage   float64   `json:"percentage"`
	LetterGrade  string    `json:"letter_grade"`
	Feedback     string    `json:"feedback,omitempty"`
	GradedBy     string    `json:"graded_by,omitempty"`
	GradedAt     time.Time `json:"graded_at"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EntityID returns the record key used by the store and the file name on disk.
func (g *Grade) EntityID() string { return g.ID }

// Recalculate derives Percentage and LetterGrade from Score and MaxScore.
func (g *Grade) Recalculate() {
	if g.MaxScore <= 0 {
		g.Percentage = 0
		g.LetterGrade = LetterGradeFor(0)
		return
	}
	g.Percentage = g.Score / g.MaxScore * 100
	g.LetterGrade = LetterGradeFor(g.Percentage)
}

// LetterGradeFor maps a percentage onto the institutional letter scale.
func LetterGradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 85:
		return "A"
	case percentage >= 75:
		return "B+"
	case percentage >= 70:
		return "B"
	case percentage >= 65:
		return "C+"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}
