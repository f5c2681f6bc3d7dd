package dto

// GradeRequest describes the payload for recording a grade directly.
type GradeRequest struct {
	StudentID    string  `json:"student_id" validate:"required"`
	CourseID     string  `json:"course_id" validate:"required"`
	AssignmentID string  `json:"assignment_id" validate:"required"`
	Score        float64 `json:"score" validate:"gte=0"`
	MaxScore     float64 `json:"max_score" validate:"required,gt=0"`
	Feedback     string  `json:"feedback"`
	GradedBy     string  `json:"graded_by"`
}

// GradeUpdateRequest describes a partial update to an existing grade. Letter
// grade and percentage are derived and cannot be set directly.
type GradeUpdateRequest struct {
	Score    *float64 `json:"score" validate:"omitempty,gte=0"`
	Feedback *string  `json:"feedback"`
	GradedBy *string  `json:"graded_by"`
}
