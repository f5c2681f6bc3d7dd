package dto

// AssignmentCreateRequest describes the payload for creating an assignment.
type AssignmentCreateRequest struct {
	CourseID    string  `json:"course_id" validate:"required"`
	Title       string  `json:"title" validate:"required,min=3"`
	Description string  `json:"description"`
	Type        string  `json:"type" validate:"required,oneof=HOMEWORK QUIZ PROJECT EXAM"`
	MaxScore    float64 `json:"max_score" validate:"required,gt=0"`
	Weight      float64 `json:"weight" validate:"gte=0,lte=1"`
	DueDate     string  `json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// SubmissionRequest describes a scored submission by one student.
type SubmissionRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	Score     float64 `json:"score" validate:"gte=0"`
	Feedback  string  `json:"feedback"`
	GradedBy  string  `json:"graded_by"`
}
