package dto

// CourseCreateRequest describes the payload for creating a course.
type CourseCreateRequest struct {
	Code        string `json:"code" validate:"required,min=2,max=16"`
	Title       string `json:"title" validate:"required,min=3"`
	Credits     int    `json:"credits" validate:"required,gte=1,lte=10"`
	Department  string `json:"department" validate:"required"`
	Semester    int    `json:"semester" validate:"gte=1,lte=12"`
	TeacherID   string `json:"teacher_id" validate:"required"`
	MaxStudents int    `json:"max_students" validate:"required,gte=1"`
	Schedule    string `json:"schedule"`
	Classroom   string `json:"classroom"`
}

// CourseUpdateRequest describes a partial update to a course. The enrollment
// counter is owned by the enrollment workflow and cannot be set here.
type CourseUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Credits     *int    `json:"credits" validate:"omitempty,gte=1,lte=10"`
	TeacherID   *string `json:"teacher_id" validate:"omitempty"`
	MaxStudents *int    `json:"max_students" validate:"omitempty,gte=1"`
	Schedule    *string `json:"schedule"`
	Classroom   *string `json:"classroom"`
}
