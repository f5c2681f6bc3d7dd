package models

import "time"

const (
	// EnrollmentStatusEnrolled marks an active enrollment.
	EnrollmentStatusEnrolled = "ENROLLED"
	// EnrollmentStatusDropped marks an enrollment the student withdrew from.
	EnrollmentStatusDropped = "DROPPED"
	// EnrollmentStatusCompleted marks a finished enrollment with a final grade.
	EnrollmentStatusCompleted = "COMPLETED"
)

// Enrollment links a student to a course. At most one ENROLLED record may
// exist per (student, course) pair at any time.
type Enrollment struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"student_id"`
	CourseID    string     `json:"course_id"`
	Status      string     `json:"status"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Grade       string     `json:"grade,omitempty"`
	FinalScore  float64    `json:"final_score"`
	Attendance  float64    `json:"attendance"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EntityID returns the record key used by the store and the file name on disk.
func (e *Enrollment) EntityID() string { return e.ID }

// IsEnrolled reports whether the record is currently active.
func (e *Enrollment) IsEnrolled() bool { return e.Status == EnrollmentStatusEnrolled }
