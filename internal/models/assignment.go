package models

import "time"

const (
	// AssignmentStatusActive accepts submissions until the due date.
	AssignmentStatusActive = "ACTIVE"
	// AssignmentStatusClosed rejects further submissions.
	AssignmentStatusClosed = "SUBMISSION_CLOSED"
	// AssignmentStatusArchived marks an assignment kept for records only.
	AssignmentStatusArchived = "ARCHIVED"
)

// Assignment represents graded coursework attached to a course.
type Assignment struct {
	ID                   string    `json:"id"`
	CourseID             string    `json:"course_id"`
	Title                string    `json:"title"`
	Description          string    `json:"description,omitempty"`
	Type                 string    `json:"type"`
	MaxScore             float64   `json:"max_score"`
	Weight               float64   `json:"weight"`
	DueDate              time.Time `json:"due_date"`
	Status               string    `json:"status"`
	SubmissionStudentIDs []string  `json:"submission_student_ids"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// EntityID returns the record key used by the store and the file name on disk.
func (a *Assignment) EntityID() string { return a.ID }

// IsPastDue reports whether the deadline has already passed.
func (a *Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}

// HasSubmission reports whether the student already submitted.
func (a *Assignment) HasSubmission(studentID string) bool {
	for _, id := range a.SubmissionStudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// CanSubmit reports whether the student may submit right now: the assignment
// must be active, not overdue, and the student must not have submitted before.
func (a *Assignment) CanSubmit(studentID string, now time.Time) bool {
	return a.Status == AssignmentStatusActive && !a.IsPastDue(now) && !a.HasSubmission(studentID)
}

// RecordSubmission appends the student to the submission set, once.
func (a *Assignment) RecordSubmission(studentID string) {
	if a.HasSubmission(studentID) {
		return
	}
	a.SubmissionStudentIDs = append(a.SubmissionStudentIDs, studentID)
}
