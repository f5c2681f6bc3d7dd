package models

import "time"

// Course represents a catalogue entry that students enrol into.
type Course struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	Title             string    `json:"title"`
	Credits           int       `json:"credits"`
	Department        string    `json:"department"`
	Semester          int       `json:"semester"`
	TeacherID         string    `json:"teacher_id"`
	MaxStudents       int       `json:"max_students"`
	CurrentEnrollment int       `json:"current_enrollment"`
	Active            bool      `json:"active"`
	Schedule          string    `json:"schedule,omitempty"`
	Classroom         string    `json:"classroom,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// EntityID returns the record key used by the store and the file name on disk.
func (c *Course) EntityID() string { return c.ID }

// CanEnroll reports whether the course accepts one more student.
func (c *Course) CanEnroll() bool {
	return c.Active && c.CurrentEnrollment < c.MaxStudents
}

// IsFull reports whether the enrollment counter has reached capacity.
func (c *Course) IsFull() bool { return c.CurrentEnrollment >= c.MaxStudents }
