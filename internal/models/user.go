package models

import "time"

// Role discriminates the user variant stored in a record. It doubles as the
// JSON discriminator so a decoded user knows which profile payload to expect.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher || r == RoleAdmin
}

const (
	// UserStatusActive marks an account that may authenticate and act.
	UserStatusActive = "ACTIVE"
	// UserStatusInactive marks a deactivated account.
	UserStatusInactive = "INACTIVE"
)

// User is the shared identity record for every account variant. Exactly one
// of the profile pointers is non-nil and it must match Role.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Student *StudentProfile `json:"student,omitempty"`
	Teacher *TeacherProfile `json:"teacher,omitempty"`
	Admin   *AdminProfile   `json:"admin,omitempty"`
}

// StudentProfile carries the student-only fields.
type StudentProfile struct {
	StudentID          string   `json:"student_id"`
	Department         string   `json:"department"`
	Semester           int      `json:"semester"`
	CGPA               float64  `json:"cgpa"`
	EnrolledCourseIDs  []string `json:"enrolled_course_ids"`
	CompletedCourseIDs []string `json:"completed_course_ids"`
	CreditsCompleted   int      `json:"credits_completed"`
}

// TeacherProfile carries the teacher-only fields.
type TeacherProfile struct {
	EmployeeID        string   `json:"employee_id"`
	Department        string   `json:"department"`
	AssignedCourseIDs []string `json:"assigned_course_ids"`
}

// AdminProfile carries the admin-only fields.
type AdminProfile struct {
	AdminID     string   `json:"admin_id"`
	AccessLevel string   `json:"access_level"`
	Permissions []string `json:"permissions"`
}

// EntityID returns the record key used by the store and the file name on disk.
func (u *User) EntityID() string { return u.ID }

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool { return u.Status == UserStatusActive }

// IsEnrolledIn reports whether the student currently lists the course.
func (p *StudentProfile) IsEnrolledIn(courseID string) bool {
	for _, id := range p.EnrolledCourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// AddEnrolledCourse records a course in the enrolled set, once.
func (p *StudentProfile) AddEnrolledCourse(courseID string) {
	if p.IsEnrolledIn(courseID) {
		return
	}
	p.EnrolledCourseIDs = append(p.EnrolledCourseIDs, courseID)
}

// RemoveEnrolledCourse drops a course from the enrolled set if present.
func (p *StudentProfile) RemoveEnrolledCourse(courseID string) {
	for i, id := range p.EnrolledCourseIDs {
		if id == courseID {
			p.EnrolledCourseIDs = append(p.EnrolledCourseIDs[:i], p.EnrolledCourseIDs[i+1:]...)
			return
		}
	}
}

// CompleteCourse moves a course from the enrolled set to the completed set
// and credits the student.
func (p *StudentProfile) CompleteCourse(courseID string, credits int) {
	p.RemoveEnrolledCourse(courseID)
	for _, id := range p.CompletedCourseIDs {
		if id == courseID {
			return
		}
	}
	p.CompletedCourseIDs = append(p.CompletedCourseIDs, courseID)
	p.CreditsCompleted += credits
}

// HasAssignedCourse reports whether the teacher is assigned the course.
func (p *TeacherProfile) HasAssignedCourse(courseID string) bool {
	for _, id := range p.AssignedCourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// AssignCourse records a course on the teacher, once.
func (p *TeacherProfile) AssignCourse(courseID string) {
	if p.HasAssignedCourse(courseID) {
		return
	}
	p.AssignedCourseIDs = append(p.AssignedCourseIDs, courseID)
}

// UnassignCourse removes a course from the teacher's assignment list.
func (p *TeacherProfile) UnassignCourse(courseID string) {
	for i, id := range p.AssignedCourseIDs {
		if id == courseID {
			p.AssignedCourseIDs = append(p.AssignedCourseIDs[:i], p.AssignedCourseIDs[i+1:]...)
			return
		}
	}
}
