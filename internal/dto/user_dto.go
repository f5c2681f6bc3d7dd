package dto

// RegisterUserRequest describes the payload for creating a new account.
// Exactly one of the profile payloads must be set, matching Role.
type RegisterUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"omitempty,min=7"`
	Role      string `json:"role" validate:"required,oneof=student teacher admin"`

	Student *StudentInput `json:"student,omitempty" validate:"omitempty"`
	Teacher *TeacherInput `json:"teacher,omitempty" validate:"omitempty"`
	Admin   *AdminInput   `json:"admin,omitempty" validate:"omitempty"`
}

// StudentInput carries the student-specific registration fields.
type StudentInput struct {
	Department string `json:"department" validate:"required"`
	Semester   int    `json:"semester" validate:"gte=1,lte=12"`
}

// TeacherInput carries the teacher-specific registration fields.
type TeacherInput struct {
	Department string `json:"department" validate:"required"`
}

// AdminInput carries the admin-specific registration fields.
type AdminInput struct {
	AccessLevel string   `json:"access_level" validate:"required"`
	Permissions []string `json:"permissions"`
}

// UserUpdateRequest describes a partial update to profile fields. Password
// and creation timestamp are never touched through this payload.
type UserUpdateRequest struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	FirstName  *string `json:"first_name" validate:"omitempty"`
	LastName   *string `json:"last_name" validate:"omitempty"`
	Phone      *string `json:"phone" validate:"omitempty,min=7"`
	Department *string `json:"department" validate:"omitempty"`
	Semester   *int    `json:"semester" validate:"omitempty,gte=1,lte=12"`
}
