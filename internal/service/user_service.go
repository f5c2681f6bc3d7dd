package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/dto"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/identifier"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/models"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/store"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/pkg/password"
)

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser indicates the username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already in use")
	// ErrProfileMismatch indicates the profile payload does not match the role.
	ErrProfileMismatch = errors.New("profile payload does not match role")
	// ErrUserInUse indicates records still reference the user.
	ErrUserInUse = errors.New("user still referenced by enrollments or courses")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountInactive indicates the account is deactivated.
	ErrAccountInactive = errors.New("account is inactive")
)

// UserService exposes identity and account use cases. It is the only entry
// point the presentation layer may use for user records.
type UserService interface {
	Register(payload dto.RegisterUserRequest) (*models.User, error)
	Get(id string) (*models.User, error)
	List() []*models.User
	Update(id string, payload dto.UserUpdateRequest) (*models.User, error)
	ChangePassword(id, current, next string) error
	Delete(id string) error
	Activate(id string) error
	Deactivate(id string) error
	Authenticate(username, plainPassword string) (string, *models.User, error)
	CountByRole() map[models.Role]int
}

type userService struct {
	store     *store.Store
	gen       *identifier.Generator
	validator *validator.Validate
	secret    string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewUserService builds a new user service.
func NewUserService(st *store.Store, gen *identifier.Generator, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) UserService {
	return &userService{
		store:     st,
		gen:       gen,
		validator: validate,
		secret:    secret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "user_service").Logger(),
		now:       time.Now,
	}
}

func (s *userService) Register(payload dto.RegisterUserRequest) (*models.User, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	role := models.Role(payload.Role)
	if err := checkProfilePayload(role, payload); err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(payload.Username))
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	for _, existing := range s.store.Users() {
		if strings.EqualFold(existing.Username, username) || strings.EqualFold(existing.Email, email) {
			return nil, ErrDuplicateUser
		}
	}

	hash, err := password.Hash(payload.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:           s.gen.Next(identifier.PrefixUser),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Phone:        payload.Phone,
		Role:         role,
		Status:       models.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	switch role {
	case models.RoleStudent:
		user.Student = &models.StudentProfile{
			StudentID:  s.gen.Next(identifier.PrefixStudent),
			Department: payload.Student.Department,
			Semester:   payload.Student.Semester,
		}
	case models.RoleTeacher:
		user.Teacher = &models.TeacherProfile{
			EmployeeID: s.gen.Next(identifier.PrefixTeacher),
			Department: payload.Teacher.Department,
		}
	case models.RoleAdmin:
		user.Admin = &models.AdminProfile{
			AdminID:     s.gen.Next(identifier.PrefixAdmin),
			AccessLevel: payload.Admin.AccessLevel,
			Permissions: payload.Admin.Permissions,
		}
	}

	s.store.SaveUser(user)
	s.logger.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")

	return user, nil
}

func checkProfilePayload(role models.Role, payload dto.RegisterUserRequest) error {
	switch role {
	case models.RoleStudent:
		if payload.Student == nil {
			return ErrProfileMismatch
		}
	case models.RoleTeacher:
		if payload.Teacher == nil {
			return ErrProfileMismatch
		}
	case models.RoleAdmin:
		if payload.Admin == nil {
			return ErrProfileMismatch
		}
	default:
		return ErrProfileMismatch
	}
	return nil
}

func (s *userService) Get(id string) (*models.User, error) {
	user, ok := s.store.User(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) List() []*models.User {
	return s.store.Users()
}

func (s *userService) Update(id string, payload dto.UserUpdateRequest) (*models.User, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	user, ok := s.store.User(id)
	if !ok {
		return nil, ErrUserNotFound
	}

	if payload.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*payload.Email))
		for _, existing := range s.store.Users() {
			if existing.ID != id && strings.EqualFold(existing.Email, email) {
				return nil, ErrDuplicateUser
			}
		}
		user.Email = email
	}
	if payload.FirstName != nil {
		user.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		user.LastName = *payload.LastName
	}
	if payload.Phone != nil {
		user.Phone = *payload.Phone
	}
	if payload.Department != nil {
		switch {
		case user.Student != nil:
			user.Student.Department = *payload.Department
		case user.Teacher != nil:
			user.Teacher.Department = *payload.Department
		}
	}
	if payload.Semester != nil && user.Student != nil {
		user.Student.Semester = *payload.Semester
	}

	user.UpdatedAt = s.now()
	s.store.SaveUser(user)
	s.logger.Info().Str("user_id", id).Msg("user updated")

	return user, nil
}

func (s *userService) ChangePassword(id, current, next string) error {
	user, ok := s.store.User(id)
	if !ok {
		return ErrUserNotFound
	}
	if !password.Verify(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if len(next) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hash, err := password.Hash(next)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = s.now()
	s.store.SaveUser(user)
	s.logger.Info().Str("user_id", id).Msg("password changed")

	return nil
}

func (s *userService) Delete(id string) error {
	user, ok := s.store.User(id)
	if !ok {
		return ErrUserNotFound
	}

	switch user.Role {
	case models.RoleStudent:
		for _, e := range s.store.Enrollments() {
			if e.StudentID == id {
				return ErrUserInUse
			}
		}
	case models.RoleTeacher:
		if user.Teacher != nil && len(user.Teacher.AssignedCourseIDs) > 0 {
			return ErrUserInUse
		}
		for _, c := range s.store.Courses() {
			if c.TeacherID == id {
				return ErrUserInUse
			}
		}
	}

	s.store.DeleteUser(id)
	s.logger.Info().Str("user_id", id).Msg("user deleted")

	return nil
}

func (s *userService) Activate(id string) error {
	return s.setStatus(id, models.UserStatusActive)
}

func (s *userService) Deactivate(id string) error {
	return s.setStatus(id, models.UserStatusInactive)
}

func (s *userService) setStatus(id, status string) error {
	user, ok := s.store.User(id)
	if !ok {
		return ErrUserNotFound
	}

	user.Status = status
	user.UpdatedAt = s.now()
	s.store.SaveUser(user)
	s.logger.Info().Str("user_id", id).Str("status", status).Msg("user status changed")

	return nil
}

func (s *userService) Authenticate(username, plainPassword string) (string, *models.User, error) {
	var user *models.User
	for _, candidate := range s.store.Users() {
		if strings.EqualFold(candidate.Username, username) {
			user = candidate
			break
		}
	}
	if user == nil || !password.Verify(plainPassword, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return "", nil, ErrAccountInactive
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user authenticated")
	return token, user, nil
}

func (s *userService) CountByRole() map[models.Role]int {
	counts := make(map[models.Role]int)
	for _, user := range s.store.Users() {
		counts[user.Role]++
	}
	return counts
}
