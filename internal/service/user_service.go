package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"library-api/internal/domain"
	"library-api/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden indicates the caller may not act on the target account.
	ErrForbidden = errors.New("forbidden")
)

const minPasswordLength = 8

var validate = validator.New()

// UserUpdate holds the account fields a caller may change. Nil pointers leave the field as is.
type UserUpdate struct {
	UserName string
	Email    string
	Password *string
	Role     *domain.Role
	IsActive *bool
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, userName, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, actor domain.Principal, id int64, in UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Principal, id int64) error
	// EnsureAdmin creates an Admin account for email unless one already exists.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type userService struct {
	users  repository.UserRepository
	clock  func() time.Time
	logger logrus.FieldLogger
}

func NewUserService(users repository.UserRepository, logger logrus.FieldLogger) UserService {
	if logger == nil {
		logger = logrus.New()
	}
	return &userService{
		users:  users,
		clock:  time.Now,
		logger: logger,
	}
}

func (s *userService) Register(ctx context.Context, userName, email, password string) (*domain.User, error) {
	return s.create(ctx, userName, email, password, domain.RoleUser)
}

func (s *userService) create(ctx context.Context, userName, email, password string, role domain.Role) (*domain.User, error) {
	userName = strings.TrimSpace(userName)
	email = strings.TrimSpace(email)

	if err := validateAccount(userName, email); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    s.clock().UTC(),
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.clock().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("record last login")
	} else {
		user.LastLogin = &now
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, domain.InvalidArgumentf("invalid user id %d", id)
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = *sanitizeUser(&users[i])
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, actor domain.Principal, id int64, in UserUpdate) (*domain.User, error) {
	if !actor.CanAccessUser(id) {
		return nil, ErrForbidden
	}
	if !actor.IsAdmin() && (in.Role != nil || in.IsActive != nil) {
		return nil, fmt.Errorf("only admins may change role or active flag: %w", ErrForbidden)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.UserName = strings.TrimSpace(in.UserName)
	user.Email = strings.TrimSpace(in.Email)
	if err := validateAccount(user.UserName, user.Email); err != nil {
		return nil, err
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, domain.InvalidArgumentf("unknown role %q", *in.Role)
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	if !actor.CanAccessUser(id) {
		return ErrForbidden
	}
	return s.users.Delete(ctx, id)
}

func (s *userService) EnsureAdmin(ctx context.Context, email, password string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != domain.RoleAdmin {
			s.logger.WithField("email", email).Warn("bootstrap admin email belongs to a non-admin account")
		}
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}
	if _, err := s.create(ctx, name, email, password, domain.RoleAdmin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	s.logger.WithField("email", email).Info("bootstrap admin created")
	return nil
}

func validateAccount(userName, email string) error {
	if userName == "" {
		return domain.InvalidArgumentf("user name is required")
	}
	if len(userName) > maxNameLength {
		return domain.InvalidArgumentf("user name must be at most %d characters", maxNameLength)
	}
	if email == "" {
		return domain.InvalidArgumentf("email is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return domain.InvalidArgumentf("email %q is not valid", email)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", domain.InvalidArgumentf("password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
