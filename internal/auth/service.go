package auth

import (
	"context"
	"strings"
	"time"

	"karoo-backend/internal/access"
	"karoo-backend/internal/models"
	"karoo-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenPrefix = "pwreset:"
const resetTokenTTL = time.Hour

// SignupInput for account creation.
type SignupInput struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUserShape is the object stored in session and returned by /me.
type SessionUserShape struct {
	UserID   string `json:"user_id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ResetSender dispatches password-reset emails. Nil disables dispatch.
type ResetSender interface {
	SendPasswordReset(ctx context.Context, toEmail, resetLink string) error
}

// Service implements signup/login/reset against the users table and Redis.
type Service struct {
	DB           *gorm.DB
	Rdb          *redis.Client
	Emails       ResetSender
	ResetBaseURL string
}

// Signup creates a user account with role "user".
func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}
	fullname := strings.TrimSpace(in.Fullname)
	if !validation.IsValidFullname(fullname) {
		return nil, ErrInvalidFullname
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" && !validation.IsValidPhone(phone) {
		return nil, ErrInvalidPhone
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))

	var existing models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Fullname:     fullname,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         access.RoleUser.String(),
		IsActive:     true,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// Login finds a user by email and verifies the password.
func (s *Service) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", strings.ToLower(in.Email)).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return &u, nil
}

// SessionShape builds the session claim set for a user row. A legacy row
// without a role column is claimed as "user".
func SessionShape(u *models.User) SessionUserShape {
	return SessionUserShape{
		UserID:   u.UserID.String(),
		Fullname: u.Fullname,
		Email:    u.Email,
		Role:     access.RoleForAccount(u.Role).String(),
	}
}

// VerifyUser validates a session user object and returns the /me shape.
func VerifyUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return &SessionUserShape{
		UserID:   userID,
		Fullname: str(m["fullname"]),
		Email:    str(m["email"]),
		Role:     str(m["role"]),
	}, nil
}

// RequestPasswordReset stores a one-hour token in Redis and dispatches the
// reset email. Unknown emails return nil so callers cannot probe accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if !validation.IsValidEmail(email) {
		return ErrInvalidEmail
	}
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	token := uuid.New().String()
	if s.Rdb != nil {
		if err := s.Rdb.Set(ctx, resetTokenPrefix+token, u.UserID.String(), resetTokenTTL).Err(); err != nil {
			return err
		}
	}
	if s.Emails != nil {
		link := strings.TrimRight(s.ResetBaseURL, "/") + "/reset-password?token=" + token
		return s.Emails.SendPasswordReset(ctx, u.Email, link)
	}
	return nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
