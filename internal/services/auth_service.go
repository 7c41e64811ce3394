package services

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/repositories"
	"seaferry/internal/utils"
)

// AuthService handles registration, login and the password-reset token flow.
// Reset tokens are stored as SHA-256 digests; the raw token only ever leaves
// through the reset link.
type AuthService struct {
	Users  repositories.UserRepository
	Resets repositories.PasswordResetRepository

	JWTSecret  []byte
	BcryptCost int
	TokenTTL   time.Duration

	RequestID string
	Now       func() time.Time
}

const resetTokenTTL = 30 * time.Minute

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return resetTokenTTL
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register creates a customer account and returns it with a session token.
func (s AuthService) Register(in RegisterInput) (models.User, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" {
		return models.User{}, "", domain.ValidationError{Field: "name", Msg: "required"}
	}
	if !strings.Contains(in.Email, "@") || strings.ContainsAny(in.Email, " \t") {
		return models.User{}, "", domain.ValidationError{Field: "email", Msg: "malformed email"}
	}
	if len(in.Password) < 8 {
		return models.User{}, "", domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}

	if _, err := s.Users.GetByEmail(in.Email); err == nil {
		return models.User{}, "", domain.ConflictError{Resource: "user", Msg: "email already registered"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", domain.InternalError{Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		Status:       "active",
	}
	id, err := s.Users.Create(user)
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}
	user.ID = id

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", id))
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s AuthService) Login(email, password string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Users.GetByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", domain.ValidationError{Msg: "invalid email or password"}
	}
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", domain.ValidationError{Msg: "invalid email or password"}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", user.ID))
	return user, token, nil
}

func (s AuthService) issueToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     s.now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	return signed, nil
}

func digestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ForgotPassword generates a reset token for the account. It succeeds even
// for unknown emails so the endpoint does not leak which addresses exist;
// delivery of the link is the mailer's concern and is logged only.
func (s AuthService) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Users.GetByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return domain.InternalError{Err: err}
	}
	token := hex.EncodeToString(raw)

	_, err = s.Resets.Create(models.PasswordResetToken{
		UserID:    user.ID,
		Digest:    digestToken(token),
		ExpiresAt: s.now().Add(s.tokenTTL()),
	})
	if err != nil {
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "password_reset_link", fmt.Sprintf("user_id=%d", user.ID))
	return nil
}

// ValidateResetToken reports whether token is outstanding and unexpired.
func (s AuthService) ValidateResetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ValidationError{Field: "token", Msg: "required"}
	}
	_, err := s.Resets.GetValid(digestToken(token), s.now())
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ValidationError{Field: "token", Msg: "invalid or expired"}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// ResetPassword consumes a valid token and replaces the user's password.
func (s AuthService) ResetPassword(token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ValidationError{Field: "token", Msg: "required"}
	}
	if len(password) < 8 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}

	rec, err := s.Resets.GetValid(digestToken(token), s.now())
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ValidationError{Field: "token", Msg: "invalid or expired"}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.Users.UpdatePassword(rec.UserID, string(hash)); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.Resets.MarkUsed(rec.ID); err != nil {
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "password_reset", fmt.Sprintf("user_id=%d", rec.UserID))
	return nil
}
