package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Session is the decoded content of an auth-token.
type Session struct {
	UserID    uuid.UUID
	Email     string
	Username  string
	ExpiresAt time.Time
}

type AuthService struct {
	db        *gorm.DB
	cfg       *config.Config
	dummyHash []byte
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	// Compared against when the email is unknown so both login failures
	// cost one bcrypt comparison.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("portfolio-login-placeholder"), cfg.BcryptCost)
	return &AuthService{db: db, cfg: cfg, dummyHash: dummy}
}

// Register validates in a fixed order (presence, email, password, username)
// and leaves uniqueness to the unique indexes on users.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	if blank(name, email, username, req.Password) {
		return nil, invalid("All fields are required")
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	displayUsername := strings.TrimSpace(req.DisplayUsername)
	if displayUsername == "" {
		displayUsername = username
	}

	user := models.User{
		ID:              uuid.New(),
		Name:            name,
		Email:           email,
		Username:        username,
		DisplayUsername: displayUsername,
		Password:        string(hash),
		IsActive:        true,
		About:           datatypes.NewJSONType(models.About{Email: email}),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, s.conflictFor(ctx, email, username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.Registrations.Inc()
	return &user, nil
}

// conflictFor names the field that collided after a unique violation.
// Email is reported first, matching the validation order.
func (s *AuthService) conflictFor(ctx context.Context, email, username string) error {
	taken, err := s.exists(ctx, "email = ?", email)
	if err != nil {
		return fmt.Errorf("failed to resolve registration conflict: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	taken, err = s.exists(ctx, "username = ?", username)
	if err != nil {
		return fmt.Errorf("failed to resolve registration conflict: %w", err)
	}
	if taken {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

func (s *AuthService) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where(query, args...).Count(&count).Error
	return count > 0, err
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, invalid("Email and password are required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			metrics.Logins.WithLabelValues("failure").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		metrics.Logins.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	metrics.Logins.WithLabelValues("success").Inc()
	return &user, nil
}

// CheckUsername applies the registration rules, then reports availability.
func (s *AuthService) CheckUsername(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, invalid("Username is required")
	}
	if err := ValidateUsername(username); err != nil {
		return false, err
	}
	taken, err := s.exists(ctx, "username = ?", username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return !taken, nil
}

func (s *AuthService) CheckEmail(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, invalid("Email is required")
	}
	if err := ValidateEmail(email); err != nil {
		return false, err
	}
	taken, err := s.exists(ctx, "email = ?", email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return !taken, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if current == "" || next == "" {
		return invalid("Current and new password are required")
	}
	if err := ValidatePassword(next); err != nil {
		return err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":   string(hash),
			"updated_at": time.Now(),
		}).Error
}

// IssueToken signs a session token for user.
func (s *AuthService) IssueToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.JWTExpiry)

	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies signature and expiry of a session token.
func (s *AuthService) ParseToken(raw string) (*Session, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session := &Session{UserID: userID}
	session.Email, _ = claims["email"].(string)
	session.Username, _ = claims["username"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
	}
	return session, nil
}

// SessionUser resolves a token to its user. A valid token whose user no
// longer exists is treated as no session.
func (s *AuthService) SessionUser(ctx context.Context, raw string) (*models.User, error) {
	session, err := s.ParseToken(raw)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return &user, nil
}
