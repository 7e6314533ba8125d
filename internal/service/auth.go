package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/silentvoice/anonymous_reporting_system/internal/config"
	"github.com/silentvoice/anonymous_reporting_system/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const adminRole = "admin"

// AdminRepository определяет контракт для работы с учётной записью администратора
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

// Identity - проверенная личность администратора, извлекаемая из токена
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// AuthService определяет контракт для аутентификации администратора
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.Admin, error)
	Verify(token string) (*Identity, error)
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	repo   AdminRepository
	logger *logrus.Logger
	cfg    *config.Config
}

func NewAuthService(repo AdminRepository, logger *logrus.Logger, cfg *config.Config) AuthService {
	return &authService{
		repo:   repo,
		logger: logger,
		cfg:    cfg,
	}
}

// Login проверяет учётные данные и выдаёт подписанный токен сессии.
// Перед проверкой гарантирует наличие администратора по умолчанию.
// Неизвестный email и неверный пароль дают одинаковую ошибку.
func (s *authService) Login(ctx context.Context, email, password string) (string, *models.Admin, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Login",
	})
	log.Info("Attempting admin login")

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("service: email and password are required: %w", ErrValidation)
	}

	if err := s.ensureDefaultAdmin(ctx); err != nil {
		log.WithError(err).Error("Failed to ensure default admin")
		return "", nil, fmt.Errorf("service: could not ensure default admin: %w", err)
	}

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Login attempt with unknown email")
			return "", nil, fmt.Errorf("service: %w", ErrInvalidCredentials)
		}
		log.WithError(err).Error("Failed to look up admin")
		return "", nil, fmt.Errorf("service: could not look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		log.Warn("Login attempt with wrong password")
		return "", nil, fmt.Errorf("service: %w", ErrInvalidCredentials)
	}

	token, err := s.issueToken(admin)
	if err != nil {
		log.WithError(err).Error("Failed to sign session token")
		return "", nil, fmt.Errorf("service: could not sign token: %w", err)
	}

	log.WithField("admin_id", admin.ID).Info("Admin logged in successfully")
	return token, admin, nil
}

// Verify разбирает и проверяет токен сессии, возвращая личность администратора.
// Любой дефект токена (подпись, срок, формат) даёт ErrInvalidToken.
func (s *authService) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("service: missing token: %w", ErrInvalidToken)
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("service: %w", ErrInvalidToken)
	}

	adminID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("service: malformed subject claim: %w", ErrInvalidToken)
	}

	return &Identity{
		ID:    adminID,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

// ensureDefaultAdmin идемпотентно создаёт администратора по умолчанию
func (s *authService) ensureDefaultAdmin(ctx context.Context) error {
	email := strings.ToLower(strings.TrimSpace(s.cfg.AdminEmail))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &models.Admin{
		Email:        email,
		PasswordHash: string(hash),
	}
	return s.repo.Create(ctx, admin)
}

func (s *authService) issueToken(admin *models.Admin) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email: admin.Email,
		Role:  adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}
