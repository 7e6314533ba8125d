package service_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/silentvoice/anonymous_reporting_system/internal/config"
	"github.com/silentvoice/anonymous_reporting_system/internal/models"
	"github.com/silentvoice/anonymous_reporting_system/internal/service"
	"github.com/silentvoice/anonymous_reporting_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

// newTestAuthService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestAuthService(t *testing.T, cfg *config.Config) (service.AuthService, *mocks.MockAdminRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockAdminRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := service.NewAuthService(repoMock, logger, cfg)
	return svc, repoMock
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test_secret",
		TokenTTL:      time.Hour,
		AdminEmail:    "admin@campus.edu",
		AdminPassword: "password123",
	}
}

func mustHashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// loginDefaultAdmin прогоняет успешный вход и возвращает выданный токен
func loginDefaultAdmin(t *testing.T, svc service.AuthService, repoMock *mocks.MockAdminRepository, cfg *config.Config) (string, *models.Admin) {
	storedAdmin := &models.Admin{
		ID:           uuid.New(),
		Email:        cfg.AdminEmail,
		PasswordHash: mustHashPassword(t, cfg.AdminPassword),
	}
	repoMock.EXPECT().GetByEmail(gomock.Any(), cfg.AdminEmail).Return(storedAdmin, nil).Times(2)

	token, _, err := svc.Login(context.Background(), cfg.AdminEmail, cfg.AdminPassword)
	require.NoError(t, err)
	return token, storedAdmin
}

func TestLogin_Success(t *testing.T) {
	// Подготовка
	cfg := testAuthConfig()
	svc, repoMock := newTestAuthService(t, cfg)
	ctx := context.Background()
	storedAdmin := &models.Admin{
		ID:           uuid.New(),
		Email:        cfg.AdminEmail,
		PasswordHash: mustHashPassword(t, cfg.AdminPassword),
	}

	// Ожидания: администратор уже существует, повторного создания нет
	repoMock.EXPECT().GetByEmail(ctx, cfg.AdminEmail).Return(storedAdmin, nil).Times(2)
	repoMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	token, admin, err := svc.Login(ctx, cfg.AdminEmail, cfg.AdminPassword)

	// Проверки
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, storedAdmin.ID, admin.ID)
	assert.Equal(t, storedAdmin.Email, admin.Email)
}

func TestLogin_SeedsDefaultAdminOnFirstUse(t *testing.T) {
	// Подготовка
	cfg := testAuthConfig()
	svc, repoMock := newTestAuthService(t, cfg)
	ctx := context.Background()

	var seeded *models.Admin

	// Ожидания: первый вход создаёт учётную запись по умолчанию
	gomock.InOrder(
		repoMock.EXPECT().
			GetByEmail(ctx, cfg.AdminEmail).
			Return(nil, fmt.Errorf("admin not found: %w", service.ErrNotFound)),
		repoMock.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, admin *models.Admin) error {
				admin.ID = uuid.New()
				seeded = admin
				return nil
			}),
		repoMock.EXPECT().
			GetByEmail(ctx, cfg.AdminEmail).
			DoAndReturn(func(ctx context.Context, email string) (*models.Admin, error) {
				return seeded, nil
			}),
	)

	// Действие
	token, admin, err := svc.Login(ctx, cfg.AdminEmail, cfg.AdminPassword)

	// Проверки
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, cfg.AdminEmail, admin.Email)
	// Пароль хранится только в виде bcrypt-хеша
	assert.NotEqual(t, cfg.AdminPassword, seeded.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(seeded.PasswordHash), []byte(cfg.AdminPassword)))
}

func TestLogin_EmptyCredentials(t *testing.T) {
	// Подготовка
	cfg := testAuthConfig()
	svc, repoMock := newTestAuthService(t, cfg)
	ctx := context.Background()

	// Ожидания: до репозитория дело не доходит
	repoMock.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Times(0)

	testCases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password123"},
		{"blank email", "   ", "password123"},
		{"empty password", "admin@campus.edu", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Действие
			token, admin, err := svc.Login(ctx, tc.email, tc.password)

			// Проверки
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrValidation)
			assert.Empty(t, token)
			assert.Nil(t, admin)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	// Подготовка
	cfg := testAuthConfig()
	svc, repoMock := newTestAuthService(t, cfg)
	ctx := context.Background()
	storedAdmin := &models.Admin{
		ID:           uuid.New(),
		Email:        cfg.AdminEmail,
		PasswordHash: mustHashPassword(t, cfg.AdminPassword),
	}

	// Ожидания
	repoMock.EXPECT().GetByEmail(ctx, cfg.AdminEmail).Return(storedAdmin, nil).Times(2)

	// Действие
	token, admin, err := svc.Login(ctx, cfg.AdminEmail, "wrong-password")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, admin)
}

func TestLogin_UnknownEmail(t *testing.T) {
	// Подготовка
	cfg := testAuthConfig()
	svc, repoMock := newTestAuthService(t, cfg)
	ctx := context.Background()
	storedAdmin := &models.Admin{
		ID:           uuid.New(),
		Email:        cfg.AdminEmail,
		PasswordHash: mustHashPassword(t, cfg.AdminPassword),
	}

	// Ожидания
	repoMock.EXPECT().GetByEmail(ctx, cfg.AdminEmail).Return(storedAdmin, nil).Times(1)
	repoMock.EXPECT().
		GetByEmail(ctx, "someone@campus.edu").
		Return(nil, fmt.Errorf("admin not found: %w", service.ErrNotFound)).
		Times(1)

	// Действие
	token, admin, err := svc.Login(ctx, "someone@campus.edu", "password123")

	// Проверки: неизвестный email неотличим от неверного пароля
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, admin)
}

func TestLogin_EmailNormalized(t *testing.T) {
	// Подготовка
	cfg := testAuthConfig()
	svc, repoMock := newTestAuthService(t, cfg)
	ctx := context.Background()
	storedAdmin := &models.Admin{
		ID:           uuid.New(),
		Email:        cfg.AdminEmail,
		PasswordHash: mustHashPassword(t, cfg.AdminPassword),
	}

	// Ожидания: email приводится к нижнему регистру и обрезается
	repoMock.EXPECT().GetByEmail(ctx, cfg.AdminEmail).Return(storedAdmin, nil).Times(2)

	// Действие
	token, _, err := svc.Login(ctx, "  Admin@Campus.EDU  ", cfg.AdminPassword)

	// Проверки
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestVerify_RoundTrip(t *testing.T) {
	// Подготовка
	cfg := testAuthConfig()
	svc, repoMock := newTestAuthService(t, cfg)

	token, storedAdmin := loginDefaultAdmin(t, svc, repoMock, cfg)

	// Действие
	identity, err := svc.Verify(token)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, storedAdmin.ID, identity.ID)
	assert.Equal(t, storedAdmin.Email, identity.Email)
	assert.Equal(t, "admin", identity.Role)
}

func TestVerify_MalformedToken(t *testing.T) {
	// Подготовка
	cfg := testAuthConfig()
	svc, _ := newTestAuthService(t, cfg)

	testCases := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-token"},
		{"truncated token", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIx"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Действие
			identity, err := svc.Verify(tc.token)

			// Проверки
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrInvalidToken)
			assert.Nil(t, identity)
		})
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	// Подготовка: сервис с отрицательным TTL выдаёт уже истёкший токен
	cfg := testAuthConfig()
	cfg.TokenTTL = -time.Hour
	svc, repoMock := newTestAuthService(t, cfg)

	token, _ := loginDefaultAdmin(t, svc, repoMock, cfg)

	// Действие
	identity, err := svc.Verify(token)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
	assert.Nil(t, identity)
}

func TestVerify_WrongSecret(t *testing.T) {
	// Подготовка: токен подписан другим секретом
	issuerCfg := testAuthConfig()
	issuerCfg.JWTSecret = "other_secret"
	issuer, issuerRepo := newTestAuthService(t, issuerCfg)

	token, _ := loginDefaultAdmin(t, issuer, issuerRepo, issuerCfg)

	verifier, _ := newTestAuthService(t, testAuthConfig())

	// Действие
	identity, err := verifier.Verify(token)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
	assert.Nil(t, identity)
}
