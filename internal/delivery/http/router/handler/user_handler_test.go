package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"schedulemaker/config"
	"schedulemaker/internal/delivery/http/validator"
	"schedulemaker/internal/domain/entity"
	domainerrors "schedulemaker/internal/domain/errors"
	"schedulemaker/internal/domain/repository"
	"schedulemaker/internal/infra/auth"
	mockRepo "schedulemaker/internal/mocks/repository"
	mockSvc "schedulemaker/internal/mocks/service"
	"schedulemaker/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// handlerFixtures wires a UserHandler over the real session service and a real
// token service; only persistence and hashing are mocked.
type handlerFixtures struct {
	handler    *UserHandler
	echo       *echo.Echo
	txManager  *mockRepo.MockTransactionManager
	userRepo   *mockRepo.MockUserRepository
	hasher     *mockSvc.MockPasswordHasher
	issueToken func(subject string) string
}

func createTestUserHandler(t *testing.T) handlerFixtures {
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret"
	cfg.JWT.AccessTokenTTL = time.Minute

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := impl.NewUserService(impl.UserServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	e := echo.New()
	e.Validator = validator.New()

	return handlerFixtures{
		handler:   NewUserHandler(service, logger),
		echo:      e,
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
		issueToken: func(subject string) string {
			token, err := tokenService.IssueToken(subject)
			require.NoError(t, err)

			return token
		},
	}
}

func TestUserHandler_Register_Integration(t *testing.T) {
	fixtures := createTestUserHandler(t)

	body := `{"name":"Test User","email":"test@example.com","password":"Password123!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := fixtures.echo.NewContext(req, rec)

	fixtures.hasher.EXPECT().Hash("Password123!").Return("hashed_password", nil)
	fixtures.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().
				FindByEmail(mock.Anything, "test@example.com").
				Return(nil, repository.ErrUserNotFound)
			mockUserRepo.EXPECT().
				Create(mock.Anything, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					user.ID = uuid.New()
				}).
				Return(nil)

			return fn(mockFactory)
		})

	err := fixtures.handler.Register(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, "test@example.com")
	assert.Contains(t, responseBody, `"type":"bearer"`)
	assert.NotContains(t, responseBody, "hashed_password")
}

func TestUserHandler_Register_ValidationFailure(t *testing.T) {
	fixtures := createTestUserHandler(t)

	// Password shorter than the 8-character minimum.
	body := `{"name":"Test User","email":"test@example.com","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := fixtures.echo.NewContext(req, rec)

	err := fixtures.handler.Register(c)

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserHandler_Me_Integration(t *testing.T) {
	fixtures := createTestUserHandler(t)

	user := &entity.User{ID: uuid.New(), Email: "test@example.com", Name: "Test User", IsActive: true}
	token := fixtures.issueToken(user.Email)

	fixtures.userRepo.EXPECT().
		FindByEmail(mock.Anything, user.Email).
		Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := fixtures.echo.NewContext(req, rec)

	err := fixtures.handler.Me(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.Email)
}

func TestUserHandler_Me_MissingHeader(t *testing.T) {
	fixtures := createTestUserHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := fixtures.echo.NewContext(req, rec)

	err := fixtures.handler.Me(c)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestUserHandler_Me_GarbageToken(t *testing.T) {
	fixtures := createTestUserHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	c := fixtures.echo.NewContext(req, rec)

	err := fixtures.handler.Me(c)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestUserHandler_Logout_Integration(t *testing.T) {
	fixtures := createTestUserHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := fixtures.echo.NewContext(req, rec)

	err := fixtures.handler.Logout(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Successfully logged out")
}
