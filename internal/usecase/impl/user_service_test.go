package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"schedulemaker/internal/domain/entity"
	domainerrors "schedulemaker/internal/domain/errors"
	"schedulemaker/internal/domain/repository"
	"schedulemaker/internal/domain/service"
	mockRepo "schedulemaker/internal/mocks/repository"
	mockSvc "schedulemaker/internal/mocks/service"
	"schedulemaker/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewUserService(UserServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	return userServiceFixtures{
		service:      service,
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "  Test@Example.COM ",
		Password: "Password123!",
	}

	fixtures.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fixtures.tokenService.EXPECT().IssueToken("test@example.com").Return("signed.jwt.token", nil)

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByEmail(ctx, "test@example.com").
				Return(nil, repository.ErrUserNotFound)

			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					user.ID = uuid.New()
				}).
				Return(nil)

			return fn(mockFactory)
		})

	output, err := fixtures.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "test@example.com", output.Account.Email)
	assert.Equal(t, "Test User", output.Account.Name)
	assert.True(t, output.Account.IsActive)
	assert.Equal(t, "signed.jwt.token", output.Token.Value)
	assert.Equal(t, usecase.TokenTypeBearer, output.Token.Type)
}

func TestUserService_Register_AlreadyRegistered(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "taken@example.com",
		Password: "Password123!",
	}
	existing := &entity.User{ID: uuid.New(), Email: input.Email}

	fixtures.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(existing, nil)

			return fn(mockFactory)
		})

	output, err := fixtures.service.Register(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyRegistered)
}

func TestUserService_Register_HashFailure(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
	}

	fixtures.hasher.EXPECT().Hash(input.Password).Return("", assert.AnError)

	output, err := fixtures.service.Register(ctx, input)

	assert.Nil(t, output)
	assert.Error(t, err)
}

func TestUserService_Login_Success(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: "hashed_password",
		IsActive:     true,
	}

	fixtures.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fixtures.hasher.EXPECT().Check("Password123!", user.PasswordHash).Return(true)
	fixtures.tokenService.EXPECT().IssueToken(user.Email).Return("signed.jwt.token", nil)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    "Test@Example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, user.Email, output.Account.Email)
	assert.Equal(t, "signed.jwt.token", output.Token.Value)
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestUserService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()

	fixtures := createTestUserService(t)
	fixtures.userRepo.EXPECT().
		FindByEmail(ctx, "unknown@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, unknownEmailErr := fixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    "unknown@example.com",
		Password: "Password123!",
	})

	fixtures = createTestUserService(t)
	user := &entity.User{ID: uuid.New(), Email: "test@example.com", PasswordHash: "hashed_password", IsActive: true}
	fixtures.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fixtures.hasher.EXPECT().Check("wrong-password", user.PasswordHash).Return(false)

	_, wrongPasswordErr := fixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, unknownEmailErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_DisabledAccount(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "disabled@example.com",
		PasswordHash: "hashed_password",
		IsActive:     false,
	}

	fixtures.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fixtures.hasher.EXPECT().Check("Password123!", user.PasswordHash).Return(true)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    user.Email,
		Password: "Password123!",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrAccountDisabled)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_WhoAmI_Success(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "test@example.com", Name: "Test User", IsActive: true}
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Email},
	}

	fixtures.tokenService.EXPECT().ValidateToken("signed.jwt.token").Return(claims, nil)
	fixtures.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)

	view, err := fixtures.service.WhoAmI(ctx, "signed.jwt.token")

	require.NoError(t, err)
	assert.Equal(t, user.ID, view.ID)
	assert.Equal(t, user.Email, view.Email)
}

func TestUserService_WhoAmI_InvalidToken(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	fixtures.tokenService.EXPECT().
		ValidateToken("not-a-token").
		Return(nil, errors.New("token is malformed"))

	view, err := fixtures.service.WhoAmI(ctx, "not-a-token")

	assert.Nil(t, view)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestUserService_WhoAmI_UnknownSubject(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ghost@example.com"},
	}

	fixtures.tokenService.EXPECT().ValidateToken("signed.jwt.token").Return(claims, nil)
	fixtures.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	view, err := fixtures.service.WhoAmI(ctx, "signed.jwt.token")

	assert.Nil(t, view)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestUserService_Logout(t *testing.T) {
	fixtures := createTestUserService(t)

	err := fixtures.service.Logout(context.Background())

	require.NoError(t, err)
}
