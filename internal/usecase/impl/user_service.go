// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "schedulemaker/internal/delivery/context"
	"schedulemaker/internal/domain/entity"
	domainerrors "schedulemaker/internal/domain/errors"
	"schedulemaker/internal/domain/repository"
	"schedulemaker/internal/domain/service"
	"schedulemaker/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface. It orchestrates the
// account store, the password hasher, and the token service; it holds no
// session state of its own.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail applies the account-uniqueness casing policy: emails are
// compared and stored lower-cased.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register orchestrates the complete account registration process.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredUser *entity.User

	// The lookup and the insert run in one transaction. The pre-check gives a
	// friendly error for the common case; the unique index on email settles
	// concurrent registrations so at most one ever succeeds.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			return domainerrors.ErrAlreadyRegistered.WrapMessage("registration failed")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up email")
		}

		newUser := &entity.User{
			Email:        email,
			Name:         input.Name,
			PasswordHash: hashedPassword,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create account")
		}
		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	output, err := srv.authOutput(registeredUser)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Debug("Account registered", slog.Any("userID", registeredUser.ID))

	return output, nil
}

// Login authenticates credentials and issues a fresh token.
// Unknown email and wrong password return the same error so the response
// carries no account-enumeration signal.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to look up account")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	if !user.IsActive {
		srv.log(ctx).Warn("Login attempt on disabled account", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrAccountDisabled.WrapMessage("login failed")
	}

	output, err := srv.authOutput(user)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Debug("Account logged in", slog.Any("userID", user.ID))

	return output, nil
}

// WhoAmI resolves a bearer token to the account it asserts.
// Every failure mode collapses into ErrUnauthenticated: fail closed.
func (srv *userService) WhoAmI(ctx context.Context, tokenString string) (*usecase.AccountView, error) {
	claims, err := srv.tokenService.ValidateToken(tokenString)
	if err != nil {
		srv.log(ctx).Debug("Token validation failed", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthenticated.WrapMessage("invalid token")
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated.WrapMessage("unknown token subject")
		}

		return nil, errors.Wrap(err, "failed to look up token subject")
	}

	return toAccountView(user), nil
}

// Logout acknowledges a client-side logout. Tokens are stateless and carry
// their own expiry, so invalidation is the client's responsibility.
func (srv *userService) Logout(ctx context.Context) error {
	srv.log(ctx).Debug("Logout acknowledged")

	return nil
}

func (srv *userService) authOutput(user *entity.User) (*usecase.AuthOutput, error) {
	tokenString, err := srv.tokenService.IssueToken(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	return &usecase.AuthOutput{
		Account: toAccountView(user),
		Token: &usecase.Token{
			Value: tokenString,
			Type:  usecase.TokenTypeBearer,
		},
	}, nil
}

func toAccountView(user *entity.User) *usecase.AccountView {
	return &usecase.AccountView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
