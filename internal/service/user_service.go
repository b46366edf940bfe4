package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/velder/taskboard-api/internal/domain"
	"github.com/velder/taskboard-api/internal/service/auth"
	"github.com/velder/taskboard-api/internal/store"
)

// UserService provides account registration and login.
type UserService interface {
	// Register creates a new account for the given email and password.
	// Returns ErrDuplicateUser if the email is already registered.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Login verifies the credentials and returns a signed access token.
	// Returns ErrUserNotFound if no account exists for the email and
	// ErrIncorrectPassword if the password does not match.
	Login(ctx context.Context, email, password string) (string, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	txManager        TxManager
	logger           *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	txManager TxManager,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		txManager:        txManager,
		logger:           logger.With("component", "user_service"),
	}
}

// Register creates a new user account.
// The existence check gives a friendly error for the common case; the unique
// constraint on users.email is the backstop for two concurrent registrations
// of the same address, so that path maps to ErrDuplicateUser as well.
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		s.logger.Debug("user validation failed during registration",
			"error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	exists, err := s.userStore.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to check for existing user",
			"error", err)
		return nil, NewServiceError("register", "failed to check for existing user", err)
	}
	if exists {
		s.logger.Debug("attempted to register an existing email")
		return nil, ErrDuplicateUser
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)
		return txStore.Create(ctx, user)
	})

	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("duplicate email detected by constraint during registration")
			return nil, ErrDuplicateUser
		}
		s.logger.Error("failed to save user during registration",
			"error", err)
		return nil, NewServiceError("register", "failed to save user", err)
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID)

	return user, nil
}

// Login verifies the credentials and issues an access token.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email")
			return "", ErrUserNotFound
		}
		s.logger.Error("failed to retrieve user during login",
			"error", err)
		return "", NewServiceError("login", "failed to retrieve user", err)
	}

	if err := s.passwordVerifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with incorrect password",
			"user_id", user.ID)
		return "", ErrIncorrectPassword
	}

	token, err := s.jwtService.GenerateToken(ctx, user.Email)
	if err != nil {
		s.logger.Error("failed to generate token during login",
			"error", err,
			"user_id", user.ID)
		return "", NewServiceError("login", "failed to generate token", err)
	}

	s.logger.Info("user logged in successfully",
		"user_id", user.ID)

	return token, nil
}
