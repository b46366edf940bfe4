package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velder/taskboard-api/internal/domain"
	"github.com/velder/taskboard-api/internal/mocks"
	"github.com/velder/taskboard-api/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUserService(userStore *mocks.MockUserStore) (*service.UserServiceImpl, *mocks.MockJWTService) {
	jwtService := mocks.NewMockJWTService()
	return service.NewUserService(
		userStore,
		jwtService,
		mocks.NewMockPasswordVerifier(),
		mocks.NewMockTxManager(),
		testLogger(),
	), jwtService
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates new user", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc, _ := newUserService(userStore)

		user, err := svc.Register(context.Background(), "new@example.com", "password123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "new@example.com", user.Email)
		assert.NotZero(t, user.ID)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc, _ := newUserService(userStore)

		_, err := svc.Register(context.Background(), "dup@example.com", "password123")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "dup@example.com", "other-password")
		assert.ErrorIs(t, err, service.ErrDuplicateUser)
	})

	t.Run("maps constraint violation to duplicate user", func(t *testing.T) {
		t.Parallel()

		// The existence check misses, the insert hits the unique constraint:
		// two registrations racing for the same email.
		userStore := mocks.NewMockUserStore()
		userStore.ExistsByEmailFn = func(ctx context.Context, email string) (bool, error) {
			return false, nil
		}
		svc, _ := newUserService(userStore)

		_, err := svc.Register(context.Background(), "race@example.com", "password123")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "race@example.com", "password123")
		assert.ErrorIs(t, err, service.ErrDuplicateUser)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc, _ := newUserService(userStore)

		_, err := svc.Register(context.Background(), "new@example.com", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc, _ := newUserService(userStore)

		_, err := svc.Register(context.Background(), "not-an-email", "password123")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns token for valid credentials", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc, jwtService := newUserService(userStore)
		jwtService.Token = "issued-token"

		_, err := svc.Register(context.Background(), "user@example.com", "password123")
		require.NoError(t, err)

		token, err := svc.Login(context.Background(), "user@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "issued-token", token)
	})

	t.Run("fails for unknown email", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc, _ := newUserService(userStore)

		_, err := svc.Login(context.Background(), "ghost@example.com", "password123")
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("fails for wrong password", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc, _ := newUserService(userStore)

		_, err := svc.Register(context.Background(), "user@example.com", "password123")
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), "user@example.com", "wrong-password")
		assert.ErrorIs(t, err, service.ErrIncorrectPassword)
	})
}
