package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SeorinLee/Software-frameworks-sub000/internal/config"
	"github.com/SeorinLee/Software-frameworks-sub000/internal/domain"
	apperrors "github.com/SeorinLee/Software-frameworks-sub000/pkg/errors"
	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

func newTestAuthService(users *fakeUserRepo) AuthService {
	return NewAuthService(users, config.JWTConfig{
		AccessSecret: "test-secret",
		AccessTTL:    time.Hour,
		Issuer:       "chat-test",
	}, logger.New("error"))
}

func TestAuthService_RegisterLoginValidateRoundTrip(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, domain.GlobalRoleUser, user.GlobalRole)
	require.NotEqual(t, "correct horse", user.PasswordHash)

	resp, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "alice", resp.User.Username)

	validated, err := svc.ValidateToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, validated.ID)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "a@example.com", "password1"},
		{"short password", "alice", "a@example.com", "short"},
		{"bad email", "alice", "not-an-email", "password1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			require.Error(t, err)
		})
	}
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "password2")
	require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "password2")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Неизвестный пользователь дает тот же ответ, без утечки существования
	_, err = svc.Login(ctx, "bob", "password1")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_ValidateTokenGarbage(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
