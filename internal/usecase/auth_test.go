package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnovatex/platform/internal/domain"
)

func newAuth() (AuthService, *memUsers) {
	users := &memUsers{}
	return NewAuthService(users, "test-secret", 7*24*time.Hour), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuth()
	ctx := context.Background()

	u, token, err := svc.Register(ctx, "Ava@Example.com", "correct horse", "Ava", domain.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "ava@example.com", u.Email, "emails are normalized")
	assert.NotEmpty(t, u.ID)
	assert.NotEmpty(t, token)
	assert.NotContains(t, u.PasswordHash, "correct horse")

	u2, token2, err := svc.Login(ctx, "ava@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, u.ID, u2.ID)
	assert.NotEmpty(t, token2)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuth()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "not-an-email", "long enough pw", "Ava", domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, _, err = svc.Register(ctx, "ava@example.com", "short", "Ava", domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, _, err = svc.Register(ctx, "ava@example.com", "long enough pw", "  ", domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuth()
	ctx := context.Background()
	_, _, err := svc.Register(ctx, "ava@example.com", "long enough pw", "Ava", domain.RoleStudent)
	require.NoError(t, err)
	_, _, err = svc.Register(ctx, "ava@example.com", "long enough pw", "Ava Again", domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterUnknownRoleDefaultsToStudent(t *testing.T) {
	svc, _ := newAuth()
	u, _, err := svc.Register(context.Background(), "bea@example.com", "long enough pw", "Bea", "superuser")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, u.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuth()
	ctx := context.Background()
	_, _, err := svc.Register(ctx, "ava@example.com", "long enough pw", "Ava", domain.RoleStudent)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ava@example.com", "wrong password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = svc.Login(ctx, "nobody@example.com", "long enough pw")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyToken(t *testing.T) {
	svc, _ := newAuth()
	u, token, err := svc.Register(context.Background(), "ava@example.com", "long enough pw", "Ava", domain.RoleStudent)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "ava@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestVerifyTokenTampered(t *testing.T) {
	svc, _ := newAuth()
	_, token, err := svc.Register(context.Background(), "ava@example.com", "long enough pw", "Ava", domain.RoleStudent)
	require.NoError(t, err)

	tampered := strings.Replace(token, "ava@example.com", "eve@example.com", 1)
	_, err = svc.VerifyToken(tampered)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.VerifyToken("garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.VerifyToken("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyTokenExpired(t *testing.T) {
	users := &memUsers{}
	svc := NewAuthService(users, "test-secret", -time.Hour)
	_, token, err := svc.Register(context.Background(), "ava@example.com", "long enough pw", "Ava", domain.RoleStudent)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyTokenDifferentSecret(t *testing.T) {
	svc, users := newAuth()
	_, token, err := svc.Register(context.Background(), "ava@example.com", "long enough pw", "Ava", domain.RoleStudent)
	require.NoError(t, err)

	other := NewAuthService(users, "other-secret", 7*24*time.Hour)
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
