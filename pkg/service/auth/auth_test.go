package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/vmadmin/internal/fixtures/memory"
	"github.com/amirasaad/vmadmin/pkg/config"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	authsvc "github.com/amirasaad/vmadmin/pkg/service/auth"
	"github.com/amirasaad/vmadmin/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwt = &config.Jwt{Secret: "test-secret", Expiry: 15 * time.Minute}

func seedUser(t *testing.T, uow *memory.UoW) *user.User {
	t.Helper()
	hash, err := utils.HashPassword("password")
	require.NoError(t, err)
	u := user.New("alice", "alice@example.com", hash, nil)
	uow.SeedUser(u)
	return u
}

func TestLogin(t *testing.T) {
	uow := memory.New()
	u := seedUser(t, uow)
	svc := authsvc.New(uow, testJwt, slog.Default())
	ctx := context.Background()

	got, err := svc.Login(ctx, "alice", "password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = svc.Login(ctx, "alice@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)

	_, err = svc.Login(ctx, "nobody", "password")
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	uow := memory.New()
	u := seedUser(t, uow)
	svc := authsvc.New(uow, testJwt, slog.Default())

	signed, err := svc.GenerateToken(context.Background(), u)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return []byte(testJwt.Secret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "alice@example.com", claims["email"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(testJwt.Expiry), exp.Time, 5*time.Second)

	id, err := svc.GetCurrentUserID(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestGetCurrentUserID_Invalid(t *testing.T) {
	svc := authsvc.New(memory.New(), testJwt, slog.Default())

	_, err := svc.GetCurrentUserID(nil)
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)

	_, err = svc.GetCurrentUserID(&jwt.Token{Claims: jwt.MapClaims{}})
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)

	_, err = svc.GetCurrentUserID(&jwt.Token{Claims: jwt.MapClaims{"user_id": "not-a-uuid"}})
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)

	id := uuid.New()
	got, err := svc.GetCurrentUserID(&jwt.Token{Claims: jwt.MapClaims{"user_id": id.String()}})
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
