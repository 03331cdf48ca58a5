package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"car-blog/cmd/api/auth"
	"car-blog/cmd/api/dto"
	"car-blog/internal/testutil"
	"car-blog/models"
)

func newTestAuthService(t *testing.T) (*AuthService, *testutil.UserStore, *auth.JWTManager) {
	t.Helper()

	jwtManager, err := auth.NewJWTManager("test-secret", "car-blog", time.Hour)
	require.NoError(t, err)
	users := testutil.NewUserStore()
	return NewAuthService(users, jwtManager).WithBcryptCost(bcrypt.MinCost), users, jwtManager
}

func TestSignupHashesPassword(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	profile, err := svc.Signup(ctx, dto.SignupRequest{Username: "carlos", Email: "Carlos@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "carlos@example.com", profile.Email)
	assert.Equal(t, models.RoleUser, profile.Role)

	stored, err := users.FindByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestSignupDuplicateEmailIsConflict(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, dto.SignupRequest{Username: "a", Email: "dup@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, dto.SignupRequest{Username: "b", Email: "DUP@example.com", Password: "secret2"})
	assertCode(t, err, dto.CodeConflict)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _, jwtManager := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, dto.SignupRequest{Username: "carlos", Email: "carlos@example.com", Password: "secret1"})
	require.NoError(t, err)

	token, profile, err := svc.Login(ctx, dto.LoginRequest{Email: "carlos@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, profile.ID)

	sub, role, err := jwtManager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, sub)
	assert.Equal(t, models.RoleUser, role)
	assert.Equal(t, time.Hour, svc.TokenTTL())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, dto.SignupRequest{Username: "carlos", Email: "carlos@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "carlos@example.com", Password: "wrong-password"})
	wrongPassword := assertCode(t, err, dto.CodeUnauthorized)

	_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	unknownEmail := assertCode(t, err, dto.CodeUnauthorized)

	assert.Equal(t, wrongPassword.Message, unknownEmail.Message)
}

func TestProfile(t *testing.T) {
	svc, users, jwtManager := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, dto.SignupRequest{Username: "carlos", Email: "carlos@example.com", Password: "secret1"})
	require.NoError(t, err)
	token, err := jwtManager.Sign(created.ID, models.RoleUser)
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "carlos", profile.Username)

	_, err = svc.Profile(ctx, "")
	assertCode(t, err, dto.CodeUnauthorized)

	_, err = svc.Profile(ctx, "garbage")
	assertCode(t, err, dto.CodeUnauthorized)

	stored, err := users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	users.Remove(stored.ID)
	_, err = svc.Profile(ctx, token)
	assertCode(t, err, dto.CodeUnauthorized)
}

func TestListUsers(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	for _, email := range []string{"b@example.com", "a@example.com"} {
		_, err := svc.Signup(ctx, dto.SignupRequest{Username: "u", Email: email, Password: "secret1"})
		require.NoError(t, err)
	}

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
}

func TestSignupRejectsPasswordOverBcryptLimit(t *testing.T) {
	svc, users, _ := newTestAuthService(t)

	// 72 runes pass binding but take 144 bytes.
	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		Username: "carlos",
		Email:    "carlos@example.com",
		Password: strings.Repeat("é", 72),
	})
	svcErr := assertCode(t, err, dto.CodeValidationFailed)
	assert.Zero(t, svcErr.Status)

	_, err = users.FindByEmail(context.Background(), "carlos@example.com")
	assert.Error(t, err)

	_, err = svc.Signup(context.Background(), dto.SignupRequest{
		Username: "carlos",
		Email:    "carlos@example.com",
		Password: strings.Repeat("a", 72),
	})
	assert.NoError(t, err)
}

func TestParseAccessTokenUsesStoredRole(t *testing.T) {
	svc, users, jwtManager := newTestAuthService(t)
	ctx := context.Background()

	u := &models.User{Username: "carlos", Email: "carlos@example.com", Role: models.RoleUser}
	require.NoError(t, users.Insert(ctx, u))

	// Token minted while the account was still an admin.
	stale, err := jwtManager.Sign(u.ID.Hex(), models.RoleAdmin)
	require.NoError(t, err)

	id, role, err := svc.ParseAccessToken(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), id)
	assert.Equal(t, models.RoleUser, role)

	users.Remove(u.ID)
	_, _, err = svc.ParseAccessToken(ctx, stale)
	assertCode(t, err, dto.CodeUnauthorized)

	_, _, err = svc.ParseAccessToken(ctx, "forged")
	assertCode(t, err, dto.CodeUnauthorized)
}
