package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/opencampus/registrar-api/internal/models"
	appErrors "github.com/opencampus/registrar-api/pkg/errors"
)

type mockUserRepo struct {
	users     map[string]*models.User
	lastLogin map[string]time.Time
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if m.lastLogin == nil {
		m.lastLogin = make(map[string]time.Time)
	}
	m.lastLogin[id] = ts
	return nil
}

func newAuthServiceFixture(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "registrar-api",
	})
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthServiceLogin(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"registrar@example.com": {
			ID:           "user-1",
			Email:        "registrar@example.com",
			PasswordHash: hashPassword(t, "password"),
			FullName:     "Test Registrar",
			Role:         models.RoleRegistrar,
			Active:       true,
		},
	}}
	svc := newAuthServiceFixture(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "registrar@example.com", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, models.RoleRegistrar, resp.User.Role)
	assert.Contains(t, repo.lastLogin, "user-1")

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "registrar-api", claims.Issuer)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"registrar@example.com": {
			ID:           "user-1",
			Email:        "registrar@example.com",
			PasswordHash: hashPassword(t, "password"),
			Active:       true,
		},
	}}
	svc := newAuthServiceFixture(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "registrar@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc := newAuthServiceFixture(&mockUserRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"registrar@example.com": {
			ID:           "user-1",
			Email:        "registrar@example.com",
			PasswordHash: hashPassword(t, "password"),
			Active:       false,
		},
	}}
	svc := newAuthServiceFixture(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "registrar@example.com", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthServiceFixture(&mockUserRepo{})

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
