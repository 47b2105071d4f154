package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/davidrojas/tienda-backend/internal/modules/user"
)

type singleUserRepo struct {
	user *user.User
}

func (r *singleUserRepo) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, user.ErrNotFound
}

func (r *singleUserRepo) CreateUser(context.Context, *user.User) error { return nil }
func (r *singleUserRepo) GetUserByID(context.Context, int64) (*user.User, error) {
	return nil, user.ErrNotFound
}
func (r *singleUserRepo) ListUsers(context.Context) ([]*user.User, error) { return nil, nil }
func (r *singleUserRepo) DeleteUser(context.Context, int64) error         { return nil }

func testRepo(t *testing.T, password string) *singleUserRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &singleUserRepo{user: &user.User{
		ID:           1,
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleClient,
	}}
}

func TestLoginSuccess(t *testing.T) {
	svc := NewService(testRepo(t, "secreta"))

	u, err := svc.Login(context.Background(), "ana@example.com", "secreta")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, user.RoleClient, u.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(testRepo(t, "secreta"))

	_, err := svc.Login(context.Background(), "ana@example.com", "incorrecta")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(testRepo(t, "secreta"))

	_, err := svc.Login(context.Background(), "nadie@example.com", "secreta")
	assert.ErrorIs(t, err, ErrInvalidCredentials,
		"unknown email and wrong password must be indistinguishable")
}
