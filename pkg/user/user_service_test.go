package user

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/internal/testutil"
	"FlashFoodDelivery/pkg/jwt"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func newTestService(t *testing.T) (UserService, jwt.JWTService) {
	db := testutil.NewDB(t)
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return NewUserService(NewUserRepository(db), jwtService), jwtService
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := newTestService(t)

	registered, err := svc.Register(ctx, domain.RegisterRequest{
		FullName: "Budi Santoso",
		Email:    "Budi@FlashFood.test",
		Password: "secret123",
		Address:  "Jl. Braga 3",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "budi@flashfood.test", registered.Email)
	assert.Equal(t, domain.RoleUser, registered.Role)
	assert.Equal(t, domain.UserStatusActive, registered.Status)

	_, err = svc.Register(ctx, domain.RegisterRequest{FullName: "Budi", Email: "budi@flashfood.test", Password: "other123"}, "")
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "budi@flashfood.test", Password: "secret123"})
	require.NoError(t, err)
	userID, role, err := jwtService.GetUserIDByToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, domain.RoleUser, role)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "budi@flashfood.test", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@flashfood.test", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestGetUserByID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.SeedAdmin(ctx, "", ""))
	require.NoError(t, svc.SeedAdmin(ctx, "admin@flashfood.test", "admin123"))
	require.NoError(t, svc.SeedAdmin(ctx, "admin@flashfood.test", "admin123"))

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "admin@flashfood.test", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.Role)
}

func TestLoginRejectsLockedUser(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewUserService(NewUserRepository(db), jwt.NewJWTService("test-secret", time.Hour))

	registered, err := svc.Register(ctx, domain.RegisterRequest{FullName: "Sari", Email: "sari@flashfood.test", Password: "secret123"}, "")
	require.NoError(t, err)
	require.NoError(t, db.Model(&entities.User{}).Where("id = ?", registered.ID).Update("status", domain.UserStatusLocked).Error)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "sari@flashfood.test", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUserLocked)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
