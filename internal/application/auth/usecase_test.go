package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/desossa-api/internal/application/auth"
	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/infrastructure/memory"
	"github.com/jhoicas/desossa-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Companies().Create(context.Background(), &entity.Company{
		ID: "c1", Name: "Açougue Central", CNPJ: "12345678000195", Status: "active", CreatedAt: time.Now(),
	}))
	return auth.NewAuthUseCase(store.Users(), store.Companies(), auth.JWTConfig{Secret: secret, ExpMinutes: 10, Issuer: "desossa-api"})
}

func TestRegisterLogin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Acougue.com.br", Password: "senha-forte", CompanyID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperador, user.Role)
	assert.Equal(t, "ana@acougue.com.br", user.Email)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@acougue.com.br", Password: "senha-forte"})
	require.NoError(t, err)
	userID, companyID, role, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "c1", companyID)
	assert.Equal(t, entity.RoleOperador, role)
}

func TestRegister_Errores(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678", CompanyID: "c1", Role: "gerente"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678", CompanyID: "c1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@b.com", Password: "12345678", CompanyID: "nao-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "y@b.com", Password: "curta", CompanyID: "c1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "z@b.com", Password: "12345678", CompanyID: "c1", Role: "bodeguero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Errores(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678", CompanyID: "c1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "errada123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ninguem@b.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
