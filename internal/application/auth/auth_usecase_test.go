package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-ledger/internal/application/auth"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
	"github.com/tu-usuario/retail-ledger/pkg/config"
	"github.com/tu-usuario/retail-ledger/pkg/jwt"
)

var testJWT = config.JWTConfig{Secret: "secreto-de-prueba", Expiration: 60, Issuer: "retail-ledger"}

func TestRegisterYLogin(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewUseCase(store.Users(), testJWT)
	ctx := context.Background()

	reg, err := uc.Register(ctx, dto.RegisterRequest{
		Email: "dueno@tienda.co", Name: "Dueño", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", reg.Role)
	assert.NotEmpty(t, reg.Token)

	claims, err := jwt.Parse(testJWT.Secret, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, "dueno@tienda.co", claims.Email)
	assert.Equal(t, "admin", claims.Role)

	// Mismo correo dos veces se rechaza.
	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "dueno@tienda.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	login, err := uc.Login(ctx, dto.LoginRequest{Email: "dueno@tienda.co", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	// Credencial mala y correo inexistente responden igual.
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "dueno@tienda.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.co", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParse_RechazaTokenAjeno(t *testing.T) {
	token, err := jwt.Generate("otro-secreto", "u1", "x@y.co", "admin", "retail-ledger", 60)
	require.NoError(t, err)
	_, err = jwt.Parse(testJWT.Secret, token)
	assert.Error(t, err)
}
