package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerotto1967/gestao-api/internal/application/auth"
	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/testutil/memrepo"
	pkgjwt "github.com/Gerotto1967/gestao-api/pkg/jwt"
)

func newAuthUC(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	return auth.NewAuthUseCase(memrepo.NewUserRepo(memrepo.NewStore()), auth.JWTConfig{
		Secret:     "segredo-de-teste",
		ExpMinutes: 60,
		Issuer:     "gestao-api-test",
	})
}

// TestRegisterLogin registra um usuário e faz login: o token devolvido deve
// parsear com as claims do usuário e a resposta nunca expõe o hash da senha.
func TestRegisterLogin(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	user, err := uc.Register(ctx, dto.RegisterRequest{Username: "maria", Password: "senha-forte"})
	require.NoError(t, err)
	assert.Equal(t, "maria", user.Username)
	assert.Equal(t, "operator", user.Role, "papel padrão é operator")

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "senha-forte"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, username, role, err := pkgjwt.Parse("segredo-de-teste", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "maria", username)
	assert.Equal(t, "operator", role)
}

// TestRegister_Rejeites cobre usuário duplicado, senha curta e username vazio.
func TestRegister_Rejeites(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "maria", Password: "senha-forte"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "maria", Password: "outra-senha"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "jose", Password: "curta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterRequest{Password: "senha-forte"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestMe devolve o usuário pelo username da claim; desconhecido é ErrNotFound.
func TestMe(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	registered, err := uc.Register(ctx, dto.RegisterRequest{Username: "maria", Password: "senha-forte"})
	require.NoError(t, err)

	me, err := uc.Me(ctx, "maria")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, me.ID)
	assert.Equal(t, "operator", me.Role)

	_, err = uc.Me(ctx, "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestLogin_CredenciaisInvalidas: usuário inexistente e senha errada devolvem
// o mesmo ErrUnauthorized (sem vazar qual dos dois falhou).
func TestLogin_CredenciaisInvalidas(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "maria", Password: "senha-forte"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "senha-errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nao-existe", Password: "senha-forte"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
