package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/Gerotto1967/gestao-api/pkg/jwt"
)

const (
	testSecret = "segredo-de-teste"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "gestao-api-test"
)

// TestGenerateParse_IdaEVolta gera um token e confere que Parse devolve as
// mesmas claims.
func TestGenerateParse_IdaEVolta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "maria", "operator", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, username, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "maria", username)
	assert.Equal(t, "operator", role)
}

// TestParse_SegredoErrado rejeita token assinado com outro segredo.
func TestParse_SegredoErrado(t *testing.T) {
	tok, err := pkgjwt.Generate("outro-segredo", testUserID, "maria", "operator", testIssuer, 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

// TestParse_TokenExpirado rejeita token com expiração no passado.
func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "maria", "operator", testIssuer, -5)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

// TestParse_Lixo rejeita qualquer coisa que não seja um JWT.
func TestParse_Lixo(t *testing.T) {
	_, _, _, err := pkgjwt.Parse(testSecret, "isto-nao-e-um-token")
	assert.Error(t, err)
}
