package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/Gerotto1967/gestao-api/internal/interfaces/http"
	pkgjwt "github.com/Gerotto1967/gestao-api/pkg/jwt"
)

const (
	testJWTSecret = "segredo-de-teste-unitario"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "gestao-api-test"
	testExpMin    = 60
)

// buildTestApp monta um Fiber mínimo com uma rota protegida que devolve as
// claims carregadas pelo middleware.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protegida",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":  apphttp.GetUserID(c),
				"username": apphttp.GetUsername(c),
			})
		},
	)
	return app
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "maria", "operator", testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	_ = json.Unmarshal(body, &parsed)
	return resp, parsed
}

// TestAuthMiddleware_TokenValido: token válido passa e as claims ficam nos
// Locals.
func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, validToken(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "maria", body["username"])
}

// TestAuthMiddleware_Rejeites cobre header ausente, formato errado, bearer
// sem token, assinatura inválida e token expirado (todos 401).
func TestAuthMiddleware_Rejeites(t *testing.T) {
	app := buildTestApp()

	wrongSecret, err := pkgjwt.Generate("outro-segredo", testUserID, "maria", "operator", testIssuer, testExpMin)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, "maria", "operator", testIssuer, -5)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sem header", "", "MISSING_TOKEN"},
		{"formato errado", "Token abc", "INVALID_TOKEN"},
		// fasthttp apara o espaço final do header, então "Bearer " chega como
		// "Bearer" sem token e cai no erro de formato.
		{"bearer vazio", "Bearer ", "INVALID_TOKEN"},
		{"assinatura inválida", "Bearer " + wrongSecret, "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doRequest(t, app, tc.header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}
