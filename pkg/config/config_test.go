package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerotto1967/gestao-api/pkg/config"
)

// TestLoad_PadraoDeIngestao: sem env vars a ingestão rejeita produtos
// desconhecidos (auto-cadastro desligado) e a UF sede é PR.
func TestLoad_PadraoDeIngestao(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.Ingest.AutoCreateProducts,
		"auto-cadastro de produtos deve vir desligado por padrão")
	assert.Equal(t, "PR", cfg.Ingest.HomeState)
}

// TestLoad_EnvSobrepoePadrao: INGEST_AUTO_CREATE_PRODUCTS=true liga o auto-cadastro.
func TestLoad_EnvSobrepoePadrao(t *testing.T) {
	t.Setenv("INGEST_AUTO_CREATE_PRODUCTS", "true")
	t.Setenv("INGEST_HOME_STATE", "SP")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Ingest.AutoCreateProducts)
	assert.Equal(t, "SP", cfg.Ingest.HomeState)
}

// TestDSN_EscapaCaracteresEspeciais: senha com caracteres reservados é URL-encoded.
func TestDSN_EscapaCaracteresEspeciais(t *testing.T) {
	db := config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss:word/1",
		DBName:   "gestao",
		SSLMode:  "disable",
	}

	dsn := db.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aword%2F1")
	assert.Contains(t, dsn, "localhost:5432/gestao")
	assert.Equal(t, dsn, db.ConnectionString())

	db.DatabaseURL = "postgresql://u:p@db:5432/outro"
	assert.Equal(t, db.DatabaseURL, db.ConnectionString())
}
