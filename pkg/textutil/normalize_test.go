package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gerotto1967/gestao-api/pkg/textutil"
)

// TestNormalize confere a chave de busca: minúsculas e sem acentos, para que
// "Parafuso Fenda" encontre "parafuso fênda" e vice-versa.
func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Parafuso Sextavado", "parafuso sextavado"},
		{"PORCA AÇO INOX", "porca aco inox"},
		{"Fita métrica 5m", "fita metrica 5m"},
		{"CONEXÃO JOÃO", "conexao joao"},
		{"café", "cafe"},
		{"", ""},
		{"já normalizado 123", "ja normalizado 123"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textutil.Normalize(tc.in), "entrada %q", tc.in)
	}
}
