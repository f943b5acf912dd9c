package entity

import "time"

// Company representa uma empresa do grupo (CNPJ próprio, estoque e contas
// bancárias próprios). Referenciada por posições de estoque; nunca é removida
// enquanto houver posição apontando para ela.
type Company struct {
	ID        string
	CNPJ      string // identificador fiscal, único
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
