package entity

import "time"

// Supplier é um fornecedor cadastrado (ficha do console; contraparte das
// contas a pagar geradas pelo processamento de notas).
type Supplier struct {
	ID        string
	CNPJ      string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer é um cliente cadastrado (ficha do console).
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
