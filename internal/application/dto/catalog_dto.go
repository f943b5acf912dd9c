package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyRequest criação/edição de empresa (CNPJ do grupo).
type CompanyRequest struct {
	CNPJ   string `json:"cnpj"`
	Name   string `json:"name"`
	Active *bool  `json:"active,omitempty"`
}

// ProductRequest criação/edição de produto do catálogo.
type ProductRequest struct {
	SKU        string          `json:"sku"`
	Barcode    string          `json:"barcode,omitempty"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Unit       string          `json:"unit"`
	OutOfState bool            `json:"out_of_state"`
	SellPrice  decimal.Decimal `json:"sell_price"`
}

// SupplierRequest criação/edição de fornecedor.
type SupplierRequest struct {
	CNPJ    string `json:"cnpj"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerRequest criação/edição de cliente.
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// BankAccountRequest criação/edição de conta bancária. O saldo inicial só é
// aceito na criação; depois o saldo muda apenas por baixas.
type BankAccountRequest struct {
	Name    string          `json:"name"`
	Bank    string          `json:"bank"`
	Balance decimal.Decimal `json:"saldo_atual"`
	Active  *bool           `json:"active,omitempty"`
}

// LoginRequest credenciais do console.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest criação de usuário do console.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// UserResponse usuário sem o hash de senha.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"access_token"`
	User  UserResponse `json:"user"`
}
