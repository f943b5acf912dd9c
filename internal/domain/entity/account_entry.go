package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos e status de lançamento financeiro.
const (
	EntryPayable    = "PAYABLE"
	EntryReceivable = "RECEIVABLE"

	EntryPending = "PENDING"
	EntrySettled = "SETTLED"
)

// AccountEntry é um lançamento de contas a pagar ou a receber. SourceRef
// aponta a origem (id da nota fiscal ou da venda) para rastreabilidade; a
// baixa é sempre integral contra uma conta bancária.
type AccountEntry struct {
	ID            string
	Type          string // EntryPayable | EntryReceivable
	Description   string
	Amount        decimal.Decimal
	DueDate       time.Time // vencimento/ocorrência
	Status        string    // EntryPending | EntrySettled
	Counterparty  string    // fornecedor, cliente ou canal
	SourceRef     string    // id da nota ou da venda
	BankAccountID string    // preenchido na baixa
	SettledAt     *time.Time
	CreatedAt     time.Time
}

// BankAccount é uma conta bancária; o saldo só é alterado por baixas.
type BankAccount struct {
	ID        string
	Name      string
	Bank      string
	Balance   decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
