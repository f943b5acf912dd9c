package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostEntryRequest lançamento manual de conta a pagar/receber.
type PostEntryRequest struct {
	Type         string          `json:"type"` // PAYABLE | RECEIVABLE
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      time.Time       `json:"due_date"`
	Counterparty string          `json:"counterparty"`
	SourceRef    string          `json:"source_ref"`
}

// SettleRequest baixa integral de um lançamento contra uma conta bancária.
type SettleRequest struct {
	BankAccountID string          `json:"bank_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

// FinanceReportDTO relatório agregado do período.
type FinanceReportDTO struct {
	PayablesPending    decimal.Decimal `json:"contas_pagar"`
	ReceivablesPending decimal.Decimal `json:"contas_receber"`
	BankBalance        decimal.Decimal `json:"saldo_bancos"`
	NetWorth           decimal.Decimal `json:"patrimonio_liquido"`
	RevenueInPeriod    decimal.Decimal `json:"receitas_periodo"`
	ExpenseInPeriod    decimal.Decimal `json:"despesas_periodo"`
	PeriodStart        time.Time       `json:"period_start"`
	PeriodEnd          time.Time       `json:"period_end"`
}

// MonthlyTotalDTO linha do histórico financeiro mensal.
type MonthlyTotalDTO struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Type  string          `json:"type"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// DashboardDTO resumo do dashboard (mês corrente).
type DashboardDTO struct {
	TotalClients       int             `json:"total_clientes"`
	TotalSuppliers     int             `json:"total_fornecedores"`
	TotalProducts      int             `json:"total_produtos"`
	InventoryValue     decimal.Decimal `json:"valor_estoque"`
	UnitsSoldInPeriod  int64           `json:"unidades_vendidas_mes"`
	ValueSoldInPeriod  decimal.Decimal `json:"valor_vendido_mes"`
	PayablesPending    decimal.Decimal `json:"contas_pagar"`
	ReceivablesPending decimal.Decimal `json:"contas_receber"`
	BankBalance        decimal.Decimal `json:"saldo_bancos"`
	NetWorth           decimal.Decimal `json:"patrimonio_liquido"`
}
