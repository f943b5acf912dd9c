package invoicing

import (
	"context"

	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

// TxRunner executa o processamento de uma nota dentro de uma única transação
// de BD: movimentos de estoque de todas as linhas, conta a pagar e marcação
// PROCESSED confirmam juntos ou nada fica visível.
type TxRunner interface {
	RunIngestion(ctx context.Context, fn func(
		posRepo repository.StockPositionRepository,
		movRepo repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		entryRepo repository.AccountEntryRepository,
		productRepo repository.ProductRepository,
	) error) error
}
