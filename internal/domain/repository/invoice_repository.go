package repository

import (
	"context"

	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
)

// InvoiceRepository define o porto de persistência para notas fiscais
// preparadas (STAGED) e processadas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetForUpdate bloqueia a cabeçalho da nota: é a guarda de idempotência
	// do processamento (duas chamadas concorrentes serializam aqui).
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context, status string) ([]*entity.Invoice, error)
	MarkProcessed(ctx context.Context, id string) error
	// Delete descarta a nota; somente STAGED pode ser descartada.
	Delete(ctx context.Context, id string) error
}
