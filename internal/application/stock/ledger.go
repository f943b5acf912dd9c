// Package stock implementa o ledger de estoque multi-empresa: posições por
// (empresa, produto) com custo médio móvel, materializadas sobre um log
// imutável de movimentos. É a folha da arquitetura: não conhece notas
// fiscais, marketplace nem política tributária (o adicional de ICMS de
// fornecedor fora do estado é pré-aplicado pelos callers no custo unitário).
package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
	domstock "github.com/Gerotto1967/gestao-api/internal/domain/stock"
)

// Ledger aplica movimentos de estoque de forma transacional, com bloqueio de
// linha por (empresa, produto): entradas concorrentes na mesma chave nunca
// intercalam o read-modify-write do custo médio; chaves diferentes seguem em
// paralelo.
type Ledger struct {
	txRunner     TxRunner
	positionRepo repository.StockPositionRepository
	movementRepo repository.StockMovementRepository
}

// NewLedger constrói o ledger. positionRepo/movementRepo são usados apenas
// para leituras fora de transação.
func NewLedger(txRunner TxRunner, positionRepo repository.StockPositionRepository, movementRepo repository.StockMovementRepository) *Ledger {
	return &Ledger{txRunner: txRunner, positionRepo: positionRepo, movementRepo: movementRepo}
}

// MovementInput entrada para aplicar um movimento.
// UnitCost é obrigatório em PURCHASE; em ADJUSTMENT positivo é opcional
// (ausente mantém o custo médio atual); ignorado nas saídas.
type MovementInput struct {
	CompanyID string
	ProductID string
	Kind      entity.MovementKind
	Quantity  int64 // delta assinado
	UnitCost  *decimal.Decimal
	Reference string
	Actor     string
}

func validateInput(in MovementInput) error {
	if in.CompanyID == "" || in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if !in.Kind.Valid() {
		return fmt.Errorf("tipo de movimento %q: %w", in.Kind, domain.ErrInvalidInput)
	}
	if in.Quantity == 0 {
		return domain.ErrInvalidQuantity
	}
	switch in.Kind {
	case entity.MovementPurchase:
		if in.Quantity < 0 {
			return fmt.Errorf("compra com delta negativo: %w", domain.ErrInvalidQuantity)
		}
		if in.UnitCost == nil {
			return fmt.Errorf("compra sem custo unitário: %w", domain.ErrInvalidCost)
		}
	case entity.MovementSale:
		if in.Quantity > 0 {
			return fmt.Errorf("venda com delta positivo: %w", domain.ErrInvalidQuantity)
		}
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return fmt.Errorf("custo %s: %w", in.UnitCost, domain.ErrInvalidCost)
	}
	return nil
}

// ApplyMovement valida a entrada e aplica o movimento numa transação própria.
func (l *Ledger) ApplyMovement(ctx context.Context, in MovementInput) (*entity.StockPosition, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var pos *entity.StockPosition
	err := l.txRunner.Run(ctx, func(
		posRepo repository.StockPositionRepository,
		movRepo repository.StockMovementRepository,
	) error {
		p, err := ApplyMovementTx(ctx, posRepo, movRepo, in)
		if err != nil {
			return err
		}
		pos = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pos, nil
}

// ApplyMovementTx aplica o movimento usando repositórios já atados à
// transação do caller (pipelines de nota fiscal e de venda usam isto para que
// a operação inteira seja uma única transação multi-chave). A validação da
// entrada é repetida aqui: nenhum caminho grava movimento inválido.
func ApplyMovementTx(
	ctx context.Context,
	posRepo repository.StockPositionRepository,
	movRepo repository.StockMovementRepository,
	in MovementInput,
) (*entity.StockPosition, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	// Bloqueia a linha da posição (SELECT FOR UPDATE); posição inexistente
	// volta zerada e é criada no Upsert (criação preguiçosa).
	pos, err := posRepo.GetForUpdate(ctx, in.CompanyID, in.ProductID)
	if err != nil {
		return nil, err
	}

	unitCost := pos.AverageCost // saídas registram o custo médio vigente (COGS)
	if in.Kind.Inbound(in.Quantity) && in.UnitCost != nil {
		pos.AverageCost = domstock.AverageCost(pos.Quantity, pos.AverageCost, in.Quantity, *in.UnitCost)
		unitCost = *in.UnitCost
	}
	pos.Quantity += in.Quantity
	pos.UpdatedAt = time.Now()

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		CompanyID: in.CompanyID,
		ProductID: in.ProductID,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		UnitCost:  unitCost,
		Reference: in.Reference,
		CreatedAt: pos.UpdatedAt,
		CreatedBy: in.Actor,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("gravar movimento %s/%s: %w", in.CompanyID, in.ProductID, err)
	}
	if err := posRepo.Upsert(ctx, pos); err != nil {
		return nil, fmt.Errorf("atualizar posição %s/%s: %w", in.CompanyID, in.ProductID, err)
	}
	return pos, nil
}

// Position devolve a posição de uma chave; zerada quando não existe.
// Leitura pura, sem efeito colateral.
func (l *Ledger) Position(ctx context.Context, companyID, productID string) (*entity.StockPosition, error) {
	return l.positionRepo.Get(ctx, companyID, productID)
}

// ConsolidatedPosition devolve a visão agregada de um produto: soma das
// quantidades de todas as empresas e média dos custos ponderada pela
// quantidade de cada empresa. O custo consolidado não é re-derivado dos
// movimentos: o histórico de custo fica local a cada empresa.
func (l *Ledger) ConsolidatedPosition(ctx context.Context, productID string) (*entity.ConsolidatedPosition, error) {
	positions, err := l.positionRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	var total int64
	weighted := decimal.Zero
	var positive int64
	for _, p := range positions {
		total += p.Quantity
		// Só posições positivas entram no peso: quantidade negativa não
		// representa custo de estoque em mãos.
		if p.Quantity > 0 {
			weighted = weighted.Add(decimal.NewFromInt(p.Quantity).Mul(p.AverageCost))
			positive += p.Quantity
		}
	}
	avg := decimal.Zero
	if positive > 0 {
		avg = weighted.Div(decimal.NewFromInt(positive))
	}
	return &entity.ConsolidatedPosition{
		ProductID:           productID,
		Quantity:            total,
		WeightedAverageCost: avg,
	}, nil
}

// PositionsByCompany lista as posições de uma empresa.
func (l *Ledger) PositionsByCompany(ctx context.Context, companyID string) ([]*entity.StockPosition, error) {
	return l.positionRepo.ListByCompany(ctx, companyID)
}

// PositionsByProduct lista as posições de um produto em todas as empresas.
func (l *Ledger) PositionsByProduct(ctx context.Context, productID string) ([]*entity.StockPosition, error) {
	return l.positionRepo.ListByProduct(ctx, productID)
}

// Movements devolve o histórico de movimentos de uma chave.
func (l *Ledger) Movements(ctx context.Context, companyID, productID string, limit int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 100
	}
	return l.movementRepo.ListByKey(ctx, companyID, productID, limit)
}

// CheckConsistency confronta a posição materializada com a soma assinada dos
// deltas do log de movimentos da chave.
func (l *Ledger) CheckConsistency(ctx context.Context, companyID, productID string) (int64, int64, error) {
	pos, err := l.positionRepo.Get(ctx, companyID, productID)
	if err != nil {
		return 0, 0, err
	}
	sum, err := l.movementRepo.SumDeltaByKey(ctx, companyID, productID)
	if err != nil {
		return 0, 0, err
	}
	return pos.Quantity, sum, nil
}
