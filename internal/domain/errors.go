package domain

import "errors"

// Erros de domínio (sem dependências externas). Os casos de uso envolvem
// estes sentinelas com fmt.Errorf("...: %w", err) incluindo ids de empresa,
// produto e documento para rastreabilidade.
var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("não autorizado")

	// Validação de movimentos de estoque.
	ErrInvalidQuantity = errors.New("quantidade inválida")
	ErrInvalidCost     = errors.New("custo unitário inválido")

	// Erros referenciais: abortam a transação inteira.
	ErrUnknownProduct = errors.New("produto não cadastrado")
	ErrUnknownCompany = errors.New("empresa não cadastrada")
	ErrCompanyInUse   = errors.New("empresa possui posições de estoque")

	// Guardas de idempotência: seguras de detectar e re-tentar pelo caller.
	ErrAlreadyProcessed = errors.New("nota fiscal já processada")
	ErrDuplicateSale    = errors.New("venda já importada")
	ErrAlreadySettled   = errors.New("lançamento já baixado")

	// Baixa parcial não é suportada: o lançamento quita por inteiro ou não quita.
	ErrAmountMismatch = errors.New("valor da baixa difere do lançamento")

	// Conflito de concorrência transitório; o caller re-tenta com backoff.
	ErrVersionConflict = errors.New("conflito de versão, tente novamente")
)
