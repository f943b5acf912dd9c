package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

var _ repository.AccountEntryRepository = (*AccountEntryRepo)(nil)
var _ repository.BankAccountRepository = (*BankAccountRepo)(nil)

// AccountEntryRepo implementação de AccountEntryRepository (usável com pool ou tx).
type AccountEntryRepo struct {
	q Querier
}

// NewAccountEntryRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAccountEntryRepository(q Querier) *AccountEntryRepo {
	return &AccountEntryRepo{q: q}
}

const entryColumns = `id, type, description, amount, due_date, status, COALESCE(counterparty, ''), COALESCE(source_ref, ''), COALESCE(bank_account_id, ''), settled_at, created_at`

// Create persiste um lançamento financeiro.
func (r *AccountEntryRepo) Create(ctx context.Context, entry *entity.AccountEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO account_entries (id, type, description, amount, due_date, status, counterparty, source_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.Type, entry.Description, entry.Amount, entry.DueDate, entry.Status,
		nullIfEmpty(entry.Counterparty), nullIfEmpty(entry.SourceRef),
	)
	if err != nil {
		return fmt.Errorf("insert account entry: %w", err)
	}
	return nil
}

// GetByID obtém um lançamento por ID.
func (r *AccountEntryRepo) GetByID(ctx context.Context, id string) (*entity.AccountEntry, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtém o lançamento bloqueando a linha (SELECT FOR UPDATE).
func (r *AccountEntryRepo) GetForUpdate(ctx context.Context, id string) (*entity.AccountEntry, error) {
	return r.get(ctx, id, true)
}

func (r *AccountEntryRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.AccountEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM account_entries WHERE id = $1`, entryColumns)
	if forUpdate {
		query += " FOR UPDATE"
	}
	var e entity.AccountEntry
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Type, &e.Description, &e.Amount, &e.DueDate, &e.Status,
		&e.Counterparty, &e.SourceRef, &e.BankAccountID, &e.SettledAt, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account entry: %w", err)
	}
	return &e, nil
}

// List lista lançamentos por status (vazio lista todos), vencimento mais próximo primeiro.
func (r *AccountEntryRepo) List(ctx context.Context, status string) ([]*entity.AccountEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM account_entries`, entryColumns)
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY due_date"
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list account entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountEntry
	for rows.Next() {
		var e entity.AccountEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.Description, &e.Amount, &e.DueDate, &e.Status,
			&e.Counterparty, &e.SourceRef, &e.BankAccountID, &e.SettledAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// MarkSettled marca o lançamento como baixado contra uma conta bancária.
func (r *AccountEntryRepo) MarkSettled(ctx context.Context, id, bankAccountID string, settledAt time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE account_entries SET status = $2, bank_account_id = $3, settled_at = $4 WHERE id = $1`,
		id, entity.EntrySettled, bankAccountID, settledAt,
	)
	if err != nil {
		return fmt.Errorf("mark entry settled: %w", err)
	}
	return nil
}

// SumPendingByType soma os lançamentos PENDING do tipo dado.
func (r *AccountEntryRepo) SumPendingByType(ctx context.Context, entryType string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM account_entries WHERE type = $1 AND status = $2`,
		entryType, entity.EntryPending,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum pending entries: %w", err)
	}
	return sum, nil
}

// SumByTypeBetween soma lançamentos do tipo com ocorrência no período.
func (r *AccountEntryRepo) SumByTypeBetween(ctx context.Context, entryType string, start, end time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM account_entries WHERE type = $1 AND due_date >= $2 AND due_date < $3`,
		entryType, start, end,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum entries between: %w", err)
	}
	return sum, nil
}

// MonthlyTotals agrupa lançamentos por (ano, mês, tipo), mais recente primeiro.
func (r *AccountEntryRepo) MonthlyTotals(ctx context.Context, limit int) ([]repository.MonthlyTotal, error) {
	query := `
		SELECT EXTRACT(YEAR FROM due_date)::int AS year,
		       EXTRACT(MONTH FROM due_date)::int AS month,
		       type, SUM(amount), COUNT(*)::int
		FROM account_entries
		GROUP BY year, month, type
		ORDER BY year DESC, month DESC, type
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()
	var list []repository.MonthlyTotal
	for rows.Next() {
		var t repository.MonthlyTotal
		if err := rows.Scan(&t.Year, &t.Month, &t.Type, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// BankAccountRepo implementação de BankAccountRepository (usável com pool ou tx).
type BankAccountRepo struct {
	q Querier
}

// NewBankAccountRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewBankAccountRepository(q Querier) *BankAccountRepo {
	return &BankAccountRepo{q: q}
}

const bankColumns = `id, name, COALESCE(bank, ''), balance, active, created_at, updated_at`

// Create persiste uma nova conta bancária.
func (r *BankAccountRepo) Create(ctx context.Context, account *entity.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (id, name, bank, balance, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		account.ID, account.Name, nullIfEmpty(account.Bank), account.Balance, account.Active,
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bank account: %w", err)
	}
	return nil
}

// GetByID obtém uma conta bancária por ID.
func (r *BankAccountRepo) GetByID(ctx context.Context, id string) (*entity.BankAccount, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtém a conta bloqueando a linha (SELECT FOR UPDATE).
func (r *BankAccountRepo) GetForUpdate(ctx context.Context, id string) (*entity.BankAccount, error) {
	return r.get(ctx, id, true)
}

func (r *BankAccountRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.BankAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM bank_accounts WHERE id = $1`, bankColumns)
	if forUpdate {
		query += " FOR UPDATE"
	}
	var a entity.BankAccount
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Bank, &a.Balance, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank account: %w", err)
	}
	return &a, nil
}

// List lista todas as contas bancárias.
func (r *BankAccountRepo) List(ctx context.Context) ([]*entity.BankAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM bank_accounts ORDER BY name`, bankColumns)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.BankAccount
	for rows.Next() {
		var a entity.BankAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.Bank, &a.Balance, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update atualiza os dados cadastrais da conta. Saldo só muda via UpdateBalance.
func (r *BankAccountRepo) Update(ctx context.Context, account *entity.BankAccount) error {
	query := `UPDATE bank_accounts SET name = $2, bank = $3, active = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		account.ID, account.Name, nullIfEmpty(account.Bank), account.Active, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bank account: %w", err)
	}
	return nil
}

// UpdateBalance grava o novo saldo da conta (usado pela baixa financeira).
func (r *BankAccountRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE bank_accounts SET balance = $2, updated_at = now() WHERE id = $1`,
		id, balance,
	)
	if err != nil {
		return fmt.Errorf("update bank balance: %w", err)
	}
	return nil
}

// SumBalances soma o saldo das contas ativas.
func (r *BankAccountRepo) SumBalances(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(balance), 0) FROM bank_accounts WHERE active`,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum bank balances: %w", err)
	}
	return sum, nil
}
