package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"bank-assistant/internal/models"
	"bank-assistant/internal/services"
	"bank-assistant/internal/utils"
)

const transactionColumns = `
	id, account_id, transaction_type, amount, currency, COALESCE(description, ''),
	status, transfer_id, created_at, updated_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Type,
		&t.Amount,
		&t.Currency,
		&t.Description,
		&t.Status,
		&t.TransferID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("ошибка сканирования транзакции: %w", err)
	}
	return t, nil
}

// whereClause собирает условия фильтра; $-плейсхолдеры нумеруются с 1.
func whereClause(f services.TransactionFilter) (string, []any) {
	conds := []string{"account_id = ANY($1)"}
	args := []any{f.AccountIDs}

	if len(f.Types) > 0 {
		types := make([]string, len(f.Types))
		for i, t := range f.Types {
			types[i] = string(t)
		}
		args = append(args, types)
		conds = append(conds, fmt.Sprintf("transaction_type = ANY($%d)", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From.UTC())
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To.UTC())
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *LedgerStore) Transactions(ctx context.Context, f services.TransactionFilter) ([]models.Transaction, error) {
	if len(f.AccountIDs) == 0 {
		return nil, nil
	}
	where, args := whereClause(f)

	order := " ORDER BY created_at DESC, id DESC"
	if f.Order == services.OrderLargest {
		order = " ORDER BY amount DESC, created_at DESC, id DESC"
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions` + where + order
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	utils.LogDB("GET TRANSACTIONS", "Счета %v, типы %v, limit %d", f.AccountIDs, f.Types, f.Limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций: %w", err)
	}
	return out, nil
}

func (s *LedgerStore) SumTransactions(ctx context.Context, f services.TransactionFilter) ([]services.CurrencyAmount, error) {
	if len(f.AccountIDs) == 0 {
		return nil, nil
	}
	where, args := whereClause(f)
	query := `SELECT currency, SUM(amount) FROM transactions` + where + ` GROUP BY currency ORDER BY currency`

	utils.LogDB("SUM TRANSACTIONS", "Счета %v, типы %v, [%v, %v)", f.AccountIDs, f.Types, f.From, f.To)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта суммы: %w", err)
	}
	defer rows.Close()

	var out []services.CurrencyAmount
	for rows.Next() {
		var a services.CurrencyAmount
		if err := rows.Scan(&a.Currency, &a.Amount); err != nil {
			return nil, fmt.Errorf("ошибка подсчёта суммы: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта суммы: %w", err)
	}
	return out, nil
}

// InTx выполняет fn в транзакции; блокировки FOR UPDATE держатся до Commit или Rollback.
func (s *LedgerStore) InTx(ctx context.Context, fn func(tx services.LedgerTx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(context.WithoutCancel(ctx))

	if err := fn(&ledgerTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка подтверждения транзакции: %w", err)
	}
	return nil
}

func (t *ledgerTx) AppendTransaction(ctx context.Context, tr *models.Transaction) error {
	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = time.Now().UTC()
	}
	utils.LogDB("INSERT TRANSACTION", "Счёт %d: %s %s %s", tr.AccountID, tr.Type, tr.Amount.StringFixed(2), tr.Currency)
	query := `
		INSERT INTO transactions (account_id, transaction_type, amount, currency, description, status, transfer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, updated_at
	`
	err := t.tx.QueryRow(ctx, query,
		tr.AccountID, tr.Type, tr.Amount, tr.Currency, tr.Description, tr.Status, tr.TransferID, tr.CreatedAt,
	).Scan(&tr.ID, &tr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка записи транзакции: %w", err)
	}
	return nil
}

// AppendTransaction вне перевода, для заполнения демо-данными.
func (s *LedgerStore) AppendTransaction(ctx context.Context, tr *models.Transaction) error {
	return s.InTx(ctx, func(tx services.LedgerTx) error {
		return tx.AppendTransaction(ctx, tr)
	})
}

var _ services.Ledger = (*LedgerStore)(nil)
