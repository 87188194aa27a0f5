package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"bank-assistant/internal/models"
	"bank-assistant/internal/services"
	"bank-assistant/internal/utils"
)

const accountColumns = `id, customer_id, account_number, account_type, currency, balance, status, created_at, updated_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.AccountNumber,
		&a.Type,
		&a.Currency,
		&a.Balance,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, services.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения счёта: %w", err)
	}
	return a, nil
}

// Accounts возвращает счета клиента по возрастанию id.
func (s *LedgerStore) Accounts(ctx context.Context, customerID int64) ([]models.Account, error) {
	utils.LogDB("GET ACCOUNTS", "Счета клиента %d", customerID)

	rows, err := s.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE customer_id = $1 ORDER BY id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка счетов: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка получения списка счетов: %w", err)
	}
	return accounts, nil
}

// CreateAccount заполняет ID и временные метки.
func (s *LedgerStore) CreateAccount(ctx context.Context, a *models.Account) error {
	utils.LogDB("CREATE ACCOUNT", "Счёт %s (%s) для клиента %d", a.AccountNumber, a.Currency, a.CustomerID)
	query := `
		INSERT INTO accounts (customer_id, account_number, account_type, currency, balance, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRow(ctx, query,
		a.CustomerID, a.AccountNumber, a.Type, a.Currency, a.Balance, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания счёта: %w", err)
	}
	return nil
}

// ledgerTx: операции перевода внутри одной pgx-транзакции.
type ledgerTx struct {
	tx pgx.Tx
}

func (t *ledgerTx) ActiveAccount(ctx context.Context, customerID int64, currency string) (*models.Account, error) {
	utils.LogDB("GET ACCOUNT", "Активный счёт клиента %d в %s", customerID, currency)
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE customer_id = $1 AND currency = $2 AND status = 'active'
		ORDER BY id
		LIMIT 1
	`
	return scanAccount(t.tx.QueryRow(ctx, query, customerID, currency))
}

func (t *ledgerTx) LockAccount(ctx context.Context, id int64) (*models.Account, error) {
	utils.LogDB("LOCK ACCOUNT", "SELECT ... FOR UPDATE, счёт %d", id)
	return scanAccount(t.tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id))
}

func (t *ledgerTx) SetBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	utils.LogDB("UPDATE BALANCE", "Счёт %d: %s", id, balance.StringFixed(2))

	result, err := t.tx.Exec(ctx, `UPDATE accounts SET balance = $1, updated_at = NOW() WHERE id = $2`, balance, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления баланса: %w", err)
	}
	if result.RowsAffected() == 0 {
		return services.ErrAccountNotFound
	}
	return nil
}
