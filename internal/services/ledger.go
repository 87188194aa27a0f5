package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"bank-assistant/internal/models"
)

var (
	ErrCustomerNotFound = errors.New("клиент не найден")
	ErrAccountNotFound  = errors.New("счёт не найден")
)

// TxOrder задаёт порядок выборки транзакций.
type TxOrder int

const (
	OrderNewest TxOrder = iota
	OrderLargest
)

// TransactionFilter: узкий фильтр выборки по набору счетов.
// From/To задают полуинтервал [From, To) в UTC; нулевое значение снимает границу.
type TransactionFilter struct {
	AccountIDs []int64
	Types      []models.TransactionType
	From       time.Time
	To         time.Time
	Order      TxOrder
	Limit      int
}

type CurrencyAmount struct {
	Currency string
	Amount   decimal.Decimal
}

// Ledger: хранилище клиентов, счетов и транзакций.
// Каждый вызов работает в своей сессии, общих сессий между запросами нет.
type Ledger interface {
	CustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	// CustomerByName ищет клиента по нормализованному "имя фамилия".
	CustomerByName(ctx context.Context, normalized string) (*models.Customer, error)
	Accounts(ctx context.Context, customerID int64) ([]models.Account, error)
	Transactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
	// SumTransactions суммирует по валютам, результат отсортирован по коду валюты.
	SumTransactions(ctx context.Context, filter TransactionFilter) ([]CurrencyAmount, error)
	// InTx выполняет fn в одной транзакции: nil фиксирует, ошибка откатывает всё.
	InTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx: операции внутри транзакции перевода.
type LedgerTx interface {
	// ActiveAccount возвращает первый по id активный счёт клиента в валюте.
	ActiveAccount(ctx context.Context, customerID int64, currency string) (*models.Account, error)
	// LockAccount блокирует строку счёта до конца транзакции и читает её заново.
	LockAccount(ctx context.Context, id int64) (*models.Account, error)
	SetBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	AppendTransaction(ctx context.Context, t *models.Transaction) error
}
