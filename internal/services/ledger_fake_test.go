package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"bank-assistant/internal/models"
)

// fakeLedger хранит данные в памяти и эмулирует блокировки строк мьютексами.
// Изменения транзакции копятся отдельно и применяются только при фиксации.
type fakeLedger struct {
	mu        sync.Mutex
	customers map[int64]models.Customer
	accounts  map[int64]models.Account
	rowLocks  map[int64]*sync.Mutex
	txs       []models.Transaction
	nextTxID  int64

	lockLog [][]int64

	// хуки для проверки сбоев
	onLock     func(id int64)
	failAppend error
	failRead   error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		customers: make(map[int64]models.Customer),
		accounts:  make(map[int64]models.Account),
		rowLocks:  make(map[int64]*sync.Mutex),
	}
}

func (l *fakeLedger) addCustomer(id int64, first, last string) {
	l.customers[id] = models.Customer{ID: id, FirstName: first, LastName: last}
}

func (l *fakeLedger) addAccount(id, customerID int64, currency, balance string, status models.AccountStatus) {
	l.accounts[id] = models.Account{
		ID:            id,
		CustomerID:    customerID,
		AccountNumber: "1300000000" + decimal.NewFromInt(id).String(),
		Type:          models.AccountTypeCurrent,
		Currency:      currency,
		Balance:       decimal.RequireFromString(balance),
		Status:        status,
	}
	l.rowLocks[id] = &sync.Mutex{}
}

func (l *fakeLedger) addTx(accountID int64, txType models.TransactionType, amount, currency, description string, at time.Time) {
	l.nextTxID++
	l.txs = append(l.txs, models.Transaction{
		ID:          l.nextTxID,
		AccountID:   accountID,
		Type:        txType,
		Amount:      decimal.RequireFromString(amount),
		Currency:    currency,
		Description: description,
		Status:      models.TransactionStatusCompleted,
		CreatedAt:   at,
		UpdatedAt:   at,
	})
}

func (l *fakeLedger) balance(id int64) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[id].Balance
}

func (l *fakeLedger) setStatus(id int64, status models.AccountStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc := l.accounts[id]
	acc.Status = status
	l.accounts[id] = acc
}

func (l *fakeLedger) transactions() []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Transaction(nil), l.txs...)
}

func (l *fakeLedger) CustomerByID(_ context.Context, id int64) (*models.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failRead != nil {
		return nil, l.failRead
	}
	c, ok := l.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return &c, nil
}

func (l *fakeLedger) CustomerByName(_ context.Context, normalized string) (*models.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]int64, 0, len(l.customers))
	for id := range l.customers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		c := l.customers[id]
		if models.NormalizeName(c.FullName()) == normalized {
			return &c, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (l *fakeLedger) Accounts(_ context.Context, customerID int64) ([]models.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failRead != nil {
		return nil, l.failRead
	}
	var out []models.Account
	for _, a := range l.accounts {
		if a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (l *fakeLedger) selectTxs(f TransactionFilter) []models.Transaction {
	accounts := make(map[int64]bool, len(f.AccountIDs))
	for _, id := range f.AccountIDs {
		accounts[id] = true
	}
	types := make(map[models.TransactionType]bool, len(f.Types))
	for _, t := range f.Types {
		types[t] = true
	}

	var out []models.Transaction
	for _, t := range l.txs {
		if !accounts[t.AccountID] {
			continue
		}
		if len(types) > 0 && !types[t.Type] {
			continue
		}
		if !f.From.IsZero() && t.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !t.CreatedAt.Before(f.To) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.Order == OrderLargest && !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func (l *fakeLedger) Transactions(_ context.Context, f TransactionFilter) ([]models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failRead != nil {
		return nil, l.failRead
	}
	return l.selectTxs(f), nil
}

func (l *fakeLedger) SumTransactions(_ context.Context, f TransactionFilter) ([]CurrencyAmount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failRead != nil {
		return nil, l.failRead
	}
	f.Limit = 0
	totals := make(map[string]decimal.Decimal)
	for _, t := range l.selectTxs(f) {
		totals[t.Currency] = totals[t.Currency].Add(t.Amount)
	}
	out := make([]CurrencyAmount, 0, len(totals))
	for c, a := range totals {
		out = append(out, CurrencyAmount{Currency: c, Amount: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

func (l *fakeLedger) InTx(ctx context.Context, fn func(tx LedgerTx) error) error {
	tx := &fakeTx{l: l, held: make(map[int64]bool), balances: make(map[int64]decimal.Decimal)}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return tx.commit()
}

type fakeTx struct {
	l        *fakeLedger
	held     map[int64]bool
	order    []int64
	balances map[int64]decimal.Decimal
	appended []models.Transaction
}

func (tx *fakeTx) ActiveAccount(_ context.Context, customerID int64, currency string) (*models.Account, error) {
	tx.l.mu.Lock()
	defer tx.l.mu.Unlock()
	var found *models.Account
	for _, a := range tx.l.accounts {
		if a.CustomerID != customerID || a.Currency != currency || !a.IsActive() {
			continue
		}
		if found == nil || a.ID < found.ID {
			acc := a
			found = &acc
		}
	}
	if found == nil {
		return nil, ErrAccountNotFound
	}
	return found, nil
}

func (tx *fakeTx) LockAccount(_ context.Context, id int64) (*models.Account, error) {
	tx.l.mu.Lock()
	m, ok := tx.l.rowLocks[id]
	tx.l.mu.Unlock()
	if !ok {
		return nil, ErrAccountNotFound
	}

	if !tx.held[id] {
		m.Lock()
		tx.held[id] = true
		tx.order = append(tx.order, id)
	}
	if tx.l.onLock != nil {
		tx.l.onLock(id)
	}

	tx.l.mu.Lock()
	defer tx.l.mu.Unlock()
	acc := tx.l.accounts[id]
	return &acc, nil
}

func (tx *fakeTx) SetBalance(_ context.Context, id int64, balance decimal.Decimal) error {
	if !tx.held[id] {
		return errors.New("balance write without row lock")
	}
	tx.balances[id] = balance
	return nil
}

func (tx *fakeTx) AppendTransaction(_ context.Context, t *models.Transaction) error {
	if !tx.held[t.AccountID] {
		return errors.New("transaction insert without row lock")
	}
	if tx.l.failAppend != nil && len(tx.appended) > 0 {
		return tx.l.failAppend
	}
	tx.appended = append(tx.appended, *t)
	return nil
}

func (tx *fakeTx) commit() error {
	tx.l.mu.Lock()
	defer tx.l.mu.Unlock()
	for _, b := range tx.balances {
		if b.IsNegative() {
			return errors.New("balance check constraint violated")
		}
	}
	for id, b := range tx.balances {
		acc := tx.l.accounts[id]
		acc.Balance = b
		tx.l.accounts[id] = acc
	}
	for _, t := range tx.appended {
		tx.l.nextTxID++
		t.ID = tx.l.nextTxID
		tx.l.txs = append(tx.l.txs, t)
	}
	return nil
}

func (tx *fakeTx) release() {
	tx.l.mu.Lock()
	tx.l.lockLog = append(tx.l.lockLog, tx.order)
	locks := make([]*sync.Mutex, 0, len(tx.order))
	for _, id := range tx.order {
		locks = append(locks, tx.l.rowLocks[id])
	}
	tx.l.mu.Unlock()

	for _, m := range locks {
		m.Unlock()
	}
}
