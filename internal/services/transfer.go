package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bank-assistant/internal/i18n"
	"bank-assistant/internal/models"
	"bank-assistant/internal/utils"
)

const DefaultCurrency = "KGS"

// maxAmountLength ограничивает длину суммы вместе со знаком и дробной частью.
const maxAmountLength = 32

// amountPattern: только десятичная запись, без экспоненты.
var amountPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// Коды отказа перевода, они же ключи сообщений.
const (
	CodeOK               = "ok_transfer"
	CodeWrongAmount      = "wrong_amount"
	CodeNeedAmount       = "need_amount"
	CodeCustomerNotFound = "customer_not_found"
	CodeUserNotFound     = "user_not_found"
	CodeCannotSelf       = "cannot_self"
	CodeAccountsMissing  = "accounts_missing"
	CodeAccountBlocked   = "account_blocked"
	CodeNotEnough        = "not_enough"
)

type TransferRequest struct {
	FromCustomerID int64
	ToName         string
	// Amount: сумма в текстовом виде, парсится как десятичное число.
	Amount   string
	Currency string
	Lang     i18n.Lang
}

// TransferResult: исход перевода. Бизнес-отказ это результат с OK=false, а не ошибка.
type TransferResult struct {
	OK      bool
	Code    string
	Message string
}

type TransferService struct {
	ledger Ledger
	now    func() time.Time
}

func NewTransferService(ledger Ledger) *TransferService {
	utils.LogSuccess("TransferService", "Инициализирован сервис переводов")
	return &TransferService{ledger: ledger, now: time.Now}
}

// rejection откатывает транзакцию перевода с кодом отказа.
type rejection struct {
	code string
}

func (r rejection) Error() string { return r.code }

// Transfer переводит деньги клиенту по отображаемому имени.
// Оба счёта блокируются по возрастанию id до чтения балансов.
func (s *TransferService) Transfer(ctx context.Context, req TransferRequest) (TransferResult, error) {
	lang := i18n.Parse(string(req.Lang))
	utils.LogInfo("TransferService", "Перевод от клиента %d получателю %q: %s %s",
		req.FromCustomerID, req.ToName, req.Amount, req.Currency)

	amount, ok := parseAmount(req.Amount)
	if !ok {
		return s.reject(lang, CodeWrongAmount, nil), nil
	}
	if !amount.IsPositive() {
		return s.reject(lang, CodeNeedAmount, nil), nil
	}

	from, err := s.ledger.CustomerByID(ctx, req.FromCustomerID)
	if errors.Is(err, ErrCustomerNotFound) {
		return s.reject(lang, CodeCustomerNotFound, nil), nil
	}
	if err != nil {
		utils.LogError("TransferService", "Ошибка загрузки отправителя", err)
		return TransferResult{}, fmt.Errorf("загрузка отправителя: %w", err)
	}

	toName := strings.TrimSpace(req.ToName)
	to, err := s.ledger.CustomerByName(ctx, models.NormalizeName(toName))
	if errors.Is(err, ErrCustomerNotFound) {
		return s.reject(lang, CodeUserNotFound, i18n.Vars{"name": toName}), nil
	}
	if err != nil {
		utils.LogError("TransferService", "Ошибка поиска получателя", err)
		return TransferResult{}, fmt.Errorf("поиск получателя: %w", err)
	}
	if to.ID == from.ID {
		return s.reject(lang, CodeCannotSelf, nil), nil
	}

	currency := NormalizeCurrency(req.Currency)
	description := fmt.Sprintf("from %s to %s", from.FullName(), to.FullName())
	now := s.now().UTC()
	transferID := uuid.New()

	err = s.ledger.InTx(ctx, func(tx LedgerTx) error {
		src, err := activeAccount(ctx, tx, from.ID, currency)
		if err != nil {
			return err
		}
		dst, err := activeAccount(ctx, tx, to.ID, currency)
		if err != nil {
			return err
		}

		locked, err := lockInOrder(ctx, tx, src.ID, dst.ID)
		if err != nil {
			return err
		}
		src, dst = locked[src.ID], locked[dst.ID]

		if !src.IsActive() || !dst.IsActive() {
			return rejection{code: CodeAccountBlocked}
		}
		if src.Balance.LessThan(amount) {
			return rejection{code: CodeNotEnough}
		}

		if err := tx.SetBalance(ctx, src.ID, src.Balance.Sub(amount).Round(2)); err != nil {
			return fmt.Errorf("списание со счёта %d: %w", src.ID, err)
		}
		if err := tx.SetBalance(ctx, dst.ID, dst.Balance.Add(amount).Round(2)); err != nil {
			return fmt.Errorf("зачисление на счёт %d: %w", dst.ID, err)
		}

		legs := []*models.Transaction{
			newLeg(src.ID, models.TransactionTypeTransfer, amount, currency, description, transferID, now),
			newLeg(dst.ID, models.TransactionTypeDeposit, amount, currency, description, transferID, now),
		}
		for _, leg := range legs {
			if err := tx.AppendTransaction(ctx, leg); err != nil {
				return fmt.Errorf("запись транзакции по счёту %d: %w", leg.AccountID, err)
			}
		}
		return nil
	})

	var rej rejection
	switch {
	case errors.As(err, &rej):
		return s.reject(lang, rej.code, nil), nil
	case err != nil:
		utils.LogError("TransferService", "Перевод не выполнен", err)
		return TransferResult{}, fmt.Errorf("перевод: %w", err)
	}

	utils.LogSuccess("TransferService", "Перевод %s выполнен: %s %s, %s", transferID, amount.StringFixed(2), currency, description)
	return TransferResult{
		OK:   true,
		Code: CodeOK,
		Message: i18n.T(lang, CodeOK, i18n.Vars{
			"amount":   i18n.Money(amount),
			"currency": currency,
			"to_name":  to.FullName(),
		}),
	}, nil
}

// parseAmount разбирает сумму и округляет её до копеек половиной вверх.
// Экспоненциальная и слишком длинная запись отклоняются до округления.
func parseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) > maxAmountLength || !amountPattern.MatchString(raw) {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount.Round(2), true
}

func (s *TransferService) reject(lang i18n.Lang, code string, vars i18n.Vars) TransferResult {
	utils.LogWarning("TransferService", "Перевод отклонён: %s", code)
	return TransferResult{Code: code, Message: i18n.T(lang, code, vars)}
}

func activeAccount(ctx context.Context, tx LedgerTx, customerID int64, currency string) (*models.Account, error) {
	acc, err := tx.ActiveAccount(ctx, customerID, currency)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, rejection{code: CodeAccountsMissing}
	}
	if err != nil {
		return nil, fmt.Errorf("выбор счёта клиента %d: %w", customerID, err)
	}
	return acc, nil
}

// lockInOrder блокирует счета строго по возрастанию id, независимо от направления перевода.
func lockInOrder(ctx context.Context, tx LedgerTx, ids ...int64) (map[int64]*models.Account, error) {
	ordered := append([]int64(nil), ids...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	locked := make(map[int64]*models.Account, len(ordered))
	for _, id := range ordered {
		if _, ok := locked[id]; ok {
			continue
		}
		acc, err := tx.LockAccount(ctx, id)
		if errors.Is(err, ErrAccountNotFound) {
			return nil, rejection{code: CodeAccountsMissing}
		}
		if err != nil {
			return nil, fmt.Errorf("блокировка счёта %d: %w", id, err)
		}
		locked[id] = acc
	}
	return locked, nil
}

func newLeg(accountID int64, txType models.TransactionType, amount decimal.Decimal, currency, description string, transferID uuid.UUID, at time.Time) *models.Transaction {
	id := transferID
	return &models.Transaction{
		AccountID:   accountID,
		Type:        txType,
		Amount:      amount,
		Currency:    currency,
		Description: description,
		Status:      models.TransactionStatusCompleted,
		TransferID:  &id,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

// NormalizeCurrency приводит код к верхнему регистру, пустой код заменяется на KGS.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}
