package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bank-assistant/internal/i18n"
	"bank-assistant/internal/models"
	"bank-assistant/internal/utils"
)

const (
	DefaultTransactionsLimit = 5
	MaxTransactionsLimit     = 50

	recipientsLimit   = 3
	recipientsScanned = 10
)

// QueryService отвечает на вопросы о счетах клиента. Только чтение, без блокировок.
type QueryService struct {
	ledger Ledger
	loc    *time.Location
}

func NewQueryService(ledger Ledger, loc *time.Location) *QueryService {
	utils.LogSuccess("QueryService", "Инициализирован сервис запросов (пояс: %s)", loc)
	return &QueryService{ledger: ledger, loc: loc}
}

// scope: счета клиента; msg непустое, если дальше идти не нужно.
type scope struct {
	customer *models.Customer
	accounts []models.Account
	msg      string
}

func (sc scope) accountIDs() []int64 {
	ids := make([]int64, 0, len(sc.accounts))
	for _, a := range sc.accounts {
		ids = append(ids, a.ID)
	}
	return ids
}

func (s *QueryService) resolve(ctx context.Context, customerID int64, lang i18n.Lang) (scope, error) {
	customer, err := s.ledger.CustomerByID(ctx, customerID)
	if errors.Is(err, ErrCustomerNotFound) {
		utils.LogWarning("QueryService", "Клиент %d не найден", customerID)
		return scope{msg: i18n.T(lang, "customer_not_found", nil)}, nil
	}
	if err != nil {
		return scope{}, fmt.Errorf("загрузка клиента %d: %w", customerID, err)
	}

	accounts, err := s.ledger.Accounts(ctx, customerID)
	if err != nil {
		return scope{}, fmt.Errorf("загрузка счетов клиента %d: %w", customerID, err)
	}
	if len(accounts) == 0 {
		return scope{customer: customer, msg: i18n.T(lang, "no_accounts", nil)}, nil
	}
	return scope{customer: customer, accounts: accounts}, nil
}

// Balance суммирует балансы всех счетов клиента по валютам.
func (s *QueryService) Balance(ctx context.Context, customerID int64, lang i18n.Lang) (string, error) {
	sc, err := s.resolve(ctx, customerID, lang)
	if err != nil || sc.msg != "" {
		return sc.msg, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, a := range sc.accounts {
		totals[a.Currency] = totals[a.Currency].Add(a.Balance)
	}
	amounts := make([]CurrencyAmount, 0, len(totals))
	for currency, amount := range totals {
		amounts = append(amounts, CurrencyAmount{Currency: currency, Amount: amount})
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].Currency < amounts[j].Currency })

	utils.LogSuccess("QueryService", "Баланс клиента %d: %d валют", customerID, len(amounts))
	return i18n.T(lang, "total_balance", i18n.Vars{"total": formatAmounts(amounts)}), nil
}

func (s *QueryService) AccountsInfo(ctx context.Context, customerID int64, lang i18n.Lang) (string, error) {
	sc, err := s.resolve(ctx, customerID, lang)
	if err != nil || sc.msg != "" {
		return sc.msg, err
	}

	lines := []string{i18n.T(lang, "accounts_title", nil)}
	for _, a := range sc.accounts {
		lines = append(lines, fmt.Sprintf("- %s %s: %s %s (%s)",
			a.Type, a.AccountNumber, i18n.Money(a.Balance), a.Currency, a.Status))
	}
	return strings.Join(lines, "\n"), nil
}

// Transactions показывает последние записи по всем счетам клиента.
func (s *QueryService) Transactions(ctx context.Context, customerID int64, limit int, lang i18n.Lang) (string, error) {
	sc, err := s.resolve(ctx, customerID, lang)
	if err != nil || sc.msg != "" {
		return sc.msg, err
	}

	txs, err := s.ledger.Transactions(ctx, TransactionFilter{
		AccountIDs: sc.accountIDs(),
		Order:      OrderNewest,
		Limit:      ClampLimit(limit),
	})
	if err != nil {
		return "", fmt.Errorf("история транзакций клиента %d: %w", customerID, err)
	}
	if len(txs) == 0 {
		return i18n.T(lang, "no_transactions", nil), nil
	}

	lines := []string{i18n.T(lang, "transactions_title", nil)}
	for _, t := range txs {
		lines = append(lines, "- "+s.describe(t))
	}
	return strings.Join(lines, "\n"), nil
}

// LastIncoming показывает последнее зачисление; отправитель берётся из описания "from X to Y".
func (s *QueryService) LastIncoming(ctx context.Context, customerID int64, lang i18n.Lang) (string, error) {
	sc, err := s.resolve(ctx, customerID, lang)
	if err != nil || sc.msg != "" {
		return sc.msg, err
	}

	txs, err := s.ledger.Transactions(ctx, TransactionFilter{
		AccountIDs: sc.accountIDs(),
		Types:      models.IncomingTypes,
		Order:      OrderNewest,
		Limit:      1,
	})
	if err != nil {
		return "", fmt.Errorf("последнее зачисление клиента %d: %w", customerID, err)
	}
	if len(txs) == 0 {
		return i18n.T(lang, "last_incoming_none", nil), nil
	}

	t := txs[0]
	sender := SenderFromDescription(t.Description)
	if sender == "" {
		sender = i18n.T(lang, "unknown_sender", nil)
	}
	return i18n.T(lang, "incoming_last", i18n.Vars{
		"sender":   sender,
		"amount":   i18n.Money(t.Amount),
		"currency": t.Currency,
		"ts":       formatLocal(t.CreatedAt, s.loc),
	}), nil
}

// PeriodSum суммирует входящие или исходящие записи за включительный диапазон дат.
func (s *QueryService) PeriodSum(ctx context.Context, customerID int64, dir models.Direction, start, end string, lang i18n.Lang) (string, error) {
	sc, err := s.resolve(ctx, customerID, lang)
	if err != nil || sc.msg != "" {
		return sc.msg, err
	}

	from, to, err := DayRange(start, end, s.loc)
	switch {
	case errors.Is(err, ErrBadDate):
		return i18n.T(lang, "wrong_date", nil), nil
	case errors.Is(err, ErrBadPeriod):
		return i18n.T(lang, "wrong_period", nil), nil
	}

	types, key := models.OutgoingTypes, "period_out"
	if dir == models.DirectionIncoming {
		types, key = models.IncomingTypes, "period_in"
	}

	utils.LogDebug("QueryService", "Период %s: [%s, %s)", key, from.Format(time.RFC3339), to.Format(time.RFC3339))
	amounts, err := s.ledger.SumTransactions(ctx, TransactionFilter{
		AccountIDs: sc.accountIDs(),
		Types:      types,
		From:       from,
		To:         to,
	})
	if err != nil {
		return "", fmt.Errorf("сумма за период клиента %d: %w", customerID, err)
	}
	if len(amounts) == 0 {
		amounts = []CurrencyAmount{{Currency: sc.accounts[0].Currency, Amount: decimal.Zero}}
	}

	return i18n.T(lang, key, i18n.Vars{
		"start": strings.TrimSpace(start),
		"end":   strings.TrimSpace(end),
		"total": formatAmounts(amounts),
	}), nil
}

// LastRecipients возвращает до трёх разных получателей из последних исходящих переводов.
func (s *QueryService) LastRecipients(ctx context.Context, customerID int64, lang i18n.Lang) (string, error) {
	sc, err := s.resolve(ctx, customerID, lang)
	if err != nil || sc.msg != "" {
		return sc.msg, err
	}

	txs, err := s.ledger.Transactions(ctx, TransactionFilter{
		AccountIDs: sc.accountIDs(),
		Types:      []models.TransactionType{models.TransactionTypeTransfer},
		Order:      OrderNewest,
		Limit:      recipientsScanned,
	})
	if err != nil {
		return "", fmt.Errorf("получатели клиента %d: %w", customerID, err)
	}

	seen := make(map[string]bool)
	var recipients []string
	for _, t := range txs {
		name := RecipientFromDescription(t.Description)
		key := models.NormalizeName(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		recipients = append(recipients, name)
		if len(recipients) == recipientsLimit {
			break
		}
	}
	if len(recipients) == 0 {
		return i18n.T(lang, "recipients_none", nil), nil
	}

	lines := []string{i18n.T(lang, "recipients_title", nil)}
	for _, name := range recipients {
		lines = append(lines, "- "+name)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *QueryService) LargestTransaction(ctx context.Context, customerID int64, lang i18n.Lang) (string, error) {
	sc, err := s.resolve(ctx, customerID, lang)
	if err != nil || sc.msg != "" {
		return sc.msg, err
	}

	txs, err := s.ledger.Transactions(ctx, TransactionFilter{
		AccountIDs: sc.accountIDs(),
		Order:      OrderLargest,
		Limit:      1,
	})
	if err != nil {
		return "", fmt.Errorf("крупнейшая транзакция клиента %d: %w", customerID, err)
	}
	if len(txs) == 0 {
		return i18n.T(lang, "largest_none", nil), nil
	}
	return i18n.T(lang, "largest_title", nil) + "\n" + s.describe(txs[0]), nil
}

func (s *QueryService) describe(t models.Transaction) string {
	return fmt.Sprintf("%s: %s %s %s, %s",
		t.Type, i18n.Money(t.Amount), t.Currency, t.Direction(), formatLocal(t.CreatedAt, s.loc))
}

// ClampLimit: 0 и меньше дают значение по умолчанию, сверху не больше MaxTransactionsLimit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultTransactionsLimit
	case limit > MaxTransactionsLimit:
		return MaxTransactionsLimit
	default:
		return limit
	}
}

func formatAmounts(amounts []CurrencyAmount) string {
	parts := make([]string, 0, len(amounts))
	for _, a := range amounts {
		parts = append(parts, i18n.Money(a.Amount)+" "+a.Currency)
	}
	return strings.Join(parts, ", ")
}

// SenderFromDescription достаёт X из "from X to Y"; пустая строка, если формат другой.
func SenderFromDescription(description string) string {
	_, rest, ok := strings.Cut(description, "from ")
	if !ok {
		return ""
	}
	sender, _, ok := strings.Cut(rest, " to ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(sender)
}

// RecipientFromDescription достаёт Y из "from X to Y".
func RecipientFromDescription(description string) string {
	_, recipient, ok := strings.Cut(description, " to ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(recipient)
}
