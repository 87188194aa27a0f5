package tools

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"bank-assistant/internal/catalog"
	"bank-assistant/internal/i18n"
	"bank-assistant/internal/models"
	"bank-assistant/internal/services"
)

// stubBank записывает, с какими типизированными параметрами вызвали сервис.
type stubBank struct {
	last     string
	transfer services.TransferRequest
	err      error
	panicMsg string
}

func (b *stubBank) record(format string, args ...any) (string, error) {
	if b.panicMsg != "" {
		panic(b.panicMsg)
	}
	b.last = fmt.Sprintf(format, args...)
	return b.last, b.err
}

func (b *stubBank) Balance(_ context.Context, id int64, lang i18n.Lang) (string, error) {
	return b.record("balance %d %s", id, lang)
}

func (b *stubBank) AccountsInfo(_ context.Context, id int64, lang i18n.Lang) (string, error) {
	return b.record("accounts %d %s", id, lang)
}

func (b *stubBank) Transactions(_ context.Context, id int64, limit int, lang i18n.Lang) (string, error) {
	return b.record("transactions %d %d %s", id, limit, lang)
}

func (b *stubBank) LastIncoming(_ context.Context, id int64, lang i18n.Lang) (string, error) {
	return b.record("incoming %d %s", id, lang)
}

func (b *stubBank) PeriodSum(_ context.Context, id int64, dir models.Direction, start, end string, lang i18n.Lang) (string, error) {
	return b.record("period %d %s %s..%s %s", id, dir, start, end, lang)
}

func (b *stubBank) LastRecipients(_ context.Context, id int64, lang i18n.Lang) (string, error) {
	return b.record("recipients %d %s", id, lang)
}

func (b *stubBank) LargestTransaction(_ context.Context, id int64, lang i18n.Lang) (string, error) {
	return b.record("largest %d %s", id, lang)
}

func (b *stubBank) Transfer(_ context.Context, req services.TransferRequest) (services.TransferResult, error) {
	b.transfer = req
	msg, err := b.record("transfer %d -> %s: %s %s %s", req.FromCustomerID, req.ToName, req.Amount, req.Currency, req.Lang)
	return services.TransferResult{OK: err == nil, Code: services.CodeOK, Message: msg}, err
}

func newTestRegistry(t *testing.T, bank *stubBank) *Registry {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	r, err := Build(bank, bank, c)
	require.NoError(t, err)
	return r
}
