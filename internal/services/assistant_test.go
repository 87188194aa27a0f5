package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-assistant/internal/i18n"
	"bank-assistant/internal/models"
	"bank-assistant/internal/toolcall"
)

// stubDispatcher отвечает "<tool>@<lang>" и запоминает вызовы.
type stubDispatcher struct {
	calls []toolcall.Call
}

func (d *stubDispatcher) Dispatch(_ context.Context, call toolcall.Call, caller Caller) string {
	d.calls = append(d.calls, call)
	return call.Name + "@" + string(caller.Lang)
}

type stubModel struct {
	reply string
	err   error
	turns []models.Turn
}

func (m *stubModel) Respond(_ context.Context, turns []models.Turn) (string, error) {
	m.turns = turns
	return m.reply, m.err
}

type stubPrompter struct{}

func (stubPrompter) SystemPrompt(lang i18n.Lang) string { return "system:" + string(lang) }

type stubRecorder struct {
	mu      sync.Mutex
	records []string
}

func (r *stubRecorder) Record(_ context.Context, customerID int64, question, reply string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, question+" => "+reply)
}

func TestAssembleWithoutMarkersReturnsText(t *testing.T) {
	d := &stubDispatcher{}
	text := "Саламатсызбы! Кантип жардам берем?"

	assert.Equal(t, text, Assemble(context.Background(), d, text, Caller{CustomerID: 1, Lang: i18n.Kyrgyz}))
	assert.Empty(t, d.calls)
}

func TestAssembleReplacesNarrationWithResults(t *testing.T) {
	d := &stubDispatcher{}
	text := "Текшерем. [FUNC_CALL:name=get_balance, lang=ru] жана [FUNC_CALL:name=get_transactions, limit=3] Бир аз күтүңүз."

	got := Assemble(context.Background(), d, text, Caller{CustomerID: 1, Lang: i18n.Russian})

	assert.Equal(t, "get_balance@ru\nget_transactions@ru", got)
	require.Len(t, d.calls, 2)
	assert.Equal(t, map[string]any{"limit": int64(3)}, d.calls[1].Args)
}

func TestAssembleUnbalancedQuoteStillReplacesNarration(t *testing.T) {
	d := &stubDispatcher{}
	text := `Перевожу. [FUNC_CALL:name=transfer_money, to_name="Aigerim Sadykova, amount=10] Готово.`

	got := Assemble(context.Background(), d, text, Caller{CustomerID: 1, Lang: i18n.Russian})

	assert.Equal(t, "transfer_money@ru", got)
	assert.NotContains(t, got, "FUNC_CALL")
	require.Len(t, d.calls, 1)
	assert.Equal(t, int64(10), d.calls[0].Args["amount"])
}

func TestAssembleIsolatesMalformedCall(t *testing.T) {
	d := &stubDispatcher{}
	text := "[FUNC_CALL:get_balance] [FUNC_CALL:name=get_accounts_info]"

	got := Assemble(context.Background(), d, text, Caller{CustomerID: 1, Lang: i18n.Russian})

	assert.Equal(t, `Ошибка вызова функции (get_balance): call must start with "name="`+"\nget_accounts_info@ru", got)
	require.Len(t, d.calls, 1)
}

func newTestAssistant(l *fakeLedger, model ChatModel, rec Recorder) (*Assistant, *stubDispatcher) {
	d := &stubDispatcher{}
	return NewAssistant(l, model, stubPrompter{}, d, rec), d
}

func TestAskBuildsTurnsAndRecords(t *testing.T) {
	model := &stubModel{reply: "[FUNC_CALL:name=get_balance]"}
	rec := &stubRecorder{}
	a, d := newTestAssistant(seedLedger(), model, rec)

	reply, err := a.Ask(context.Background(), Caller{CustomerID: 1, Lang: "en"}, "  Балансым канча?  ")
	require.NoError(t, err)

	assert.Equal(t, "get_balance@ky", reply)
	require.Len(t, d.calls, 1)
	assert.Equal(t, []models.Turn{
		{Role: models.MessageRoleSystem, Content: "system:ky"},
		{Role: models.MessageRoleUser, Content: "Профиль:\n- username: Azamat\n- ID: 1\n"},
		{Role: models.MessageRoleUser, Content: "Балансым канча?"},
	}, model.turns)
	assert.Equal(t, []string{"Балансым канча? => get_balance@ky"}, rec.records)
}

func TestAskPlainReply(t *testing.T) {
	model := &stubModel{reply: "Здравствуйте!"}
	a, _ := newTestAssistant(seedLedger(), model, nil)

	reply, err := a.Ask(context.Background(), Caller{CustomerID: 2, Lang: i18n.Russian}, "Привет")
	require.NoError(t, err)
	assert.Equal(t, "Здравствуйте!", reply)
}

func TestAskModelFailure(t *testing.T) {
	model := &stubModel{err: errors.New("503 from upstream")}
	rec := &stubRecorder{}
	a, _ := newTestAssistant(seedLedger(), model, rec)

	reply, err := a.Ask(context.Background(), Caller{CustomerID: 1, Lang: i18n.Russian}, "баланс")
	require.NoError(t, err)
	assert.Equal(t, i18n.T(i18n.Russian, "service_unavailable", nil), reply)
	assert.Empty(t, rec.records)
}

func TestAskCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	model := &stubModel{err: context.Canceled}
	a, _ := newTestAssistant(seedLedger(), model, nil)

	_, err := a.Ask(ctx, Caller{CustomerID: 1}, "баланс")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAskUnknownCustomer(t *testing.T) {
	model := &stubModel{reply: "unused"}
	a, _ := newTestAssistant(seedLedger(), model, nil)

	reply, err := a.Ask(context.Background(), Caller{CustomerID: 404, Lang: i18n.Russian}, "баланс")
	require.NoError(t, err)
	assert.Equal(t, "Пользователь не найден.", reply)
	assert.Nil(t, model.turns)
}

func TestAskEmptyMessage(t *testing.T) {
	a, _ := newTestAssistant(seedLedger(), &stubModel{}, nil)
	_, err := a.Ask(context.Background(), Caller{CustomerID: 1}, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}
