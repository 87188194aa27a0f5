package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-assistant/internal/i18n"
	"bank-assistant/internal/services"
)

func call(t *testing.T, r *Registry, id ID, args Args) (string, error) {
	t.Helper()
	tool, ok := r.Lookup(string(id))
	require.True(t, ok, id)
	return tool.Call(context.Background(), args)
}

func TestPersonalToolsBindParams(t *testing.T) {
	bank := &stubBank{}
	r := newTestRegistry(t, bank)
	base := Args{"customer_id": int64(7), "lang": "ru"}
	with := func(extra Args) Args {
		out := Args{}
		for k, v := range base {
			out[k] = v
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}

	cases := []struct {
		id   ID
		args Args
		want string
	}{
		{GetBalance, base, "balance 7 ru"},
		{GetAccountsInfo, base, "accounts 7 ru"},
		{GetTransactions, base, "transactions 7 5 ru"},
		{GetTransactions, with(Args{"limit": int64(3)}), "transactions 7 3 ru"},
		{GetTransactions, with(Args{"limit": "100"}), "transactions 7 50 ru"},
		{GetTransactions, with(Args{"limit": int64(0)}), "transactions 7 5 ru"},
		{GetTransactions, with(Args{"limit": int64(1) << 40}), "transactions 7 50 ru"},
		{GetLastIncomingTransaction, base, "incoming 7 ru"},
		{GetIncomingSumForPeriod, with(Args{"start_date": "2025-01-01", "end_date": "2025-01-31"}), "period 7 incoming 2025-01-01..2025-01-31 ru"},
		{GetOutgoingSumForPeriod, with(Args{"start_date": "2025-02-01"}), "period 7 outgoing 2025-02-01.. ru"},
		{GetLast3TransferRecipients, base, "recipients 7 ru"},
		{GetLargestTransaction, base, "largest 7 ru"},
		{TransferMoney, with(Args{"to_name": "Aigerim Sadykova", "amount": int64(100), "currency": "usd"}), "transfer 7 -> Aigerim Sadykova: 100 usd ru"},
		{TransferMoney, with(Args{"to_name": "Aigerim Sadykova"}), "transfer 7 -> Aigerim Sadykova: 0 KGS ru"},
	}
	for _, tc := range cases {
		got, err := call(t, r, tc.id, tc.args)
		require.NoError(t, err, tc.id)
		assert.Equal(t, tc.want, got, tc.id)
	}
}

func TestPersonalToolsNeedOwner(t *testing.T) {
	r := newTestRegistry(t, &stubBank{})

	_, err := call(t, r, GetBalance, Args{"lang": "ru"})
	assert.EqualError(t, err, "argument customer_id: required")

	_, err = call(t, r, GetBalance, Args{"customer_id": "abc"})
	assert.EqualError(t, err, "argument customer_id: expected integer")

	_, err = call(t, r, GetTransactions, Args{"customer_id": int64(1), "limit": 2.5})
	assert.EqualError(t, err, "argument limit: expected integer")
}

func TestTransferToolPassesRequest(t *testing.T) {
	bank := &stubBank{}
	r := newTestRegistry(t, bank)

	_, err := call(t, r, TransferMoney, Args{"customer_id": int64(1), "to_name": "Bakyt Asanov", "amount": "25.50", "lang": "xx"})
	require.NoError(t, err)

	assert.Equal(t, services.TransferRequest{
		FromCustomerID: 1,
		ToName:         "Bakyt Asanov",
		Amount:         "25.50",
		Currency:       "KGS",
		Lang:           i18n.Kyrgyz,
	}, bank.transfer)
}
