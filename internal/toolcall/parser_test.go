package toolcall

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBalanceCall(t *testing.T) {
	call, err := Parse("name=get_balance, customer_id=7, lang=ky")
	require.NoError(t, err)

	assert.Equal(t, "get_balance", call.Name)
	assert.Equal(t, map[string]any{"customer_id": int64(7), "lang": "ky"}, call.Args)
}

func TestParseTransferCall(t *testing.T) {
	call, err := Parse("name=transfer_money, to_name=Aigerim Sadykova, amount=150.5, currency=USD")
	require.NoError(t, err)

	assert.Equal(t, "transfer_money", call.Name)
	assert.Equal(t, map[string]any{
		"to_name":  "Aigerim Sadykova",
		"amount":   150.5,
		"currency": "USD",
	}, call.Args)
}

func TestParseNameOnly(t *testing.T) {
	call, err := Parse("  name=list_all_card_names  ")
	require.NoError(t, err)
	assert.Equal(t, "list_all_card_names", call.Name)
	assert.Empty(t, call.Args)
}

func TestParseValueKeepsCommasWithoutKey(t *testing.T) {
	call, err := Parse("name=get_faq_by_category, category=Cards, limits and fees, lang=ru")
	require.NoError(t, err)
	assert.Equal(t, "Cards, limits and fees", call.Args["category"])
	assert.Equal(t, "ru", call.Args["lang"])
}

func TestParseStructuredValues(t *testing.T) {
	call, err := Parse(`name=compare_cards, card_names=["Visa Classic", "Elkart"], criteria={"currency": "USD"}`)
	require.NoError(t, err)
	assert.Equal(t, []any{"Visa Classic", "Elkart"}, call.Args["card_names"])
	assert.Equal(t, map[string]any{"currency": "USD"}, call.Args["criteria"])
}

func TestParseMalformed(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"get_balance, customer_id=7",
		"tool=get_balance",
		"name=, lang=ru",
		"name=get balance, lang=ru",
	}
	for _, body := range tests {
		_, err := Parse(body)
		require.Error(t, err, "Parse(%q)", body)

		var malformed *MalformedCallError
		assert.True(t, errors.As(err, &malformed), "Parse(%q) error type", body)
	}
}

func TestParseDuplicateKeyLastWins(t *testing.T) {
	call, err := Parse("name=get_transactions, limit=3, limit=10")
	require.NoError(t, err)
	assert.Equal(t, int64(10), call.Args["limit"])
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"FALSE", false},
		{"null", nil},
		{"None", nil},
		{"42", int64(42)},
		{"-17", int64(-17)},
		{"+3", int64(3)},
		{"150.5", 150.5},
		{"-0.25", -0.25},
		{"1e3", 1000.0},
		{`{"a": 1}`, map[string]any{"a": 1.0}},
		{`[1, "x"]`, []any{1.0, "x"}},
		{"{not json}", "{not json}"},
		{"[broken", "[broken"},
		{`"Aigerim"`, "Aigerim"},
		{`'KGS'`, "KGS"},
		{`"7"`, "7"},
		{`""x""`, `"x"`},
		{`"unbalanced'`, `"unbalanced'`},
		{"  padded  ", "padded"},
		{"", ""},
		{"KGS", "KGS"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Coerce(tt.in), "Coerce(%q)", tt.in)
	}
}
