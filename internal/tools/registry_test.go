package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgsDropsUnlisted(t *testing.T) {
	r := newTestRegistry(t, &stubBank{})

	kept, dropped := r.FilterArgs("get_balance", map[string]any{"customer_id": 1, "lang": "ru", "secret": "x"})

	assert.Equal(t, Args{"customer_id": 1, "lang": "ru"}, kept)
	assert.Equal(t, []string{"secret"}, dropped)
}

func TestFilterArgsUnknownToolDropsAll(t *testing.T) {
	r := newTestRegistry(t, &stubBank{})

	kept, dropped := r.FilterArgs("drop_tables", map[string]any{"customer_id": 1, "lang": "ru"})

	assert.Empty(t, kept)
	assert.Equal(t, []string{"customer_id", "lang"}, dropped)
}

func TestBuildRegistersEverySpec(t *testing.T) {
	r := newTestRegistry(t, &stubBank{})

	assert.Equal(t, Specs(), r.Specs())
	for _, spec := range Specs() {
		tool, ok := r.Lookup(string(spec.ID))
		require.True(t, ok, spec.ID)
		assert.Equal(t, spec, tool.Spec())
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	r := newTestRegistry(t, &stubBank{})
	_, ok := r.Lookup("GET_BALANCE")
	assert.False(t, ok)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	bank := &stubBank{}
	tools := PersonalTools(bank, bank)
	_, err := NewRegistry(append(tools, tools[0])...)
	assert.Error(t, err)
}

func TestPersonalAllowListsCarryCustomerID(t *testing.T) {
	for _, id := range []ID{GetBalance, GetTransactions, TransferMoney, GetLastIncomingTransaction,
		GetAccountsInfo, GetIncomingSumForPeriod, GetOutgoingSumForPeriod, GetLast3TransferRecipients, GetLargestTransaction} {
		spec, ok := SpecFor(string(id))
		require.True(t, ok)
		assert.True(t, spec.Allows(ArgCustomerID), id)
		assert.True(t, spec.Allows(ArgLang), id)
	}

	spec, _ := SpecFor(string(ListAllCardNames))
	assert.False(t, spec.Allows(ArgCustomerID))
}

func TestSummariesUsePlainPunctuation(t *testing.T) {
	for _, spec := range Specs() {
		assert.NotContains(t, spec.Summary, "—", spec.ID)
	}
}
