package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "DemirBank", c.Bank.Name)
	assert.NotEmpty(t, c.Contacts.Phone)
	assert.NotEmpty(t, c.Cards)
	assert.NotEmpty(t, c.Deposits)
	assert.NotEmpty(t, c.FAQ)
}

func TestLookups(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	card, ok := c.Card("  visa   CLASSIC ")
	require.True(t, ok)
	assert.Equal(t, "Visa Classic", card.Name)

	_, ok = c.Card("Platinum Black")
	assert.False(t, ok)

	for _, card := range c.CardsByCurrency("eur") {
		assert.Contains(t, card.Currencies, "EUR")
	}
	assert.Len(t, c.CardsByType("credit"), 1)

	d, ok := c.Deposit("онлайн")
	require.True(t, ok)
	assert.Equal(t, "Онлайн", d.Name)
	assert.Len(t, c.DepositsByCurrency("EUR"), 1)

	assert.Len(t, c.FAQByCategory("Cards"), 2)
	assert.Empty(t, c.FAQByCategory("crypto"))
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte("cards:\n  - name: A\n  - name: a\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("cards: [oops"))
	assert.Error(t, err)
}
