package tools

import (
	"context"
	"fmt"
	"strings"

	"bank-assistant/internal/catalog"
	"bank-assistant/internal/i18n"
)

// CatalogTools: справочные инструменты поверх статического каталога.
func CatalogTools(c *catalog.Catalog) []Tool {
	return []Tool{
		newTool(ListAllCardNames, func(_ context.Context, args Args) (string, error) {
			lang := bindLang(args)
			return cardList(lang, i18n.T(lang, "cards_title", nil), c.Cards), nil
		}),
		newTool(GetCardDetails, func(_ context.Context, args Args) (string, error) {
			lang := bindLang(args)
			name, err := args.RequiredText(ArgCardName)
			if err != nil {
				return "", err
			}
			card, ok := c.Card(name)
			if !ok {
				return i18n.T(lang, "card_not_found", i18n.Vars{"name": name}), nil
			}
			return cardDetails(lang, card), nil
		}),
		newTool(CompareCards, func(_ context.Context, args Args) (string, error) {
			lang := bindLang(args)
			names, err := args.TextList(ArgCardNames)
			if err != nil {
				return "", err
			}
			return compareCards(lang, c, names), nil
		}),
		newTool(GetCardsByCurrency, func(_ context.Context, args Args) (string, error) {
			lang := bindLang(args)
			currency, err := args.RequiredText(ArgCurrency)
			if err != nil {
				return "", err
			}
			currency = strings.ToUpper(currency)
			title := i18n.T(lang, "cards_by_currency", i18n.Vars{"currency": currency})
			return cardList(lang, title, c.CardsByCurrency(currency)), nil
		}),
		newTool(GetCardsByType, func(_ context.Context, args Args) (string, error) {
			lang := bindLang(args)
			cardType, err := args.RequiredText(ArgCardType)
			if err != nil {
				return "", err
			}
			title := i18n.T(lang, "cards_by_type", i18n.Vars{"type": strings.ToLower(cardType)})
			return cardList(lang, title, c.CardsByType(cardType)), nil
		}),
		newTool(ListAllDepositNames, func(_ context.Context, args Args) (string, error) {
			lang := bindLang(args)
			return depositList(lang, i18n.T(lang, "deposits_title", nil), c.Deposits), nil
		}),
		newTool(GetDepositDetails, func(_ context.Context, args Args) (string, error) {
			lang := bindLang(args)
			name, err := args.RequiredText(ArgDepositName)
			if err != nil {
				return "", err
			}
			d, ok := c.Deposit(name)
			if !ok {
				return i18n.T(lang, "deposit_not_found", i18n.Vars{"name": name}), nil
			}
			return depositDetails(lang, d), nil
		}),
		newTool(GetDepositsByCurrency, func(_ context.Context, args Args) (string, error) {
			lang := bindLang(args)
			currency, err := args.RequiredText(ArgCurrency)
			if err != nil {
				return "", err
			}
			currency = strings.ToUpper(currency)
			title := i18n.T(lang, "deposits_by_currency", i18n.Vars{"currency": currency})
			return depositList(lang, title, c.DepositsByCurrency(currency)), nil
		}),
		newTool(GetBankInfo, func(_ context.Context, args Args) (string, error) {
			lang := bindLang(args)
			b := c.Bank
			return strings.Join([]string{
				b.Name,
				field(lang, "label_founded", b.Founded),
				field(lang, "label_license", b.License),
				field(lang, "label_description", b.Description),
			}, "\n"), nil
		}),
		newTool(GetContactInfo, func(_ context.Context, args Args) (string, error) {
			lang := bindLang(args)
			ct := c.Contacts
			return strings.Join([]string{
				field(lang, "label_phone", ct.Phone),
				field(lang, "label_email", ct.Email),
				field(lang, "label_address", ct.Address),
				field(lang, "label_website", ct.Website),
			}, "\n"), nil
		}),
		newTool(GetFAQByCategory, func(_ context.Context, args Args) (string, error) {
			lang := bindLang(args)
			category, err := args.RequiredText(ArgCategory)
			if err != nil {
				return "", err
			}
			items := c.FAQByCategory(category)
			if len(items) == 0 {
				return i18n.T(lang, "faq_not_found", i18n.Vars{"category": category}), nil
			}
			lines := []string{i18n.T(lang, "faq_title", i18n.Vars{"category": category})}
			for _, f := range items {
				lines = append(lines,
					fmt.Sprintf("%s: %s", i18n.T(lang, "faq_question", nil), f.Question),
					fmt.Sprintf("%s: %s", i18n.T(lang, "faq_answer", nil), f.Answer))
			}
			return strings.Join(lines, "\n"), nil
		}),
	}
}

func bindLang(args Args) i18n.Lang {
	lang, _ := args.Text(ArgLang, "")
	return i18n.Parse(lang)
}

func field(lang i18n.Lang, label, value string) string {
	return i18n.T(lang, label, nil) + ": " + value
}

func yesNo(lang i18n.Lang, v bool) string {
	if v {
		return i18n.T(lang, "answer_yes", nil)
	}
	return i18n.T(lang, "answer_no", nil)
}

func cardList(lang i18n.Lang, title string, cards []catalog.Card) string {
	if len(cards) == 0 {
		return i18n.T(lang, "nothing_found", nil)
	}
	lines := []string{title}
	for _, card := range cards {
		lines = append(lines, "- "+card.Name)
	}
	return strings.Join(lines, "\n")
}

func depositList(lang i18n.Lang, title string, deposits []catalog.Deposit) string {
	if len(deposits) == 0 {
		return i18n.T(lang, "nothing_found", nil)
	}
	lines := []string{title}
	for i, d := range deposits {
		lines = append(lines, fmt.Sprintf("%d. %s (%s, %s)", i+1, d.Name, d.Rate, d.Term))
	}
	return strings.Join(lines, "\n")
}

func cardFields(lang i18n.Lang, card catalog.Card) [][2]string {
	return [][2]string{
		{i18n.T(lang, "label_type", nil), card.Type},
		{i18n.T(lang, "label_payment_system", nil), card.PaymentSystem},
		{i18n.T(lang, "label_currency", nil), strings.Join(card.Currencies, ", ")},
		{i18n.T(lang, "label_annual_fee", nil), card.AnnualFee},
		{i18n.T(lang, "label_validity", nil), card.Validity},
	}
}

func cardDetails(lang i18n.Lang, card catalog.Card) string {
	lines := []string{card.Name}
	for _, f := range cardFields(lang, card) {
		lines = append(lines, f[0]+": "+f[1])
	}
	lines = append(lines, field(lang, "label_description", card.Description))
	return strings.Join(lines, "\n")
}

// compareCards делит поля найденных карт на общие и различающиеся.
func compareCards(lang i18n.Lang, c *catalog.Catalog, names []string) string {
	var cards []catalog.Card
	seen := make(map[string]bool)
	for _, name := range names {
		card, ok := c.Card(name)
		if !ok || seen[card.Name] {
			continue
		}
		seen[card.Name] = true
		cards = append(cards, card)
	}
	if len(cards) < 2 {
		return i18n.T(lang, "compare_need_two", nil)
	}

	lines := []string{i18n.T(lang, "cards_compared", nil)}
	for i, card := range cards {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, card.Name))
	}

	fields := make([][][2]string, len(cards))
	for i, card := range cards {
		fields[i] = cardFields(lang, card)
	}

	var same, diff []string
	for f := range fields[0] {
		label, first := fields[0][f][0], fields[0][f][1]
		equal := true
		for i := 1; i < len(cards); i++ {
			if fields[i][f][1] != first {
				equal = false
				break
			}
		}
		if equal {
			same = append(same, fmt.Sprintf("- %s: %s", label, first))
			continue
		}
		diff = append(diff, "- "+label+":")
		for i, card := range cards {
			diff = append(diff, fmt.Sprintf("  %s: %s", card.Name, fields[i][f][1]))
		}
	}

	if len(same) > 0 {
		lines = append(lines, i18n.T(lang, "similarities", nil))
		lines = append(lines, same...)
	}
	if len(diff) > 0 {
		lines = append(lines, i18n.T(lang, "differences", nil))
		lines = append(lines, diff...)
	}
	return strings.Join(lines, "\n")
}

func depositDetails(lang i18n.Lang, d catalog.Deposit) string {
	return strings.Join([]string{
		d.Name,
		field(lang, "label_currency", strings.Join(d.Currencies, ", ")),
		field(lang, "label_min_amount", d.MinAmount),
		field(lang, "label_term", d.Term),
		field(lang, "label_rate", d.Rate),
		field(lang, "label_withdrawal", d.Withdrawal),
		field(lang, "label_replenishment", yesNo(lang, d.Replenishment)),
		field(lang, "label_capitalization", yesNo(lang, d.Capitalization)),
		field(lang, "label_description", d.Description),
	}, "\n")
}
