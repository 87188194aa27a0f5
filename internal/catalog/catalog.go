// Package catalog содержит статический справочник продуктов банка (карты, депозиты, FAQ).
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Bank struct {
	Name        string `yaml:"name"`
	Founded     string `yaml:"founded"`
	License     string `yaml:"license"`
	Description string `yaml:"description"`
}

type Contacts struct {
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
	Address string `yaml:"address"`
	Website string `yaml:"website"`
}

type Card struct {
	Name          string   `yaml:"name"`
	Type          string   `yaml:"type"`
	PaymentSystem string   `yaml:"payment_system"`
	Currencies    []string `yaml:"currencies"`
	AnnualFee     string   `yaml:"annual_fee"`
	Validity      string   `yaml:"validity"`
	Description   string   `yaml:"description"`
}

type Deposit struct {
	Name           string   `yaml:"name"`
	Currencies     []string `yaml:"currencies"`
	MinAmount      string   `yaml:"min_amount"`
	Term           string   `yaml:"term"`
	Rate           string   `yaml:"rate"`
	Withdrawal     string   `yaml:"withdrawal"`
	Replenishment  bool     `yaml:"replenishment"`
	Capitalization bool     `yaml:"capitalization"`
	Description    string   `yaml:"description"`
}

type FAQ struct {
	Category string `yaml:"category"`
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type Catalog struct {
	Bank     Bank      `yaml:"bank"`
	Contacts Contacts  `yaml:"contacts"`
	Cards    []Card    `yaml:"cards"`
	Deposits []Deposit `yaml:"deposits"`
	FAQ      []FAQ     `yaml:"faq"`
}

// Load разбирает встроенный справочник.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("разбор справочника: %w", err)
	}
	seen := make(map[string]bool)
	for _, card := range c.Cards {
		key := "card:" + normalize(card.Name)
		if card.Name == "" || seen[key] {
			return nil, fmt.Errorf("карта %q пустая или повторяется", card.Name)
		}
		seen[key] = true
	}
	for _, d := range c.Deposits {
		key := "deposit:" + normalize(d.Name)
		if d.Name == "" || seen[key] {
			return nil, fmt.Errorf("депозит %q пустой или повторяется", d.Name)
		}
		seen[key] = true
	}
	return &c, nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func hasCurrency(list []string, code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range list {
		if strings.ToUpper(c) == code {
			return true
		}
	}
	return false
}

// Card ищет карту по имени без учёта регистра и лишних пробелов.
func (c *Catalog) Card(name string) (Card, bool) {
	key := normalize(name)
	for _, card := range c.Cards {
		if normalize(card.Name) == key {
			return card, true
		}
	}
	return Card{}, false
}

func (c *Catalog) CardsByCurrency(code string) []Card {
	var out []Card
	for _, card := range c.Cards {
		if hasCurrency(card.Currencies, code) {
			out = append(out, card)
		}
	}
	return out
}

func (c *Catalog) CardsByType(cardType string) []Card {
	key := normalize(cardType)
	var out []Card
	for _, card := range c.Cards {
		if normalize(card.Type) == key {
			out = append(out, card)
		}
	}
	return out
}

func (c *Catalog) Deposit(name string) (Deposit, bool) {
	key := normalize(name)
	for _, d := range c.Deposits {
		if normalize(d.Name) == key {
			return d, true
		}
	}
	return Deposit{}, false
}

func (c *Catalog) DepositsByCurrency(code string) []Deposit {
	var out []Deposit
	for _, d := range c.Deposits {
		if hasCurrency(d.Currencies, code) {
			out = append(out, d)
		}
	}
	return out
}

func (c *Catalog) FAQByCategory(category string) []FAQ {
	key := normalize(category)
	var out []FAQ
	for _, f := range c.FAQ {
		if normalize(f.Category) == key {
			out = append(out, f)
		}
	}
	return out
}
