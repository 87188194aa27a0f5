// Package i18n хранит пользовательские сообщения инструментов на двух языках.
package i18n

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Lang string

const (
	Kyrgyz  Lang = "ky"
	Russian Lang = "ru"

	Default = Kyrgyz
)

//go:embed messages.yaml
var messagesYAML []byte

var catalog = mustLoad(messagesYAML)

func mustLoad(data []byte) map[Lang]map[string]string {
	var raw map[Lang]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("i18n: parse messages.yaml: %v", err))
	}
	for _, lang := range []Lang{Kyrgyz, Russian} {
		if _, ok := raw[lang]; !ok {
			panic(fmt.Sprintf("i18n: messages.yaml has no %q section", lang))
		}
	}
	return raw
}

// Parse возвращает поддерживаемый язык; неизвестный тег молча заменяется на Default.
func Parse(tag string) Lang {
	switch Lang(strings.ToLower(strings.TrimSpace(tag))) {
	case Russian:
		return Russian
	case Kyrgyz:
		return Kyrgyz
	default:
		return Default
	}
}

// Vars: значения плейсхолдеров вида {name}.
type Vars map[string]string

// T возвращает сообщение key на языке lang с подставленными vars.
// Если ключа нет, возвращается сам ключ.
func T(lang Lang, key string, vars Vars) string {
	msg, ok := catalog[Parse(string(lang))][key]
	if !ok {
		msg, ok = catalog[Default][key]
	}
	if !ok {
		return key
	}
	if len(vars) == 0 {
		return msg
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(vars)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", vars[k])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Money форматирует сумму ровно с двумя знаками после запятой.
func Money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Keys возвращает все ключи сообщений языка, отсортированные по алфавиту.
func Keys(lang Lang) []string {
	msgs := catalog[Parse(string(lang))]
	keys := make([]string, 0, len(msgs))
	for k := range msgs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
