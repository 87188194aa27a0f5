package llm

import (
	"fmt"
	"strings"

	"bank-assistant/internal/i18n"
	"bank-assistant/internal/toolcall"
	"bank-assistant/internal/tools"
)

type promptText struct {
	intro   string
	rules   []string
	example string
	toolsHd string
}

var prompts = map[i18n.Lang]promptText{
	i18n.Russian: {
		intro: "Ты банковский ассистент DemirBank. Отвечай на русском языке, коротко и вежливо.",
		rules: []string{
			"Данные по счетам клиента бери только из функций, ничего не придумывай.",
			"Чтобы вызвать функцию, вставь в ответ маркер %s name=<функция>, параметр=значение]. Можно несколько маркеров.",
			"customer_id и lang подставляются автоматически, их указывать не нужно.",
			"Строки пиши без кавычек, списки в формате JSON, даты в формате YYYY-MM-DD.",
			"Перевод выполняй только когда клиент явно назвал получателя и сумму.",
		},
		example: "Пример: %s name=transfer_money, to_name=Aigerim Sadykova, amount=500, currency=KGS]",
		toolsHd: "Доступные функции:",
	},
	i18n.Kyrgyz: {
		intro: "Сен DemirBank банкынын жардамчысысың. Кыргыз тилинде кыска жана сылык жооп бер.",
		rules: []string{
			"Кардардын эсептери боюнча маалыматты функциялардан гана ал, эч нерсе ойлоп чыгарба.",
			"Функцияны чакыруу үчүн жоопко маркер кой: %s name=<функция>, параметр=маани]. Бир нече маркер болушу мүмкүн.",
			"customer_id жана lang автоматтык түрдө коюлат, аларды жазбай эле кой.",
			"Саптарды тырмакчасыз, тизмелерди JSON форматында, күндөрдү YYYY-MM-DD форматында жаз.",
			"Которууну кардар алуучуну жана сумманы так айтканда гана аткар.",
		},
		example: "Мисал: %s name=transfer_money, to_name=Aigerim Sadykova, amount=500, currency=KGS]",
		toolsHd: "Жеткиликтүү функциялар:",
	},
}

// PromptBuilder собирает системный промпт из описаний инструментов реестра.
type PromptBuilder struct {
	specs []tools.Spec
}

func NewPromptBuilder(specs []tools.Spec) *PromptBuilder {
	return &PromptBuilder{specs: specs}
}

func (b *PromptBuilder) SystemPrompt(lang i18n.Lang) string {
	text := prompts[i18n.Parse(string(lang))]

	var sb strings.Builder
	sb.WriteString(text.intro)
	sb.WriteString("\n\n")
	for _, rule := range text.rules {
		if strings.Contains(rule, "%s") {
			rule = fmt.Sprintf(rule, toolcall.MarkerPrefix)
		}
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf(text.example, toolcall.MarkerPrefix))
	sb.WriteString("\n\n")
	sb.WriteString(text.toolsHd)
	sb.WriteString("\n")
	for _, spec := range b.specs {
		sb.WriteString(fmt.Sprintf("- %s(%s): %s\n", spec.ID, strings.Join(visibleParams(spec), ", "), spec.Summary))
	}
	return sb.String()
}

// visibleParams: параметры, которые модель заполняет сама.
func visibleParams(spec tools.Spec) []string {
	out := make([]string, 0, len(spec.Params))
	for _, p := range spec.Params {
		if p == tools.ArgCustomerID || p == tools.ArgLang {
			continue
		}
		out = append(out, p)
	}
	return out
}
