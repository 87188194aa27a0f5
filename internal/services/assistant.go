package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bank-assistant/internal/i18n"
	"bank-assistant/internal/models"
	"bank-assistant/internal/toolcall"
	"bank-assistant/internal/utils"
)

var ErrEmptyMessage = errors.New("пустое сообщение")

// Caller: аутентифицированный клиент и язык запроса.
type Caller struct {
	CustomerID int64
	Lang       i18n.Lang
}

// CallDispatcher выполняет один разобранный вызов и всегда возвращает текст:
// ошибки вызова рендерятся в строку, а не прерывают ответ.
type CallDispatcher interface {
	Dispatch(ctx context.Context, call toolcall.Call, caller Caller) string
}

// ChatModel: удалённая языковая модель.
type ChatModel interface {
	Respond(ctx context.Context, turns []models.Turn) (string, error)
}

// Prompter строит системный промпт для языка.
type Prompter interface {
	SystemPrompt(lang i18n.Lang) string
}

// Recorder сохраняет пару реплик чата.
type Recorder interface {
	Record(ctx context.Context, customerID int64, question, reply string)
}

// Assemble заменяет ответ модели результатами вызовов, если в нём есть маркеры.
// Без маркеров текст возвращается как есть.
func Assemble(ctx context.Context, dispatcher CallDispatcher, text string, caller Caller) string {
	bodies := toolcall.Extract(text)
	if len(bodies) == 0 {
		return text
	}

	results := make([]string, 0, len(bodies))
	for _, body := range bodies {
		call, err := toolcall.Parse(body)
		if err != nil {
			utils.LogWarning("Assembler", "Некорректный вызов: %v", err)
			results = append(results, CallFailed(caller.Lang, body, err))
			continue
		}
		results = append(results, dispatcher.Dispatch(ctx, call, caller))
	}
	return strings.Join(results, "\n")
}

// CallFailed рендерит ошибку вызова для клиента, помечая исходный текст вызова.
func CallFailed(lang i18n.Lang, raw string, err error) string {
	reason := err.Error()
	var malformed *toolcall.MalformedCallError
	if errors.As(err, &malformed) {
		reason = malformed.Reason
	}
	return i18n.T(lang, "call_failed", i18n.Vars{"call": raw, "reason": reason})
}

type Assistant struct {
	ledger     Ledger
	model      ChatModel
	prompter   Prompter
	dispatcher CallDispatcher
	recorder   Recorder
}

func NewAssistant(ledger Ledger, model ChatModel, prompter Prompter, dispatcher CallDispatcher, recorder Recorder) *Assistant {
	utils.LogSuccess("Assistant", "Инициализирован ассистент")
	return &Assistant{
		ledger:     ledger,
		model:      model,
		prompter:   prompter,
		dispatcher: dispatcher,
		recorder:   recorder,
	}
}

// Ask прогоняет сообщение клиента через модель и инструменты и возвращает ответ.
// Ошибки хранилища и модели логируются, клиент получает общее сообщение.
func (a *Assistant) Ask(ctx context.Context, caller Caller, message string) (string, error) {
	caller.Lang = i18n.Parse(string(caller.Lang))
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	utils.LogInfo("Assistant", "Вопрос клиента %d (%s), %d символов", caller.CustomerID, caller.Lang, len([]rune(message)))

	customer, err := a.ledger.CustomerByID(ctx, caller.CustomerID)
	if errors.Is(err, ErrCustomerNotFound) {
		utils.LogWarning("Assistant", "Клиент %d не найден", caller.CustomerID)
		return i18n.T(caller.Lang, "customer_not_found", nil), nil
	}
	if err != nil {
		utils.LogError("Assistant", "Ошибка загрузки клиента", err)
		return i18n.T(caller.Lang, "service_unavailable", nil), nil
	}

	turns := []models.Turn{
		{Role: models.MessageRoleSystem, Content: a.prompter.SystemPrompt(caller.Lang)},
		{Role: models.MessageRoleUser, Content: profile(customer)},
		{Role: models.MessageRoleUser, Content: message},
	}

	text, err := a.model.Respond(ctx, turns)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		utils.LogError("Assistant", "Модель не ответила", err)
		return i18n.T(caller.Lang, "service_unavailable", nil), nil
	}
	utils.LogDebug("Assistant", "Ответ модели: %q", text)

	reply := Assemble(ctx, a.dispatcher, text, caller)
	if a.recorder != nil {
		a.recorder.Record(ctx, caller.CustomerID, message, reply)
	}

	utils.LogSuccess("Assistant", "Ответ клиенту %d готов", caller.CustomerID)
	return reply, nil
}

func profile(c *models.Customer) string {
	return fmt.Sprintf("Профиль:\n- username: %s\n- ID: %d\n", c.FirstName, c.ID)
}
