package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/valyala/fasthttp"

	"bank-assistant/internal/i18n"
	"bank-assistant/internal/middleware"
	"bank-assistant/internal/models"
	"bank-assistant/internal/services"
	"bank-assistant/internal/utils"
)

type Asker interface {
	Ask(ctx context.Context, caller services.Caller, message string) (string, error)
}

type ChatHandler struct {
	assistant   Asker
	defaultLang i18n.Lang
	timeout     time.Duration
}

func NewChatHandler(assistant Asker, defaultLang i18n.Lang, timeout time.Duration) *ChatHandler {
	utils.LogSuccess("ChatHandler", "Инициализирован обработчик чата")
	return &ChatHandler{assistant: assistant, defaultLang: i18n.Parse(string(defaultLang)), timeout: timeout}
}

// Chat: POST /chat {"message": "...", "lang": "ru"} -> {"reply": "..."}.
func (h *ChatHandler) Chat(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	customerID, ok := middleware.CustomerID(ctx)
	if !ok {
		utils.LogError("ChatHandler", "customer_id не найден в контексте", nil)
		writeError(ctx, fasthttp.StatusUnauthorized, "Требуется авторизация", startTime)
		return
	}
	utils.LogRequest("POST", "/chat", customerID)

	var req models.ChatRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("ChatHandler", "Ошибка парсинга JSON", err)
		writeError(ctx, fasthttp.StatusBadRequest, "Неверный формат данных", startTime)
		return
	}

	lang := h.defaultLang
	if req.Lang != "" {
		lang = i18n.Parse(req.Lang)
	}

	askCtx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	reply, err := h.assistant.Ask(askCtx, services.Caller{CustomerID: customerID, Lang: lang}, req.Message)
	switch {
	case errors.Is(err, services.ErrEmptyMessage):
		utils.LogWarning("ChatHandler", "Пустое сообщение от клиента %d", customerID)
		writeError(ctx, fasthttp.StatusBadRequest, "Сообщение не может быть пустым", startTime)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		utils.LogWarning("ChatHandler", "Превышено время ответа для клиента %d", customerID)
		writeError(ctx, fasthttp.StatusGatewayTimeout, i18n.T(lang, "service_unavailable", nil), startTime)
	case err != nil:
		utils.LogError("ChatHandler", "Ошибка ассистента", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Внутренняя ошибка сервера", startTime)
	default:
		writeJSON(ctx, fasthttp.StatusOK, models.ChatResponse{Reply: reply}, startTime)
	}
}
