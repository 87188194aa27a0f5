package handlers

import (
	"time"

	"github.com/valyala/fasthttp"

	"bank-assistant/internal/middleware"
)

func Health(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Bank assistant is running!",
		"time":    time.Now().Format(time.RFC3339),
	}, time.Now())
}

// NewRouter раскладывает запросы по обработчикам.
func NewRouter(chat *ChatHandler, auth *AuthHandler, mw *middleware.AuthMiddleware) fasthttp.RequestHandler {
	protectedChat := mw.RequireAuth(chat.Chat)

	return func(ctx *fasthttp.RequestCtx) {
		method, path := string(ctx.Method()), string(ctx.Path())
		switch {
		case path == "/health" && method == fasthttp.MethodGet:
			Health(ctx)
		case path == "/login" && method == fasthttp.MethodPost:
			auth.LoginHandler(ctx)
		case path == "/chat" && method == fasthttp.MethodPost:
			protectedChat(ctx)
		case path == "/health" || path == "/login" || path == "/chat":
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Метод не поддерживается", time.Now())
		default:
			writeError(ctx, fasthttp.StatusNotFound, "Не найдено", time.Now())
		}
	}
}
