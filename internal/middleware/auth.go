package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"bank-assistant/internal/services"
	"bank-assistant/internal/utils"
)

// CustomerIDKey: ключ user value с id аутентифицированного клиента.
const CustomerIDKey = "customer_id"

type TokenValidator interface {
	ValidateToken(token string) (*services.Claims, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	utils.LogSuccess("Middleware", "Инициализирован middleware авторизации")
	return &AuthMiddleware{validator: validator}
}

// RequireAuth проверяет Bearer-токен и кладёт id клиента в контекст запроса.
func (m *AuthMiddleware) RequireAuth(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		startTime := time.Now()

		authHeader := string(ctx.Request.Header.Peek("Authorization"))
		if authHeader == "" {
			utils.LogWarning("Middleware", "Отсутствует заголовок Authorization")
			unauthorized(ctx, "Требуется авторизация", startTime)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || strings.TrimSpace(token) == "" {
			utils.LogWarning("Middleware", "Неверный формат заголовка Authorization")
			unauthorized(ctx, "Неверный формат токена", startTime)
			return
		}

		claims, err := m.validator.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			utils.LogWarning("Middleware", "Невалидный токен: %v", err)
			unauthorized(ctx, "Невалидный или истёкший токен", startTime)
			return
		}

		ctx.SetUserValue(CustomerIDKey, claims.CustomerID)
		utils.LogDebug("Middleware", "Аутентифицирован клиент: %d", claims.CustomerID)

		next(ctx)
	}
}

// CustomerID достаёт id клиента, положенный RequireAuth.
func CustomerID(ctx *fasthttp.RequestCtx) (int64, bool) {
	id, ok := ctx.UserValue(CustomerIDKey).(int64)
	return id, ok && id > 0
}

func unauthorized(ctx *fasthttp.RequestCtx, message string, startTime time.Time) {
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(map[string]string{"error": message})
	utils.LogResponse(string(ctx.Path()), fasthttp.StatusUnauthorized, time.Since(startTime))
}
