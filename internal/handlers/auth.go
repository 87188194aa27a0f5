package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"bank-assistant/internal/models"
	"bank-assistant/internal/services"
	"bank-assistant/internal/utils"
)

type CustomerFinder interface {
	CustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
}

type Authenticator interface {
	CheckPasswordHash(password, hash string) error
	GenerateToken(customerID int64) (string, error)
}

type AuthHandler struct {
	auth      Authenticator
	customers CustomerFinder
	ttl       time.Duration
}

func NewAuthHandler(auth Authenticator, customers CustomerFinder, ttl time.Duration) *AuthHandler {
	utils.LogSuccess("AuthHandler", "Инициализирован обработчик аутентификации")
	return &AuthHandler{auth: auth, customers: customers, ttl: ttl}
}

// LoginHandler выдаёт Bearer-токен по email и паролю клиента.
func (h *AuthHandler) LoginHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	utils.LogRequest("POST", "/login", 0)

	var req models.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AuthHandler", "Ошибка парсинга JSON", err)
		writeError(ctx, fasthttp.StatusBadRequest, "Неверный формат данных", startTime)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		utils.LogWarning("AuthHandler", "Отсутствуют обязательные поля")
		writeError(ctx, fasthttp.StatusBadRequest, "Email и пароль обязательны", startTime)
		return
	}

	utils.LogInfo("AuthHandler", "Попытка входа клиента: %s", req.Email)

	customer, err := h.customers.CustomerByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, services.ErrCustomerNotFound) {
			utils.LogError("AuthHandler", "Ошибка поиска клиента", err)
			writeError(ctx, fasthttp.StatusInternalServerError, "Внутренняя ошибка сервера", startTime)
			return
		}
		utils.LogWarning("AuthHandler", "Клиент не найден: %s", req.Email)
		writeError(ctx, fasthttp.StatusUnauthorized, "Неверный email или пароль", startTime)
		return
	}

	if err := h.auth.CheckPasswordHash(req.Password, customer.PasswordHash); err != nil {
		if !errors.Is(err, services.ErrWrongPassword) {
			utils.LogError("AuthHandler", "Ошибка проверки пароля", err)
			writeError(ctx, fasthttp.StatusInternalServerError, "Внутренняя ошибка сервера", startTime)
			return
		}
		utils.LogWarning("AuthHandler", "Неверный пароль для клиента: %s", req.Email)
		writeError(ctx, fasthttp.StatusUnauthorized, "Неверный email или пароль", startTime)
		return
	}

	token, err := h.auth.GenerateToken(customer.ID)
	if err != nil {
		utils.LogError("AuthHandler", "Ошибка генерации токена", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Внутренняя ошибка сервера", startTime)
		return
	}

	utils.LogSuccess("AuthHandler", "Клиент вошёл: %s (ID: %d)", customer.FullName(), customer.ID)
	writeJSON(ctx, fasthttp.StatusOK, models.LoginResponse{
		Token:      token,
		CustomerID: customer.ID,
		Name:       customer.FullName(),
		ExpiresIn:  h.ttl.String(),
	}, startTime)
}
