package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"bank-assistant/internal/utils"
)

const tokenIssuer = "bank-assistant"

var (
	ErrInvalidToken  = errors.New("невалидный токен")
	ErrWrongPassword = errors.New("неверный пароль")
)

// Claims несут id клиента, от имени которого выполняются инструменты.
type Claims struct {
	CustomerID int64 `json:"customer_id"`
	jwt.RegisteredClaims
}

// AuthService выпускает и проверяет токены клиентов, хранит пароли в bcrypt.
type AuthService struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewAuthService(secret string, ttl time.Duration) *AuthService {
	utils.LogSuccess("AuthService", "Инициализирован сервис аутентификации (TTL: %v)", ttl)
	return &AuthService{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash возвращает ErrWrongPassword, если пароль не подходит к хешу.
func (s *AuthService) CheckPasswordHash(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrWrongPassword
	default:
		return fmt.Errorf("ошибка проверки пароля: %w", err)
	}
}

func (s *AuthService) GenerateToken(customerID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(customerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	utils.LogDebug("AuthService", "Токен выпущен для клиента %d до %s", customerID, claims.ExpiresAt.Format(time.RFC3339))
	return signed, nil
}

// ValidateToken принимает только HS256-токены этого сервиса с положительным customer_id.
func (s *AuthService) ValidateToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.CustomerID <= 0 || !claims.VerifyIssuer(tokenIssuer, true) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
