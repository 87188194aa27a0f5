package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bank-assistant/internal/models"
	"bank-assistant/internal/services"
	"bank-assistant/internal/utils"
)

const customerColumns = `
	id, first_name, last_name, COALESCE(middle_name, ''), birth_date,
	COALESCE(passport_number, ''), COALESCE(phone_number, ''), COALESCE(email, ''),
	COALESCE(address, ''), password_hash, created_at, updated_at`

// normalizedName повторяет models.NormalizeName на стороне SQL.
const normalizedName = `lower(regexp_replace(trim(first_name || ' ' || last_name), '\s+', ' ', 'g'))`

// LedgerStore: хранилище клиентов, счетов и транзакций поверх pgx.
type LedgerStore struct {
	db *pgxpool.Pool
}

func NewLedgerStore(db *pgxpool.Pool) *LedgerStore {
	utils.LogSuccess("LedgerStore", "Инициализировано хранилище счетов")
	return &LedgerStore{db: db}
}

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	c := &models.Customer{}
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.MiddleName,
		&c.BirthDate,
		&c.PassportNumber,
		&c.PhoneNumber,
		&c.Email,
		&c.Address,
		&c.PasswordHash,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, services.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения клиента: %w", err)
	}
	return c, nil
}

func (s *LedgerStore) CustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	utils.LogDB("GET CUSTOMER", "Поиск клиента по ID: %d", id)
	return scanCustomer(s.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
}

// CustomerByName: при совпадении имён побеждает клиент с меньшим id.
func (s *LedgerStore) CustomerByName(ctx context.Context, normalized string) (*models.Customer, error) {
	utils.LogDB("GET CUSTOMER", "Поиск клиента по имени: %s", normalized)
	query := `SELECT ` + customerColumns + ` FROM customers WHERE ` + normalizedName + ` = $1 ORDER BY id LIMIT 1`
	return scanCustomer(s.db.QueryRow(ctx, query, models.NormalizeName(normalized)))
}

// CreateCustomer заполняет ID и временные метки.
func (s *LedgerStore) CreateCustomer(ctx context.Context, c *models.Customer) error {
	utils.LogDB("CREATE CUSTOMER", "Создание клиента: %s", c.FullName())
	query := `
		INSERT INTO customers (first_name, last_name, middle_name, birth_date, passport_number,
		                       phone_number, email, address, password_hash)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRow(ctx, query,
		c.FirstName, c.LastName, c.MiddleName, c.BirthDate, c.PassportNumber,
		c.PhoneNumber, c.Email, c.Address, c.PasswordHash,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		utils.LogError("LedgerStore", fmt.Sprintf("Ошибка создания клиента %s", c.FullName()), err)
		return fmt.Errorf("ошибка создания клиента: %w", err)
	}
	return nil
}

func (s *LedgerStore) CountCustomers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта клиентов: %w", err)
	}
	return n, nil
}

func (s *LedgerStore) CustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	utils.LogDB("GET CUSTOMER", "Поиск клиента по email: %s", email)
	return scanCustomer(s.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE lower(email) = lower($1)`, email))
}
