package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bank-assistant/internal/models"
	"bank-assistant/internal/services"
	"bank-assistant/internal/utils"
)

const (
	titleLength         = 50
	foreignKeyViolation = "23503"
)

// ChatStore хранит переписку клиента с ассистентом.
type ChatStore struct {
	db *pgxpool.Pool
}

func NewChatStore(db *pgxpool.Pool) *ChatStore {
	return &ChatStore{db: db}
}

// AppendExchange дописывает вопрос и ответ в открытый чат клиента.
// Открытый чат у клиента один (частичный уникальный индекс), поэтому upsert безопасен при гонке.
func (s *ChatStore) AppendExchange(ctx context.Context, customerID int64, question, reply string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(context.WithoutCancel(ctx))

	chatID, err := openChat(ctx, tx, customerID, question)
	if err != nil {
		return err
	}

	utils.LogDB("INSERT MESSAGES", "Чат %d: вопрос и ответ", chatID)
	_, err = tx.Exec(ctx, `
		INSERT INTO messages (chat_id, role, content)
		VALUES ($1, $2, $3), ($1, $4, $5)
	`, chatID, models.MessageRoleUser, question, models.MessageRoleAssistant, reply)
	if err != nil {
		return fmt.Errorf("ошибка записи сообщений: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка подтверждения транзакции: %w", err)
	}
	return nil
}

func openChat(ctx context.Context, q querier, customerID int64, question string) (int64, error) {
	utils.LogDB("UPSERT CHAT", "Открытый чат клиента %d", customerID)

	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO chats (customer_id, title, status)
		VALUES ($1, $2, 'open')
		ON CONFLICT (customer_id) WHERE status = 'open'
		DO UPDATE SET updated_at = NOW()
		RETURNING id
	`, customerID, chatTitle(question)).Scan(&id)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return 0, services.ErrCustomerNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия чата: %w", err)
	}
	return id, nil
}

// Messages возвращает сообщения открытого чата клиента по порядку.
func (s *ChatStore) Messages(ctx context.Context, customerID int64) ([]models.Message, error) {
	utils.LogDB("GET MESSAGES", "Открытый чат клиента %d", customerID)

	rows, err := s.db.Query(ctx, `
		SELECT m.id, m.chat_id, m.role, m.content, m.created_at
		FROM messages m
		JOIN chats c ON c.id = m.chat_id
		WHERE c.customer_id = $1 AND c.status = 'open'
		ORDER BY m.id
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сообщений: %w", err)
	}

	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Message, error) {
		var m models.Message
		err := row.Scan(&m.ID, &m.ChatID, &m.Role, &m.Content, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сообщений: %w", err)
	}
	return msgs, nil
}

func chatTitle(question string) string {
	r := []rune(question)
	if len(r) > titleLength {
		return string(r[:titleLength])
	}
	return string(r)
}

var _ services.ChatStore = (*ChatStore)(nil)
