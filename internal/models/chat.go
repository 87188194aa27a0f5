package models

import "time"

type ChatStatus string

const (
	ChatStatusOpen     ChatStatus = "open"
	ChatStatusClosed   ChatStatus = "closed"
	ChatStatusArchived ChatStatus = "archived"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

type Chat struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title,omitempty"`
	CustomerID int64      `json:"customer_id"`
	Status     ChatStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type Message struct {
	ID        int64       `json:"id"`
	ChatID    int64       `json:"chat_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

type ChatRequest struct {
	Message string `json:"message"`
	Lang    string `json:"lang"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// Turn: одна реплика в запросе к модели.
type Turn struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}
