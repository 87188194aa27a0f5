package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypePayment    TransactionType = "payment"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Direction: направление записи с точки зрения счёта, на котором она лежит.
type Direction string

const (
	DirectionIncoming Direction = "<-"
	DirectionOutgoing Direction = "->"
)

// Transaction: запись журнала по одному счёту. Записи только добавляются.
// Две ноги одного перевода связаны общим TransferID и описанием "from X to Y".
type Transaction struct {
	ID          int64             `json:"id"`
	AccountID   int64             `json:"account_id"`
	Type        TransactionType   `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Status      TransactionStatus `json:"status"`
	TransferID  *uuid.UUID        `json:"transfer_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Direction классифицирует запись построчно: transfer на своём счёте: исходящий,
// входящая нога перевода хранится на другом счёте как deposit.
func (t Transaction) Direction() Direction {
	if t.Type == TransactionTypeDeposit {
		return DirectionIncoming
	}
	return DirectionOutgoing
}

// Типы записей, которые считаются входящими и исходящими для своего счёта.
var (
	IncomingTypes = []TransactionType{TransactionTypeDeposit}
	OutgoingTypes = []TransactionType{TransactionTypeWithdrawal, TransactionTypeTransfer, TransactionTypePayment}
)
