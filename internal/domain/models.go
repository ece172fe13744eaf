package domain

import "time"

type TransactionStatus string

const (
	StatusCreated             TransactionStatus = "CREATED"
	StatusPendingConfirmation TransactionStatus = "PENDING_CONFIRMATION"
	StatusNoActive            TransactionStatus = "NO_ACTIVE"
	StatusConfirmed           TransactionStatus = "CONFIRMED"
	StatusDeclined            TransactionStatus = "DECLINED"
)

type TransactionType string

const (
	TypeTransferTo   TransactionType = "TRANSFER_TO"
	TypeTransferFrom TransactionType = "TRANSFER_FROM"
)

type User struct {
	ID                int       `db:"id"`
	Username          string    `db:"username"`
	TelegramUsername  string    `db:"telegram_username"`
	PasswordHash      string    `db:"password_hash"`
	Enabled           bool      `db:"enabled"`
	BalanceCountLimit int       `db:"balance_count_limit"`
	Roles             []string  `db:"roles"`
	CreatedAt         time.Time `db:"created_at"`
}

type Account struct {
	ID               int    `db:"id"`
	UserID           int    `db:"user_id"`
	Username         string `db:"username"`
	TelegramUsername string `db:"telegram_username"`
	AccountNumber    string `db:"account_number"`
}

type AccountBalance struct {
	ID            int       `db:"id"`
	AccountID     int       `db:"account_id"`
	BalanceNumber string    `db:"balance_number"`
	Balance       int64     `db:"balance"`
	IsPrimary     bool      `db:"is_primary"`
	CreatedAt     time.Time `db:"created_at"`
}

// Amounts are stored in minor currency units. A transfer is represented
// by two mutually linked rows: the sender side carries the negative
// amount, the receiver side the positive one.
type Transaction struct {
	ID                    int               `db:"id"`
	BalanceID             int               `db:"balance_id"`
	Amount                int64             `db:"amount"`
	Type                  TransactionType   `db:"transaction_type"`
	Status                TransactionStatus `db:"transaction_status"`
	CreatedAt             time.Time         `db:"created_at"`
	ReceiverBalanceID     int               `db:"receiver_balance_id"`
	ReceiverTransactionID int               `db:"receiver_transaction_id"`
}

// TransactionIDPair identifies the two rows of one transfer:
// ID is the sender-side transaction, MappedID the receiver-side one.
type TransactionIDPair struct {
	ID       int `json:"id"`
	MappedID int `json:"mapped_id"`
}
