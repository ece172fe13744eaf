package dto

import "time"

type AccountCreateRequestDTO struct {
	InitialBalance int64 `json:"initial_balance" example:"10000"`
}

type AccountCreateResponseDTO struct {
	AccountNumber        string `json:"account_number" example:"4561261212345467"`
	PrimaryBalanceNumber string `json:"primary_balance_number" example:"45612612123454670001"`
}

type AccountDeleteResponseDTO struct {
	AccountNumber         string   `json:"account_number"`
	RemovedBalanceNumbers []string `json:"removed_balance_numbers"`
}

type BalanceCreateRequestDTO struct {
	InitialBalance int64 `json:"initial_balance" example:"0"`
}

type BalanceCreateResponseDTO struct {
	BalanceNumber string `json:"balance_number" example:"45612612123454670002"`
}

type BalanceDeleteResponseDTO struct {
	BalanceNumber string `json:"balance_number"`
}

type SwitchPrimaryResponseDTO struct {
	FormerPrimaryBalanceNumber string `json:"former_primary_balance_number"`
}

type TransactionViewDTO struct {
	ID                    int       `json:"id"`
	Type                  string    `json:"type" example:"TRANSFER_TO"`
	Status                string    `json:"status" example:"CONFIRMED"`
	SenderBalanceNumber   string    `json:"sender_balance_number"`
	ReceiverBalanceNumber string    `json:"receiver_balance_number"`
	Amount                int64     `json:"amount" example:"-30000"`
	CreatedAt             time.Time `json:"created_at"`
}

type BalanceViewDTO struct {
	BalanceNumber string               `json:"balance_number"`
	Balance       int64                `json:"balance" example:"70000"`
	IsPrimary     bool                 `json:"is_primary"`
	CreatedAt     time.Time            `json:"created_at"`
	Transactions  []TransactionViewDTO `json:"transactions"`
}

type AccountViewResponseDTO struct {
	AccountNumber    string           `json:"account_number"`
	Username         string           `json:"username"`
	TelegramUsername string           `json:"telegram_username"`
	TotalBalance     int64            `json:"total_balance"`
	Balances         []BalanceViewDTO `json:"balances"`
}
