package dto

type TransactionIDPairDTO struct {
	ID       int `json:"id" example:"101"`
	MappedID int `json:"mapped_id" example:"102"`
}

type TransferRequestDTO struct {
	Amount            int64  `json:"amount" validate:"required,gt=0" example:"30000"`
	FromBalanceNumber string `json:"from_balance_number" validate:"required,len=20"`
	ToBalanceNumber   string `json:"to_balance_number" validate:"required,len=20"`
}

type TransferResponseDTO struct {
	Code   string               `json:"code" example:"042531"`
	IDPair TransactionIDPairDTO `json:"id_pair"`
}

type TransferConfirmRequestDTO struct {
	IDPair TransactionIDPairDTO `json:"id_pair"`
	Code   string               `json:"code" validate:"required,len=6" example:"042531"`
}
