package dto

type RegisterRequestDTO struct {
	Username         string `json:"username" validate:"required,min=3,max=50" example:"ivan"`
	TelegramUsername string `json:"telegram_username" example:"@ivan"`
	Password         string `json:"password" validate:"required,min=8"`
}

type LoginRequestDTO struct {
	Username string `json:"username" validate:"required,min=3,max=50" example:"ivan"`
	Password string `json:"password" validate:"required,min=8"`
}

type TokenResponseDTO struct {
	Token string `json:"token"`
}
