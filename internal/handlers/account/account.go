package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imelnikov/transferhub/internal/domain"
	"github.com/imelnikov/transferhub/internal/dto"
	"github.com/imelnikov/transferhub/internal/service/accountservice"
	"github.com/imelnikov/transferhub/pkg/auth"
	"github.com/imelnikov/transferhub/pkg/utils"
	"github.com/imelnikov/transferhub/pkg/validate"
)

//go:generate mockgen -source=account.go -destination=account_mock.go -package=account

type Service interface {
	CreateAccount(ctx context.Context, username string, initialBalance int64) (string, string, error)
	DeleteAccount(ctx context.Context, username string) (string, []string, error)
	GetAccountView(ctx context.Context, username string) (*accountservice.AccountView, error)
	CreateBalance(ctx context.Context, username string, initialBalance int64) (string, error)
	DeleteBalance(ctx context.Context, username, balanceNumber string) (string, error)
	SwitchPrimaryBalance(ctx context.Context, username, balanceNumber string) (string, error)
}

type AccountHandler struct {
	accountService Service
}

func New(accountService Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrBalanceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountAlreadyExists),
		errors.Is(err, domain.ErrDuplicateBalanceNumber):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAccountNotEmpty),
		errors.Is(err, domain.ErrBalanceNotEmpty),
		errors.Is(err, domain.ErrOnlyOneBalance),
		errors.Is(err, domain.ErrCantDeletePrimaryBalance),
		errors.Is(err, domain.ErrAlreadyPrimaryBalance),
		errors.Is(err, domain.ErrBalanceLimitExceeded):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAccountNumberGeneration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondWithDomainError(w http.ResponseWriter, err error) {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		utils.RespondWithError(w, code, "Internal server error")
		return
	}
	utils.RespondWithError(w, code, err.Error())
}

// CreateAccount godoc
//
//	@Summary		Open an account
//	@Description	Create the caller's account with its primary balance. Amounts are in minor currency units.
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AccountCreateRequestDTO		true	"Account payload"
//	@Success		200		{object}	dto.AccountCreateResponseDTO	"Account created"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		404		{object}	utils.Response					"User not found"
//	@Failure		409		{object}	utils.Response					"Account already exists"
//	@Router			/api/account [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	username := r.Context().Value(auth.UsernameKey).(string)

	var req dto.AccountCreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	accountNumber, primaryBalanceNumber, err := h.accountService.CreateAccount(r.Context(), username, req.InitialBalance)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AccountCreateResponseDTO{
		AccountNumber:        accountNumber,
		PrimaryBalanceNumber: primaryBalanceNumber,
	})
}

// DeleteAccount godoc
//
//	@Summary		Close the account
//	@Description	Delete the caller's account; every balance must be empty.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AccountDeleteResponseDTO	"Account deleted"
//	@Failure		401	{object}	utils.Response					"User not authorized"
//	@Failure		403	{object}	utils.Response					"Account is not empty"
//	@Failure		404	{object}	utils.Response					"Account not found"
//	@Router			/api/account [delete]
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	username := r.Context().Value(auth.UsernameKey).(string)

	accountNumber, removed, err := h.accountService.DeleteAccount(r.Context(), username)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AccountDeleteResponseDTO{
		AccountNumber:         accountNumber,
		RemovedBalanceNumbers: removed,
	})
}

// GetAccount godoc
//
//	@Summary		Get the account view
//	@Description	Return the caller's account with balances and their transaction history.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AccountViewResponseDTO	"Account view"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		404	{object}	utils.Response				"Account not found"
//	@Router			/api/account [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	username := r.Context().Value(auth.UsernameKey).(string)

	view, err := h.accountService.GetAccountView(r.Context(), username)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toViewDTO(view))
}

func toViewDTO(view *accountservice.AccountView) dto.AccountViewResponseDTO {
	resp := dto.AccountViewResponseDTO{
		AccountNumber:    view.AccountNumber,
		Username:         view.Username,
		TelegramUsername: view.TelegramUsername,
		TotalBalance:     view.TotalBalance,
	}
	for _, b := range view.Balances {
		balanceDTO := dto.BalanceViewDTO{
			BalanceNumber: b.BalanceNumber,
			Balance:       b.Balance,
			IsPrimary:     b.IsPrimary,
			CreatedAt:     b.CreatedAt,
		}
		for _, tx := range b.Transactions {
			balanceDTO.Transactions = append(balanceDTO.Transactions, dto.TransactionViewDTO{
				ID:                    tx.ID,
				Type:                  string(tx.Type),
				Status:                string(tx.Status),
				SenderBalanceNumber:   tx.SenderBalanceNumber,
				ReceiverBalanceNumber: tx.ReceiverBalanceNumber,
				Amount:                tx.Amount,
				CreatedAt:             tx.CreatedAt,
			})
		}
		resp.Balances = append(resp.Balances, balanceDTO)
	}
	return resp
}

// CreateBalance godoc
//
//	@Summary		Add a balance
//	@Description	Create an extra balance on the caller's account, numbered with the next free suffix.
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BalanceCreateRequestDTO		true	"Balance payload"
//	@Success		200		{object}	dto.BalanceCreateResponseDTO	"Balance created"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		403		{object}	utils.Response					"Balance count limit exceeded"
//	@Failure		404		{object}	utils.Response					"Account not found"
//	@Failure		409		{object}	utils.Response					"Duplicate balance number"
//	@Router			/api/account/balances [post]
func (h *AccountHandler) CreateBalance(w http.ResponseWriter, r *http.Request) {
	username := r.Context().Value(auth.UsernameKey).(string)

	var req dto.BalanceCreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	balanceNumber, err := h.accountService.CreateBalance(r.Context(), username, req.InitialBalance)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceCreateResponseDTO{BalanceNumber: balanceNumber})
}

// DeleteBalance godoc
//
//	@Summary		Delete a balance
//	@Description	Delete an empty, non-primary balance of the caller's account.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Param			balanceNumber	path		string							true	"20-digit balance number"
//	@Success		200				{object}	dto.BalanceDeleteResponseDTO	"Balance deleted"
//	@Failure		401				{object}	utils.Response					"User not authorized"
//	@Failure		403				{object}	utils.Response					"Balance can't be deleted"
//	@Failure		404				{object}	utils.Response					"Balance not found"
//	@Failure		422				{object}	utils.Response					"Invalid balance number"
//	@Router			/api/account/balances/{balanceNumber} [delete]
func (h *AccountHandler) DeleteBalance(w http.ResponseWriter, r *http.Request) {
	username := r.Context().Value(auth.UsernameKey).(string)

	balanceNumber := chi.URLParam(r, "balanceNumber")
	if !validate.IsBalanceNumber(balanceNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid balance number")
		return
	}

	deleted, err := h.accountService.DeleteBalance(r.Context(), username, balanceNumber)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceDeleteResponseDTO{BalanceNumber: deleted})
}

// SwitchPrimaryBalance godoc
//
//	@Summary		Switch the primary balance
//	@Description	Make the named balance primary and return the former primary's number.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Param			balanceNumber	path		string						true	"20-digit balance number"
//	@Success		200				{object}	dto.SwitchPrimaryResponseDTO	"Primary switched"
//	@Failure		401				{object}	utils.Response				"User not authorized"
//	@Failure		403				{object}	utils.Response				"Balance is already primary"
//	@Failure		404				{object}	utils.Response				"Balance not found"
//	@Failure		422				{object}	utils.Response				"Invalid balance number"
//	@Router			/api/account/balances/{balanceNumber}/primary [post]
func (h *AccountHandler) SwitchPrimaryBalance(w http.ResponseWriter, r *http.Request) {
	username := r.Context().Value(auth.UsernameKey).(string)

	balanceNumber := chi.URLParam(r, "balanceNumber")
	if !validate.IsBalanceNumber(balanceNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid balance number")
		return
	}

	former, err := h.accountService.SwitchPrimaryBalance(r.Context(), username, balanceNumber)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SwitchPrimaryResponseDTO{FormerPrimaryBalanceNumber: former})
}
