package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/imelnikov/transferhub/internal/domain"
	"github.com/imelnikov/transferhub/internal/dto"
	"github.com/imelnikov/transferhub/pkg/auth"
	"github.com/imelnikov/transferhub/pkg/utils"
	"github.com/imelnikov/transferhub/pkg/validate"
)

//go:generate mockgen -source=transfer.go -destination=transfer_mock.go -package=transfer

type Service interface {
	Initiate(ctx context.Context, username string, amount int64, fromBalanceNumber, toBalanceNumber string) (string, domain.TransactionIDPair, error)
	Confirm(ctx context.Context, username string, pair domain.TransactionIDPair, code string) error
}

type TransferHandler struct {
	transferService Service
}

func New(transferService Service) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
	}
}

func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrBalanceNotFound),
		errors.Is(err, domain.ErrSenderTransactionNotFound),
		errors.Is(err, domain.ErrReceiverTransactionNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, domain.ErrBalanceNotOwned):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNonPositiveAmount),
		errors.Is(err, domain.ErrInvalidConfirmationCode),
		errors.Is(err, domain.ErrConfirmationCodeExpired):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Initiate godoc
//
//	@Summary		Initiate a transfer
//	@Description	Create a pending transfer pair and return the one-time confirmation code. No balance changes yet.
//	@Tags			Transfer
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.TransferRequestDTO	true	"Transfer payload, amount in minor units"
//	@Success		200		{object}	dto.TransferResponseDTO	"Code and transaction pair"
//	@Failure		400		{object}	utils.Response			"Invalid amount"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"Insufficient funds"
//	@Failure		404		{object}	utils.Response			"Balance not found"
//	@Failure		422		{object}	utils.Response			"Invalid balance number"
//	@Router			/api/transfer [post]
func (h *TransferHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	username := r.Context().Value(auth.UsernameKey).(string)

	var req dto.TransferRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validate.IsBalanceNumber(req.FromBalanceNumber) || !validate.IsBalanceNumber(req.ToBalanceNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid balance number")
		return
	}

	code, pair, err := h.transferService.Initiate(r.Context(), username, req.Amount, req.FromBalanceNumber, req.ToBalanceNumber)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.TransferResponseDTO{
		Code:   code,
		IDPair: dto.TransactionIDPairDTO{ID: pair.ID, MappedID: pair.MappedID},
	})
}

// Confirm godoc
//
//	@Summary		Confirm a transfer
//	@Description	Verify the one-time code and apply the balance changes. A wrong code declines the transfer.
//	@Tags			Transfer
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.TransferConfirmRequestDTO	true	"Confirmation payload"
//	@Success		200		{object}	utils.Response					"Transfer completed"
//	@Failure		400		{object}	utils.Response					"Invalid confirmation code"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		403		{object}	utils.Response					"Balance not owned by caller"
//	@Failure		404		{object}	utils.Response					"Transaction not found"
//	@Router			/api/transfer/confirm [post]
func (h *TransferHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	username := r.Context().Value(auth.UsernameKey).(string)

	var req dto.TransferConfirmRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair := domain.TransactionIDPair{ID: req.IDPair.ID, MappedID: req.IDPair.MappedID}
	if err := h.transferService.Confirm(r.Context(), username, pair, req.Code); err != nil {
		respondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Transfer completed successfully"})
}
