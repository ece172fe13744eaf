package domain

import "errors"

// Domain rule violations are raised where they are detected and surface
// to the caller unmodified; handlers map them to HTTP statuses with
// errors.Is. Anything not listed here is treated as an internal error.
var (
	ErrUserNotFound                = errors.New("user not found")
	ErrAccountNotFound             = errors.New("account not found")
	ErrBalanceNotFound             = errors.New("balance not found")
	ErrSenderTransactionNotFound   = errors.New("sender transaction not found")
	ErrReceiverTransactionNotFound = errors.New("receiver transaction not found")

	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrAccountAlreadyExists   = errors.New("account already exists")
	ErrDuplicateBalanceNumber = errors.New("duplicate balance number")

	ErrAccountNotEmpty          = errors.New("account is not empty")
	ErrBalanceNotEmpty          = errors.New("balance is not empty")
	ErrOnlyOneBalance           = errors.New("account has only one balance")
	ErrCantDeletePrimaryBalance = errors.New("can't delete primary balance")
	ErrAlreadyPrimaryBalance    = errors.New("balance is already primary")
	ErrBalanceLimitExceeded     = errors.New("balance count limit exceeded")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrBalanceNotOwned          = errors.New("balance does not belong to the acting account")

	ErrNonPositiveAmount         = errors.New("amount must be positive")
	ErrInvalidConfirmationCode   = errors.New("invalid confirmation code")
	ErrConfirmationCodeExpired   = errors.New("confirmation code expired")
	ErrAccountNumberGeneration   = errors.New("can't generate a unique account number")
	ErrTransactionStatusConflict = errors.New("transaction status changed concurrently")
)
