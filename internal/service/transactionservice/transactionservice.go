package transactionservice

import (
	"context"

	"github.com/imelnikov/transferhub/internal/domain"
	"go.uber.org/zap"
)

//go:generate mockgen -source=transactionservice.go -destination=transactionservice_mock.go -package=transactionservice

type UserRepo interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type AccountRepo interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}

type BalanceRepo interface {
	FindAllByAccountID(ctx context.Context, accountID int) ([]domain.AccountBalance, error)
	FindByBalanceNumber(ctx context.Context, balanceNumber string) (*domain.AccountBalance, error)
	FindByID(ctx context.Context, id int) (*domain.AccountBalance, error)
}

type TransactionRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Transaction, error)
	Save(ctx context.Context, tx *domain.Transaction) (int, error)
	UpdateReceiverTransactionID(ctx context.Context, id, receiverTransactionID int) error
	UpdateStatus(ctx context.Context, id int, from, to domain.TransactionStatus) (bool, error)
}

// Service is the ledger for transfer pairs: two rows per transfer,
// each referencing the other's balance and transaction.
type Service struct {
	userRepo        UserRepo
	accountRepo     AccountRepo
	balanceRepo     BalanceRepo
	transactionRepo TransactionRepo
}

func New(userRepo UserRepo, accountRepo AccountRepo, balanceRepo BalanceRepo, transactionRepo TransactionRepo) *Service {
	return &Service{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		balanceRepo:     balanceRepo,
		transactionRepo: transactionRepo,
	}
}

// CreatePair writes the sender-side row (negative amount, TRANSFER_TO)
// and the receiver-side row (positive amount, TRANSFER_FROM), both
// CREATED, then back-patches the mutual transaction link once both ids
// exist.
func (s *Service) CreatePair(ctx context.Context, username string, amount int64, fromBalanceNumber, toBalanceNumber string) (domain.TransactionIDPair, error) {
	var pair domain.TransactionIDPair

	fromBalance, err := s.resolveOwnBalance(ctx, username, fromBalanceNumber)
	if err != nil {
		return pair, err
	}

	toBalance, err := s.balanceRepo.FindByBalanceNumber(ctx, toBalanceNumber)
	if err != nil {
		return pair, err
	}
	if toBalance == nil {
		return pair, domain.ErrBalanceNotFound
	}

	fromID, err := s.transactionRepo.Save(ctx, &domain.Transaction{
		BalanceID:         fromBalance.ID,
		Amount:            -amount,
		Type:              domain.TypeTransferTo,
		Status:            domain.StatusCreated,
		ReceiverBalanceID: toBalance.ID,
	})
	if err != nil {
		return pair, err
	}

	toID, err := s.transactionRepo.Save(ctx, &domain.Transaction{
		BalanceID:         toBalance.ID,
		Amount:            amount,
		Type:              domain.TypeTransferFrom,
		Status:            domain.StatusCreated,
		ReceiverBalanceID: fromBalance.ID,
	})
	if err != nil {
		return pair, err
	}

	if err := s.transactionRepo.UpdateReceiverTransactionID(ctx, fromID, toID); err != nil {
		return pair, err
	}
	if err := s.transactionRepo.UpdateReceiverTransactionID(ctx, toID, fromID); err != nil {
		return pair, err
	}

	pair = domain.TransactionIDPair{ID: fromID, MappedID: toID}
	zap.L().Debug("transaction pair created",
		zap.Int("fromID", fromID), zap.Int("toID", toID), zap.Int64("amount", amount))
	return pair, nil
}

// UpdateStatus moves both rows of a pair from one status to another.
// The acting user must own the balance behind the sender-side row. The
// update is guarded on the expected current status, so a caller that
// lost a race gets ErrTransactionStatusConflict instead of overwriting
// a concurrent transition.
func (s *Service) UpdateStatus(ctx context.Context, username string, from, to domain.TransactionStatus, pair domain.TransactionIDPair) error {
	fromTx, err := s.transactionRepo.FindByID(ctx, pair.ID)
	if err != nil {
		return err
	}
	if fromTx == nil {
		return domain.ErrSenderTransactionNotFound
	}

	toTx, err := s.transactionRepo.FindByID(ctx, pair.MappedID)
	if err != nil {
		return err
	}
	if toTx == nil {
		return domain.ErrReceiverTransactionNotFound
	}

	fromBalance, err := s.balanceRepo.FindByID(ctx, fromTx.BalanceID)
	if err != nil {
		return err
	}
	if fromBalance == nil {
		return domain.ErrBalanceNotFound
	}
	toBalance, err := s.balanceRepo.FindByID(ctx, toTx.BalanceID)
	if err != nil {
		return err
	}
	if toBalance == nil {
		return domain.ErrBalanceNotFound
	}

	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrAccountNotFound
	}

	owned, err := s.ownsBalance(ctx, account.ID, fromBalance.ID)
	if err != nil {
		return err
	}
	if !owned {
		zap.L().Warn("status update on a foreign balance rejected",
			zap.String("username", username), zap.Int("transactionID", pair.ID))
		return domain.ErrBalanceNotOwned
	}

	okFrom, err := s.transactionRepo.UpdateStatus(ctx, pair.ID, from, to)
	if err != nil {
		return err
	}
	okTo, err := s.transactionRepo.UpdateStatus(ctx, pair.MappedID, from, to)
	if err != nil {
		return err
	}
	if !okFrom || !okTo {
		return domain.ErrTransactionStatusConflict
	}

	zap.L().Debug("transaction pair status updated",
		zap.Int("fromID", pair.ID), zap.Int("toID", pair.MappedID),
		zap.String("from", string(from)), zap.String("to", string(to)))
	return nil
}

func (s *Service) resolveOwnBalance(ctx context.Context, username, balanceNumber string) (*domain.AccountBalance, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	balances, err := s.balanceRepo.FindAllByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	for i := range balances {
		if balances[i].BalanceNumber == balanceNumber {
			return &balances[i], nil
		}
	}
	return nil, domain.ErrBalanceNotFound
}

func (s *Service) ownsBalance(ctx context.Context, accountID, balanceID int) (bool, error) {
	balances, err := s.balanceRepo.FindAllByAccountID(ctx, accountID)
	if err != nil {
		return false, err
	}
	for _, b := range balances {
		if b.ID == balanceID {
			return true, nil
		}
	}
	return false, nil
}
