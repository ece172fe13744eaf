package transferservice

import (
	"context"
	"errors"

	"github.com/imelnikov/transferhub/internal/codestore"
	"github.com/imelnikov/transferhub/internal/domain"
	"github.com/imelnikov/transferhub/internal/pg"
	"github.com/imelnikov/transferhub/pkg/numgen"
	"go.uber.org/zap"
)

//go:generate mockgen -source=transferservice.go -destination=transferservice_mock.go -package=transferservice

// Ledger is the transaction-pair side of the protocol.
type Ledger interface {
	CreatePair(ctx context.Context, username string, amount int64, fromBalanceNumber, toBalanceNumber string) (domain.TransactionIDPair, error)
	UpdateStatus(ctx context.Context, username string, from, to domain.TransactionStatus, pair domain.TransactionIDPair) error
}

// CodeStore keeps one-time confirmation codes; Verify deletes the code
// atomically on success, so at most one caller ever sees SUCCESS.
type CodeStore interface {
	Save(ctx context.Context, username string, transactionID int, code string) error
	Verify(ctx context.Context, username string, transactionID int, code string) (codestore.VerificationResult, error)
	Delete(ctx context.Context, username string, transactionID int) error
}

type UserRepo interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type AccountRepo interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}

type BalanceRepo interface {
	FindAllByAccountID(ctx context.Context, accountID int) ([]domain.AccountBalance, error)
	FindByID(ctx context.Context, id int) (*domain.AccountBalance, error)
	UpdateBalance(ctx context.Context, id int, delta int64) error
}

type TransactionRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Transaction, error)
}

// Service drives the two-phase transfer protocol:
// Initiate creates a pending pair and hands out a one-time code,
// Confirm verifies the code and applies the balance deltas.
type Service struct {
	userRepo        UserRepo
	accountRepo     AccountRepo
	balanceRepo     BalanceRepo
	transactionRepo TransactionRepo
	ledger          Ledger
	codes           CodeStore
	txManager       pg.TXManager
	gen             *numgen.Generator
}

func New(userRepo UserRepo, accountRepo AccountRepo, balanceRepo BalanceRepo,
	transactionRepo TransactionRepo, ledger Ledger, codes CodeStore,
	txManager pg.TXManager, gen *numgen.Generator) *Service {
	return &Service{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		balanceRepo:     balanceRepo,
		transactionRepo: transactionRepo,
		ledger:          ledger,
		codes:           codes,
		txManager:       txManager,
		gen:             gen,
	}
}

// Initiate creates the CREATED pair, issues the confirmation code and
// moves the pair to PENDING_CONFIRMATION. No balance changes here.
func (s *Service) Initiate(ctx context.Context, username string, amount int64, fromBalanceNumber, toBalanceNumber string) (string, domain.TransactionIDPair, error) {
	var code string
	var pair domain.TransactionIDPair

	if amount <= 0 {
		return "", pair, domain.ErrNonPositiveAmount
	}

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrAccountNotFound
		}

		balances, err := s.balanceRepo.FindAllByAccountID(ctx, account.ID)
		if err != nil {
			return err
		}
		var fromBalance *domain.AccountBalance
		for i := range balances {
			if balances[i].BalanceNumber == fromBalanceNumber {
				fromBalance = &balances[i]
				break
			}
		}
		if fromBalance == nil {
			return domain.ErrBalanceNotFound
		}

		if fromBalance.Balance < amount {
			return domain.ErrInsufficientFunds
		}

		pair, err = s.ledger.CreatePair(ctx, username, amount, fromBalanceNumber, toBalanceNumber)
		if err != nil {
			return err
		}

		code, err = s.gen.ConfirmationCode()
		if err != nil {
			return err
		}
		if err := s.codes.Save(ctx, username, pair.ID, code); err != nil {
			return err
		}

		return s.ledger.UpdateStatus(ctx, username, domain.StatusCreated, domain.StatusPendingConfirmation, pair)
	})
	if err != nil {
		return "", domain.TransactionIDPair{}, err
	}

	zap.L().Info("transfer initiated",
		zap.String("username", username), zap.Int("transactionID", pair.ID), zap.Int64("amount", amount))
	return code, pair, nil
}

// Confirm verifies the one-time code and settles the pair. On a wrong
// or missing code the pair is DECLINED; that status write is kept even
// though the call fails, so the decline survives the rollback of the
// surrounding transaction.
func (s *Service) Confirm(ctx context.Context, username string, pair domain.TransactionIDPair, code string) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		exists, err := s.userRepo.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrUserNotFound
		}

		account, err := s.accountRepo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrAccountNotFound
		}

		fromTx, err := s.transactionRepo.FindByID(ctx, pair.ID)
		if err != nil {
			return err
		}
		if fromTx == nil {
			return domain.ErrSenderTransactionNotFound
		}

		senderBalance, err := s.balanceRepo.FindByID(ctx, fromTx.BalanceID)
		if err != nil {
			return err
		}
		if senderBalance == nil {
			return domain.ErrBalanceNotFound
		}

		// Ownership is checked before the code is even looked at, so a
		// foreign caller can't probe codes or decline someone else's
		// transfer.
		balances, err := s.balanceRepo.FindAllByAccountID(ctx, account.ID)
		if err != nil {
			return err
		}
		owned := false
		for _, b := range balances {
			if b.ID == senderBalance.ID {
				owned = true
				break
			}
		}
		if !owned {
			zap.L().Warn("confirm on a foreign balance rejected",
				zap.String("username", username), zap.Int("transactionID", pair.ID))
			return domain.ErrBalanceNotOwned
		}

		result, err := s.codes.Verify(ctx, username, pair.ID, code)
		if err != nil {
			return err
		}
		zap.L().Debug("confirmation code verified",
			zap.String("username", username), zap.Int("transactionID", pair.ID), zap.String("result", string(result)))

		switch result {
		case codestore.Success:
			return s.settle(ctx, username, pair)
		case codestore.CodeMismatch, codestore.CodeNotFound:
			return domain.ErrInvalidConfirmationCode
		default:
			return errors.New("unexpected verification result: " + string(result))
		}
	})

	if errors.Is(err, domain.ErrInvalidConfirmationCode) {
		s.decline(ctx, username, pair)
		return err
	}
	if err != nil {
		return err
	}

	zap.L().Info("transfer confirmed",
		zap.String("username", username), zap.Int("transactionID", pair.ID))
	return nil
}

// settle re-resolves both rows, validates the mutual link, and applies
// the deltas. The transient NO_ACTIVE status marks the point past which
// the transfer is irreversible.
func (s *Service) settle(ctx context.Context, username string, pair domain.TransactionIDPair) error {
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

	if fromTx.ReceiverBalanceID != toBalance.ID || toTx.ReceiverBalanceID != fromBalance.ID {
		zap.L().Warn("transaction pair link mismatch",
			zap.Int("fromID", pair.ID), zap.Int("toID", pair.MappedID))
		return domain.ErrBalanceNotOwned
	}

	if err := s.ledger.UpdateStatus(ctx, username, domain.StatusPendingConfirmation, domain.StatusNoActive, pair); err != nil {
		return err
	}

	if err := s.balanceRepo.UpdateBalance(ctx, fromBalance.ID, fromTx.Amount); err != nil {
		return err
	}
	if err := s.balanceRepo.UpdateBalance(ctx, toBalance.ID, toTx.Amount); err != nil {
		return err
	}

	return s.ledger.UpdateStatus(ctx, username, domain.StatusNoActive, domain.StatusConfirmed, pair)
}

// decline runs in its own transaction after the confirm transaction has
// rolled back. A guard conflict means a concurrent confirm already
// settled the pair; the decline is then dropped rather than overwriting
// a final status.
func (s *Service) decline(ctx context.Context, username string, pair domain.TransactionIDPair) {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		return s.ledger.UpdateStatus(ctx, username, domain.StatusPendingConfirmation, domain.StatusDeclined, pair)
	})
	if errors.Is(err, domain.ErrTransactionStatusConflict) {
		zap.L().Warn("decline skipped, pair already settled", zap.Int("transactionID", pair.ID))
		return
	}
	if err != nil {
		zap.L().Error("can't decline transfer pair", zap.Int("transactionID", pair.ID), zap.Error(err))
		return
	}
	zap.L().Info("transfer declined",
		zap.String("username", username), zap.Int("transactionID", pair.ID))
}
