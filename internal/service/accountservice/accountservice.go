package accountservice

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/imelnikov/transferhub/internal/domain"
	"github.com/imelnikov/transferhub/internal/pg"
	"github.com/imelnikov/transferhub/pkg/numgen"
	"go.uber.org/zap"
)

//go:generate mockgen -source=accountservice.go -destination=accountservice_mock.go -package=accountservice

type UserRepo interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type AccountRepo interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	Save(ctx context.Context, account *domain.Account) (int, error)
	DeleteByUsername(ctx context.Context, username string) (string, error)
}

type BalanceRepo interface {
	FindAllByAccountID(ctx context.Context, accountID int) ([]domain.AccountBalance, error)
	FindByID(ctx context.Context, id int) (*domain.AccountBalance, error)
	Save(ctx context.Context, balance *domain.AccountBalance) (int, error)
	DeleteByID(ctx context.Context, id int) (string, error)
	UpdateIsPrimary(ctx context.Context, id int, isPrimary bool) error
}

type TransactionRepo interface {
	FindAllByBalanceID(ctx context.Context, balanceID int) ([]domain.Transaction, error)
}

const maxNumberAttempts = 5

type Service struct {
	userRepo        UserRepo
	accountRepo     AccountRepo
	balanceRepo     BalanceRepo
	transactionRepo TransactionRepo
	txManager       pg.TXManager
	gen             *numgen.Generator
}

func New(userRepo UserRepo, accountRepo AccountRepo, balanceRepo BalanceRepo,
	transactionRepo TransactionRepo, txManager pg.TXManager, gen *numgen.Generator) *Service {
	return &Service{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		balanceRepo:     balanceRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		gen:             gen,
	}
}

// CreateAccount opens the single account a user may own and its primary
// balance, numbered <accountNumber>0001.
func (s *Service) CreateAccount(ctx context.Context, username string, initialBalance int64) (accountNumber, primaryBalanceNumber string, err error) {
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		existing, err := s.accountRepo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAccountAlreadyExists
		}

		accountNumber, err = s.generateAccountNumber(ctx)
		if err != nil {
			return err
		}

		accountID, err := s.accountRepo.Save(ctx, &domain.Account{
			UserID:           user.ID,
			Username:         user.Username,
			TelegramUsername: user.TelegramUsername,
			AccountNumber:    accountNumber,
		})
		if err != nil {
			return err
		}

		primaryBalanceNumber = numgen.BalanceNumber(accountNumber, 1)
		_, err = s.balanceRepo.Save(ctx, &domain.AccountBalance{
			AccountID:     accountID,
			BalanceNumber: primaryBalanceNumber,
			Balance:       initialBalance,
			IsPrimary:     true,
		})
		return err
	})
	if err != nil {
		return "", "", err
	}

	zap.L().Info("account created",
		zap.String("accountNumber", accountNumber), zap.String("username", username))
	return accountNumber, primaryBalanceNumber, nil
}

// The retry loop is bounded; running out of attempts is an error rather
// than a silently accepted collision. The unique index on account_number
// backs this up under concurrency.
func (s *Service) generateAccountNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := s.gen.AccountNumber()
		if err != nil {
			return "", err
		}
		existing, err := s.accountRepo.FindByAccountNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return number, nil
		}
	}
	return "", domain.ErrAccountNumberGeneration
}

// CreateBalance adds a balance numbered with the next free 4-digit
// suffix on the caller's account.
func (s *Service) CreateBalance(ctx context.Context, username string, initialBalance int64) (string, error) {
	var balanceNumber string
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

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
		if len(balances) >= user.BalanceCountLimit {
			return domain.ErrBalanceLimitExceeded
		}

		balanceNumber = numgen.BalanceNumber(account.AccountNumber, nextSequence(balances))
		for _, b := range balances {
			if b.BalanceNumber == balanceNumber {
				return domain.ErrDuplicateBalanceNumber
			}
		}

		_, err = s.balanceRepo.Save(ctx, &domain.AccountBalance{
			AccountID:     account.ID,
			BalanceNumber: balanceNumber,
			Balance:       initialBalance,
			IsPrimary:     false,
		})
		return err
	})
	if err != nil {
		return "", err
	}

	zap.L().Info("balance created",
		zap.String("balanceNumber", balanceNumber), zap.String("username", username))
	return balanceNumber, nil
}

func nextSequence(balances []domain.AccountBalance) int {
	max := 0
	for _, b := range balances {
		if len(b.BalanceNumber) != 20 {
			continue
		}
		seq, err := strconv.Atoi(b.BalanceNumber[16:])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max + 1
}

// DeleteBalance removes an empty, non-primary balance; the last balance
// of an account can't be removed.
func (s *Service) DeleteBalance(ctx context.Context, username, balanceNumber string) (string, error) {
	var deleted string
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.resolveAccount(ctx, username)
		if err != nil {
			return err
		}

		balances, err := s.balanceRepo.FindAllByAccountID(ctx, account.ID)
		if err != nil {
			return err
		}

		target := findByNumber(balances, balanceNumber)
		if target == nil {
			return domain.ErrBalanceNotFound
		}
		if len(balances) == 1 {
			return domain.ErrOnlyOneBalance
		}
		if target.Balance != 0 {
			return domain.ErrBalanceNotEmpty
		}
		if target.IsPrimary {
			return domain.ErrCantDeletePrimaryBalance
		}

		deleted, err = s.balanceRepo.DeleteByID(ctx, target.ID)
		return err
	})
	if err != nil {
		return "", err
	}

	zap.L().Info("balance deleted",
		zap.String("balanceNumber", deleted), zap.String("username", username))
	return deleted, nil
}

// SwitchPrimaryBalance atomically moves the primary flag to the named
// balance and returns the former primary's number. Exactly one balance
// per account is primary before and after the call.
func (s *Service) SwitchPrimaryBalance(ctx context.Context, username, balanceNumber string) (string, error) {
	var former string
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.resolveAccount(ctx, username)
		if err != nil {
			return err
		}

		balances, err := s.balanceRepo.FindAllByAccountID(ctx, account.ID)
		if err != nil {
			return err
		}

		target := findByNumber(balances, balanceNumber)
		if target == nil {
			return domain.ErrBalanceNotFound
		}
		if target.IsPrimary {
			return domain.ErrAlreadyPrimaryBalance
		}

		var current *domain.AccountBalance
		for i := range balances {
			if balances[i].IsPrimary {
				current = &balances[i]
				break
			}
		}
		if current == nil {
			return errors.New("primary balance not found")
		}

		if err := s.balanceRepo.UpdateIsPrimary(ctx, current.ID, false); err != nil {
			return err
		}
		if err := s.balanceRepo.UpdateIsPrimary(ctx, target.ID, true); err != nil {
			return err
		}
		former = current.BalanceNumber
		return nil
	})
	if err != nil {
		return "", err
	}

	zap.L().Info("primary balance switched",
		zap.String("from", former), zap.String("to", balanceNumber), zap.String("username", username))
	return former, nil
}

// DeleteAccount removes the account and all of its balances; every
// balance must hold exactly zero.
func (s *Service) DeleteAccount(ctx context.Context, username string) (string, []string, error) {
	var accountNumber string
	var removed []string
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.resolveAccount(ctx, username)
		if err != nil {
			return err
		}

		balances, err := s.balanceRepo.FindAllByAccountID(ctx, account.ID)
		if err != nil {
			return err
		}
		for _, b := range balances {
			if b.Balance != 0 {
				return domain.ErrAccountNotEmpty
			}
		}

		for _, b := range balances {
			number, err := s.balanceRepo.DeleteByID(ctx, b.ID)
			if err != nil {
				return err
			}
			removed = append(removed, number)
		}

		accountNumber, err = s.accountRepo.DeleteByUsername(ctx, username)
		return err
	})
	if err != nil {
		return "", nil, err
	}

	zap.L().Info("account deleted",
		zap.String("accountNumber", accountNumber), zap.String("username", username))
	return accountNumber, removed, nil
}

type TransactionView struct {
	ID                    int
	Type                  domain.TransactionType
	Status                domain.TransactionStatus
	SenderBalanceNumber   string
	ReceiverBalanceNumber string
	Amount                int64
	CreatedAt             time.Time
}

type BalanceView struct {
	BalanceNumber string
	Balance       int64
	IsPrimary     bool
	CreatedAt     time.Time
	Transactions  []TransactionView
}

type AccountView struct {
	AccountNumber    string
	Username         string
	TelegramUsername string
	TotalBalance     int64
	Balances         []BalanceView
}

// GetAccountView aggregates the account, its balances and their
// transaction history.
func (s *Service) GetAccountView(ctx context.Context, username string) (*AccountView, error) {
	account, err := s.resolveAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	balances, err := s.balanceRepo.FindAllByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	view := &AccountView{
		AccountNumber:    account.AccountNumber,
		Username:         account.Username,
		TelegramUsername: account.TelegramUsername,
	}

	for _, b := range balances {
		txs, err := s.transactionRepo.FindAllByBalanceID(ctx, b.ID)
		if err != nil {
			return nil, err
		}

		balanceView := BalanceView{
			BalanceNumber: b.BalanceNumber,
			Balance:       b.Balance,
			IsPrimary:     b.IsPrimary,
			CreatedAt:     b.CreatedAt,
		}
		for _, tx := range txs {
			txView, err := s.transactionView(ctx, tx)
			if err != nil {
				return nil, err
			}
			balanceView.Transactions = append(balanceView.Transactions, txView)
		}

		view.TotalBalance += b.Balance
		view.Balances = append(view.Balances, balanceView)
	}
	return view, nil
}

func (s *Service) transactionView(ctx context.Context, tx domain.Transaction) (TransactionView, error) {
	sender, err := s.balanceRepo.FindByID(ctx, tx.BalanceID)
	if err != nil {
		return TransactionView{}, err
	}
	if sender == nil {
		return TransactionView{}, domain.ErrBalanceNotFound
	}
	receiver, err := s.balanceRepo.FindByID(ctx, tx.ReceiverBalanceID)
	if err != nil {
		return TransactionView{}, err
	}
	if receiver == nil {
		return TransactionView{}, domain.ErrBalanceNotFound
	}

	return TransactionView{
		ID:                    tx.ID,
		Type:                  tx.Type,
		Status:                tx.Status,
		SenderBalanceNumber:   sender.BalanceNumber,
		ReceiverBalanceNumber: receiver.BalanceNumber,
		Amount:                tx.Amount,
		CreatedAt:             tx.CreatedAt,
	}, nil
}

func (s *Service) resolveAccount(ctx context.Context, username string) (*domain.Account, error) {
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
	return account, nil
}

func findByNumber(balances []domain.AccountBalance, number string) *domain.AccountBalance {
	for i := range balances {
		if balances[i].BalanceNumber == number {
			return &balances[i]
		}
	}
	return nil
}
