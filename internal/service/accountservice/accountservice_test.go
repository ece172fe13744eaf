package accountservice

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/imelnikov/transferhub/internal/domain"
	"github.com/imelnikov/transferhub/internal/pg"
	"github.com/imelnikov/transferhub/pkg/numgen"
)

// zeroGen produces all-zero digits, so every generated account number is
// "0000000000000000" (Luhn check digit of fifteen zeros is zero).
func zeroGen() *numgen.Generator {
	return numgen.NewWithSource(bytes.NewReader(bytes.Repeat([]byte{0}, 1024)))
}

func NewMock(t *testing.T) (*Service, *MockUserRepo, *MockAccountRepo, *MockBalanceRepo, *MockTransactionRepo, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockUserRepo(ctrl)
	accountRepo := NewMockAccountRepo(ctrl)
	balanceRepo := NewMockBalanceRepo(ctrl)
	transactionRepo := NewMockTransactionRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)

	service := New(userRepo, accountRepo, balanceRepo, transactionRepo, txManager, zeroGen())
	defer ctrl.Finish()
	return service, userRepo, accountRepo, balanceRepo, transactionRepo, txManager
}

func inTransaction(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		})
}

func TestCreateAccount(t *testing.T) {
	service, userRepo, accountRepo, balanceRepo, _, txManager := NewMock(t)
	ctx := context.Background()
	user := &domain.User{ID: 1, Username: "ivan", TelegramUsername: "@ivan", BalanceCountLimit: 5}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Successful account creation",
			prepareMock: func() {
				inTransaction(txManager)
				userRepo.EXPECT().FindByUsername(ctx, "ivan").Return(user, nil)
				accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(nil, nil)
				accountRepo.EXPECT().FindByAccountNumber(ctx, "0000000000000000").Return(nil, nil)
				accountRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, account *domain.Account) (int, error) {
					assert.Equal(t, "0000000000000000", account.AccountNumber)
					assert.Equal(t, 1, account.UserID)
					return 10, nil
				})
				balanceRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, balance *domain.AccountBalance) (int, error) {
					assert.Equal(t, 10, balance.AccountID)
					assert.Equal(t, "00000000000000000001", balance.BalanceNumber)
					assert.Equal(t, int64(10000), balance.Balance)
					assert.True(t, balance.IsPrimary)
					return 20, nil
				})
			},
			expectedError: nil,
		},
		{
			name: "User not found",
			prepareMock: func() {
				inTransaction(txManager)
				userRepo.EXPECT().FindByUsername(ctx, "ivan").Return(nil, nil)
			},
			expectedError: domain.ErrUserNotFound,
		},
		{
			name: "Account already exists",
			prepareMock: func() {
				inTransaction(txManager)
				userRepo.EXPECT().FindByUsername(ctx, "ivan").Return(user, nil)
				accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(&domain.Account{ID: 10}, nil)
			},
			expectedError: domain.ErrAccountAlreadyExists,
		},
		{
			name: "Number generation exhausted",
			prepareMock: func() {
				inTransaction(txManager)
				userRepo.EXPECT().FindByUsername(ctx, "ivan").Return(user, nil)
				accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(nil, nil)
				accountRepo.EXPECT().FindByAccountNumber(ctx, "0000000000000000").
					Return(&domain.Account{ID: 99}, nil).Times(5)
			},
			expectedError: domain.ErrAccountNumberGeneration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			accountNumber, primaryBalanceNumber, err := service.CreateAccount(ctx, "ivan", 10000)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accountNumber)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "0000000000000000", accountNumber)
			assert.Equal(t, accountNumber+"0001", primaryBalanceNumber)
		})
	}
}

func TestCreateBalance(t *testing.T) {
	service, userRepo, accountRepo, balanceRepo, _, txManager := NewMock(t)
	ctx := context.Background()
	user := &domain.User{ID: 1, Username: "ivan", BalanceCountLimit: 3}
	account := &domain.Account{ID: 10, UserID: 1, Username: "ivan", AccountNumber: "4561261212345467"}

	tests := []struct {
		name           string
		prepareMock    func()
		expectedNumber string
		expectedError  error
	}{
		{
			name: "Next free suffix allocated",
			prepareMock: func() {
				inTransaction(txManager)
				userRepo.EXPECT().FindByUsername(ctx, "ivan").Return(user, nil)
				accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(account, nil)
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", IsPrimary: true},
					{ID: 2, BalanceNumber: "45612612123454670002"},
				}, nil)
				balanceRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, balance *domain.AccountBalance) (int, error) {
					assert.Equal(t, "45612612123454670003", balance.BalanceNumber)
					assert.False(t, balance.IsPrimary)
					return 3, nil
				})
			},
			expectedNumber: "45612612123454670003",
			expectedError:  nil,
		},
		{
			name: "Balance count limit reached",
			prepareMock: func() {
				inTransaction(txManager)
				userRepo.EXPECT().FindByUsername(ctx, "ivan").Return(user, nil)
				accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(account, nil)
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", IsPrimary: true},
					{ID: 2, BalanceNumber: "45612612123454670002"},
					{ID: 3, BalanceNumber: "45612612123454670003"},
				}, nil)
			},
			expectedError: domain.ErrBalanceLimitExceeded,
		},
		{
			name: "Account not found",
			prepareMock: func() {
				inTransaction(txManager)
				userRepo.EXPECT().FindByUsername(ctx, "ivan").Return(user, nil)
				accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(nil, nil)
			},
			expectedError: domain.ErrAccountNotFound,
		},
		{
			name: "User not found",
			prepareMock: func() {
				inTransaction(txManager)
				userRepo.EXPECT().FindByUsername(ctx, "ivan").Return(nil, nil)
			},
			expectedError: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			balanceNumber, err := service.CreateBalance(ctx, "ivan", 0)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, balanceNumber)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedNumber, balanceNumber)
		})
	}
}

func TestNextSequence(t *testing.T) {
	tests := []struct {
		name     string
		balances []domain.AccountBalance
		expected int
	}{
		{
			name: "Gapless suffixes",
			balances: []domain.AccountBalance{
				{BalanceNumber: "45612612123454670001"},
				{BalanceNumber: "45612612123454670002"},
			},
			expected: 3,
		},
		{
			name: "Gap after deletion keeps highest",
			balances: []domain.AccountBalance{
				{BalanceNumber: "45612612123454670001"},
				{BalanceNumber: "45612612123454670007"},
			},
			expected: 8,
		},
		{
			name: "Suffix beyond single digit parsed in full",
			balances: []domain.AccountBalance{
				{BalanceNumber: "45612612123454670012"},
			},
			expected: 13,
		},
		{
			name:     "No balances",
			balances: nil,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nextSequence(tt.balances))
		})
	}
}

func TestDeleteBalance(t *testing.T) {
	service, userRepo, accountRepo, balanceRepo, _, txManager := NewMock(t)
	ctx := context.Background()
	account := &domain.Account{ID: 10, UserID: 1, Username: "ivan", AccountNumber: "4561261212345467"}

	resolve := func() {
		userRepo.EXPECT().ExistsByUsername(ctx, "ivan").Return(true, nil)
		accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(account, nil)
	}

	tests := []struct {
		name          string
		balanceNumber string
		prepareMock   func()
		expectedError error
	}{
		{
			name:          "Empty secondary balance deleted",
			balanceNumber: "45612612123454670002",
			prepareMock: func() {
				inTransaction(txManager)
				resolve()
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", Balance: 500, IsPrimary: true},
					{ID: 2, BalanceNumber: "45612612123454670002", Balance: 0},
				}, nil)
				balanceRepo.EXPECT().DeleteByID(ctx, 2).Return("45612612123454670002", nil)
			},
			expectedError: nil,
		},
		{
			name:          "Balance not found",
			balanceNumber: "45612612123454670009",
			prepareMock: func() {
				inTransaction(txManager)
				resolve()
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", IsPrimary: true},
				}, nil)
			},
			expectedError: domain.ErrBalanceNotFound,
		},
		{
			name:          "Last balance can't be deleted",
			balanceNumber: "45612612123454670001",
			prepareMock: func() {
				inTransaction(txManager)
				resolve()
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", Balance: 0, IsPrimary: true},
				}, nil)
			},
			expectedError: domain.ErrOnlyOneBalance,
		},
		{
			name:          "Non-empty balance can't be deleted",
			balanceNumber: "45612612123454670002",
			prepareMock: func() {
				inTransaction(txManager)
				resolve()
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", Balance: 0, IsPrimary: true},
					{ID: 2, BalanceNumber: "45612612123454670002", Balance: 100},
				}, nil)
			},
			expectedError: domain.ErrBalanceNotEmpty,
		},
		{
			name:          "Primary balance can't be deleted",
			balanceNumber: "45612612123454670001",
			prepareMock: func() {
				inTransaction(txManager)
				resolve()
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", Balance: 0, IsPrimary: true},
					{ID: 2, BalanceNumber: "45612612123454670002", Balance: 0},
				}, nil)
			},
			expectedError: domain.ErrCantDeletePrimaryBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			deleted, err := service.DeleteBalance(ctx, "ivan", tt.balanceNumber)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, deleted)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.balanceNumber, deleted)
		})
	}
}

func TestSwitchPrimaryBalance(t *testing.T) {
	service, userRepo, accountRepo, balanceRepo, _, txManager := NewMock(t)
	ctx := context.Background()
	account := &domain.Account{ID: 10, UserID: 1, Username: "ivan", AccountNumber: "4561261212345467"}

	resolve := func() {
		userRepo.EXPECT().ExistsByUsername(ctx, "ivan").Return(true, nil)
		accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(account, nil)
	}

	tests := []struct {
		name           string
		balanceNumber  string
		prepareMock    func()
		expectedFormer string
		expectedError  error
	}{
		{
			name:          "Primary flag moved",
			balanceNumber: "45612612123454670002",
			prepareMock: func() {
				inTransaction(txManager)
				resolve()
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", IsPrimary: true},
					{ID: 2, BalanceNumber: "45612612123454670002"},
				}, nil)
				balanceRepo.EXPECT().UpdateIsPrimary(ctx, 1, false).Return(nil)
				balanceRepo.EXPECT().UpdateIsPrimary(ctx, 2, true).Return(nil)
			},
			expectedFormer: "45612612123454670001",
			expectedError:  nil,
		},
		{
			name:          "Already primary",
			balanceNumber: "45612612123454670001",
			prepareMock: func() {
				inTransaction(txManager)
				resolve()
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", IsPrimary: true},
					{ID: 2, BalanceNumber: "45612612123454670002"},
				}, nil)
			},
			expectedError: domain.ErrAlreadyPrimaryBalance,
		},
		{
			name:          "Balance not found",
			balanceNumber: "45612612123454670009",
			prepareMock: func() {
				inTransaction(txManager)
				resolve()
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", IsPrimary: true},
				}, nil)
			},
			expectedError: domain.ErrBalanceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			former, err := service.SwitchPrimaryBalance(ctx, "ivan", tt.balanceNumber)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, former)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedFormer, former)
		})
	}
}

func TestDeleteAccount(t *testing.T) {
	service, userRepo, accountRepo, balanceRepo, _, txManager := NewMock(t)
	ctx := context.Background()
	account := &domain.Account{ID: 10, UserID: 1, Username: "ivan", AccountNumber: "4561261212345467"}

	resolve := func() {
		userRepo.EXPECT().ExistsByUsername(ctx, "ivan").Return(true, nil)
		accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(account, nil)
	}

	tests := []struct {
		name            string
		prepareMock     func()
		expectedRemoved []string
		expectedError   error
	}{
		{
			name: "All balances empty, account removed",
			prepareMock: func() {
				inTransaction(txManager)
				resolve()
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", Balance: 0, IsPrimary: true},
					{ID: 2, BalanceNumber: "45612612123454670002", Balance: 0},
				}, nil)
				balanceRepo.EXPECT().DeleteByID(ctx, 1).Return("45612612123454670001", nil)
				balanceRepo.EXPECT().DeleteByID(ctx, 2).Return("45612612123454670002", nil)
				accountRepo.EXPECT().DeleteByUsername(ctx, "ivan").Return("4561261212345467", nil)
			},
			expectedRemoved: []string{"45612612123454670001", "45612612123454670002"},
			expectedError:   nil,
		},
		{
			name: "Any non-zero balance blocks deletion",
			prepareMock: func() {
				inTransaction(txManager)
				resolve()
				balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, BalanceNumber: "45612612123454670001", Balance: 0, IsPrimary: true},
					{ID: 2, BalanceNumber: "45612612123454670002", Balance: 1},
				}, nil)
			},
			expectedError: domain.ErrAccountNotEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			accountNumber, removed, err := service.DeleteAccount(ctx, "ivan")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accountNumber)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "4561261212345467", accountNumber)
			assert.Equal(t, tt.expectedRemoved, removed)
		})
	}
}

func TestGetAccountView(t *testing.T) {
	service, userRepo, accountRepo, balanceRepo, transactionRepo, _ := NewMock(t)
	ctx := context.Background()
	createdAt := time.Now()
	account := &domain.Account{ID: 10, UserID: 1, Username: "ivan", TelegramUsername: "@ivan", AccountNumber: "4561261212345467"}

	senderBalance := &domain.AccountBalance{ID: 1, AccountID: 10, BalanceNumber: "45612612123454670001", Balance: 70000, IsPrimary: true, CreatedAt: createdAt}
	receiverBalance := &domain.AccountBalance{ID: 5, AccountID: 11, BalanceNumber: "98765432109876540001", Balance: 30000, CreatedAt: createdAt}

	userRepo.EXPECT().ExistsByUsername(ctx, "ivan").Return(true, nil)
	accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(account, nil)
	balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{*senderBalance}, nil)
	transactionRepo.EXPECT().FindAllByBalanceID(ctx, 1).Return([]domain.Transaction{
		{
			ID: 101, BalanceID: 1, Amount: -30000, Type: domain.TypeTransferTo,
			Status: domain.StatusConfirmed, CreatedAt: createdAt,
			ReceiverBalanceID: 5, ReceiverTransactionID: 102,
		},
	}, nil)
	balanceRepo.EXPECT().FindByID(ctx, 1).Return(senderBalance, nil)
	balanceRepo.EXPECT().FindByID(ctx, 5).Return(receiverBalance, nil)

	view, err := service.GetAccountView(ctx, "ivan")

	assert.NoError(t, err)
	assert.Equal(t, "4561261212345467", view.AccountNumber)
	assert.Equal(t, int64(70000), view.TotalBalance)
	assert.Len(t, view.Balances, 1)
	assert.Len(t, view.Balances[0].Transactions, 1)

	tx := view.Balances[0].Transactions[0]
	assert.Equal(t, "45612612123454670001", tx.SenderBalanceNumber)
	assert.Equal(t, "98765432109876540001", tx.ReceiverBalanceNumber)
	assert.Equal(t, int64(-30000), tx.Amount)
	assert.Equal(t, domain.StatusConfirmed, tx.Status)
}

func TestGetAccountView_Errors(t *testing.T) {
	service, userRepo, accountRepo, _, _, _ := NewMock(t)
	ctx := context.Background()

	t.Run("User not found", func(t *testing.T) {
		userRepo.EXPECT().ExistsByUsername(ctx, "ghost").Return(false, nil)

		view, err := service.GetAccountView(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Nil(t, view)
	})

	t.Run("Account not found", func(t *testing.T) {
		userRepo.EXPECT().ExistsByUsername(ctx, "ivan").Return(true, nil)
		accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(nil, nil)

		view, err := service.GetAccountView(ctx, "ivan")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
		assert.Nil(t, view)
	})

	t.Run("Repo error", func(t *testing.T) {
		userRepo.EXPECT().ExistsByUsername(ctx, "ivan").Return(false, errors.New("database error"))

		view, err := service.GetAccountView(ctx, "ivan")
		assert.Error(t, err)
		assert.Nil(t, view)
	})
}
