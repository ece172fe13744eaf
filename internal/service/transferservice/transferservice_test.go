package transferservice

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/imelnikov/transferhub/internal/codestore"
	"github.com/imelnikov/transferhub/internal/domain"
	"github.com/imelnikov/transferhub/internal/pg"
	"github.com/imelnikov/transferhub/pkg/numgen"
)

type mocks struct {
	userRepo        *MockUserRepo
	accountRepo     *MockAccountRepo
	balanceRepo     *MockBalanceRepo
	transactionRepo *MockTransactionRepo
	ledger          *MockLedger
	codes           *MockCodeStore
	txManager       *pg.MockTXManager
}

// the zero source yields confirmation code "000000"
func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		userRepo:        NewMockUserRepo(ctrl),
		accountRepo:     NewMockAccountRepo(ctrl),
		balanceRepo:     NewMockBalanceRepo(ctrl),
		transactionRepo: NewMockTransactionRepo(ctrl),
		ledger:          NewMockLedger(ctrl),
		codes:           NewMockCodeStore(ctrl),
		txManager:       pg.NewMockTXManager(ctrl),
	}
	gen := numgen.NewWithSource(bytes.NewReader(bytes.Repeat([]byte{0}, 1024)))

	service := New(m.userRepo, m.accountRepo, m.balanceRepo, m.transactionRepo,
		m.ledger, m.codes, m.txManager, gen)
	defer ctrl.Finish()
	return service, m
}

func inTransaction(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		})
}

func TestInitiate(t *testing.T) {
	service, m := NewMock(t)
	ctx := context.Background()
	account := &domain.Account{ID: 10, UserID: 1, Username: "ivan", AccountNumber: "4561261212345467"}
	pair := domain.TransactionIDPair{ID: 101, MappedID: 102}

	tests := []struct {
		name          string
		amount        int64
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "Pending pair and code issued",
			amount: 30000,
			prepareMock: func() {
				inTransaction(m.txManager)
				m.accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(account, nil)
				m.balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, AccountID: 10, BalanceNumber: "45612612123454670001", Balance: 70000},
				}, nil)
				m.ledger.EXPECT().CreatePair(ctx, "ivan", int64(30000), "45612612123454670001", "98765432109876540001").
					Return(pair, nil)
				m.codes.EXPECT().Save(ctx, "ivan", 101, "000000").Return(nil)
				m.ledger.EXPECT().UpdateStatus(ctx, "ivan", domain.StatusCreated, domain.StatusPendingConfirmation, pair).
					Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "Zero amount rejected before any lookup",
			amount:        0,
			prepareMock:   func() {},
			expectedError: domain.ErrNonPositiveAmount,
		},
		{
			name:          "Negative amount rejected before any lookup",
			amount:        -500,
			prepareMock:   func() {},
			expectedError: domain.ErrNonPositiveAmount,
		},
		{
			name:   "Insufficient funds",
			amount: 100000,
			prepareMock: func() {
				inTransaction(m.txManager)
				m.accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(account, nil)
				m.balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 1, AccountID: 10, BalanceNumber: "45612612123454670001", Balance: 70000},
				}, nil)
			},
			expectedError: domain.ErrInsufficientFunds,
		},
		{
			name:   "Sender balance not found",
			amount: 30000,
			prepareMock: func() {
				inTransaction(m.txManager)
				m.accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(account, nil)
				m.balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{
					{ID: 2, AccountID: 10, BalanceNumber: "45612612123454670002", Balance: 70000},
				}, nil)
			},
			expectedError: domain.ErrBalanceNotFound,
		},
		{
			name:   "Account not found",
			amount: 30000,
			prepareMock: func() {
				inTransaction(m.txManager)
				m.accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(nil, nil)
			},
			expectedError: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			code, got, err := service.Initiate(ctx, "ivan", tt.amount, "45612612123454670001", "98765432109876540001")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, code)
				assert.Zero(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "000000", code)
			assert.Equal(t, pair, got)
		})
	}
}

func TestConfirm(t *testing.T) {
	service, m := NewMock(t)
	ctx := context.Background()
	pair := domain.TransactionIDPair{ID: 101, MappedID: 102}
	account := &domain.Account{ID: 10, UserID: 1, Username: "ivan"}

	fromTx := &domain.Transaction{ID: 101, BalanceID: 1, Amount: -30000, Type: domain.TypeTransferTo,
		Status: domain.StatusPendingConfirmation, ReceiverBalanceID: 5, ReceiverTransactionID: 102}
	toTx := &domain.Transaction{ID: 102, BalanceID: 5, Amount: 30000, Type: domain.TypeTransferFrom,
		Status: domain.StatusPendingConfirmation, ReceiverBalanceID: 1, ReceiverTransactionID: 101}
	senderBalance := &domain.AccountBalance{ID: 1, AccountID: 10, BalanceNumber: "45612612123454670001", Balance: 70000}
	receiverBalance := &domain.AccountBalance{ID: 5, AccountID: 11, BalanceNumber: "98765432109876540001", Balance: 0}

	resolveOwned := func() {
		m.userRepo.EXPECT().ExistsByUsername(ctx, "ivan").Return(true, nil)
		m.accountRepo.EXPECT().FindByUsername(ctx, "ivan").Return(account, nil)
		m.transactionRepo.EXPECT().FindByID(ctx, 101).Return(fromTx, nil)
		m.balanceRepo.EXPECT().FindByID(ctx, 1).Return(senderBalance, nil)
		m.balanceRepo.EXPECT().FindAllByAccountID(ctx, 10).Return([]domain.AccountBalance{*senderBalance}, nil)
	}

	t.Run("Valid code settles the pair", func(t *testing.T) {
		inTransaction(m.txManager)
		resolveOwned()
		m.codes.EXPECT().Verify(ctx, "ivan", 101, "000000").Return(codestore.Success, nil)

		m.transactionRepo.EXPECT().FindByID(ctx, 101).Return(fromTx, nil)
		m.transactionRepo.EXPECT().FindByID(ctx, 102).Return(toTx, nil)
		m.balanceRepo.EXPECT().FindByID(ctx, 1).Return(senderBalance, nil)
		m.balanceRepo.EXPECT().FindByID(ctx, 5).Return(receiverBalance, nil)

		m.ledger.EXPECT().UpdateStatus(ctx, "ivan", domain.StatusPendingConfirmation, domain.StatusNoActive, pair).Return(nil)

		var appliedDeltas []int64
		m.balanceRepo.EXPECT().UpdateBalance(ctx, 1, int64(-30000)).DoAndReturn(func(ctx context.Context, id int, delta int64) error {
			appliedDeltas = append(appliedDeltas, delta)
			return nil
		})
		m.balanceRepo.EXPECT().UpdateBalance(ctx, 5, int64(30000)).DoAndReturn(func(ctx context.Context, id int, delta int64) error {
			appliedDeltas = append(appliedDeltas, delta)
			return nil
		})
		m.ledger.EXPECT().UpdateStatus(ctx, "ivan", domain.StatusNoActive, domain.StatusConfirmed, pair).Return(nil)

		err := service.Confirm(ctx, "ivan", pair, "000000")

		assert.NoError(t, err)
		var sum int64
		for _, d := range appliedDeltas {
			sum += d
		}
		assert.Zero(t, sum)
	})

	t.Run("Wrong code declines the pair", func(t *testing.T) {
		inTransaction(m.txManager)
		resolveOwned()
		m.codes.EXPECT().Verify(ctx, "ivan", 101, "999999").Return(codestore.CodeMismatch, nil)

		// the decline runs in its own transaction after the rollback
		inTransaction(m.txManager)
		m.ledger.EXPECT().UpdateStatus(ctx, "ivan", domain.StatusPendingConfirmation, domain.StatusDeclined, pair).Return(nil)

		err := service.Confirm(ctx, "ivan", pair, "999999")
		assert.ErrorIs(t, err, domain.ErrInvalidConfirmationCode)
	})

	t.Run("Replayed code is treated as invalid", func(t *testing.T) {
		inTransaction(m.txManager)
		resolveOwned()
		m.codes.EXPECT().Verify(ctx, "ivan", 101, "000000").Return(codestore.CodeNotFound, nil)

		inTransaction(m.txManager)
		m.ledger.EXPECT().UpdateStatus(ctx, "ivan", domain.StatusPendingConfirmation, domain.StatusDeclined, pair).Return(nil)

		err := service.Confirm(ctx, "ivan", pair, "000000")
		assert.ErrorIs(t, err, domain.ErrInvalidConfirmationCode)
	})

	t.Run("Decline dropped when the pair already settled", func(t *testing.T) {
		inTransaction(m.txManager)
		resolveOwned()
		m.codes.EXPECT().Verify(ctx, "ivan", 101, "999999").Return(codestore.CodeMismatch, nil)

		inTransaction(m.txManager)
		m.ledger.EXPECT().UpdateStatus(ctx, "ivan", domain.StatusPendingConfirmation, domain.StatusDeclined, pair).
			Return(domain.ErrTransactionStatusConflict)

		err := service.Confirm(ctx, "ivan", pair, "999999")
		assert.ErrorIs(t, err, domain.ErrInvalidConfirmationCode)
	})

	t.Run("Foreign balance rejected before the code is checked", func(t *testing.T) {
		inTransaction(m.txManager)
		m.userRepo.EXPECT().ExistsByUsername(ctx, "mallory").Return(true, nil)
		m.accountRepo.EXPECT().FindByUsername(ctx, "mallory").Return(&domain.Account{ID: 30, Username: "mallory"}, nil)
		m.transactionRepo.EXPECT().FindByID(ctx, 101).Return(fromTx, nil)
		m.balanceRepo.EXPECT().FindByID(ctx, 1).Return(senderBalance, nil)
		m.balanceRepo.EXPECT().FindAllByAccountID(ctx, 30).Return([]domain.AccountBalance{
			{ID: 9, AccountID: 30, BalanceNumber: "11112222333344440001"},
		}, nil)

		err := service.Confirm(ctx, "mallory", pair, "000000")
		assert.ErrorIs(t, err, domain.ErrBalanceNotOwned)
	})

	t.Run("Broken mutual link aborts the settlement", func(t *testing.T) {
		inTransaction(m.txManager)
		resolveOwned()
		m.codes.EXPECT().Verify(ctx, "ivan", 101, "000000").Return(codestore.Success, nil)

		badTo := &domain.Transaction{ID: 102, BalanceID: 5, Amount: 30000, ReceiverBalanceID: 7, ReceiverTransactionID: 101}
		m.transactionRepo.EXPECT().FindByID(ctx, 101).Return(fromTx, nil)
		m.transactionRepo.EXPECT().FindByID(ctx, 102).Return(badTo, nil)
		m.balanceRepo.EXPECT().FindByID(ctx, 1).Return(senderBalance, nil)
		m.balanceRepo.EXPECT().FindByID(ctx, 5).Return(receiverBalance, nil)

		err := service.Confirm(ctx, "ivan", pair, "000000")
		assert.ErrorIs(t, err, domain.ErrBalanceNotOwned)
	})

	t.Run("Unknown user", func(t *testing.T) {
		inTransaction(m.txManager)
		m.userRepo.EXPECT().ExistsByUsername(ctx, "ghost").Return(false, nil)

		err := service.Confirm(ctx, "ghost", pair, "000000")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Code store failure is propagated", func(t *testing.T) {
		inTransaction(m.txManager)
		resolveOwned()
		m.codes.EXPECT().Verify(ctx, "ivan", 101, "000000").
			Return(codestore.VerificationResult(""), errors.New("redis down"))

		err := service.Confirm(ctx, "ivan", pair, "000000")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidConfirmationCode)
	})
}
