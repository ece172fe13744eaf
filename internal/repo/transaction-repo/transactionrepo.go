package transactionrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/imelnikov/transferhub/internal/domain"
	"github.com/imelnikov/transferhub/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Transaction, error) {
	query := `
        SELECT id, balance_id, amount, transaction_type, transaction_status,
               created_at, receiver_balance_id, COALESCE(receiver_transaction_id, 0)
        FROM transactions
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var tx domain.Transaction
	err := row.Scan(&tx.ID, &tx.BalanceID, &tx.Amount, &tx.Type, &tx.Status,
		&tx.CreatedAt, &tx.ReceiverBalanceID, &tx.ReceiverTransactionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find transaction", zap.Error(err))
		return nil, err
	}
	return &tx, nil
}

func (r *Repository) FindAllByBalanceID(ctx context.Context, balanceID int) ([]domain.Transaction, error) {
	query := `
        SELECT id, balance_id, amount, transaction_type, transaction_status,
               created_at, receiver_balance_id, COALESCE(receiver_transaction_id, 0)
        FROM transactions
        WHERE balance_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, balanceID)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(&tx.ID, &tx.BalanceID, &tx.Amount, &tx.Type, &tx.Status,
			&tx.CreatedAt, &tx.ReceiverBalanceID, &tx.ReceiverTransactionID)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *Repository) Save(ctx context.Context, tx *domain.Transaction) (int, error) {
	query := `
        INSERT INTO transactions (balance_id, amount, transaction_type, transaction_status, receiver_balance_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	row := r.db.QueryRow(ctx, query, tx.BalanceID, tx.Amount, tx.Type, tx.Status, tx.ReceiverBalanceID)
	var id int
	if err := row.Scan(&id); err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *Repository) ExistsByID(ctx context.Context, id int) (bool, error) {
	query := `
        SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)
    `
	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		zap.L().Error("can't check transaction existence", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) UpdateReceiverTransactionID(ctx context.Context, id, receiverTransactionID int) error {
	query := `
        UPDATE transactions
        SET receiver_transaction_id = $1
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, receiverTransactionID, id); err != nil {
		zap.L().Error("can't link transactions", zap.Error(err))
		return err
	}
	return nil
}

// UpdateStatus transitions a row only when it is still in the expected
// status. It reports whether the row was actually updated, so a caller
// that lost a race on the same transition can tell and back off.
func (r *Repository) UpdateStatus(ctx context.Context, id int, from, to domain.TransactionStatus) (bool, error) {
	query := `
        UPDATE transactions
        SET transaction_status = $1
        WHERE id = $2 AND transaction_status = $3
    `
	tag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		zap.L().Error("can't update transaction status", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// FindStalePending returns sender-side rows stuck in PENDING_CONFIRMATION
// longer than the confirmation-code lifetime.
func (r *Repository) FindStalePending(ctx context.Context, olderThan time.Time, limit int) ([]domain.Transaction, error) {
	query := `
        SELECT id, balance_id, amount, transaction_type, transaction_status,
               created_at, receiver_balance_id, COALESCE(receiver_transaction_id, 0)
        FROM transactions
        WHERE transaction_status = $1 AND transaction_type = $2 AND created_at < $3
        ORDER BY created_at ASC
        LIMIT $4
    `
	rows, err := r.db.Query(ctx, query, domain.StatusPendingConfirmation, domain.TypeTransferTo, olderThan, limit)
	if err != nil {
		zap.L().Error("can't get stale pending transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(&tx.ID, &tx.BalanceID, &tx.Amount, &tx.Type, &tx.Status,
			&tx.CreatedAt, &tx.ReceiverBalanceID, &tx.ReceiverTransactionID)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
