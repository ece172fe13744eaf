package balancerepo

import (
	"context"
	"errors"

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

func (r *Repository) FindAllByAccountID(ctx context.Context, accountID int) ([]domain.AccountBalance, error) {
	query := `
        SELECT id, account_id, balance_number, balance, is_primary, created_at
        FROM account_balances
        WHERE account_id = $1
        ORDER BY balance_number ASC
    `
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("can't get account balances", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var balances []domain.AccountBalance
	for rows.Next() {
		var balance domain.AccountBalance
		err := rows.Scan(&balance.ID, &balance.AccountID, &balance.BalanceNumber,
			&balance.Balance, &balance.IsPrimary, &balance.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan balance row", zap.Error(err))
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, rows.Err()
}

func (r *Repository) FindByBalanceNumber(ctx context.Context, balanceNumber string) (*domain.AccountBalance, error) {
	query := `
        SELECT id, account_id, balance_number, balance, is_primary, created_at
        FROM account_balances
        WHERE balance_number = $1
    `
	return r.scanOne(r.db.QueryRow(ctx, query, balanceNumber))
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.AccountBalance, error) {
	query := `
        SELECT id, account_id, balance_number, balance, is_primary, created_at
        FROM account_balances
        WHERE id = $1
    `
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) scanOne(row pgx.Row) (*domain.AccountBalance, error) {
	var balance domain.AccountBalance
	err := row.Scan(&balance.ID, &balance.AccountID, &balance.BalanceNumber,
		&balance.Balance, &balance.IsPrimary, &balance.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan balance row", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) Save(ctx context.Context, balance *domain.AccountBalance) (int, error) {
	query := `
        INSERT INTO account_balances (account_id, balance_number, balance, is_primary)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	row := r.db.QueryRow(ctx, query, balance.AccountID, balance.BalanceNumber,
		balance.Balance, balance.IsPrimary)
	var id int
	if err := row.Scan(&id); err != nil {
		zap.L().Error("can't save balance", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *Repository) DeleteByID(ctx context.Context, id int) (string, error) {
	query := `
        DELETE FROM account_balances
        WHERE id = $1
        RETURNING balance_number
    `
	var balanceNumber string
	if err := r.db.QueryRow(ctx, query, id).Scan(&balanceNumber); err != nil {
		zap.L().Error("can't delete balance", zap.Error(err))
		return "", err
	}
	return balanceNumber, nil
}

func (r *Repository) UpdateIsPrimary(ctx context.Context, id int, isPrimary bool) error {
	query := `
        UPDATE account_balances
        SET is_primary = $1
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, isPrimary, id); err != nil {
		zap.L().Error("can't update primary flag", zap.Error(err))
		return err
	}
	return nil
}

// UpdateBalance applies a signed delta in minor units.
func (r *Repository) UpdateBalance(ctx context.Context, id int, delta int64) error {
	query := `
        UPDATE account_balances
        SET balance = balance + $1
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, delta, id); err != nil {
		zap.L().Error("can't apply balance delta", zap.Error(err))
		return err
	}
	return nil
}
