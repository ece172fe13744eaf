package accountrepo

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

func (r *Repository) scanOne(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(&account.ID, &account.UserID, &account.Username,
		&account.TelegramUsername, &account.AccountNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan account row", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `
        SELECT id, user_id, username, telegram_username, account_number
        FROM accounts
        WHERE username = $1
    `
	return r.scanOne(r.db.QueryRow(ctx, query, username))
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        SELECT id, user_id, username, telegram_username, account_number
        FROM accounts
        WHERE user_id = $1
    `
	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

func (r *Repository) FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `
        SELECT id, user_id, username, telegram_username, account_number
        FROM accounts
        WHERE account_number = $1
    `
	return r.scanOne(r.db.QueryRow(ctx, query, accountNumber))
}

func (r *Repository) Save(ctx context.Context, account *domain.Account) (int, error) {
	query := `
        INSERT INTO accounts (user_id, username, telegram_username, account_number)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	row := r.db.QueryRow(ctx, query, account.UserID, account.Username,
		account.TelegramUsername, account.AccountNumber)
	var id int
	if err := row.Scan(&id); err != nil {
		zap.L().Error("can't save account", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *Repository) DeleteByUsername(ctx context.Context, username string) (string, error) {
	query := `
        DELETE FROM accounts
        WHERE username = $1
        RETURNING account_number
    `
	var accountNumber string
	if err := r.db.QueryRow(ctx, query, username).Scan(&accountNumber); err != nil {
		zap.L().Error("can't delete account", zap.Error(err))
		return "", err
	}
	return accountNumber, nil
}
