package service

import (
	"github.com/imelnikov/transferhub/internal/codestore"
	"github.com/imelnikov/transferhub/internal/config"
	"github.com/imelnikov/transferhub/internal/handlers/account"
	authhandlers "github.com/imelnikov/transferhub/internal/handlers/auth"
	"github.com/imelnikov/transferhub/internal/handlers/transfer"
	"github.com/imelnikov/transferhub/internal/pg"
	"github.com/imelnikov/transferhub/internal/repo"
	"github.com/imelnikov/transferhub/internal/service/accountservice"
	"github.com/imelnikov/transferhub/internal/service/authservice"
	"github.com/imelnikov/transferhub/internal/service/transactionservice"
	"github.com/imelnikov/transferhub/internal/service/transferservice"

	pkgauth "github.com/imelnikov/transferhub/pkg/auth"
	"github.com/imelnikov/transferhub/pkg/numgen"
)

type Services struct {
	AuthService     authhandlers.Service
	AccountService  account.Service
	TransferService transfer.Service
	Ledger          *transactionservice.Service
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, codes *codestore.Store, jwtService pkgauth.JWTServiceInterface) *Services {
	gen := numgen.New()

	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, jwtService, cfg.BalanceCountLimit)
	accountService := accountservice.New(repo.UserRepo, repo.AccountRepo, repo.BalanceRepo,
		repo.TransactionRepo, txManager, gen)
	ledger := transactionservice.New(repo.UserRepo, repo.AccountRepo, repo.BalanceRepo, repo.TransactionRepo)
	transferService := transferservice.New(repo.UserRepo, repo.AccountRepo, repo.BalanceRepo,
		repo.TransactionRepo, ledger, codes, txManager, gen)

	return &Services{
		AuthService:     authService,
		AccountService:  accountService,
		TransferService: transferService,
		Ledger:          ledger,
	}
}
