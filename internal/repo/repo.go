package repo

import (
	"github.com/imelnikov/transferhub/internal/pg"
	accountrepo "github.com/imelnikov/transferhub/internal/repo/account-repo"
	balancerepo "github.com/imelnikov/transferhub/internal/repo/balance-repo"
	transactionrepo "github.com/imelnikov/transferhub/internal/repo/transaction-repo"
	userrepo "github.com/imelnikov/transferhub/internal/repo/user-repo"
)

// Repositories holds the concrete repositories; services narrow them to
// their own consumer interfaces.
type Repositories struct {
	UserRepo        *userrepo.Repository
	AccountRepo     *accountrepo.Repository
	BalanceRepo     *balancerepo.Repository
	TransactionRepo *transactionrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		AccountRepo:     accountrepo.New(conn),
		BalanceRepo:     balancerepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
	}
}
