package repo

import (
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	r := New(mockDB)

	assert.NotNil(t, r)
	assert.NotNil(t, r.UserRepo)
	assert.NotNil(t, r.AccountRepo)
	assert.NotNil(t, r.BalanceRepo)
	assert.NotNil(t, r.TransactionRepo)
}
