package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobledger/jobledger-backend/internal/pkg/apperror"
)

func TestMemoryBank_TransferMovesFunds(t *testing.T) {
	bank := NewMemoryBank()
	a, b := uuid.New(), uuid.New()
	bank.Deposit(a, 500)

	require.NoError(t, bank.Transfer(a, b, 200))
	assert.Equal(t, uint64(300), bank.Balance(a))
	assert.Equal(t, uint64(200), bank.Balance(b))
}

func TestMemoryBank_TransferInsufficient(t *testing.T) {
	bank := NewMemoryBank()
	a, b := uuid.New(), uuid.New()
	bank.Deposit(a, 100)

	err := bank.Transfer(a, b, 101)
	assert.True(t, apperror.IsInsufficientFunds(err))

	// Отклонённый перевод не трогает балансы.
	assert.Equal(t, uint64(100), bank.Balance(a))
	assert.Equal(t, uint64(0), bank.Balance(b))
}

func TestHeightClock_CountsFromGenesis(t *testing.T) {
	genesis := time.Now().Add(-10 * time.Second)
	clock := NewHeightClock(genesis, time.Second)

	h := clock.Height()
	assert.GreaterOrEqual(t, h, uint64(9))
	assert.LessOrEqual(t, h, uint64(11))
}

func TestHeightClock_BeforeGenesis(t *testing.T) {
	clock := NewHeightClock(time.Now().Add(time.Hour), time.Second)
	assert.Equal(t, uint64(0), clock.Height())
}

func TestManualClock_Advance(t *testing.T) {
	clock := NewManualClock(10)
	clock.Advance(5)
	assert.Equal(t, uint64(15), clock.Height())

	clock.SetHeight(100)
	assert.Equal(t, uint64(100), clock.Height())
}
