package ledger

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jobledger/jobledger-backend/internal/pkg/apperror"
)

// Bank — внешний примитив перевода средств: атомарно переносит фиксированную
// сумму между двумя идентичностями. Частичных переводов не бывает; при
// нехватке средств на счёте отправителя перевод отклоняется целиком.
type Bank interface {
	Transfer(from, to uuid.UUID, amount uint64) error
}

// MemoryBank хранит балансы в памяти. Используется в разработке и тестах
// вместо настоящей расчётной системы.
type MemoryBank struct {
	mu       sync.Mutex
	balances map[uuid.UUID]uint64
}

// NewMemoryBank создаёт пустой банк.
func NewMemoryBank() *MemoryBank {
	return &MemoryBank{balances: make(map[uuid.UUID]uint64)}
}

// Deposit пополняет счёт.
func (b *MemoryBank) Deposit(id uuid.UUID, amount uint64) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[id] += amount
	return b.balances[id]
}

// Balance возвращает текущий баланс счёта.
func (b *MemoryBank) Balance(id uuid.UUID) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[id]
}

// Transfer атомарно переводит amount со счёта from на счёт to.
func (b *MemoryBank) Transfer(from, to uuid.UUID, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.balances[from] < amount {
		return apperror.ErrInsufficientFunds
	}
	b.balances[from] -= amount
	b.balances[to] += amount
	return nil
}
