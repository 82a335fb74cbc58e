package ws

import (
	"github.com/jobledger/jobledger-backend/internal/ledger"
)

// LedgerNotifier доставляет события леджера участникам через хаб.
// Реализует ledger.Notifier.
type LedgerNotifier struct {
	hub *Hub
}

// NewLedgerNotifier создаёт адаптер хаба для леджера.
func NewLedgerNotifier(hub *Hub) *LedgerNotifier {
	return &LedgerNotifier{hub: hub}
}

// Publish рассылает событие всем его получателям.
func (n *LedgerNotifier) Publish(e ledger.Event) {
	for _, userID := range e.Recipients {
		_ = n.hub.BroadcastToUser(userID, e.Type, e)
	}
}
