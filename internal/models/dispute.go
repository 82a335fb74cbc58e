package models

import (
	"github.com/google/uuid"
)

// Статусы споров
const (
	DisputeStatusPending  = "pending"
	DisputeStatusResolved = "resolved"
	DisputeStatusClosed   = "closed"
)

// Dispute описывает спор по заказу, требующий арбитражного урегулирования
// средств в escrow. Открывается только пока заказ в работе.
type Dispute struct {
	ID               uint64     `json:"id"`
	JobID            uint64     `json:"job_id"`
	DisputantID      uuid.UUID  `json:"disputant_id"`
	Reason           string     `json:"reason"`
	Status           string     `json:"status"`
	ArbitratorID     *uuid.UUID `json:"arbitrator_id,omitempty"`
	OpenedAt         uint64     `json:"opened_at"`
	ResolvedAt       *uint64    `json:"resolved_at,omitempty"`
	ResolutionAmount *uint64    `json:"resolution_amount,omitempty"`
}
