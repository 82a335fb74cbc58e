package models

import (
	"github.com/google/uuid"
)

// Статусы заказов
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
)

// ValidJobStatuses список валидных статусов заказов
var ValidJobStatuses = map[string]struct{}{
	JobStatusOpen:       {},
	JobStatusInProgress: {},
	JobStatusCompleted:  {},
	JobStatusCancelled:  {},
}

// Job описывает заказ с бюджетом, дедлайном и статусом жизненного цикла.
// FreelancerID назначается ровно один раз — при принятии отклика — и больше
// никогда не меняется. Budget неизменен после создания.
type Job struct {
	ID            uint64     `json:"id"`
	ClientID      uuid.UUID  `json:"client_id"`
	FreelancerID  *uuid.UUID `json:"freelancer_id,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Budget        uint64     `json:"budget"`
	Status        string     `json:"status"`
	Deadline      uint64     `json:"deadline"`
	CreatedAt     uint64     `json:"created_at"`
	HasMilestones bool       `json:"has_milestones"`
}

// Bid представляет отклик фрилансера на открытый заказ.
// Ключ — пара (job_id, freelancer_id): повторная подача перезаписывает
// предыдущий отклик того же фрилансера.
type Bid struct {
	JobID        uint64    `json:"job_id"`
	FreelancerID uuid.UUID `json:"freelancer_id"`
	Amount       uint64    `json:"amount"`
	Proposal     string    `json:"proposal"`
	SubmittedAt  uint64    `json:"submitted_at"`
}
