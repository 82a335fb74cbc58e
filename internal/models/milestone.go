package models

// Статусы этапов
const (
	MilestoneStatusPending   = "pending"
	MilestoneStatusCompleted = "completed"
	MilestoneStatusPaid      = "paid"
)

// MaxMilestonesPerJob — жёсткий потолок количества этапов на заказ.
const MaxMilestonesPerJob = 5

// Milestone описывает этап заказа — частичную выплату из общего бюджета.
// MilestoneID плотно нумеруется с нуля. План этапов создаётся атомарно
// вместе с заказом и после этого не пополняется.
type Milestone struct {
	JobID       uint64 `json:"job_id"`
	MilestoneID int    `json:"milestone_id"`
	Description string `json:"description"`
	Amount      uint64 `json:"amount"`
	Status      string `json:"status"`
	Deadline    uint64 `json:"deadline"`
}

// MilestoneInput — входные данные одного этапа при создании заказа.
type MilestoneInput struct {
	Description string `json:"description"`
	Amount      uint64 `json:"amount"`
	Deadline    uint64 `json:"deadline"`
}
