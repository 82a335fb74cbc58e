package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jobledger/jobledger-backend/internal/ledger"
)

// JournalEntry — строка журнала аудита применённых операций леджера.
type JournalEntry struct {
	ID          int64     `db:"id" json:"id"`
	EventType   string    `db:"event_type" json:"event_type"`
	JobID       uint64    `db:"job_id" json:"job_id"`
	MilestoneID *int      `db:"milestone_id" json:"milestone_id,omitempty"`
	DisputeID   *uint64   `db:"dispute_id" json:"dispute_id,omitempty"`
	ActorID     uuid.UUID `db:"actor_id" json:"actor_id"`
	Amount      uint64    `db:"amount" json:"amount"`
	Height      uint64    `db:"height" json:"height"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// EventJournal пишет применённые события леджера в PostgreSQL.
// Журнал — write-behind: ошибка записи логируется вызывающим и никогда
// не блокирует и не откатывает операцию леджера.
type EventJournal struct {
	db *sqlx.DB
}

func NewEventJournal(db *sqlx.DB) *EventJournal {
	return &EventJournal{db: db}
}

// Record сохраняет одно событие. Реализует ledger.Recorder.
func (j *EventJournal) Record(ctx context.Context, e ledger.Event) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO ledger_events (event_type, job_id, milestone_id, dispute_id, actor_id, amount, height)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.Type, e.JobID, e.MilestoneID, e.DisputeID, e.Actor, e.Amount, e.Height)
	if err != nil {
		return fmt.Errorf("event journal: record %w", err)
	}
	return nil
}

// ListByJob возвращает историю событий заказа, новые первыми.
func (j *EventJournal) ListByJob(ctx context.Context, jobID uint64, limit, offset int) ([]JournalEntry, error) {
	var entries []JournalEntry
	err := j.db.SelectContext(ctx, &entries, `
		SELECT id, event_type, job_id, milestone_id, dispute_id, actor_id, amount, height, created_at
		FROM ledger_events WHERE job_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3
	`, jobID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("event journal: list by job %w", err)
	}
	return entries, nil
}
