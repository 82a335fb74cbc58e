package ledger

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jobledger/jobledger-backend/internal/logger"
	"github.com/jobledger/jobledger-backend/internal/models"
)

// Типы событий жизненного цикла.
const (
	EventJobPosted          = "job_posted"
	EventJobCancelled       = "job_cancelled"
	EventBidSubmitted       = "bid_submitted"
	EventBidAccepted        = "bid_accepted"
	EventJobCompleted       = "job_completed"
	EventMilestonePaid      = "milestone_paid"
	EventDisputeOpened      = "dispute_opened"
	EventArbitratorAssigned = "arbitrator_assigned"
	EventDisputeResolved    = "dispute_resolved"
	EventDisputeClosed      = "dispute_closed"
	EventJobRated           = "job_rated"
)

// Event описывает одну применённую операцию леджера.
type Event struct {
	Type        string      `json:"type"`
	JobID       uint64      `json:"job_id,omitempty"`
	MilestoneID *int        `json:"milestone_id,omitempty"`
	DisputeID   *uint64     `json:"dispute_id,omitempty"`
	Actor       uuid.UUID   `json:"actor"`
	Amount      uint64      `json:"amount,omitempty"`
	Height      uint64      `json:"height"`
	Recipients  []uuid.UUID `json:"-"`
}

// Recorder сохраняет применённые события (журнал аудита).
// Ошибки журнала логируются и никогда не откатывают операцию.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// Notifier доставляет события участникам (например, через WebSocket).
type Notifier interface {
	Publish(e Event)
}

// Ledger — ядро маркетплейса: реестр заказов, книга откликов, escrow,
// планы этапов, споры, рейтинги и профили. Все публичные операции
// применяются строго последовательно под одним мьютексом: операция либо
// фиксируется целиком, либо отклоняется без каких-либо побочных эффектов.
type Ledger struct {
	mu sync.Mutex

	clock       Clock
	bank        Bank
	vaultID     uuid.UUID
	adminID     uuid.UUID
	minLeadTime uint64

	jobs       *jobStore
	bids       *bidStore
	escrows    *escrowStore
	milestones *milestoneStore
	disputes   *disputeStore
	ratings    *ratingStore
	profiles   *profileStore

	recorder Recorder
	notifier Notifier
}

// New создаёт леджер. vaultID — счёт custody, с которого выполняются все
// выплаты; adminID — администратор, уполномоченный на арбитраж;
// minLeadTime — минимальное окно подачи откликов (в высотах) для заказов
// с планом этапов.
func New(clock Clock, bank Bank, vaultID, adminID uuid.UUID, minLeadTime uint64) *Ledger {
	return &Ledger{
		clock:       clock,
		bank:        bank,
		vaultID:     vaultID,
		adminID:     adminID,
		minLeadTime: minLeadTime,
		jobs:        newJobStore(),
		bids:        newBidStore(),
		escrows:     newEscrowStore(),
		milestones:  newMilestoneStore(),
		disputes:    newDisputeStore(),
		ratings:     newRatingStore(),
		profiles:    newProfileStore(),
	}
}

// SetRecorder устанавливает журнал аудита.
func (l *Ledger) SetRecorder(r Recorder) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recorder = r
}

// SetNotifier устанавливает доставку событий участникам.
func (l *Ledger) SetNotifier(n Notifier) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notifier = n
}

// emit публикует событие уже применённой операции. Вызывается под мьютексом,
// после того как все мутации выполнены.
func (l *Ledger) emit(ctx context.Context, e Event) {
	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"op":     e.Type,
			"job_id": e.JobID,
			"actor":  e.Actor,
			"amount": e.Amount,
			"height": e.Height,
		}).Info("ledger: операция применена")
	}

	if l.recorder != nil {
		if err := l.recorder.Record(ctx, e); err != nil && logger.Log != nil {
			logger.Log.WithError(err).Warn("ledger: не удалось записать событие в журнал")
		}
	}

	if l.notifier != nil {
		l.notifier.Publish(e)
	}
}

func cloneJob(j *models.Job) models.Job {
	cp := *j
	if j.FreelancerID != nil {
		f := *j.FreelancerID
		cp.FreelancerID = &f
	}
	return cp
}

func cloneDispute(d *models.Dispute) models.Dispute {
	cp := *d
	if d.ArbitratorID != nil {
		a := *d.ArbitratorID
		cp.ArbitratorID = &a
	}
	if d.ResolvedAt != nil {
		h := *d.ResolvedAt
		cp.ResolvedAt = &h
	}
	if d.ResolutionAmount != nil {
		a := *d.ResolutionAmount
		cp.ResolutionAmount = &a
	}
	return cp
}

func cloneProfile(p *models.Profile) models.Profile {
	cp := *p
	if p.Skills != nil {
		cp.Skills = append([]string(nil), p.Skills...)
	}
	return cp
}
