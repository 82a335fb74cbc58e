package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobledger/jobledger-backend/internal/models"
	"github.com/jobledger/jobledger-backend/internal/pkg/apperror"
)

// CompleteMilestone оплачивает один этап: сумма этапа переводится из custody
// исполнителю, этап помечается оплаченным. Если после выплаты оплачены все
// этапы плана, заказ переходит в completed и запись escrow снимается.
// Возвращает оплаченный этап и актуальное состояние заказа.
func (l *Ledger) CompleteMilestone(ctx context.Context, caller uuid.UUID, jobID uint64, milestoneID int) (models.Milestone, models.Job, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, ok := l.jobs.get(jobID)
	if !ok {
		return models.Milestone{}, models.Job{}, apperror.ErrJobNotFound
	}
	if job.ClientID != caller {
		return models.Milestone{}, models.Job{}, apperror.New(apperror.ErrCodeUnauthorized, "оплатить этап может только клиент заказа")
	}
	if job.Status != models.JobStatusInProgress {
		return models.Milestone{}, models.Job{}, apperror.New(apperror.ErrCodeInvalidStatus, "оплатить этап можно только по заказу в работе")
	}
	ms, ok := l.milestones.get(jobID, milestoneID)
	if !ok {
		return models.Milestone{}, models.Job{}, apperror.ErrMilestoneNotFound
	}
	if ms.Status != models.MilestoneStatusPending {
		return models.Milestone{}, models.Job{}, apperror.New(apperror.ErrCodeInvalidStatus, "этап уже оплачен")
	}

	now := l.clock.Height()
	if now > ms.Deadline {
		return models.Milestone{}, models.Job{}, apperror.New(apperror.ErrCodePastDeadline, "дедлайн этапа истёк")
	}

	balance, ok := l.escrows.balance(jobID)
	if !ok {
		return models.Milestone{}, models.Job{}, apperror.ErrEscrowNotFound
	}
	if balance < ms.Amount {
		return models.Milestone{}, models.Job{}, apperror.ErrInsufficientFunds
	}

	if err := l.bank.Transfer(l.vaultID, *job.FreelancerID, ms.Amount); err != nil {
		return models.Milestone{}, models.Job{}, err
	}

	ms.Status = models.MilestoneStatusPaid
	l.escrows.debit(jobID, ms.Amount)

	recipients := []uuid.UUID{job.ClientID, *job.FreelancerID}
	msID := milestoneID
	l.emit(ctx, Event{Type: EventMilestonePaid, JobID: jobID, MilestoneID: &msID, Actor: caller, Amount: ms.Amount, Height: now, Recipients: recipients})

	if l.allMilestonesPaid(jobID) {
		job.Status = models.JobStatusCompleted
		l.escrows.release(jobID)
		l.bumpCompleted(job)
		l.emit(ctx, Event{Type: EventJobCompleted, JobID: jobID, Actor: caller, Height: now, Recipients: recipients})
	}

	return *ms, cloneJob(job), nil
}

// allMilestonesPaid — канонический вариант проверки «все этапы оплачены»:
// ограниченный цикл по плану, максимум MaxMilestonesPerJob итераций.
func (l *Ledger) allMilestonesPaid(jobID uint64) bool {
	for _, ms := range l.milestones.plan(jobID) {
		if ms.Status != models.MilestoneStatusPaid {
			return false
		}
	}
	return true
}

// GetJobMilestones возвращает до MaxMilestonesPerJob этапов заказа по
// возрастанию milestone_id. Каждый вызов отдаёт свежий снимок.
func (l *Ledger) GetJobMilestones(jobID uint64) []models.Milestone {
	l.mu.Lock()
	defer l.mu.Unlock()

	plan := l.milestones.plan(jobID)
	out := make([]models.Milestone, 0, len(plan))
	for _, ms := range plan {
		out = append(out, *ms)
	}
	return out
}

// GetMilestone возвращает один этап заказа.
func (l *Ledger) GetMilestone(jobID uint64, milestoneID int) (models.Milestone, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ms, ok := l.milestones.get(jobID, milestoneID)
	if !ok {
		return models.Milestone{}, false
	}
	return *ms, true
}
