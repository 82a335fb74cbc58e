package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobledger/jobledger-backend/internal/models"
	"github.com/jobledger/jobledger-backend/internal/pkg/apperror"
)

// AcceptBid принимает отклик и фондирует escrow — единственная точка, где
// заказ получает исполнителя. Для обычного заказа в custody переводится
// сумма принятого отклика; для заказа с планом этапов — полный бюджет,
// чтобы custody всегда покрывала каждую выплату плана.
// Повторный вызов по тому же заказу невозможен: предусловие "заказ открыт"
// снимается самим AcceptBid.
func (l *Ledger) AcceptBid(ctx context.Context, caller uuid.UUID, jobID uint64, freelancerID uuid.UUID) (models.Job, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, ok := l.jobs.get(jobID)
	if !ok {
		return models.Job{}, apperror.ErrJobNotFound
	}
	if job.ClientID != caller {
		return models.Job{}, apperror.New(apperror.ErrCodeUnauthorized, "принять отклик может только клиент заказа")
	}
	if job.Status != models.JobStatusOpen {
		return models.Job{}, apperror.New(apperror.ErrCodeInvalidStatus, "принять отклик можно только на открытом заказе")
	}
	bid, ok := l.bids.get(jobID, freelancerID)
	if !ok {
		return models.Job{}, apperror.ErrBidNotFound
	}

	amount := bid.Amount
	if job.HasMilestones {
		amount = job.Budget
	}

	// Перевод — последняя проверка: при отказе операция прерывается без
	// каких-либо изменений состояния.
	if err := l.bank.Transfer(job.ClientID, l.vaultID, amount); err != nil {
		return models.Job{}, err
	}

	f := freelancerID
	job.FreelancerID = &f
	job.Status = models.JobStatusInProgress
	l.escrows.hold(jobID, amount)
	l.ratings.ensure(job.ClientID).TotalJobs++
	l.ratings.ensure(freelancerID).TotalJobs++

	l.emit(ctx, Event{Type: EventBidAccepted, JobID: jobID, Actor: caller, Amount: amount, Height: l.clock.Height(), Recipients: []uuid.UUID{job.ClientID, freelancerID}})
	return cloneJob(job), nil
}

// CompleteJob завершает заказ единой выплатой: весь остаток escrow уходит
// исполнителю, запись custody снимается. При отказе перевода статус остаётся
// in_progress — единственный путь повтора это повторная подача операции.
func (l *Ledger) CompleteJob(ctx context.Context, caller uuid.UUID, jobID uint64) (models.Job, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, ok := l.jobs.get(jobID)
	if !ok {
		return models.Job{}, apperror.ErrJobNotFound
	}
	if job.ClientID != caller {
		return models.Job{}, apperror.New(apperror.ErrCodeUnauthorized, "завершить заказ может только его клиент")
	}
	if job.Status != models.JobStatusInProgress {
		return models.Job{}, apperror.New(apperror.ErrCodeInvalidStatus, "завершить можно только заказ в работе")
	}
	balance, ok := l.escrows.balance(jobID)
	if !ok {
		return models.Job{}, apperror.ErrEscrowNotFound
	}

	if err := l.bank.Transfer(l.vaultID, *job.FreelancerID, balance); err != nil {
		return models.Job{}, err
	}

	job.Status = models.JobStatusCompleted
	l.escrows.release(jobID)
	l.bumpCompleted(job)

	l.emit(ctx, Event{Type: EventJobCompleted, JobID: jobID, Actor: caller, Amount: balance, Height: l.clock.Height(), Recipients: []uuid.UUID{job.ClientID, *job.FreelancerID}})
	return cloneJob(job), nil
}

// GetEscrowBalance возвращает сумму в custody по заказу.
// Запись существует только пока заказ в статусе in_progress.
func (l *Ledger) GetEscrowBalance(jobID uint64) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.escrows.balance(jobID)
}
