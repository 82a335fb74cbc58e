package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobledger/jobledger-backend/internal/models"
	"github.com/jobledger/jobledger-backend/internal/pkg/apperror"
)

// SubmitBid подаёт отклик на открытый заказ. Повторный отклик того же
// фрилансера перезаписывает предыдущий; количество разных откликов не
// ограничено.
func (l *Ledger) SubmitBid(ctx context.Context, caller uuid.UUID, jobID, amount uint64, proposal string) (models.Bid, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, ok := l.jobs.get(jobID)
	if !ok {
		return models.Bid{}, apperror.ErrJobNotFound
	}
	if job.Status != models.JobStatusOpen {
		return models.Bid{}, apperror.New(apperror.ErrCodeInvalidStatus, "откликнуться можно только на открытый заказ")
	}
	if caller == job.ClientID {
		return models.Bid{}, apperror.New(apperror.ErrCodeUnauthorized, "клиент не может откликаться на собственный заказ")
	}
	if amount == 0 {
		return models.Bid{}, apperror.New(apperror.ErrCodeInvalidAmount, "сумма отклика должна быть положительной")
	}
	if amount > job.Budget {
		return models.Bid{}, apperror.New(apperror.ErrCodeInvalidAmount, "сумма отклика не может превышать бюджет заказа")
	}

	now := l.clock.Height()
	bid := &models.Bid{
		JobID:        jobID,
		FreelancerID: caller,
		Amount:       amount,
		Proposal:     proposal,
		SubmittedAt:  now,
	}
	l.bids.put(bid)

	l.emit(ctx, Event{Type: EventBidSubmitted, JobID: jobID, Actor: caller, Amount: amount, Height: now, Recipients: []uuid.UUID{job.ClientID}})
	return *bid, nil
}

// GetBid возвращает отклик пары (job, freelancer).
func (l *Ledger) GetBid(jobID uint64, freelancerID uuid.UUID) (models.Bid, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bid, ok := l.bids.get(jobID, freelancerID)
	if !ok {
		return models.Bid{}, false
	}
	return *bid, true
}
