package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobledger/jobledger-backend/internal/models"
	"github.com/jobledger/jobledger-backend/internal/pkg/apperror"
)

// OpenDispute открывает спор по заказу в работе. Открыть спор может клиент
// или исполнитель; у открытого заказа исполнителя нет, поэтому спор по нему
// невозможен уже на проверке авторизации.
func (l *Ledger) OpenDispute(ctx context.Context, caller uuid.UUID, jobID uint64, reason string) (models.Dispute, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, ok := l.jobs.get(jobID)
	if !ok {
		return models.Dispute{}, apperror.ErrJobNotFound
	}
	if job.FreelancerID == nil {
		return models.Dispute{}, apperror.New(apperror.ErrCodeUnauthorized, "у заказа нет исполнителя")
	}
	if caller != job.ClientID && caller != *job.FreelancerID {
		return models.Dispute{}, apperror.New(apperror.ErrCodeUnauthorized, "вы не участник этого заказа")
	}
	if job.Status != models.JobStatusInProgress {
		return models.Dispute{}, apperror.New(apperror.ErrCodeInvalidStatus, "спор можно открыть только по заказу в работе")
	}
	if _, ok := l.escrows.balance(jobID); !ok {
		return models.Dispute{}, apperror.ErrEscrowNotFound
	}

	now := l.clock.Height()
	d := &models.Dispute{
		ID:          l.disputes.nextID(),
		JobID:       jobID,
		DisputantID: caller,
		Reason:      reason,
		Status:      models.DisputeStatusPending,
		OpenedAt:    now,
	}
	l.disputes.put(d)

	did := d.ID
	l.emit(ctx, Event{Type: EventDisputeOpened, JobID: jobID, DisputeID: &did, Actor: caller, Height: now, Recipients: []uuid.UUID{job.ClientID, *job.FreelancerID}})
	return cloneDispute(d), nil
}

// AssignArbitrator назначает арбитра на ожидающий спор. Доступно только
// администратору.
func (l *Ledger) AssignArbitrator(ctx context.Context, caller uuid.UUID, disputeID uint64, arbitratorID uuid.UUID) (models.Dispute, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.adminID {
		return models.Dispute{}, apperror.New(apperror.ErrCodeUnauthorized, "назначать арбитра может только администратор")
	}
	d, ok := l.disputes.get(disputeID)
	if !ok {
		return models.Dispute{}, apperror.ErrDisputeNotFound
	}
	if d.Status != models.DisputeStatusPending {
		return models.Dispute{}, apperror.New(apperror.ErrCodeInvalidStatus, "арбитра можно назначить только на ожидающий спор")
	}

	a := arbitratorID
	d.ArbitratorID = &a

	did := d.ID
	l.emit(ctx, Event{Type: EventArbitratorAssigned, JobID: d.JobID, DisputeID: &did, Actor: caller, Height: l.clock.Height(), Recipients: []uuid.UUID{arbitratorID, d.DisputantID}})
	return cloneDispute(d), nil
}

// ResolveDispute урегулирует спор переводом resolutionAmount из escrow заказа.
// Если сумма равна остатку custody, получатель — исполнитель; иначе — клиент,
// а невыплаченный остаток остаётся на счёте хранилища (запись escrow при этом
// снимается целиком). Заказ переходит в completed.
func (l *Ledger) ResolveDispute(ctx context.Context, caller uuid.UUID, disputeID, resolutionAmount uint64) (models.Dispute, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d, ok := l.disputes.get(disputeID)
	if !ok {
		return models.Dispute{}, apperror.ErrDisputeNotFound
	}
	if caller != l.adminID && (d.ArbitratorID == nil || caller != *d.ArbitratorID) {
		return models.Dispute{}, apperror.New(apperror.ErrCodeUnauthorized, "урегулировать спор может администратор или назначенный арбитр")
	}
	if d.Status != models.DisputeStatusPending {
		return models.Dispute{}, apperror.New(apperror.ErrCodeInvalidStatus, "спор уже урегулирован или закрыт")
	}
	job, ok := l.jobs.get(d.JobID)
	if !ok {
		return models.Dispute{}, apperror.ErrJobNotFound
	}
	balance, ok := l.escrows.balance(job.ID)
	if !ok {
		return models.Dispute{}, apperror.New(apperror.ErrCodeInvalidStatus, "escrow по заказу уже закрыт")
	}
	if resolutionAmount > balance {
		return models.Dispute{}, apperror.New(apperror.ErrCodeInvalidAmount, "сумма урегулирования превышает остаток escrow")
	}

	recipient := job.ClientID
	if resolutionAmount == balance {
		recipient = *job.FreelancerID
	}

	if err := l.bank.Transfer(l.vaultID, recipient, resolutionAmount); err != nil {
		return models.Dispute{}, err
	}

	now := l.clock.Height()
	d.Status = models.DisputeStatusResolved
	d.ResolvedAt = &now
	amount := resolutionAmount
	d.ResolutionAmount = &amount
	job.Status = models.JobStatusCompleted
	l.escrows.release(job.ID)
	l.bumpCompleted(job)

	did := d.ID
	l.emit(ctx, Event{Type: EventDisputeResolved, JobID: job.ID, DisputeID: &did, Actor: caller, Amount: resolutionAmount, Height: now, Recipients: []uuid.UUID{job.ClientID, *job.FreelancerID}})
	return cloneDispute(d), nil
}

// CloseDispute закрывает ожидающий спор без урегулирования. Доступно
// инициатору спора и администратору; заказ остаётся в работе.
func (l *Ledger) CloseDispute(ctx context.Context, caller uuid.UUID, disputeID uint64) (models.Dispute, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d, ok := l.disputes.get(disputeID)
	if !ok {
		return models.Dispute{}, apperror.ErrDisputeNotFound
	}
	if caller != d.DisputantID && caller != l.adminID {
		return models.Dispute{}, apperror.New(apperror.ErrCodeUnauthorized, "закрыть спор может его инициатор или администратор")
	}
	if d.Status != models.DisputeStatusPending {
		return models.Dispute{}, apperror.New(apperror.ErrCodeInvalidStatus, "спор уже урегулирован или закрыт")
	}

	d.Status = models.DisputeStatusClosed

	did := d.ID
	l.emit(ctx, Event{Type: EventDisputeClosed, JobID: d.JobID, DisputeID: &did, Actor: caller, Height: l.clock.Height(), Recipients: []uuid.UUID{d.DisputantID}})
	return cloneDispute(d), nil
}

// GetDispute возвращает спор по id.
func (l *Ledger) GetDispute(disputeID uint64) (models.Dispute, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d, ok := l.disputes.get(disputeID)
	if !ok {
		return models.Dispute{}, false
	}
	return cloneDispute(d), true
}
