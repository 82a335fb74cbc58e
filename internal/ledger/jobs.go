package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobledger/jobledger-backend/internal/models"
	"github.com/jobledger/jobledger-backend/internal/pkg/apperror"
)

// PostJob публикует новый заказ со статусом open.
func (l *Ledger) PostJob(ctx context.Context, caller uuid.UUID, title, description string, budget, deadline uint64) (models.Job, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Height()
	if budget == 0 {
		return models.Job{}, apperror.New(apperror.ErrCodeInvalidAmount, "бюджет должен быть положительным")
	}
	if deadline <= now {
		return models.Job{}, apperror.New(apperror.ErrCodePastDeadline, "дедлайн должен быть строго в будущем")
	}

	job := &models.Job{
		ID:          l.jobs.nextID(),
		ClientID:    caller,
		Title:       title,
		Description: description,
		Budget:      budget,
		Status:      models.JobStatusOpen,
		Deadline:    deadline,
		CreatedAt:   now,
	}
	l.jobs.put(job)

	l.emit(ctx, Event{Type: EventJobPosted, JobID: job.ID, Actor: caller, Amount: budget, Height: now, Recipients: []uuid.UUID{caller}})
	return cloneJob(job), nil
}

// PostJobWithMilestones публикует заказ вместе с планом этапов.
// Заказ и все записи этапов создаются в одном атомарном переходе: частичное
// создание снаружи не наблюдаемо, при любой ошибке не создаётся ничего.
func (l *Ledger) PostJobWithMilestones(ctx context.Context, caller uuid.UUID, title, description string, budget, deadline uint64, inputs []models.MilestoneInput) (models.Job, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Height()
	if budget == 0 {
		return models.Job{}, apperror.New(apperror.ErrCodeInvalidAmount, "бюджет должен быть положительным")
	}
	if deadline <= now {
		return models.Job{}, apperror.New(apperror.ErrCodePastDeadline, "дедлайн должен быть строго в будущем")
	}
	if deadline-now < l.minLeadTime {
		return models.Job{}, apperror.Newf(apperror.ErrCodePastDeadline, "окно подачи откликов короче минимального (%d высот)", l.minLeadTime)
	}
	if len(inputs) == 0 || len(inputs) > models.MaxMilestonesPerJob {
		return models.Job{}, apperror.Newf(apperror.ErrCodeInvalidAmount, "количество этапов должно быть от 1 до %d", models.MaxMilestonesPerJob)
	}

	var sum uint64
	for _, in := range inputs {
		if in.Amount == 0 {
			return models.Job{}, apperror.New(apperror.ErrCodeInvalidAmount, "сумма этапа должна быть положительной")
		}
		if sum+in.Amount < sum {
			return models.Job{}, apperror.New(apperror.ErrCodeInvalidAmount, "переполнение суммы этапов")
		}
		sum += in.Amount
	}
	if sum != budget {
		return models.Job{}, apperror.New(apperror.ErrCodeInvalidAmount, "сумма этапов должна быть равна бюджету заказа")
	}

	job := &models.Job{
		ID:            l.jobs.nextID(),
		ClientID:      caller,
		Title:         title,
		Description:   description,
		Budget:        budget,
		Status:        models.JobStatusOpen,
		Deadline:      deadline,
		CreatedAt:     now,
		HasMilestones: true,
	}
	l.jobs.put(job)
	l.milestones.createPlan(job.ID, inputs)

	l.emit(ctx, Event{Type: EventJobPosted, JobID: job.ID, Actor: caller, Amount: budget, Height: now, Recipients: []uuid.UUID{caller}})
	return cloneJob(job), nil
}

// CancelJob отменяет открытый заказ. На этом этапе средства ещё не удерживаются,
// поэтому переводов не требуется.
func (l *Ledger) CancelJob(ctx context.Context, caller uuid.UUID, jobID uint64) (models.Job, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, ok := l.jobs.get(jobID)
	if !ok {
		return models.Job{}, apperror.ErrJobNotFound
	}
	if job.ClientID != caller {
		return models.Job{}, apperror.New(apperror.ErrCodeUnauthorized, "отменить заказ может только его клиент")
	}
	if job.Status != models.JobStatusOpen {
		return models.Job{}, apperror.New(apperror.ErrCodeInvalidStatus, "отменить можно только открытый заказ")
	}

	job.Status = models.JobStatusCancelled

	l.emit(ctx, Event{Type: EventJobCancelled, JobID: job.ID, Actor: caller, Height: l.clock.Height(), Recipients: []uuid.UUID{caller}})
	return cloneJob(job), nil
}

// GetJob возвращает заказ по id.
func (l *Ledger) GetJob(jobID uint64) (models.Job, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, ok := l.jobs.get(jobID)
	if !ok {
		return models.Job{}, false
	}
	return cloneJob(job), true
}

// ListJobs возвращает заказы по возрастанию id, опционально фильтруя по статусу.
func (l *Ledger) ListJobs(status string, limit, offset int) []models.Job {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Job, 0, limit)
	skipped := 0
	for _, job := range l.jobs.list() {
		if status != "" && job.Status != status {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, cloneJob(job))
		if len(out) >= limit {
			break
		}
	}
	return out
}
