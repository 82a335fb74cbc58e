package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobledger/jobledger-backend/internal/models"
	"github.com/jobledger/jobledger-backend/internal/pkg/apperror"
)

// RateJob ставит оценку контрагенту по завершённому заказу. Средний рейтинг
// обновляется инкрементально в целочисленной арифметике с усечением на
// каждом шаге: avg = (avg*count + r) / (count+1). Повторная оценка того же
// заказа тем же участником отклоняется.
func (l *Ledger) RateJob(ctx context.Context, caller uuid.UUID, jobID, rating uint64) (models.UserRating, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rating < 1 || rating > 5 {
		return models.UserRating{}, apperror.New(apperror.ErrCodeInvalidStatus, "оценка должна быть от 1 до 5")
	}
	job, ok := l.jobs.get(jobID)
	if !ok {
		return models.UserRating{}, apperror.ErrJobNotFound
	}
	if job.Status != models.JobStatusCompleted {
		return models.UserRating{}, apperror.New(apperror.ErrCodeInvalidStatus, "оценить можно только завершённый заказ")
	}

	var rated uuid.UUID
	switch {
	case caller == job.ClientID:
		if job.FreelancerID == nil {
			return models.UserRating{}, apperror.New(apperror.ErrCodeUnauthorized, "у заказа нет исполнителя")
		}
		rated = *job.FreelancerID
	case job.FreelancerID != nil && caller == *job.FreelancerID:
		rated = job.ClientID
	default:
		return models.UserRating{}, apperror.New(apperror.ErrCodeUnauthorized, "вы не участник этого заказа")
	}

	if l.ratings.isRated(jobID, caller) {
		return models.UserRating{}, apperror.New(apperror.ErrCodeInvalidStatus, "вы уже оценили этот заказ")
	}

	r := l.ratings.ensure(rated)
	r.AverageRating = (r.AverageRating*r.RatingsCount + rating) / (r.RatingsCount + 1)
	r.RatingsCount++
	l.ratings.markRated(jobID, caller)

	l.emit(ctx, Event{Type: EventJobRated, JobID: jobID, Actor: caller, Amount: rating, Height: l.clock.Height(), Recipients: []uuid.UUID{rated}})
	return *r, nil
}

// GetUserRating возвращает накопленную статистику пользователя.
// Для пользователя без записей — нулевая статистика, не ошибка.
func (l *Ledger) GetUserRating(userID uuid.UUID) models.UserRating {
	l.mu.Lock()
	defer l.mu.Unlock()

	if r, ok := l.ratings.get(userID); ok {
		return *r
	}
	return models.UserRating{UserID: userID}
}

// bumpCompleted инкрементирует счётчики завершённых заказов обеих сторон.
// Вызывается при каждом переходе заказа в completed: единой выплатой,
// последним этапом или урегулированием спора.
func (l *Ledger) bumpCompleted(job *models.Job) {
	l.ratings.ensure(job.ClientID).CompletedJobs++
	if job.FreelancerID != nil {
		l.ratings.ensure(*job.FreelancerID).CompletedJobs++
	}
}
