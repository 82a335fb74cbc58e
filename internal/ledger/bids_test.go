package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobledger/jobledger-backend/internal/pkg/apperror"
)

func TestSubmitBid_Success(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)

	bid, err := f.ledger.SubmitBid(context.Background(), f.freelancer, job.ID, 800, "Сделаю за неделю")
	require.NoError(t, err)

	assert.Equal(t, job.ID, bid.JobID)
	assert.Equal(t, f.freelancer, bid.FreelancerID)
	assert.Equal(t, uint64(800), bid.Amount)
	assert.Equal(t, uint64(100), bid.SubmittedAt)
}

func TestSubmitBid_OwnJob(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)

	_, err := f.ledger.SubmitBid(context.Background(), f.client, job.ID, 800, "Откликаюсь на собственный заказ")
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestSubmitBid_ClosedJob(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)
	_, err := f.ledger.CancelJob(context.Background(), f.client, job.ID)
	require.NoError(t, err)

	_, err = f.ledger.SubmitBid(context.Background(), f.freelancer, job.ID, 800, "Отклик на отменённый заказ")
	assert.True(t, apperror.IsInvalidStatus(err))
}

func TestSubmitBid_AmountOverBudget(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)

	_, err := f.ledger.SubmitBid(context.Background(), f.freelancer, job.ID, job.Budget+1, "Дороже бюджета")
	assert.Equal(t, apperror.ErrCodeInvalidAmount, apperror.CodeOf(err))

	_, err = f.ledger.SubmitBid(context.Background(), f.freelancer, job.ID, 0, "Бесплатно")
	assert.Equal(t, apperror.ErrCodeInvalidAmount, apperror.CodeOf(err))
}

func TestSubmitBid_OverwritesPrevious(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)

	_, err := f.ledger.SubmitBid(context.Background(), f.freelancer, job.ID, 900, "Первое предложение")
	require.NoError(t, err)
	_, err = f.ledger.SubmitBid(context.Background(), f.freelancer, job.ID, 700, "Пересмотрел оценку")
	require.NoError(t, err)

	bid, ok := f.ledger.GetBid(job.ID, f.freelancer)
	require.True(t, ok)
	assert.Equal(t, uint64(700), bid.Amount)
	assert.Equal(t, "Пересмотрел оценку", bid.Proposal)
}

func TestGetBid_NotFound(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)

	_, ok := f.ledger.GetBid(job.ID, uuid.New())
	assert.False(t, ok)
}
