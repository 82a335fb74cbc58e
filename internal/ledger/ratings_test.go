package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobledger/jobledger-backend/internal/pkg/apperror"
)

// completeJob доводит заказ между фикстурными участниками до completed.
func completeJob(t *testing.T, f *fixture) uint64 {
	t.Helper()

	job := f.startJob(t, 800)
	_, err := f.ledger.CompleteJob(context.Background(), f.client, job.ID)
	require.NoError(t, err)
	return job.ID
}

func TestRateJob_ClientRatesFreelancer(t *testing.T) {
	f := newFixture(t)
	jobID := completeJob(t, f)

	r, err := f.ledger.RateJob(context.Background(), f.client, jobID, 5)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), r.AverageRating)
	assert.Equal(t, uint64(1), r.RatingsCount)
	assert.Equal(t, uint64(5), f.ledger.GetUserRating(f.freelancer).AverageRating)
}

func TestRateJob_FreelancerRatesClient(t *testing.T) {
	f := newFixture(t)
	jobID := completeJob(t, f)

	_, err := f.ledger.RateJob(context.Background(), f.freelancer, jobID, 4)
	require.NoError(t, err)

	assert.Equal(t, uint64(4), f.ledger.GetUserRating(f.client).AverageRating)
}

func TestRateJob_TruncatingAverage(t *testing.T) {
	f := newFixture(t)

	// Средний рейтинг обновляется инкрементально с усечением на каждом шаге:
	// 5 -> (5*1+4)/2 = 4 -> (4*2+2)/3 = 3.
	for _, rating := range []uint64{5, 4, 2} {
		jobID := completeJob(t, f)
		_, err := f.ledger.RateJob(context.Background(), f.client, jobID, rating)
		require.NoError(t, err)
	}

	got := f.ledger.GetUserRating(f.freelancer)
	assert.Equal(t, uint64(3), got.AverageRating)
	assert.Equal(t, uint64(3), got.RatingsCount)
}

func TestRateJob_Duplicate(t *testing.T) {
	f := newFixture(t)
	jobID := completeJob(t, f)

	_, err := f.ledger.RateJob(context.Background(), f.client, jobID, 5)
	require.NoError(t, err)

	_, err = f.ledger.RateJob(context.Background(), f.client, jobID, 1)
	assert.True(t, apperror.IsInvalidStatus(err))

	// Обе стороны оценивают независимо.
	_, err = f.ledger.RateJob(context.Background(), f.freelancer, jobID, 5)
	assert.NoError(t, err)
}

func TestRateJob_OutOfRange(t *testing.T) {
	f := newFixture(t)
	jobID := completeJob(t, f)

	_, err := f.ledger.RateJob(context.Background(), f.client, jobID, 0)
	assert.True(t, apperror.IsInvalidStatus(err))

	_, err = f.ledger.RateJob(context.Background(), f.client, jobID, 6)
	assert.True(t, apperror.IsInvalidStatus(err))
}

func TestRateJob_NotCompleted(t *testing.T) {
	f := newFixture(t)
	job := f.startJob(t, 800)

	_, err := f.ledger.RateJob(context.Background(), f.client, job.ID, 5)
	assert.True(t, apperror.IsInvalidStatus(err))
}

func TestRateJob_NonParticipant(t *testing.T) {
	f := newFixture(t)
	jobID := completeJob(t, f)

	_, err := f.ledger.RateJob(context.Background(), uuid.New(), jobID, 5)
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestGetUserRating_Unknown(t *testing.T) {
	f := newFixture(t)
	stranger := uuid.New()

	got := f.ledger.GetUserRating(stranger)
	assert.Equal(t, stranger, got.UserID)
	assert.Zero(t, got.TotalJobs)
	assert.Zero(t, got.CompletedJobs)
	assert.Zero(t, got.AverageRating)
	assert.Zero(t, got.RatingsCount)
}
