package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobledger/jobledger-backend/internal/models"
	"github.com/jobledger/jobledger-backend/internal/pkg/apperror"
)

func TestCompleteMilestone_PaysAndMarks(t *testing.T) {
	f := newFixture(t)
	job := f.startMilestoneJob(t)

	ms, got, err := f.ledger.CompleteMilestone(context.Background(), f.client, job.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, models.MilestoneStatusPaid, ms.Status)
	assert.Equal(t, uint64(100), ms.Amount)
	assert.Equal(t, models.JobStatusInProgress, got.Status)

	// Custody уменьшилась ровно на сумму этапа.
	balance, ok := f.ledger.GetEscrowBalance(job.ID)
	require.True(t, ok)
	assert.Equal(t, uint64(500), balance)
	assert.Equal(t, uint64(1_000+100), f.bank.Balance(f.freelancer))
}

func TestCompleteMilestone_AlreadyPaid(t *testing.T) {
	f := newFixture(t)
	job := f.startMilestoneJob(t)

	_, _, err := f.ledger.CompleteMilestone(context.Background(), f.client, job.ID, 0)
	require.NoError(t, err)

	_, _, err = f.ledger.CompleteMilestone(context.Background(), f.client, job.ID, 0)
	assert.True(t, apperror.IsInvalidStatus(err))
}

func TestCompleteMilestone_PastDeadline(t *testing.T) {
	f := newFixture(t)
	job := f.startMilestoneJob(t)

	// Первый этап имел дедлайн now+500.
	f.clock.Advance(501)

	_, _, err := f.ledger.CompleteMilestone(context.Background(), f.client, job.ID, 0)
	assert.Equal(t, apperror.ErrCodePastDeadline, apperror.CodeOf(err))

	// Второй этап (дедлайн now+800) ещё оплачиваем.
	_, _, err = f.ledger.CompleteMilestone(context.Background(), f.client, job.ID, 1)
	assert.NoError(t, err)
}

func TestCompleteMilestone_LastPaymentCompletesJob(t *testing.T) {
	f := newFixture(t)
	job := f.startMilestoneJob(t)

	for i := 0; i < 2; i++ {
		_, _, err := f.ledger.CompleteMilestone(context.Background(), f.client, job.ID, i)
		require.NoError(t, err)
	}

	_, got, err := f.ledger.CompleteMilestone(context.Background(), f.client, job.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusCompleted, got.Status)
	_, ok := f.ledger.GetEscrowBalance(job.ID)
	assert.False(t, ok)

	assert.Equal(t, uint64(1_000+600), f.bank.Balance(f.freelancer))
	assert.Equal(t, uint64(1), f.ledger.GetUserRating(f.client).CompletedJobs)
	assert.Equal(t, uint64(1), f.ledger.GetUserRating(f.freelancer).CompletedJobs)
}

func TestCompleteMilestone_OnlyClient(t *testing.T) {
	f := newFixture(t)
	job := f.startMilestoneJob(t)

	_, _, err := f.ledger.CompleteMilestone(context.Background(), f.freelancer, job.ID, 0)
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestCompleteMilestone_NotInProgress(t *testing.T) {
	f := newFixture(t)
	job := f.postMilestoneJob(t)

	_, _, err := f.ledger.CompleteMilestone(context.Background(), f.client, job.ID, 0)
	assert.True(t, apperror.IsInvalidStatus(err))
}

func TestCompleteMilestone_UnknownMilestone(t *testing.T) {
	f := newFixture(t)
	job := f.startMilestoneJob(t)

	_, _, err := f.ledger.CompleteMilestone(context.Background(), f.client, job.ID, 7)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetJobMilestones_AscendingSnapshot(t *testing.T) {
	f := newFixture(t)
	job := f.postMilestoneJob(t)

	milestones := f.ledger.GetJobMilestones(job.ID)
	require.Len(t, milestones, 3)
	for i, ms := range milestones {
		assert.Equal(t, i, ms.MilestoneID)
	}

	// Снимок не связан с внутренним состоянием.
	milestones[0].Status = models.MilestoneStatusPaid
	fresh := f.ledger.GetJobMilestones(job.ID)
	assert.Equal(t, models.MilestoneStatusPending, fresh[0].Status)
}
