package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jobledger/jobledger-backend/internal/models"
)

var (
	testVault = uuid.MustParse("00000000-0000-0000-0000-0000000000e5")
	testAdmin = uuid.MustParse("00000000-0000-0000-0000-00000000ad01")
)

const testMinLeadTime = 720

// fixture — готовый леджер с ручными часами и двумя профинансированными
// участниками.
type fixture struct {
	ledger     *Ledger
	clock      *ManualClock
	bank       *MemoryBank
	client     uuid.UUID
	freelancer uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := NewManualClock(100)
	bank := NewMemoryBank()
	f := &fixture{
		ledger:     New(clock, bank, testVault, testAdmin, testMinLeadTime),
		clock:      clock,
		bank:       bank,
		client:     uuid.New(),
		freelancer: uuid.New(),
	}
	bank.Deposit(f.client, 10_000)
	bank.Deposit(f.freelancer, 1_000)
	return f
}

// postJob публикует обычный заказ с бюджетом 1000 и дедлайном в будущем.
func (f *fixture) postJob(t *testing.T) models.Job {
	t.Helper()

	job, err := f.ledger.PostJob(context.Background(), f.client, "Сайт-визитка", "Нужен простой сайт-визитка на три страницы", 1000, f.clock.Height()+2000)
	require.NoError(t, err)
	return job
}

// startJob публикует заказ, подаёт отклик на amount и принимает его.
func (f *fixture) startJob(t *testing.T, amount uint64) models.Job {
	t.Helper()

	job := f.postJob(t)
	_, err := f.ledger.SubmitBid(context.Background(), f.freelancer, job.ID, amount, "Сделаю быстро и аккуратно")
	require.NoError(t, err)

	job, err = f.ledger.AcceptBid(context.Background(), f.client, job.ID, f.freelancer)
	require.NoError(t, err)
	return job
}

// postMilestoneJob публикует заказ с тремя этапами (100 + 200 + 300).
func (f *fixture) postMilestoneJob(t *testing.T) models.Job {
	t.Helper()

	now := f.clock.Height()
	inputs := []models.MilestoneInput{
		{Description: "Макет", Amount: 100, Deadline: now + 500},
		{Description: "Вёрстка", Amount: 200, Deadline: now + 800},
		{Description: "Запуск", Amount: 300, Deadline: now + 1100},
	}
	job, err := f.ledger.PostJobWithMilestones(context.Background(), f.client, "Лендинг", "Лендинг с поэтапной сдачей работ", 600, now+1200, inputs)
	require.NoError(t, err)
	return job
}

// startMilestoneJob доводит заказ с этапами до in_progress.
func (f *fixture) startMilestoneJob(t *testing.T) models.Job {
	t.Helper()

	job := f.postMilestoneJob(t)
	_, err := f.ledger.SubmitBid(context.Background(), f.freelancer, job.ID, 600, "Возьмусь за все три этапа")
	require.NoError(t, err)

	job, err = f.ledger.AcceptBid(context.Background(), f.client, job.ID, f.freelancer)
	require.NoError(t, err)
	return job
}

// failingBank всегда отклоняет переводы. Используется для проверки того,
// что отказ перевода не оставляет частичных изменений состояния.
type failingBank struct{}

func (failingBank) Transfer(from, to uuid.UUID, amount uint64) error {
	return errors.New("банк недоступен")
}

// captureNotifier накапливает опубликованные события.
type captureNotifier struct {
	events []Event
}

func (n *captureNotifier) Publish(e Event) {
	n.events = append(n.events, e)
}
