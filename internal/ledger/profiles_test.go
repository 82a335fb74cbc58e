package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	f := newFixture(t)

	p, err := f.ledger.UpdateProfile(context.Background(), f.freelancer, ProfileUpdate{
		DisplayName: strptr("Иван Петров"),
		Bio:         strptr("Фронтенд-разработчик, 5 лет опыта"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Иван Петров", p.DisplayName)
	require.NotNil(t, p.Bio)
	assert.Nil(t, p.Location)

	// nil-поля не трогаются.
	p, err = f.ledger.UpdateProfile(context.Background(), f.freelancer, ProfileUpdate{
		Location: strptr("Санкт-Петербург"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Иван Петров", p.DisplayName)
	require.NotNil(t, p.Location)
	assert.Equal(t, "Санкт-Петербург", *p.Location)
}

func TestUpdateSkills_ReplacesAndCopies(t *testing.T) {
	f := newFixture(t)

	skills := []string{"Go", "PostgreSQL"}
	p, err := f.ledger.UpdateSkills(context.Background(), f.freelancer, skills)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, p.Skills)

	// Изменение исходного слайса не влияет на сохранённый профиль.
	skills[0] = "PHP"
	got, ok := f.ledger.GetProfile(f.freelancer)
	require.True(t, ok)
	assert.Equal(t, "Go", got.Skills[0])

	p, err = f.ledger.UpdateSkills(context.Background(), f.freelancer, []string{"Rust"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust"}, p.Skills)
}

func TestSetAvatar(t *testing.T) {
	f := newFixture(t)

	p, err := f.ledger.SetAvatar(context.Background(), f.freelancer, "abc.png")
	require.NoError(t, err)
	require.NotNil(t, p.AvatarPath)
	assert.Equal(t, "abc.png", *p.AvatarPath)
}

func TestGetProfile_NotFound(t *testing.T) {
	f := newFixture(t)

	_, ok := f.ledger.GetProfile(uuid.New())
	assert.False(t, ok)
}

func TestNotifier_ReceivesLifecycleEvents(t *testing.T) {
	f := newFixture(t)
	notifier := &captureNotifier{}
	f.ledger.SetNotifier(notifier)

	job := f.startJob(t, 800)
	_, err := f.ledger.CompleteJob(context.Background(), f.client, job.ID)
	require.NoError(t, err)

	require.Len(t, notifier.events, 4)
	assert.Equal(t, EventJobPosted, notifier.events[0].Type)
	assert.Equal(t, EventBidSubmitted, notifier.events[1].Type)
	assert.Equal(t, EventBidAccepted, notifier.events[2].Type)
	assert.Equal(t, EventJobCompleted, notifier.events[3].Type)

	// Принятие отклика адресовано обеим сторонам.
	assert.ElementsMatch(t, []uuid.UUID{f.client, f.freelancer}, notifier.events[2].Recipients)
}
