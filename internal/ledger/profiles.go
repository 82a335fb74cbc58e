package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jobledger/jobledger-backend/internal/models"
)

// ProfileUpdate — частичное обновление профиля: nil-поля не трогаются.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	Location    *string
}

// UpdateProfile обновляет поля профиля вызывающего.
func (l *Ledger) UpdateProfile(ctx context.Context, caller uuid.UUID, upd ProfileUpdate) (models.Profile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.profiles.ensure(caller)
	if upd.DisplayName != nil {
		p.DisplayName = *upd.DisplayName
	}
	if upd.Bio != nil {
		p.Bio = upd.Bio
	}
	if upd.Location != nil {
		p.Location = upd.Location
	}
	p.UpdatedAt = time.Now()

	return cloneProfile(p), nil
}

// UpdateSkills заменяет список навыков вызывающего.
func (l *Ledger) UpdateSkills(ctx context.Context, caller uuid.UUID, skills []string) (models.Profile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.profiles.ensure(caller)
	p.Skills = append([]string(nil), skills...)
	p.UpdatedAt = time.Now()

	return cloneProfile(p), nil
}

// SetAvatar сохраняет путь к загруженному аватару.
func (l *Ledger) SetAvatar(ctx context.Context, caller uuid.UUID, path string) (models.Profile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.profiles.ensure(caller)
	p.AvatarPath = &path
	p.UpdatedAt = time.Now()

	return cloneProfile(p), nil
}

// GetProfile возвращает профиль пользователя.
func (l *Ledger) GetProfile(userID uuid.UUID) (models.Profile, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.profiles.get(userID)
	if !ok {
		return models.Profile{}, false
	}
	return cloneProfile(p), true
}
