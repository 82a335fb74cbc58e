package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRating хранит накопительную статистику пользователя.
// Счётчики обновляются инкрементально и никогда не пересчитываются с нуля;
// средний рейтинг — бегущее среднее в целочисленной арифметике
// (деление с усечением на каждом шаге).
type UserRating struct {
	UserID        uuid.UUID `json:"user_id"`
	TotalJobs     uint64    `json:"total_jobs"`
	CompletedJobs uint64    `json:"completed_jobs"`
	AverageRating uint64    `json:"average_rating"`
	RatingsCount  uint64    `json:"ratings_count"`
}

// Profile описывает публичный профиль пользователя.
type Profile struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Bio         *string   `json:"bio,omitempty"`
	Skills      []string  `json:"skills"`
	Location    *string   `json:"location,omitempty"`
	AvatarPath  *string   `json:"avatar_path,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
