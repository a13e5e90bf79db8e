package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is one user's score for one movie. At most one row exists per
// (user_id, movie_id); RatingService enforces this with upsert semantics.
type Rating struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;index:idx_ratings_user_movie,unique" json:"user_id"`
	MovieID     int       `gorm:"not null;index:idx_ratings_user_movie,unique;index" json:"movie_id"`
	RatingValue float64   `gorm:"not null" json:"rating_value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
