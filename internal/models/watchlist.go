package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchlistMovie is a movie a user saved to their watchlist. Title, poster
// and rating are denormalized snapshots: title/poster from TMDB at add time,
// rating kept in sync with the user's Rating row on re-rate.
type WatchlistMovie struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;index:idx_watchlist_user_movie,unique" json:"user_id"`
	TMDBId     int       `gorm:"column:tmdb_id;not null;index:idx_watchlist_user_movie,unique" json:"tmdb_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	PosterPath string    `gorm:"size:255" json:"poster_path"`
	Rating     float64   `json:"rating"`
	Watched    bool      `gorm:"not null;default:false" json:"watched"`
	AddedAt    time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (WatchlistMovie) TableName() string {
	return "watchlist_movies"
}

func (w *WatchlistMovie) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
