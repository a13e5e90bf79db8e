package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge: follower follows following.
type Follow struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	FollowerID  uuid.UUID `gorm:"type:varchar(36);not null;index:idx_follows_pair,unique" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"type:varchar(36);not null;index:idx_follows_pair,unique;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// WatchlistLike records one user liking another user's watchlist as a whole,
// not a single entry.
type WatchlistLike struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID           uuid.UUID `gorm:"type:varchar(36);not null;index:idx_watchlist_likes_pair,unique" json:"user_id"`
	WatchlistOwnerID uuid.UUID `gorm:"type:varchar(36);not null;index:idx_watchlist_likes_pair,unique;index" json:"watchlist_owner_id"`
	CreatedAt        time.Time `json:"created_at"`
}

func (WatchlistLike) TableName() string {
	return "watchlist_likes"
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (l *WatchlistLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
