package model

import "time"

// Follow is the forward edge: A follows B. A user's `following` list is
// derived from these rows ordered by CreatedAt.
type Follow struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	FollowerID string `gorm:"type:varchar(36);index:idx_follow_follower;index:idx_follow_pair,unique;not null"`
	FolloweeID string `gorm:"type:varchar(36);not null;index:idx_follow_pair,unique"`
	// idx_follow_pair = (follower_id, followee_id), one edge per pair no
	// matter how many times follow is called.
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Follow) TableName() string { return "follows" }
