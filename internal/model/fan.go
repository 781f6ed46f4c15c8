package model

import "time"

// Fan is the reverse edge (B's follower is A), redundant with Follow. It is
// a maintained index, never settable on its own: every Follow mutation
// writes the matching Fan row in the same call path.
type Fan struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"type:varchar(36);index:idx_fan_user;index:idx_fan_pair,unique;not null"`
	FanID     string    `gorm:"type:varchar(36);not null;index:idx_fan_pair,unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Fan) TableName() string { return "fans" }
