package model

import "time"

// Collection is a named, user-owned, append-ordered list of saved freet
// references. Independent of the feed: entries are IDs, not snapshots.
type Collection struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index:idx_collection_user;uniqueIndex:ux_collection_user_name;not null" json:"user_id"`
	Name      string    `gorm:"type:varchar(64);uniqueIndex:ux_collection_user_name;not null" json:"name"`
	FreetIDs  []string  `gorm:"serializer:json;type:text" json:"freet_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Collection) TableName() string { return "collections" }

// Contains reports whether the collection already holds the given freet.
func (c *Collection) Contains(freetID string) bool {
	for _, id := range c.FreetIDs {
		if id == freetID {
			return true
		}
	}
	return false
}
