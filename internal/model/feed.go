package model

import "time"

// FeedEntry is an embedded snapshot of a freet at fan-out time. Snapshots
// are copies, not references: mutable fields (like counts, categories) are
// frozen at publish time and go stale as the freet changes.
type FeedEntry struct {
	FreetID   string    `json:"freet_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	Readmore  string    `json:"readmore,omitempty"`
	RefreetOf string    `json:"refreet_of,omitempty"`
	ReplyTo   string    `json:"reply_to,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Feed is one row per user holding the whole materialized timeline as a
// serialized append-ordered snapshot array. Writes are whole-row
// replace-after-fetch; there is deliberately no per-entry table and no
// (user, freet) uniqueness, so concurrent writers race last-write-wins and
// a re-follow may append duplicate historical entries.
type Feed struct {
	UserID    string      `gorm:"primaryKey;type:varchar(36)" json:"user_id"`
	Entries   []FeedEntry `gorm:"serializer:json;type:text" json:"entries"`
	CreatedAt time.Time   `json:"-"`
	UpdatedAt time.Time   `json:"-"`
}

func (Feed) TableName() string { return "feeds" }

// Snapshot copies the fan-out-visible fields of a freet into a feed entry.
func Snapshot(f *Freet) FeedEntry {
	return FeedEntry{
		FreetID:   f.ID,
		AuthorID:  f.AuthorID,
		Content:   f.Content,
		Readmore:  f.Readmore,
		RefreetOf: f.RefreetOf,
		ReplyTo:   f.ReplyTo,
		CreatedAt: f.CreatedAt,
	}
}
