package model

import "time"

// Content limits enforced before any mutation touches the store.
const (
	MaxContentLen  = 140
	MaxReadmoreLen = 600
	MaxCategoryLen = 24
)

// Freet is a short post. Content may be empty only when RefreetOf is set.
// RefreetOf / ReplyTo reference another freet's ID; they are plain
// back-references and may dangle once the target is deleted.
type Freet struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AuthorID   string    `gorm:"type:varchar(36);index:idx_freet_author;not null" json:"author_id"`
	Content    string    `gorm:"type:varchar(140)" json:"content"`
	Readmore   string    `gorm:"type:varchar(600)" json:"readmore,omitempty"`
	Categories []string  `gorm:"serializer:json;type:text" json:"categories"`
	Likes      int64     `gorm:"not null;default:0" json:"likes"`
	RefreetOf  string    `gorm:"type:varchar(36);index:idx_freet_refreet_of" json:"refreet_of,omitempty"`
	ReplyTo    string    `gorm:"type:varchar(36);index:idx_freet_reply_to" json:"reply_to,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

func (Freet) TableName() string { return "freets" }

// HasCategory reports whether the freet carries the given category.
func (f *Freet) HasCategory(category string) bool {
	for _, c := range f.Categories {
		if c == category {
			return true
		}
	}
	return false
}
