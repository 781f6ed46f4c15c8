package model

import "time"

// User identity record. Likes and Refreets are freet-id sets kept on the
// user row itself (serialized), mirroring the document shape of the data
// model; follow edges live in the follows/fans tables instead.
type User struct {
	ID       string   `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username string   `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Password string   `gorm:"type:varchar(128);not null" json:"-"`
	Bio      string   `gorm:"type:varchar(280)" json:"bio"`
	Likes    []string `gorm:"serializer:json;type:text" json:"likes"`
	Refreets []string `gorm:"serializer:json;type:text" json:"refreets"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

// Liked reports whether the user already likes the given freet.
func (u *User) Liked(freetID string) bool {
	for _, id := range u.Likes {
		if id == freetID {
			return true
		}
	}
	return false
}

// Refreeted reports whether the user already refreeted the given freet.
func (u *User) Refreeted(freetID string) bool {
	for _, id := range u.Refreets {
		if id == freetID {
			return true
		}
	}
	return false
}
