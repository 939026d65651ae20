package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// MaxPostBodyLen is the storage limit for a post body.
const MaxPostBodyLen = 140

// Post is a short message authored by a user. Posts are immutable after
// creation; there is no update path.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"size:140;not null" json:"body"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Author    User      `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

// TableName keeps the singular table name used by the storage schema.
func (Post) TableName() string {
	return "post"
}

func (p *Post) String() string {
	return fmt.Sprintf("<Post %s>", p.Body)
}

// BeforeCreate defaults Timestamp to the creation instant in UTC when the
// caller did not supply one.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	return nil
}
