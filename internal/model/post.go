package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is an immutable blog entry. The id is generated server-side; posts
// carry no author reference, any authenticated user may create them.
type Post struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	Title     string    `json:"title" gorm:"type:text;not null"`
	Content   string    `json:"content" gorm:"type:text"`
	Tags      []string  `json:"tags" gorm:"serializer:json;type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a random UUID before the record is written. Random ids
// stay unique across restarts and concurrent creators; the primary key
// constraint turns any collision into a loud failure instead of an overwrite.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
