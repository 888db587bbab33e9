package post

import (
	"time"

	"blogly/internal/tag"

	"gorm.io/gorm"
)

const friendlyDateLayout = "Mon Jan 2 2006, 3:04 PM"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:120;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"<-:create;not null" json:"created_at"`
	PosterID  uint      `gorm:"not null;index" json:"poster_id"`
	Tags      []tag.Tag `gorm:"many2many:post_tag;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

// PostTag is one row of the post_tag association table.
type PostTag struct {
	PostID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}

func (PostTag) TableName() string { return "post_tag" }

// BeforeCreate stamps CreatedAt from the store clock. Whatever the caller
// put there is discarded.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	p.CreatedAt = tx.NowFunc()
	return nil
}

func (p *Post) FriendlyDate() string {
	return p.CreatedAt.Format(friendlyDateLayout)
}

func (p *Post) HasTag(id uint) bool {
	for _, t := range p.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}
