package models

import (
	"time"

	"gorm.io/gorm"

	"yatube/app/apperrors"
)

// Comment is a reply attached to exactly one post and one author.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text" validate:"required,notblank"`
	AuthorID  uint      `gorm:"<-:create;not null;index" json:"author_id" validate:"required"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author" validate:"-"`
	PostID    uint      `gorm:"<-:create;not null;index" json:"post_id" validate:"required"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	CreatedAt time.Time `gorm:"<-:create;not null" json:"created"`
}

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	return apperrors.FromValidator(validate.Struct(c))
}

// BeforeCreate stamps the creation time.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return nil
}

func (c *Comment) String() string {
	return preview(c.Text)
}
