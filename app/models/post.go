package models

import (
	"time"

	"gorm.io/gorm"

	"yatube/app/apperrors"
)

// ImagePrefix is the storage prefix every post image lives under.
const ImagePrefix = "posts/"

// Post is a single entry in the feeds. Author and creation time are written
// once on insert and never updated.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text" validate:"required,notblank"`
	CreatedAt time.Time `gorm:"<-:create;not null;index" json:"pub_date"`
	AuthorID  uint      `gorm:"<-:create;not null;index" json:"author_id" validate:"required"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author" validate:"-"`
	GroupID   *uint     `gorm:"index" json:"group_id,omitempty"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty" validate:"-"`
	Image     string    `gorm:"size:255" json:"image,omitempty" validate:"omitempty,max=255,startswith=posts/"`
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return apperrors.FromValidator(validate.Struct(p))
}

// BeforeCreate stamps the creation time.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return nil
}

// IsAuthoredBy reports whether userID owns the post.
func (p *Post) IsAuthoredBy(userID uint) bool {
	return userID != 0 && p.AuthorID == userID
}

func (p *Post) String() string {
	return preview(p.Text)
}
