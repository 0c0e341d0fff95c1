package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"yatube/app/apperrors"
)

// FollowCheckConstraint is the schema-level name of the user <> author check.
const FollowCheckConstraint = "not_self_sub"

// Follow is a directed subscription from User to Author. The pair is unique
// and the two sides must differ; both rules are also declared in the schema.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follow_user_author;check:not_self_sub,user_id <> author_id" json:"user_id" validate:"required"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_follow_user_author;index" json:"author_id" validate:"required"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
}

// Validate rejects self-subscription before anything reaches the database.
func (f *Follow) Validate() error {
	if f.UserID != 0 && f.UserID == f.AuthorID {
		return apperrors.ErrSelfFollow
	}
	return apperrors.FromValidator(validate.Struct(f))
}

// BeforeCreate runs Validate on every GORM insert path.
func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	return f.Validate()
}

func (f *Follow) String() string {
	return fmt.Sprintf("%d follows %d", f.UserID, f.AuthorID)
}
