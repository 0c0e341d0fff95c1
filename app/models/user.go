package models

import (
	"time"

	"yatube/app/apperrors"
)

// User is an account that can author posts and comments and follow others.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username" validate:"required,max=150,username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-" validate:"-"`
	CreatedAt    time.Time `gorm:"<-:create" json:"date_joined"`
}

// Validate checks the user's own fields; the password hash is set by the
// account service.
func (u *User) Validate() error {
	return apperrors.FromValidator(validate.Struct(u))
}

func (u *User) String() string {
	return u.Username
}
