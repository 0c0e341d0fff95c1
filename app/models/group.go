package models

import "yatube/app/apperrors"

// Group is a topic posts can optionally be filed under.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title" validate:"required,notblank,max=200"`
	Slug        string `gorm:"size:15;uniqueIndex;not null" json:"slug" validate:"required,max=15,slug"`
	Description string `gorm:"type:text;not null" json:"description" validate:"required,notblank"`
}

// Validate checks if the group meets all validation requirements
func (g *Group) Validate() error {
	return apperrors.FromValidator(validate.Struct(g))
}

func (g *Group) String() string {
	return g.Title
}
