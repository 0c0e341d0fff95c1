package models

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PreviewLength is how many characters of text String() shows for posts and
// comments.
const PreviewLength = 15

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= PreviewLength {
		return text
	}
	return string(r[:PreviewLength])
}
