package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"yatube/app/apperrors"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
		field   string
	}{
		{
			name:    "valid post",
			post:    &Post{Text: "Hello everyone", AuthorID: 1},
			wantErr: false,
		},
		{
			name:    "empty text",
			post:    &Post{Text: "", AuthorID: 1},
			wantErr: true,
			field:   "text",
		},
		{
			name:    "blank text",
			post:    &Post{Text: "   \n\t", AuthorID: 1},
			wantErr: true,
			field:   "text",
		},
		{
			name:    "missing author",
			post:    &Post{Text: "orphan"},
			wantErr: true,
			field:   "authorid",
		},
		{
			name:    "image outside prefix",
			post:    &Post{Text: "with image", AuthorID: 1, Image: "avatars/a.png"},
			wantErr: true,
			field:   "image",
		},
		{
			name:    "image under prefix",
			post:    &Post{Text: "with image", AuthorID: 1, Image: ImagePrefix + "a.png"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *apperrors.ValidationError
			if assert.True(t, errors.As(err, &verr)) {
				assert.Contains(t, verr.Fields, tt.field)
			}
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{Text: "Test Post", AuthorID: 1}

	assert.True(t, post.CreatedAt.IsZero())
	assert.NoError(t, post.BeforeCreate(nil))
	assert.False(t, post.CreatedAt.IsZero())

	stamped := post.CreatedAt
	assert.NoError(t, post.BeforeCreate(nil))
	assert.Equal(t, stamped, post.CreatedAt)
}

func TestPostString(t *testing.T) {
	post := &Post{Text: strings.Repeat("я", 40)}
	assert.Equal(t, strings.Repeat("я", PreviewLength), post.String())

	short := &Post{Text: "short"}
	assert.Equal(t, "short", short.String())
}

func TestPostIsAuthoredBy(t *testing.T) {
	post := &Post{AuthorID: 7}
	assert.True(t, post.IsAuthoredBy(7))
	assert.False(t, post.IsAuthoredBy(8))
	assert.False(t, (&Post{}).IsAuthoredBy(0))
}
