package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/app/access"
	"yatube/app/apperrors"
)

type recordingRemover struct {
	deleted []string
}

func (r *recordingRemover) Delete(ctx context.Context, key string) error {
	r.deleted = append(r.deleted, key)
	return nil
}

func TestCreatePost(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	leo := env.user(t, "leo")
	cats := env.newGroup(t, "cats")

	t.Run("anonymous is sent to login", func(t *testing.T) {
		post, out, err := env.post.Create(ctx, nil, PostInput{Text: "hi"})
		require.NoError(t, err)
		assert.Nil(t, post)
		assert.False(t, out.Allowed)
		assert.Equal(t, "/auth/login/?next=%2Fcreate%2F", out.Redirect)

		n, err := env.posts.Count(ctx, repositoriesAll)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("valid post goes to profile", func(t *testing.T) {
		post, out, err := env.post.Create(ctx, leo, PostInput{Text: "hello", GroupID: &cats.ID, Image: "posts/a.gif"})
		require.NoError(t, err)
		assert.True(t, out.Allowed)
		assert.Equal(t, "/profile/leo/", out.Redirect)
		assert.NotZero(t, post.ID)
		assert.Equal(t, leo.ID, post.AuthorID)
		assert.False(t, post.CreatedAt.IsZero())
	})

	tests := []struct {
		name  string
		in    PostInput
		field string
	}{
		{"blank text", PostInput{Text: "   "}, "text"},
		{"empty text", PostInput{}, "text"},
		{"unknown group", PostInput{Text: "x", GroupID: uintPtr(999)}, "group"},
		{"image outside prefix", PostInput{Text: "x", Image: "../etc/passwd"}, "image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.post.Create(ctx, leo, tt.in)
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestEditPost(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	leo := env.user(t, "leo")
	ann := env.user(t, "ann")
	cats := env.newGroup(t, "cats")
	post := env.newPost(t, leo, cats, "original")

	t.Run("non-author is redirected and nothing changes", func(t *testing.T) {
		_, out, err := env.post.Edit(ctx, ann, post.ID, PostInput{Text: "hijacked"})
		require.NoError(t, err)
		assert.False(t, out.Allowed)
		assert.Equal(t, "/posts/"+itoa(post.ID)+"/", out.Redirect)
		assert.ErrorIs(t, out.Reason, apperrors.ErrPermissionDenied)

		stored, err := env.posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", stored.Text)
		require.NotNil(t, stored.GroupID)
		assert.Equal(t, cats.ID, *stored.GroupID)
	})

	t.Run("anonymous is sent to login", func(t *testing.T) {
		_, out, err := env.post.Edit(ctx, nil, post.ID, PostInput{Text: "x"})
		require.NoError(t, err)
		assert.False(t, out.Allowed)
		assert.ErrorIs(t, out.Reason, apperrors.ErrUnauthenticated)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, _, err := env.post.Edit(ctx, leo, 999, PostInput{Text: "x"})
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("author edits", func(t *testing.T) {
		edited, out, err := env.post.Edit(ctx, leo, post.ID, PostInput{Text: "edited"})
		require.NoError(t, err)
		assert.True(t, out.Allowed)
		assert.Equal(t, access.PostDetailURL(post.ID), out.Redirect)
		assert.Equal(t, "edited", edited.Text)

		stored, err := env.posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "edited", stored.Text)
		assert.Nil(t, stored.GroupID)
		assert.Equal(t, leo.ID, stored.AuthorID)
		assert.True(t, post.CreatedAt.Equal(stored.CreatedAt))
	})

	t.Run("invalid edit keeps stored text", func(t *testing.T) {
		_, _, err := env.post.Edit(ctx, leo, post.ID, PostInput{Text: ""})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		stored, err := env.posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "edited", stored.Text)
	})
}

func TestEditReplacesImage(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	remover := &recordingRemover{}
	env.post = NewPostService(env.posts, env.groups, remover, env.guard)
	leo := env.user(t, "leo")

	post, _, err := env.post.Create(ctx, leo, PostInput{Text: "pic", Image: "posts/old.gif"})
	require.NoError(t, err)

	edited, _, err := env.post.Edit(ctx, leo, post.ID, PostInput{Text: "pic"})
	require.NoError(t, err)
	assert.Equal(t, "posts/old.gif", edited.Image, "no new image keeps the old one")
	assert.Empty(t, remover.deleted)

	edited, _, err = env.post.Edit(ctx, leo, post.ID, PostInput{Text: "pic", Image: "posts/new.gif"})
	require.NoError(t, err)
	assert.Equal(t, "posts/new.gif", edited.Image)
	assert.Equal(t, []string{"posts/old.gif"}, remover.deleted)
}

func TestDeletePost(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	remover := &recordingRemover{}
	env.post = NewPostService(env.posts, env.groups, remover, env.guard)
	leo := env.user(t, "leo")
	ann := env.user(t, "ann")

	post, _, err := env.post.Create(ctx, leo, PostInput{Text: "bye", Image: "posts/bye.gif"})
	require.NoError(t, err)
	_, _, err = env.comment.Create(ctx, ann, post.ID, "noo")
	require.NoError(t, err)

	out, err := env.post.Delete(ctx, ann, post.ID)
	require.NoError(t, err)
	assert.False(t, out.Allowed)
	assert.Equal(t, access.PostDetailURL(post.ID), out.Redirect)
	_, err = env.posts.GetByID(ctx, post.ID)
	require.NoError(t, err)

	out, err = env.post.Delete(ctx, leo, post.ID)
	require.NoError(t, err)
	assert.True(t, out.Allowed)
	assert.Equal(t, "/profile/leo/", out.Redirect)
	assert.Equal(t, []string{"posts/bye.gif"}, remover.deleted)

	_, err = env.posts.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	n, err := env.comments.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = env.post.Delete(ctx, leo, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
