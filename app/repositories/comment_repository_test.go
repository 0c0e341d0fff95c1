package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/app/models"
)

func TestCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCommentRepository(db)
	ctx := context.Background()
	author := createUser(t, db, "leo")
	reader := createUser(t, db, "reader")
	post := createPost(t, db, author, nil, "Anna Karenina")

	t.Run("create and list in thread order", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Comment{Text: "first", AuthorID: reader.ID, PostID: post.ID}))
		require.NoError(t, repo.Create(ctx, &models.Comment{Text: "second", AuthorID: author.ID, PostID: post.ID}))

		comments, err := repo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "first", comments[0].Text)
		assert.Equal(t, "reader", comments[0].Author.Username)
		assert.Equal(t, "second", comments[1].Text)
		assert.False(t, comments[0].CreatedAt.IsZero())
	})

	t.Run("unknown post", func(t *testing.T) {
		err := repo.Create(ctx, &models.Comment{Text: "lost", AuthorID: reader.ID, PostID: 9999})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty text", func(t *testing.T) {
		err := repo.Create(ctx, &models.Comment{Text: "", AuthorID: reader.ID, PostID: post.ID})
		assert.Error(t, err)

		count, err := repo.CountByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestUserAndGroupRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := NewGormUserRepository(db)
	groups := NewGormGroupRepository(db)

	t.Run("duplicate username", func(t *testing.T) {
		createUser(t, db, "leo")
		err := users.Create(ctx, &models.User{Username: "leo", PasswordHash: "x"})
		assert.Error(t, err)

		got, err := users.GetByUsername(ctx, "leo")
		require.NoError(t, err)
		byID, err := users.GetByID(ctx, got.ID)
		require.NoError(t, err)
		assert.Equal(t, "leo", byID.Username)

		_, err = users.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		createGroup(t, db, "cats")
		err := groups.Create(ctx, &models.Group{Title: "Cats again", Slug: "cats", Description: "d"})
		assert.Error(t, err)

		got, err := groups.GetBySlug(ctx, "cats")
		require.NoError(t, err)
		assert.Equal(t, "Group cats", got.Title)

		_, err = groups.GetBySlug(ctx, "dogs")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list by title", func(t *testing.T) {
		createGroup(t, db, "aardvarks")
		list, err := groups.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "aardvarks", list[0].Slug)
	})
}
