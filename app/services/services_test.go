package services

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"yatube/app/access"
	"yatube/app/auth"
	"yatube/app/models"
	"yatube/app/repositories"
)

type testEnv struct {
	db       *gorm.DB
	users    *repositories.GormUserRepository
	groups   *repositories.GormGroupRepository
	posts    *repositories.GormPostRepository
	comments *repositories.GormCommentRepository
	follows  *repositories.GormFollowRepository
	guard    *access.Guard

	feed    *FeedService
	post    *PostService
	comment *CommentService
	follow  *FollowService
	account *AccountService
	group   *GroupService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repositories.Open(repositories.Config{
		Driver:   "sqlite",
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "error",
	})
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))
	t.Cleanup(func() { _ = repositories.Close(db) })

	tokens, err := auth.NewTokenManager("test-secret", time.Hour, "yatube")
	require.NoError(t, err)

	env := &testEnv{
		db:       db,
		users:    repositories.NewGormUserRepository(db),
		groups:   repositories.NewGormGroupRepository(db),
		posts:    repositories.NewGormPostRepository(db),
		comments: repositories.NewGormCommentRepository(db),
		follows:  repositories.NewGormFollowRepository(db),
		guard:    access.NewGuard(""),
	}
	env.feed = NewFeedService(env.posts, env.comments, env.groups, env.users, env.follows, env.guard)
	env.post = NewPostService(env.posts, env.groups, nil, env.guard)
	env.comment = NewCommentService(env.comments, env.posts, env.guard)
	env.follow = NewFollowService(env.follows, env.users, env.guard)
	env.account = NewAccountService(env.users, tokens)
	env.group = NewGroupService(env.groups)
	return env
}

func (e *testEnv) user(t *testing.T, username string) *access.Actor {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, e.users.Create(context.Background(), u))
	return &access.Actor{ID: u.ID, Username: u.Username}
}

func (e *testEnv) newGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	g := &models.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, e.groups.Create(context.Background(), g))
	return g
}

func (e *testEnv) newPost(t *testing.T, actor *access.Actor, group *models.Group, text string) *models.Post {
	t.Helper()
	in := PostInput{Text: text}
	if group != nil {
		in.GroupID = &group.ID
	}
	post, out, err := e.post.Create(context.Background(), actor, in)
	require.NoError(t, err)
	require.True(t, out.Allowed)
	return post
}

func ids(posts []models.Post) []uint {
	out := make([]uint, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

var repositoriesAll = repositories.PostFilter{}

func uintPtr(v uint) *uint { return &v }

func itoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }
