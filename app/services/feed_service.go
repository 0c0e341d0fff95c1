package services

import (
	"context"
	"fmt"

	"yatube/app/access"
	"yatube/app/models"
	"yatube/app/pagination"
	"yatube/app/repositories"
)

// IndexTitle labels the global feed.
const IndexTitle = "Latest site updates"

// Feed is one page of posts in a feed context.
type Feed struct {
	Title string `json:"title"`
	pagination.Page[models.Post]
}

// GroupFeed is a page of a group's posts.
type GroupFeed struct {
	Feed
	Group *models.Group `json:"group"`
}

// ProfileFeed is a page of one author's posts plus the viewer's relation to
// that author.
type ProfileFeed struct {
	Feed
	Author    *models.User `json:"author"`
	Following bool         `json:"following"`
	CanFollow bool         `json:"can_follow"`
	Followers int64        `json:"followers"`
	Follows   int64        `json:"follows"`
}

// PostDetail is a post with its comment thread.
type PostDetail struct {
	Post        *models.Post     `json:"post"`
	Comments    []models.Comment `json:"comments"`
	AuthorPosts int64            `json:"author_posts"`
}

// FeedService composes paginated post listings.
type FeedService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	groups   repositories.GroupRepository
	users    repositories.UserRepository
	follows  repositories.FollowRepository
	guard    *access.Guard
}

// NewFeedService creates a new FeedService
func NewFeedService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	groups repositories.GroupRepository,
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	guard *access.Guard,
) *FeedService {
	return &FeedService{
		posts:    posts,
		comments: comments,
		groups:   groups,
		users:    users,
		follows:  follows,
		guard:    guard,
	}
}

// page resolves the requested page against the filter and loads it. Out of
// range pages are clamped, never rejected.
func (s *FeedService) page(ctx context.Context, filter repositories.PostFilter, requested int) (pagination.Page[models.Post], error) {
	total, err := s.posts.Count(ctx, filter)
	if err != nil {
		return pagination.Page[models.Post]{}, fmt.Errorf("failed to count posts: %w", err)
	}

	window := pagination.Compute(total, pagination.PerPage, requested)
	items := []models.Post{}
	if total > 0 {
		items, err = s.posts.List(ctx, filter, window.Offset(), window.Limit())
		if err != nil {
			return pagination.Page[models.Post]{}, fmt.Errorf("failed to list posts: %w", err)
		}
	}
	return pagination.Page[models.Post]{Window: window, Items: items}, nil
}

// Global returns a page of every post, newest first.
func (s *FeedService) Global(ctx context.Context, requested int) (*Feed, error) {
	page, err := s.page(ctx, repositories.PostFilter{}, requested)
	if err != nil {
		return nil, err
	}
	return &Feed{Title: IndexTitle, Page: page}, nil
}

// Group returns a page of the posts in the group with slug.
func (s *FeedService) Group(ctx context.Context, slug string, requested int) (*GroupFeed, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, "group not found")
	}

	page, err := s.page(ctx, repositories.PostFilter{GroupID: group.ID}, requested)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Feed: Feed{Title: group.Title, Page: page}, Group: group}, nil
}

// Profile returns a page of username's posts as seen by viewer.
func (s *FeedService) Profile(ctx context.Context, viewer *access.Actor, username string, requested int) (*ProfileFeed, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "user not found")
	}

	page, err := s.page(ctx, repositories.PostFilter{AuthorID: author.ID}, requested)
	if err != nil {
		return nil, err
	}

	feed := &ProfileFeed{
		Feed:      Feed{Title: author.Username, Page: page},
		Author:    author,
		CanFollow: viewer.IsAnonymous() || viewer.ID != author.ID,
	}

	if !viewer.IsAnonymous() && feed.CanFollow {
		feed.Following, err = s.follows.Exists(ctx, viewer.ID, author.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check follow: %w", err)
		}
	}

	if feed.Followers, err = s.follows.CountFollowers(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}
	if feed.Follows, err = s.follows.CountFollowing(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("failed to count follows: %w", err)
	}
	return feed, nil
}

// Followed returns a page of posts by the authors actor follows. Anonymous
// actors are refused with a login redirect.
func (s *FeedService) Followed(ctx context.Context, actor *access.Actor, requested int) (*Feed, access.Outcome, error) {
	if out := s.guard.RequireLogin(actor, access.FollowURL); !out.Allowed {
		return nil, out, nil
	}

	page, err := s.page(ctx, repositories.PostFilter{FollowerID: actor.ID}, requested)
	if err != nil {
		return nil, access.Outcome{}, err
	}
	return &Feed{Title: "Followed authors", Page: page}, access.Outcome{Allowed: true}, nil
}

// PostDetail returns a post with its comments.
func (s *FeedService) PostDetail(ctx context.Context, id uint) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "post not found")
	}

	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	count, err := s.posts.Count(ctx, repositories.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		return nil, fmt.Errorf("failed to count author posts: %w", err)
	}

	return &PostDetail{Post: post, Comments: comments, AuthorPosts: count}, nil
}
