package services

import (
	"context"

	"yatube/app/access"
	"yatube/app/logger"
	"yatube/app/models"
	"yatube/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	guard    *access.Guard
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository, guard *access.Guard) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		guard:    guard,
	}
}

// Create adds a comment by actor under post postID. Any authenticated actor
// may comment; the actor is sent back to the post.
func (s *CommentService) Create(ctx context.Context, actor *access.Actor, postID uint, text string) (*models.Comment, access.Outcome, error) {
	if out := s.guard.RequireLogin(actor, access.CommentURL(postID)); !out.Allowed {
		return nil, out, nil
	}

	// Verify post exists
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, access.Outcome{}, notFound(err, "post not found")
	}

	comment := &models.Comment{
		Text:     text,
		AuthorID: actor.ID,
		PostID:   postID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, access.Outcome{}, err
	}

	logger.Debug().Uint("comment_id", comment.ID).Uint("post_id", postID).Msg("comment added")
	return comment, access.Allow(access.PostDetailURL(postID)), nil
}

// List returns the comments under a post, oldest first.
func (s *CommentService) List(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, notFound(err, "post not found")
	}
	return s.comments.ListByPost(ctx, postID)
}
