package services

import (
	"context"
	"errors"

	"yatube/app/access"
	"yatube/app/apperrors"
	"yatube/app/logger"
	"yatube/app/models"
	"yatube/app/repositories"
)

// PostInput is the editable part of a post.
type PostInput struct {
	Text    string `json:"text"`
	GroupID *uint  `json:"group"`
	// Image is a storage key already written under the posts/ prefix.
	Image string `json:"-"`
}

// ImageRemover deletes stored images.
type ImageRemover interface {
	Delete(ctx context.Context, key string) error
}

// PostService handles business logic for posts
type PostService struct {
	posts  repositories.PostRepository
	groups repositories.GroupRepository
	images ImageRemover
	guard  *access.Guard
}

// NewPostService creates a new PostService. images may be nil.
func NewPostService(
	posts repositories.PostRepository,
	groups repositories.GroupRepository,
	images ImageRemover,
	guard *access.Guard,
) *PostService {
	return &PostService{
		posts:  posts,
		groups: groups,
		images: images,
		guard:  guard,
	}
}

// checkGroup turns an unknown group id into a form error.
func (s *PostService) checkGroup(ctx context.Context, groupID *uint) error {
	if groupID == nil {
		return nil
	}
	_, err := s.groups.GetByID(ctx, *groupID)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return apperrors.NewFieldError("group", "select a valid choice")
	}
	return err
}

// Create publishes a post by actor. On success the actor is sent to their
// profile.
func (s *PostService) Create(ctx context.Context, actor *access.Actor, in PostInput) (*models.Post, access.Outcome, error) {
	if out := s.guard.RequireLogin(actor, access.CreateURL); !out.Allowed {
		return nil, out, nil
	}

	// Validate group reference
	if err := s.checkGroup(ctx, in.GroupID); err != nil {
		return nil, access.Outcome{}, err
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: actor.ID,
		GroupID:  in.GroupID,
		Image:    in.Image,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, access.Outcome{}, err
	}

	logger.Info().Uint("post_id", post.ID).Uint("author_id", actor.ID).Msg("post created")
	return post, access.Allow(access.ProfileURL(actor.Username)), nil
}

// Edit rewrites a post's text, group and, when in.Image is set, its image.
// Only the author may edit; anyone else is sent back to the post unchanged.
func (s *PostService) Edit(ctx context.Context, actor *access.Actor, id uint, in PostInput) (*models.Post, access.Outcome, error) {
	if out := s.guard.RequireLogin(actor, access.PostEditURL(id)); !out.Allowed {
		return nil, out, nil
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, access.Outcome{}, notFound(err, "post not found")
	}

	if out := s.guard.RequireAuthor(actor, post.AuthorID, post.ID); !out.Allowed {
		logger.Warn().Uint("post_id", id).Uint("actor_id", actor.ID).Msg("edit refused: not the author")
		return post, out, nil
	}

	if err := s.checkGroup(ctx, in.GroupID); err != nil {
		return nil, access.Outcome{}, err
	}

	oldImage := post.Image
	post.Text = in.Text
	post.GroupID = in.GroupID
	post.Group = nil
	if in.Image != "" {
		post.Image = in.Image
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, access.Outcome{}, err
	}

	if oldImage != "" && oldImage != post.Image {
		s.removeImage(ctx, oldImage)
	}
	return post, access.Allow(access.PostDetailURL(post.ID)), nil
}

// Delete removes a post and, through the schema, its comments. Only the
// author may delete.
func (s *PostService) Delete(ctx context.Context, actor *access.Actor, id uint) (access.Outcome, error) {
	if out := s.guard.RequireLogin(actor, access.PostDeleteURL(id)); !out.Allowed {
		return out, nil
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return access.Outcome{}, notFound(err, "post not found")
	}

	if out := s.guard.RequireAuthor(actor, post.AuthorID, post.ID); !out.Allowed {
		return out, nil
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return access.Outcome{}, notFound(err, "post not found")
	}
	s.removeImage(ctx, post.Image)

	logger.Info().Uint("post_id", id).Msg("post deleted")
	return access.Allow(access.ProfileURL(actor.Username)), nil
}

func (s *PostService) removeImage(ctx context.Context, key string) {
	if s.images == nil || key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		logger.Warn().Err(err).Str("image", key).Msg("failed to remove post image")
	}
}

