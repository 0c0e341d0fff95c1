package services

import (
	"context"
	"errors"
	"fmt"

	"yatube/app/access"
	"yatube/app/apperrors"
	"yatube/app/logger"
	"yatube/app/models"
	"yatube/app/repositories"
)

// FollowService manages subscriptions between users and authors.
type FollowService struct {
	follows repositories.FollowRepository
	users   repositories.UserRepository
	guard   *access.Guard
}

// NewFollowService creates a new FollowService
func NewFollowService(follows repositories.FollowRepository, users repositories.UserRepository, guard *access.Guard) *FollowService {
	return &FollowService{
		follows: follows,
		users:   users,
		guard:   guard,
	}
}

// Follow subscribes actor to username. A new subscription sends the actor to
// the followed feed. Following oneself or someone already followed changes
// nothing and sends the actor to the index; neither is an error.
func (s *FollowService) Follow(ctx context.Context, actor *access.Actor, username string) (access.Outcome, error) {
	if out := s.guard.RequireLogin(actor, access.FollowProfileURL(username)); !out.Allowed {
		return out, nil
	}

	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return access.Outcome{}, notFound(err, "user not found")
	}

	if author.ID == actor.ID {
		return access.Outcome{Redirect: access.IndexURL, Reason: apperrors.ErrSelfFollow}, nil
	}

	exists, err := s.follows.Exists(ctx, actor.ID, author.ID)
	if err != nil {
		return access.Outcome{}, fmt.Errorf("failed to check follow: %w", err)
	}
	if exists {
		return access.Outcome{Redirect: access.IndexURL, Reason: repositories.ErrAlreadyFollowing}, nil
	}

	err = s.follows.Create(ctx, &models.Follow{UserID: actor.ID, AuthorID: author.ID})
	switch {
	case err == nil:
		logger.Info().Uint("user_id", actor.ID).Uint("author_id", author.ID).Msg("follow created")
		return access.Allow(access.FollowURL), nil
	case errors.Is(err, repositories.ErrAlreadyFollowing):
		// lost a race with a concurrent follow of the same pair
		logger.Debug().Uint("user_id", actor.ID).Uint("author_id", author.ID).Msg("follow already present")
		return access.Outcome{Redirect: access.IndexURL, Reason: err}, nil
	case errors.Is(err, apperrors.ErrSelfFollow):
		return access.Outcome{Redirect: access.IndexURL, Reason: err}, nil
	default:
		return access.Outcome{}, fmt.Errorf("failed to follow: %w", err)
	}
}

// Unfollow removes actor's subscription to username if there is one and
// sends the actor back to the author's profile.
func (s *FollowService) Unfollow(ctx context.Context, actor *access.Actor, username string) (access.Outcome, error) {
	if out := s.guard.RequireLogin(actor, access.UnfollowProfileURL(username)); !out.Allowed {
		return out, nil
	}

	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return access.Outcome{}, notFound(err, "user not found")
	}

	err = s.follows.Delete(ctx, actor.ID, author.ID)
	if err != nil && !errors.Is(err, repositories.ErrFollowNotFound) {
		return access.Outcome{}, fmt.Errorf("failed to unfollow: %w", err)
	}
	return access.Allow(access.ProfileURL(author.Username)), nil
}

// IsFollowing reports whether actor follows authorID.
func (s *FollowService) IsFollowing(ctx context.Context, actor *access.Actor, authorID uint) (bool, error) {
	if actor.IsAnonymous() {
		return false, nil
	}
	return s.follows.Exists(ctx, actor.ID, authorID)
}
