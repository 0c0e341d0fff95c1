package services

import (
	"context"
	"errors"

	"yatube/app/apperrors"
	"yatube/app/models"
	"yatube/app/repositories"
)

// GroupService manages communities.
type GroupService struct {
	groups repositories.GroupRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(groups repositories.GroupRepository) *GroupService {
	return &GroupService{groups: groups}
}

// Create adds a group. A taken slug is reported against the slug field.
func (s *GroupService) Create(ctx context.Context, group *models.Group) error {
	err := s.groups.Create(ctx, group)
	if errors.Is(err, apperrors.ErrConflict) {
		return apperrors.NewFieldError("slug", "a group with that slug already exists")
	}
	return err
}

// List returns every group.
func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	return s.groups.List(ctx)
}

// Delete removes a group; its posts stay and lose the group.
func (s *GroupService) Delete(ctx context.Context, slug string) error {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return notFound(err, "group not found")
	}
	return s.groups.Delete(ctx, group.ID)
}
