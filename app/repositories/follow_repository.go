package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/app/apperrors"
	"yatube/app/models"
)

// GormFollowRepository implements FollowRepository using GORM.
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GORM-backed follow repository.
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Create inserts a follow row. Self-subscription is rejected before the
// insert; if the check constraint fires anyway it maps to the same error.
// A duplicate pair reports ErrAlreadyFollowing.
func (r *GormFollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := follow.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(follow).Error
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err):
		return ErrAlreadyFollowing
	case IsCheckViolation(err):
		return apperrors.ErrSelfFollow
	case IsForeignKeyViolation(err):
		return ErrNotFound
	default:
		return err
	}
}

// Exists checks if userID follows authorID.
func (r *GormFollowRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a follow relationship between two users.
func (r *GormFollowRepository) Delete(ctx context.Context, userID, authorID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// CountFollowers returns how many users follow authorID.
func (r *GormFollowRepository) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// CountFollowing returns how many authors userID follows.
func (r *GormFollowRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

var _ FollowRepository = (*GormFollowRepository)(nil)
