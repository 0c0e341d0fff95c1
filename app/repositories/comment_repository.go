package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/app/models"
)

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment; a missing post or author is not found.
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
	if IsForeignKeyViolation(err) {
		return ErrNotFound
	}
	return err
}

// ListByPost retrieves all comments for a post, oldest first
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByPost returns the number of comments on a post
func (r *GormCommentRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

var _ CommentRepository = (*GormCommentRepository)(nil)
