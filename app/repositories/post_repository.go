package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/app/models"
)

// GormPostRepository implements PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post
func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
	if IsForeignKeyViolation(err) {
		return ErrNotFound
	}
	return err
}

// GetByID retrieves a post by ID with its author and group
func (r *GormPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// Update writes the editable fields of a post: text, group and image.
func (r *GormPostRepository) Update(ctx context.Context, post *models.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Post
		if err := tx.Select("id").First(&existing, post.ID).Error; err != nil {
			return notFound(err)
		}
		err := tx.Model(&models.Post{ID: post.ID}).
			Select("Text", "GroupID", "Image").
			Updates(post).Error
		if IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	})
}

// Delete deletes a post by ID; its comments cascade.
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of posts matching filter
func (r *GormPostRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	err := filter.apply(r.db.WithContext(ctx).Model(&models.Post{})).Count(&count).Error
	return count, err
}

// List retrieves one slice of the posts matching filter, newest first.
func (r *GormPostRepository) List(ctx context.Context, filter PostFilter, offset, limit int) ([]models.Post, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	var posts []models.Post
	err := filter.apply(r.db.WithContext(ctx).Model(&models.Post{})).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

var _ PostRepository = (*GormPostRepository)(nil)
