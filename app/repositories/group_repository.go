package repositories

import (
	"context"

	"gorm.io/gorm"

	"yatube/app/apperrors"
	"yatube/app/models"
)

// GormGroupRepository implements GroupRepository using GORM
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GormGroupRepository
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// Create creates a new group; slugs are unique.
func (r *GormGroupRepository) Create(ctx context.Context, group *models.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		if IsUniqueViolation(err) {
			return apperrors.NewConflictError("slug is already in use")
		}
		return err
	}
	return nil
}

// GetByID retrieves a group by ID
func (r *GormGroupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

// GetBySlug retrieves a group by slug
func (r *GormGroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

// List returns every group ordered by title
func (r *GormGroupRepository) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.WithContext(ctx).Order("title ASC, id ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Delete removes a group. Its posts stay and lose their group reference.
func (r *GormGroupRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Group{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ GroupRepository = (*GormGroupRepository)(nil)
