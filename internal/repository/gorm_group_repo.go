package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/quillworks/blog-service/internal/domain"
)

// GormGroupRepository implements GroupRepository using GORM.
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GORM-backed group repository.
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// Create stores a new group and fills in its generated id.
func (r *GormGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	model := domain.GroupModel{
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	group.ID = model.ID
	return nil
}

// GetBySlug retrieves a group by its unique slug.
func (r *GormGroupRepository) GetBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	var model domain.GroupModel
	err := r.db.WithContext(ctx).First(&model, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	group := model.ToDomain()
	return &group, nil
}

// Delete removes a group. Posts referencing it lose the reference but are
// never deleted with the group.
func (r *GormGroupRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.PostModel{}).
			Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.GroupModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGroupNotFound
		}
		return nil
	})
}

// Ensure interface is satisfied at compile time.
var _ GroupRepository = (*GormGroupRepository)(nil)
