package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/quillworks/blog-service/internal/domain"
)

// GormPostRepository implements PostRepository using GORM.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-backed post repository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// feedScope applies the feed ordering and the eager author/group loads every
// listing shares: newest first, insertion order on created_at ties.
func feedScope(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Author").Preload("Group").
		Order("created_at DESC, id ASC")
}

// Create stores a new post and returns it composed with author and group.
func (r *GormPostRepository) Create(ctx context.Context, authorID, text string, groupID *uint, imageKey string) (domain.Post, error) {
	model := domain.PostModel{
		Text:     text,
		AuthorID: authorID,
		GroupID:  groupID,
		Image:    imageKey,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Post{}, err
	}
	return r.GetByID(ctx, model.ID)
}

// Update changes the mutable fields of a post. created_at is immutable and
// deliberately excluded from the update set.
func (r *GormPostRepository) Update(ctx context.Context, id uint, text string, groupID *uint, imageKey *string) (domain.Post, error) {
	updates := map[string]interface{}{
		"text":     text,
		"group_id": groupID,
	}
	if imageKey != nil {
		updates["image"] = *imageKey
	}

	result := r.db.WithContext(ctx).Model(&domain.PostModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return domain.Post{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Post{}, ErrPostNotFound
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves one post with author and group attached.
func (r *GormPostRepository) GetByID(ctx context.Context, id uint) (domain.Post, error) {
	var model domain.PostModel
	err := r.db.WithContext(ctx).Preload("Author").Preload("Group").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, err
	}
	return model.ToDomain(), nil
}

// All returns every post in feed order.
func (r *GormPostRepository) All(ctx context.Context) ([]domain.Post, error) {
	var models []domain.PostModel
	if err := feedScope(r.db.WithContext(ctx)).Find(&models).Error; err != nil {
		return nil, err
	}
	return domain.PostsToDomain(models), nil
}

// ByGroup returns the posts of one group in feed order.
func (r *GormPostRepository) ByGroup(ctx context.Context, groupID uint) ([]domain.Post, error) {
	var models []domain.PostModel
	err := feedScope(r.db.WithContext(ctx)).
		Where("group_id = ?", groupID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return domain.PostsToDomain(models), nil
}

// ByAuthor returns the posts of one author in feed order.
func (r *GormPostRepository) ByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	var models []domain.PostModel
	err := feedScope(r.db.WithContext(ctx)).
		Where("author_id = ?", authorID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return domain.PostsToDomain(models), nil
}

// ByAuthors returns the posts whose author is in the given set, in feed
// order. An empty set yields an empty feed without touching the database.
func (r *GormPostRepository) ByAuthors(ctx context.Context, authorIDs []string) ([]domain.Post, error) {
	if len(authorIDs) == 0 {
		return []domain.Post{}, nil
	}

	var models []domain.PostModel
	err := feedScope(r.db.WithContext(ctx)).
		Where("author_id IN ?", authorIDs).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return domain.PostsToDomain(models), nil
}

// Delete removes a post and its comments in one transaction.
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.CommentModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.PostModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

// Ensure interface is satisfied at compile time.
var _ PostRepository = (*GormPostRepository)(nil)
