package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quillworks/blog-service/internal/domain"
)

// GormCommentRepository implements CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GORM-backed comment repository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create stores a new comment and returns it with its author attached.
func (r *GormCommentRepository) Create(ctx context.Context, postID uint, authorID, text string) (domain.Comment, error) {
	model := domain.CommentModel{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Comment{}, err
	}

	var created domain.CommentModel
	err := r.db.WithContext(ctx).Preload("Author").
		First(&created, "id = ?", model.ID).Error
	if err != nil {
		return domain.Comment{}, err
	}
	return created.ToDomain(), nil
}

// ByPost returns a post's comments newest first, insertion order on ties.
func (r *GormCommentRepository) ByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	var models []domain.CommentModel
	err := r.db.WithContext(ctx).Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return domain.CommentsToDomain(models), nil
}

// Ensure interface is satisfied at compile time.
var _ CommentRepository = (*GormCommentRepository)(nil)
