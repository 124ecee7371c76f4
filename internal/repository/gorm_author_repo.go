package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quillworks/blog-service/internal/domain"
)

// GormAuthorRepository implements AuthorRepository using GORM.
type GormAuthorRepository struct {
	db *gorm.DB
}

// NewGormAuthorRepository creates a new GORM-backed author repository.
func NewGormAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

// Ensure upserts the author row for an authenticated actor. The username is
// refreshed on conflict so renames at the identity provider propagate.
func (r *GormAuthorRepository) Ensure(ctx context.Context, actor domain.Actor) error {
	model := domain.AuthorModel{ID: actor.ID, Username: actor.Username}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username"}),
		}).
		Create(&model).Error
}

// GetByID retrieves an author by id.
func (r *GormAuthorRepository) GetByID(ctx context.Context, id string) (*domain.Author, error) {
	var model domain.AuthorModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	author := model.ToDomain()
	return &author, nil
}

// GetByUsername retrieves an author by username.
func (r *GormAuthorRepository) GetByUsername(ctx context.Context, username string) (*domain.Author, error) {
	var model domain.AuthorModel
	err := r.db.WithContext(ctx).First(&model, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	author := model.ToDomain()
	return &author, nil
}

// Delete removes an author and everything they own: their comments, comments
// on their posts, their posts, and their follow edges in both directions.
// All-or-nothing inside one transaction.
func (r *GormAuthorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model domain.AuthorModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuthorNotFound
			}
			return err
		}

		// Comments on this author's posts go with the posts.
		sub := tx.Model(&domain.PostModel{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("post_id IN (?)", sub).Delete(&domain.CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&domain.CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&domain.PostModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR author_id = ?", id, id).Delete(&domain.FollowModel{}).Error; err != nil {
			return err
		}

		return tx.Delete(&domain.AuthorModel{}, "id = ?", id).Error
	})
}

// Ensure interface is satisfied at compile time.
var _ AuthorRepository = (*GormAuthorRepository)(nil)
