// File: /repositories/blog_repository.go
package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"inkwell-api/models"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Get(id string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("blog %s: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepository) Create(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

func (r *BlogRepository) Save(blog *models.Blog) error {
	return r.db.Save(blog).Error
}

func (r *BlogRepository) Delete(id string) error {
	result := r.db.Delete(&models.Blog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("blog %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *BlogRepository) FindAll() ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.db.Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepository) FindByAuthor(authorID string) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.db.Where("author_id = ?", authorID).Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepository) FindRecentByAuthors(authorIDs []string, limit int) ([]models.Blog, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var blogs []models.Blog
	err := r.db.
		Where("author_id IN ? AND is_published = ?", authorIDs, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepository) FindByIDs(ids []string) ([]models.Blog, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var blogs []models.Blog
	if err := r.db.Where("id IN ?", ids).Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepository) CountByAuthor(authorID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Blog{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
