// File: /repositories/stores.go
package repositories

import "inkwell-api/models"

// UserStore is the narrow contract the core holds against the identity
// store. Save replaces the whole user aggregate; per-document writes are the
// only atomicity the store guarantees.
type UserStore interface {
	Get(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
	FindByIDs(ids []string) ([]models.User, error)
	Search(query, excludeID string, limit int) ([]models.User, error)
}

// BlogStore is the narrow contract against the content store. Likes and
// comments live inside the blog aggregate, so deleting a blog takes them
// with it.
type BlogStore interface {
	Get(id string) (*models.Blog, error)
	Create(blog *models.Blog) error
	Save(blog *models.Blog) error
	Delete(id string) error
	FindAll() ([]models.Blog, error)
	FindByAuthor(authorID string) ([]models.Blog, error)
	FindRecentByAuthors(authorIDs []string, limit int) ([]models.Blog, error)
	FindByIDs(ids []string) ([]models.Blog, error)
	CountByAuthor(authorID string) (int64, error)
}
