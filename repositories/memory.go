// File: /repositories/memory.go
package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"inkwell-api/models"
)

// MemoryUserStore is an in-memory UserStore. It serializes every call on one
// mutex, which gives the same per-document read-modify-write atomicity the
// database provides. Used by tests.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
	order []string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) Get(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	u := cloneUser(user)
	return &u, nil
}

func (s *MemoryUserStore) GetByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = models.NormalizeEmail(email)
	for _, id := range s.order {
		if s.users[id].Email == email {
			u := cloneUser(s.users[id])
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
}

func (s *MemoryUserStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return fmt.Errorf("user %s already exists", user.ID)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = cloneUser(*user)
	s.order = append(s.order, user.ID)
	return nil
}

func (s *MemoryUserStore) Save(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; !exists {
		return fmt.Errorf("user %s: %w", user.ID, models.ErrNotFound)
	}
	s.users[user.ID] = cloneUser(*user)
	return nil
}

func (s *MemoryUserStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	delete(s.users, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryUserStore) FindByIDs(ids []string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []models.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (s *MemoryUserStore) Search(query, excludeID string, limit int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	var users []models.User
	for _, id := range s.order {
		u := s.users[id]
		if u.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.Bio), q) {
			users = append(users, cloneUser(u))
			if len(users) == limit {
				break
			}
		}
	}
	return users, nil
}

// MemoryBlogStore is the in-memory BlogStore counterpart of MemoryUserStore.
type MemoryBlogStore struct {
	mu    sync.Mutex
	blogs map[string]models.Blog
	order []string
}

func NewMemoryBlogStore() *MemoryBlogStore {
	return &MemoryBlogStore{blogs: make(map[string]models.Blog)}
}

func (s *MemoryBlogStore) Get(id string) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blog, ok := s.blogs[id]
	if !ok {
		return nil, fmt.Errorf("blog %s: %w", id, models.ErrNotFound)
	}
	b := cloneBlog(blog)
	return &b, nil
}

func (s *MemoryBlogStore) Create(blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blogs[blog.ID]; exists {
		return fmt.Errorf("blog %s already exists", blog.ID)
	}
	now := time.Now()
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = now
	}
	if blog.UpdatedAt.IsZero() {
		blog.UpdatedAt = blog.CreatedAt
	}
	s.blogs[blog.ID] = cloneBlog(*blog)
	s.order = append(s.order, blog.ID)
	return nil
}

func (s *MemoryBlogStore) Save(blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blogs[blog.ID]; !exists {
		return fmt.Errorf("blog %s: %w", blog.ID, models.ErrNotFound)
	}
	s.blogs[blog.ID] = cloneBlog(*blog)
	return nil
}

func (s *MemoryBlogStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blogs[id]; !exists {
		return fmt.Errorf("blog %s: %w", id, models.ErrNotFound)
	}
	delete(s.blogs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryBlogStore) FindAll() ([]models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blogs := make([]models.Blog, 0, len(s.order))
	for _, id := range s.order {
		blogs = append(blogs, cloneBlog(s.blogs[id]))
	}
	sortBlogsDesc(blogs)
	return blogs, nil
}

func (s *MemoryBlogStore) FindByAuthor(authorID string) ([]models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var blogs []models.Blog
	for _, id := range s.order {
		if s.blogs[id].AuthorID == authorID {
			blogs = append(blogs, cloneBlog(s.blogs[id]))
		}
	}
	sortBlogsDesc(blogs)
	return blogs, nil
}

func (s *MemoryBlogStore) FindRecentByAuthors(authorIDs []string, limit int) ([]models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authors := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}

	var blogs []models.Blog
	for _, id := range s.order {
		b := s.blogs[id]
		if authors[b.AuthorID] && b.IsPublished {
			blogs = append(blogs, cloneBlog(b))
		}
	}
	sortBlogsDesc(blogs)
	if len(blogs) > limit {
		blogs = blogs[:limit]
	}
	return blogs, nil
}

func (s *MemoryBlogStore) FindByIDs(ids []string) ([]models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var blogs []models.Blog
	for _, id := range ids {
		if b, ok := s.blogs[id]; ok {
			blogs = append(blogs, cloneBlog(b))
		}
	}
	return blogs, nil
}

func (s *MemoryBlogStore) CountByAuthor(authorID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, b := range s.blogs {
		if b.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func sortBlogsDesc(blogs []models.Blog) {
	sort.SliceStable(blogs, func(i, j int) bool {
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})
}

// The stores hand out copies so callers can never mutate a stored aggregate
// without going back through Save.
func cloneUser(u models.User) models.User {
	out := u
	out.Following = append(models.StringSet(nil), u.Following...)
	out.Followers = append(models.StringSet(nil), u.Followers...)
	out.Bookmarks = append(models.StringSet(nil), u.Bookmarks...)
	out.ReadingHistory = append(models.ReadingHistory(nil), u.ReadingHistory...)
	return out
}

func cloneBlog(b models.Blog) models.Blog {
	out := b
	out.Categories = append(models.StringSet(nil), b.Categories...)
	out.Tags = append(models.StringSet(nil), b.Tags...)
	out.Likes = append(models.StringSet(nil), b.Likes...)
	out.Comments = append(models.CommentList(nil), b.Comments...)
	return out
}
