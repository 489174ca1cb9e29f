// File: /services/engagement_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkwell-api/models"
	"inkwell-api/repositories"
)

// EngagementService owns likes, comments, bookmarks and read tracking.
// Likes and comments live inside the blog aggregate; bookmarks and reading
// history live inside the user aggregate. Every mutation is one whole-
// aggregate save, which is the atomicity unit the store provides.
type EngagementService struct {
	users repositories.UserStore
	blogs repositories.BlogStore
}

func NewEngagementService(users repositories.UserStore, blogs repositories.BlogStore) *EngagementService {
	return &EngagementService{users: users, blogs: blogs}
}

// Like adds userID to the blog's like set and returns the resulting count.
// Liking an already-liked blog changes nothing and still succeeds.
func (s *EngagementService) Like(userID, blogID string) (int, error) {
	blog, err := s.blogs.Get(blogID)
	if err != nil {
		return 0, err
	}

	if !blog.Likes.Contains(userID) {
		blog.Likes = blog.Likes.Add(userID)
		if err := s.blogs.Save(blog); err != nil {
			return 0, err
		}
	}
	return len(blog.Likes), nil
}

// Unlike removes userID from the like set. Removing an absent like is a
// no-op.
func (s *EngagementService) Unlike(userID, blogID string) (int, error) {
	blog, err := s.blogs.Get(blogID)
	if err != nil {
		return 0, err
	}

	if blog.Likes.Contains(userID) {
		blog.Likes = blog.Likes.Remove(userID)
		if err := s.blogs.Save(blog); err != nil {
			return 0, err
		}
	}
	return len(blog.Likes), nil
}

// AddComment appends a comment with a server-assigned timestamp and returns
// the full updated sequence. Prior comments are never edited or reordered.
func (s *EngagementService) AddComment(userID, blogID, text string) (models.CommentList, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("comment text is required: %w", models.ErrValidation)
	}

	blog, err := s.blogs.Get(blogID)
	if err != nil {
		return nil, err
	}

	blog.Comments = append(blog.Comments, models.Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	})
	if err := s.blogs.Save(blog); err != nil {
		return nil, err
	}
	return blog.Comments, nil
}

// Comments returns the blog's comment sequence in insertion order.
func (s *EngagementService) Comments(blogID string) (models.CommentList, error) {
	blog, err := s.blogs.Get(blogID)
	if err != nil {
		return nil, err
	}
	return blog.Comments, nil
}

// ToggleBookmark flips blogID in the user's bookmark set and reports whether
// the blog is bookmarked afterwards. The blog's existence is deliberately
// not checked: a bookmark may reference a since-deleted blog, and stale
// entries are filtered out when the bookmark list is read.
func (s *EngagementService) ToggleBookmark(userID, blogID string) (bool, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return false, err
	}

	bookmarked := !user.Bookmarks.Contains(blogID)
	if bookmarked {
		user.Bookmarks = user.Bookmarks.Add(blogID)
	} else {
		user.Bookmarks = user.Bookmarks.Remove(blogID)
	}
	if err := s.users.Save(user); err != nil {
		return false, err
	}
	return bookmarked, nil
}

// RecordRead moves blogID to the front of the user's reading history and
// bumps the blog's read counter. The counter counts views, not viewers:
// repeated reads by the same user all increment it.
func (s *EngagementService) RecordRead(userID, blogID string) error {
	blog, err := s.blogs.Get(blogID)
	if err != nil {
		return err
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return err
	}
	user.ReadingHistory = user.ReadingHistory.Record(blogID, time.Now())
	user.LastActive = time.Now()
	if err := s.users.Save(user); err != nil {
		return err
	}

	blog.ReadCount++
	return s.blogs.Save(blog)
}

// BookmarkedBlogs resolves the user's bookmarks in bookmark order. Deleted
// or unpublished blogs are silently dropped.
func (s *EngagementService) BookmarkedBlogs(userID string) ([]models.Blog, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}
	return s.resolvePublished(user.Bookmarks)
}

// ReadingHistoryBlogs resolves the user's reading history, most recent
// first, dropping stale references.
func (s *EngagementService) ReadingHistoryBlogs(userID string) ([]models.Blog, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(user.ReadingHistory))
	for _, entry := range user.ReadingHistory {
		ids = append(ids, entry.BlogID)
	}
	return s.resolvePublished(ids)
}

func (s *EngagementService) resolvePublished(ids []string) ([]models.Blog, error) {
	found, err := s.blogs.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Blog, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}

	blogs := make([]models.Blog, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok && b.IsPublished {
			blogs = append(blogs, b)
		}
	}
	return blogs, nil
}
