// File: /services/feed_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"inkwell-api/models"
	"inkwell-api/repositories"
)

const (
	// FeedLimit caps the assembled feed.
	FeedLimit = 20
	// feedNewBlogLimit caps how many followee blogs are considered.
	feedNewBlogLimit = 10
	// feedPerBlogLimit caps likes and comments considered per owned blog.
	feedPerBlogLimit = 5
)

// FeedService assembles the activity feed for a viewer from three
// independent sources: new blogs by followed authors, likes received on the
// viewer's blogs, and comments received on the viewer's blogs. There is no
// precomputed index; everything is gathered at read time.
type FeedService struct {
	users repositories.UserStore
	blogs repositories.BlogStore
}

func NewFeedService(users repositories.UserStore, blogs repositories.BlogStore) *FeedService {
	return &FeedService{users: users, blogs: blogs}
}

// ActivityFeed returns at most FeedLimit events, reverse-chronological.
//
// Candidates are gathered without a global cap, concatenated in source order
// (blogs, likes, comments), stable-sorted descending by timestamp and then
// truncated, so equal timestamps keep their source order.
//
// Likes carry no timestamp of their own, so like events are stamped "now"
// and float to the top of the merge. Known approximation, kept on purpose.
//
// An event whose actor or blog can no longer be resolved is dropped alone;
// it never fails the whole feed.
func (s *FeedService) ActivityFeed(viewerID string) ([]models.ActivityEvent, error) {
	viewer, err := s.users.Get(viewerID)
	if err != nil {
		return nil, err
	}

	var events []models.ActivityEvent

	recent, err := s.blogs.FindRecentByAuthors(viewer.Following, feedNewBlogLimit)
	if err != nil {
		return nil, err
	}
	for _, blog := range recent {
		author, err := s.users.Get(blog.AuthorID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		events = append(events, models.ActivityEvent{
			Type:      models.ActivityBlog,
			Message:   fmt.Sprintf("%s published a new blog: %s", author.Name, blog.Title),
			ActorID:   author.ID,
			ActorName: author.Name,
			BlogID:    blog.ID,
			BlogTitle: blog.Title,
			Timestamp: blog.CreatedAt,
		})
	}

	owned, err := s.blogs.FindByAuthor(viewerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, blog := range owned {
		for _, likerID := range lastN(blog.Likes, feedPerBlogLimit) {
			liker, err := s.users.Get(likerID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					continue
				}
				return nil, err
			}
			events = append(events, models.ActivityEvent{
				Type:      models.ActivityLike,
				Message:   fmt.Sprintf("%s liked your blog: %s", liker.Name, blog.Title),
				ActorID:   liker.ID,
				ActorName: liker.Name,
				BlogID:    blog.ID,
				BlogTitle: blog.Title,
				Timestamp: now,
			})
		}
	}

	for _, blog := range owned {
		comments := blog.Comments
		if len(comments) > feedPerBlogLimit {
			comments = comments[len(comments)-feedPerBlogLimit:]
		}
		for _, comment := range comments {
			commenter, err := s.users.Get(comment.UserID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					continue
				}
				return nil, err
			}
			events = append(events, models.ActivityEvent{
				Type:      models.ActivityComment,
				Message:   fmt.Sprintf("%s commented on your blog: %s", commenter.Name, blog.Title),
				ActorID:   commenter.ID,
				ActorName: commenter.Name,
				BlogID:    blog.ID,
				BlogTitle: blog.Title,
				Timestamp: comment.CreatedAt,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	if len(events) > FeedLimit {
		events = events[:FeedLimit]
	}
	return events, nil
}

// DashboardStats totals the user's authoring and social counters in one
// pass over their blogs.
func (s *FeedService) DashboardStats(userID string) (*models.DashboardStats, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}

	blogCount, err := s.blogs.CountByAuthor(userID)
	if err != nil {
		return nil, err
	}

	owned, err := s.blogs.FindByAuthor(userID)
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		TotalBlogs:     blogCount,
		Followers:      len(user.Followers),
		Following:      len(user.Following),
		Bookmarks:      len(user.Bookmarks),
		ReadingHistory: len(user.ReadingHistory),
	}
	for _, blog := range owned {
		stats.TotalLikes += len(blog.Likes)
		stats.TotalComments += len(blog.Comments)
	}
	return stats, nil
}

// lastN returns the trailing n entries of a set, preserving order.
func lastN(set models.StringSet, n int) models.StringSet {
	if len(set) <= n {
		return set
	}
	return set[len(set)-n:]
}
