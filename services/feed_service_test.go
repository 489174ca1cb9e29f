// File: /services/feed_service_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-api/models"
	"inkwell-api/repositories"
)

func newFeedFixture(t *testing.T) (*FeedService, *repositories.MemoryUserStore, *repositories.MemoryBlogStore) {
	t.Helper()
	users := repositories.NewMemoryUserStore()
	blogs := repositories.NewMemoryBlogStore()
	return NewFeedService(users, blogs), users, blogs
}

func TestActivityFeedThreeSourceMerge(t *testing.T) {
	svc, users, blogs := newFeedFixture(t)

	newTestUser(t, users, "viewer", "Viewer")
	newTestUser(t, users, "anna", "Anna")
	newTestUser(t, users, "ben", "Ben")
	newTestUser(t, users, "cara", "Cara")

	base := time.Now().Add(-time.Hour)

	// Viewer follows Anna and Ben.
	viewer, err := users.Get("viewer")
	require.NoError(t, err)
	viewer.Following = models.StringSet{"anna", "ben"}
	require.NoError(t, users.Save(viewer))

	// Anna publishes P1 at t=10, Ben publishes P2 at t=20.
	require.NoError(t, blogs.Create(&models.Blog{
		ID: "p1", Title: "P1", Description: "d", AuthorID: "anna",
		IsPublished: true, CreatedAt: base.Add(10 * time.Second),
	}))
	require.NoError(t, blogs.Create(&models.Blog{
		ID: "p2", Title: "P2", Description: "d", AuthorID: "ben",
		IsPublished: true, CreatedAt: base.Add(20 * time.Second),
	}))

	// Viewer's own post P3 gets a comment from Cara at t=30.
	require.NoError(t, blogs.Create(&models.Blog{
		ID: "p3", Title: "P3", Description: "d", AuthorID: "viewer",
		IsPublished: true, CreatedAt: base.Add(5 * time.Second),
		Comments: models.CommentList{
			{ID: "c1", UserID: "cara", Text: "nice", CreatedAt: base.Add(30 * time.Second)},
		},
	}))

	events, err := svc.ActivityFeed("viewer")
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, models.ActivityComment, events[0].Type)
	assert.Equal(t, "cara", events[0].ActorID)
	assert.Equal(t, "p3", events[0].BlogID)
	assert.Equal(t, "Cara commented on your blog: P3", events[0].Message)

	assert.Equal(t, models.ActivityBlog, events[1].Type)
	assert.Equal(t, "ben", events[1].ActorID)
	assert.Equal(t, "p2", events[1].BlogID)

	assert.Equal(t, models.ActivityBlog, events[2].Type)
	assert.Equal(t, "anna", events[2].ActorID)
	assert.Equal(t, "p1", events[2].BlogID)
}

func TestActivityFeedTruncatesToTwenty(t *testing.T) {
	svc, users, blogs := newFeedFixture(t)

	newTestUser(t, users, "viewer", "Viewer")
	newTestUser(t, users, "anna", "Anna")
	newTestUser(t, users, "cara", "Cara")

	viewer, err := users.Get("viewer")
	require.NoError(t, err)
	viewer.Following = models.StringSet{"anna"}
	require.NoError(t, users.Save(viewer))

	base := time.Now().Add(-time.Hour)

	// Anna has 12 published blogs; only the newest 10 qualify.
	for i := 0; i < 12; i++ {
		require.NoError(t, blogs.Create(&models.Blog{
			ID:          fmt.Sprintf("anna-%d", i),
			Title:       fmt.Sprintf("Anna %d", i),
			Description: "d",
			AuthorID:    "anna",
			IsPublished: true,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}))
	}

	// Viewer owns 3 blogs, each with 5 comments newer than every blog
	// publication, so 15 comment events qualify. 10 + 15 = 25 candidates.
	for i := 0; i < 3; i++ {
		comments := make(models.CommentList, 0, 5)
		for j := 0; j < 5; j++ {
			comments = append(comments, models.Comment{
				ID:        fmt.Sprintf("c-%d-%d", i, j),
				UserID:    "cara",
				Text:      "comment",
				CreatedAt: base.Add(time.Duration(100+i*10+j) * time.Second),
			})
		}
		require.NoError(t, blogs.Create(&models.Blog{
			ID:          fmt.Sprintf("own-%d", i),
			Title:       fmt.Sprintf("Own %d", i),
			Description: "d",
			AuthorID:    "viewer",
			IsPublished: true,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
			Comments:    comments,
		}))
	}

	events, err := svc.ActivityFeed("viewer")
	require.NoError(t, err)
	require.Len(t, events, FeedLimit)

	// The 15 comments are the newest events; the remaining 5 slots go to
	// the most recent followee blogs.
	commentCount := 0
	blogCount := 0
	for _, e := range events {
		switch e.Type {
		case models.ActivityComment:
			commentCount++
		case models.ActivityBlog:
			blogCount++
		}
	}
	assert.Equal(t, 15, commentCount)
	assert.Equal(t, 5, blogCount)

	// Reverse-chronological throughout.
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Timestamp.After(events[i-1].Timestamp))
	}
}

func TestActivityFeedLikesFloatToTop(t *testing.T) {
	svc, users, blogs := newFeedFixture(t)

	newTestUser(t, users, "viewer", "Viewer")
	newTestUser(t, users, "anna", "Anna")
	newTestUser(t, users, "ben", "Ben")

	viewer, err := users.Get("viewer")
	require.NoError(t, err)
	viewer.Following = models.StringSet{"anna"}
	require.NoError(t, users.Save(viewer))

	base := time.Now().Add(-time.Hour)
	require.NoError(t, blogs.Create(&models.Blog{
		ID: "anna-1", Title: "Anna 1", Description: "d", AuthorID: "anna",
		IsPublished: true, CreatedAt: base,
	}))
	require.NoError(t, blogs.Create(&models.Blog{
		ID: "own-1", Title: "Own 1", Description: "d", AuthorID: "viewer",
		IsPublished: true, CreatedAt: base,
		Likes: models.StringSet{"anna", "ben"},
	}))

	events, err := svc.ActivityFeed("viewer")
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Like timestamps are synthesized as "now", so they precede the real
	// blog publication times. Insertion order of the likers is preserved.
	assert.Equal(t, models.ActivityLike, events[0].Type)
	assert.Equal(t, "anna", events[0].ActorID)
	assert.Equal(t, models.ActivityLike, events[1].Type)
	assert.Equal(t, "ben", events[1].ActorID)
	assert.Equal(t, models.ActivityBlog, events[2].Type)
}

func TestActivityFeedLimitsLikersAndCommentsPerBlog(t *testing.T) {
	svc, users, blogs := newFeedFixture(t)

	newTestUser(t, users, "viewer", "Viewer")
	likers := make(models.StringSet, 0, 8)
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("liker-%d", i)
		newTestUser(t, users, id, fmt.Sprintf("Liker %d", i))
		likers = append(likers, id)
	}

	require.NoError(t, blogs.Create(&models.Blog{
		ID: "own-1", Title: "Own 1", Description: "d", AuthorID: "viewer",
		IsPublished: true, Likes: likers,
	}))

	events, err := svc.ActivityFeed("viewer")
	require.NoError(t, err)
	require.Len(t, events, 5)

	// Only the last five likers in insertion order are reported.
	assert.Equal(t, "liker-3", events[0].ActorID)
	assert.Equal(t, "liker-7", events[4].ActorID)
}

func TestActivityFeedDropsDanglingReferences(t *testing.T) {
	svc, users, blogs := newFeedFixture(t)

	newTestUser(t, users, "viewer", "Viewer")
	newTestUser(t, users, "anna", "Anna")

	viewer, err := users.Get("viewer")
	require.NoError(t, err)
	viewer.Following = models.StringSet{"anna", "deleted-author"}
	require.NoError(t, users.Save(viewer))

	base := time.Now().Add(-time.Hour)
	require.NoError(t, blogs.Create(&models.Blog{
		ID: "anna-1", Title: "Anna 1", Description: "d", AuthorID: "anna",
		IsPublished: true, CreatedAt: base,
	}))
	// A blog whose author no longer exists.
	require.NoError(t, blogs.Create(&models.Blog{
		ID: "orphan-1", Title: "Orphan", Description: "d", AuthorID: "deleted-author",
		IsPublished: true, CreatedAt: base.Add(time.Second),
	}))
	// The viewer's own blog liked and commented by a vanished account.
	require.NoError(t, blogs.Create(&models.Blog{
		ID: "own-1", Title: "Own 1", Description: "d", AuthorID: "viewer",
		IsPublished: true, CreatedAt: base,
		Likes: models.StringSet{"ghost"},
		Comments: models.CommentList{
			{ID: "c1", UserID: "ghost", Text: "boo", CreatedAt: base.Add(2 * time.Second)},
		},
	}))

	events, err := svc.ActivityFeed("viewer")
	require.NoError(t, err)

	// Only Anna's publication survives; every dangling event is dropped
	// without failing the response.
	require.Len(t, events, 1)
	assert.Equal(t, models.ActivityBlog, events[0].Type)
	assert.Equal(t, "anna", events[0].ActorID)
}

func TestActivityFeedViewerMissing(t *testing.T) {
	svc, _, _ := newFeedFixture(t)

	_, err := svc.ActivityFeed("nobody")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	svc, users, blogs := newFeedFixture(t)

	newTestUser(t, users, "viewer", "Viewer")
	newTestUser(t, users, "anna", "Anna")

	viewer, err := users.Get("viewer")
	require.NoError(t, err)
	viewer.Following = models.StringSet{"anna"}
	viewer.Followers = models.StringSet{"anna"}
	viewer.Bookmarks = models.StringSet{"own-1", "gone"}
	viewer.ReadingHistory = models.ReadingHistory{{BlogID: "own-1", ReadAt: time.Now()}}
	require.NoError(t, users.Save(viewer))

	require.NoError(t, blogs.Create(&models.Blog{
		ID: "own-1", Title: "Own 1", Description: "d", AuthorID: "viewer",
		IsPublished: true,
		Likes:       models.StringSet{"anna"},
		Comments: models.CommentList{
			{ID: "c1", UserID: "anna", Text: "hi", CreatedAt: time.Now()},
			{ID: "c2", UserID: "anna", Text: "again", CreatedAt: time.Now()},
		},
	}))

	stats, err := svc.DashboardStats("viewer")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalBlogs)
	assert.Equal(t, 1, stats.TotalLikes)
	assert.Equal(t, 2, stats.TotalComments)
	assert.Equal(t, 1, stats.Followers)
	assert.Equal(t, 1, stats.Following)
	assert.Equal(t, 2, stats.Bookmarks)
	assert.Equal(t, 1, stats.ReadingHistory)
}
