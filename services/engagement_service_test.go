// File: /services/engagement_service_test.go
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

func newTestBlog(t *testing.T, store *repositories.MemoryBlogStore, id, authorID, title string) {
	t.Helper()
	err := store.Create(&models.Blog{
		ID:          id,
		Title:       title,
		Description: "description",
		AuthorID:    authorID,
		IsPublished: true,
	})
	require.NoError(t, err)
}

func newEngagementFixture(t *testing.T) (*EngagementService, *repositories.MemoryUserStore, *repositories.MemoryBlogStore) {
	t.Helper()
	users := repositories.NewMemoryUserStore()
	blogs := repositories.NewMemoryBlogStore()
	newTestUser(t, users, "alice", "Alice")
	newTestUser(t, users, "bob", "Bob")
	newTestBlog(t, blogs, "post-1", "bob", "First Post")
	return NewEngagementService(users, blogs), users, blogs
}

func TestLikeIdempotent(t *testing.T) {
	svc, _, blogs := newEngagementFixture(t)

	count, err := svc.Like("alice", "post-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.Like("alice", "post-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	blog, err := blogs.Get("post-1")
	require.NoError(t, err)
	assert.Equal(t, models.StringSet{"alice"}, blog.Likes)
}

func TestLikeThenUnlikeRestoresCount(t *testing.T) {
	svc, _, _ := newEngagementFixture(t)

	_, err := svc.Like("bob", "post-1")
	require.NoError(t, err)
	count, err := svc.Like("alice", "post-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = svc.Unlike("alice", "post-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Unliking again is a harmless no-op.
	count, err = svc.Unlike("alice", "post-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLikeMissingBlog(t *testing.T) {
	svc, _, _ := newEngagementFixture(t)

	_, err := svc.Like("alice", "ghost")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddCommentAppends(t *testing.T) {
	svc, _, _ := newEngagementFixture(t)

	comments, err := svc.AddComment("alice", "post-1", "great read")
	require.NoError(t, err)
	require.Len(t, comments, 1)

	comments, err = svc.AddComment("bob", "post-1", "thanks!")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "alice", comments[0].UserID)
	assert.Equal(t, "great read", comments[0].Text)
	assert.Equal(t, "bob", comments[1].UserID)
	assert.False(t, comments[1].CreatedAt.Before(comments[0].CreatedAt))
}

func TestAddCommentEmptyTextRejected(t *testing.T) {
	svc, _, blogs := newEngagementFixture(t)

	_, err := svc.AddComment("alice", "post-1", "")
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.AddComment("alice", "post-1", "   ")
	require.ErrorIs(t, err, models.ErrValidation)

	blog, err := blogs.Get("post-1")
	require.NoError(t, err)
	assert.Empty(t, blog.Comments)
}

func TestToggleBookmark(t *testing.T) {
	svc, users, _ := newEngagementFixture(t)

	bookmarked, err := svc.ToggleBookmark("alice", "post-1")
	require.NoError(t, err)
	assert.True(t, bookmarked)

	bookmarked, err = svc.ToggleBookmark("alice", "post-1")
	require.NoError(t, err)
	assert.False(t, bookmarked)

	user, err := users.Get("alice")
	require.NoError(t, err)
	assert.Empty(t, user.Bookmarks)
}

func TestToggleBookmarkSkipsExistenceCheck(t *testing.T) {
	svc, users, _ := newEngagementFixture(t)

	// Bookmarking a blog that does not exist succeeds; the stale reference
	// is filtered out when the list is read.
	bookmarked, err := svc.ToggleBookmark("alice", "no-such-post")
	require.NoError(t, err)
	assert.True(t, bookmarked)

	user, err := users.Get("alice")
	require.NoError(t, err)
	assert.True(t, user.Bookmarks.Contains("no-such-post"))

	blogs, err := svc.BookmarkedBlogs("alice")
	require.NoError(t, err)
	assert.Empty(t, blogs)
}

func TestBookmarkedBlogsKeepOrderAndDropDeleted(t *testing.T) {
	svc, _, blogStore := newEngagementFixture(t)
	newTestBlog(t, blogStore, "post-2", "bob", "Second Post")
	newTestBlog(t, blogStore, "post-3", "bob", "Third Post")

	for _, id := range []string{"post-3", "post-1", "post-2"} {
		_, err := svc.ToggleBookmark("alice", id)
		require.NoError(t, err)
	}

	require.NoError(t, blogStore.Delete("post-1"))

	blogs, err := svc.BookmarkedBlogs("alice")
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, "post-3", blogs[0].ID)
	assert.Equal(t, "post-2", blogs[1].ID)
}

func TestRecordReadDeduplicatesToFront(t *testing.T) {
	svc, users, blogStore := newEngagementFixture(t)
	newTestBlog(t, blogStore, "post-2", "bob", "Second Post")

	require.NoError(t, svc.RecordRead("alice", "post-1"))
	require.NoError(t, svc.RecordRead("alice", "post-2"))
	require.NoError(t, svc.RecordRead("alice", "post-1"))

	user, err := users.Get("alice")
	require.NoError(t, err)
	require.Len(t, user.ReadingHistory, 2)
	assert.Equal(t, "post-1", user.ReadingHistory[0].BlogID)
	assert.Equal(t, "post-2", user.ReadingHistory[1].BlogID)
}

func TestRecordReadCapsAtFifty(t *testing.T) {
	users := repositories.NewMemoryUserStore()
	blogs := repositories.NewMemoryBlogStore()
	newTestUser(t, users, "alice", "Alice")
	svc := NewEngagementService(users, blogs)

	for i := 0; i < 51; i++ {
		id := fmt.Sprintf("post-%d", i)
		newTestBlog(t, blogs, id, "bob", id)
		require.NoError(t, svc.RecordRead("alice", id))
	}

	user, err := users.Get("alice")
	require.NoError(t, err)
	require.Len(t, user.ReadingHistory, 50)
	assert.Equal(t, "post-50", user.ReadingHistory[0].BlogID)
	// The oldest entry was evicted from the tail.
	assert.Equal(t, "post-1", user.ReadingHistory[49].BlogID)
}

func TestRecordReadIncrementsReadCountUnconditionally(t *testing.T) {
	svc, _, blogs := newEngagementFixture(t)

	require.NoError(t, svc.RecordRead("alice", "post-1"))
	require.NoError(t, svc.RecordRead("alice", "post-1"))
	require.NoError(t, svc.RecordRead("bob", "post-1"))

	blog, err := blogs.Get("post-1")
	require.NoError(t, err)
	assert.Equal(t, 3, blog.ReadCount)
}

func TestReadingHistoryBlogsMostRecentFirst(t *testing.T) {
	svc, _, blogStore := newEngagementFixture(t)
	newTestBlog(t, blogStore, "post-2", "bob", "Second Post")

	require.NoError(t, svc.RecordRead("alice", "post-1"))
	time.Sleep(time.Millisecond)
	require.NoError(t, svc.RecordRead("alice", "post-2"))

	blogs, err := svc.ReadingHistoryBlogs("alice")
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, "post-2", blogs[0].ID)
	assert.Equal(t, "post-1", blogs[1].ID)
}
