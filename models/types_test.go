// File: /models/types_test.go
package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringSetAddRemove(t *testing.T) {
	var set StringSet

	set = set.Add("a")
	set = set.Add("b")
	set = set.Add("a")
	assert.Equal(t, StringSet{"a", "b"}, set)

	set = set.Remove("a")
	assert.Equal(t, StringSet{"b"}, set)
	assert.False(t, set.Contains("a"))
	assert.True(t, set.Contains("b"))

	// Removing an absent member is a no-op.
	set = set.Remove("zzz")
	assert.Equal(t, StringSet{"b"}, set)
}

func TestReadingHistoryRecordMovesToFront(t *testing.T) {
	now := time.Now()
	var h ReadingHistory

	h = h.Record("a", now)
	h = h.Record("b", now.Add(time.Second))
	h = h.Record("a", now.Add(2*time.Second))

	assert.Len(t, h, 2)
	assert.Equal(t, "a", h[0].BlogID)
	assert.Equal(t, now.Add(2*time.Second), h[0].ReadAt)
	assert.Equal(t, "b", h[1].BlogID)
}

func TestReadingHistoryRecordEvictsTail(t *testing.T) {
	now := time.Now()
	var h ReadingHistory

	for i := 0; i < ReadingHistoryLimit+1; i++ {
		h = h.Record(fmt.Sprintf("blog-%d", i), now.Add(time.Duration(i)*time.Second))
	}

	assert.Len(t, h, ReadingHistoryLimit)
	assert.Equal(t, fmt.Sprintf("blog-%d", ReadingHistoryLimit), h[0].BlogID)
	assert.Equal(t, "blog-1", h[ReadingHistoryLimit-1].BlogID)
}
