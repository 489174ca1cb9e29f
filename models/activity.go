// File: /models/activity.go
package models

import "time"

type ActivityType string

const (
	ActivityBlog    ActivityType = "blog"
	ActivityLike    ActivityType = "like"
	ActivityComment ActivityType = "comment"
)

// ActivityEvent is a single feed-worthy occurrence. Events are assembled on
// demand for one viewer and discarded after the response; they are never
// persisted.
type ActivityEvent struct {
	Type      ActivityType `json:"type"`
	Message   string       `json:"message"`
	ActorID   string       `json:"actor_id"`
	ActorName string       `json:"actor_name"`
	BlogID    string       `json:"blog_id"`
	BlogTitle string       `json:"blog_title"`
	Timestamp time.Time    `json:"timestamp"`
}
