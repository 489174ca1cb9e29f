// File: /models/blog.go
package models

import (
	"time"
)

type Blog struct {
	ID          string      `json:"id" gorm:"primaryKey;size:191"`
	Title       string      `json:"title" gorm:"not null;size:255"`
	Description string      `json:"description" gorm:"not null;type:text"`
	RichContent *string     `json:"rich_content" gorm:"type:longtext"`
	Categories  StringSet   `json:"categories" gorm:"type:json"`
	Tags        StringSet   `json:"tags" gorm:"type:json"`
	AuthorID    string      `json:"author_id" gorm:"not null;size:191;index"`
	Likes       StringSet   `json:"likes" gorm:"type:json"`
	Comments    CommentList `json:"comments" gorm:"type:json"`
	ReadCount   int         `json:"read_count" gorm:"default:0"`
	IsPublished bool        `json:"is_published" gorm:"default:true"`
	CoverImage  *string     `json:"cover_image" gorm:"size:500"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// BlogWithAuthor pairs a blog with its author's public profile for list and
// detail responses.
type BlogWithAuthor struct {
	Blog
	Author Profile `json:"author"`
}
