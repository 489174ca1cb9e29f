// File: /models/user.go
package models

import (
	"strings"
	"time"
)

type User struct {
	ID             string         `json:"id" gorm:"primaryKey;size:191"`
	Name           string         `json:"name" gorm:"not null;size:255"`
	Email          string         `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password       string         `json:"-" gorm:"not null;size:255"`
	EmailVerified  bool           `json:"email_verified" gorm:"default:false"`
	Bio            string         `json:"bio" gorm:"type:text"`
	AvatarURL      *string        `json:"avatar_url" gorm:"size:500"`
	Following      StringSet      `json:"following" gorm:"type:json"`
	Followers      StringSet      `json:"followers" gorm:"type:json"`
	Bookmarks      StringSet      `json:"bookmarks" gorm:"type:json"`
	ReadingHistory ReadingHistory `json:"reading_history" gorm:"type:json"`
	CreatedAt      time.Time      `json:"created_at"`
	LastActive     time.Time      `json:"last_active"`
}

// Profile is the public projection of a user, safe to embed in any response.
type Profile struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Bio       string  `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
	}
}

// DashboardStats aggregates a user's authoring and social counters.
type DashboardStats struct {
	TotalBlogs     int64 `json:"total_blogs"`
	TotalLikes     int   `json:"total_likes"`
	TotalComments  int   `json:"total_comments"`
	Followers      int   `json:"followers"`
	Following      int   `json:"following"`
	Bookmarks      int   `json:"bookmarks"`
	ReadingHistory int   `json:"reading_history"`
}

// NormalizeEmail lowercases and trims an address the way the registration
// flow stores it, so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
