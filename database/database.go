// File: /database/database.go
package database

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inkwell-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// The follow sets, bookmarks, reading history, likes and comments are
	// embedded JSON columns, so users and blogs are the only tables.
	err := db.AutoMigrate(
		&models.User{},
		&models.Blog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Feed queries pull recent blogs per author.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_blogs_author_created ON blogs(author_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for blogs: %v\n", err)
	}

	// User search matches on name.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_name ON users(name)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for users: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	testUsers := []models.User{
		{
			ID:            "user-1",
			Name:          "John Doe",
			Email:         "john@example.com",
			Password:      string(hash),
			EmailVerified: true,
			Bio:           "Writes about distributed systems and long bike rides.",
		},
		{
			ID:            "user-2",
			Name:          "Jane Smith",
			Email:         "jane@example.com",
			Password:      string(hash),
			EmailVerified: true,
			Bio:           "Essayist. Coffee first.",
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Email, err)
		}
	}

	testBlogs := []models.Blog{
		{
			ID:          "blog-1",
			Title:       "Why event logs beat state snapshots",
			Description: "A tour of append-only designs and where they pay off.",
			AuthorID:    "user-1",
			IsPublished: true,
			CreatedAt:   time.Now().Add(-48 * time.Hour),
		},
		{
			ID:          "blog-2",
			Title:       "Slow mornings, fast feedback loops",
			Description: "Notes on a sustainable writing practice.",
			AuthorID:    "user-2",
			IsPublished: true,
			CreatedAt:   time.Now().Add(-24 * time.Hour),
		},
	}

	for _, blog := range testBlogs {
		if err := db.Create(&blog).Error; err != nil {
			fmt.Printf("Warning: Could not create test blog %s: %v\n", blog.Title, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
