// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"

	"inkwell-api/config"
	"inkwell-api/controllers"
	"inkwell-api/middleware"
	"inkwell-api/repositories"
	"inkwell-api/services"
)

// SetupCORS returns a permissive CORS middleware for the API.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService, storage *minio.Client) {
	// Stores
	userStore := repositories.NewUserRepository(db)
	blogStore := repositories.NewBlogRepository(db)

	// Services
	socialGraph := services.NewSocialGraphService(userStore)
	engagement := services.NewEngagementService(userStore, blogStore)
	feed := services.NewFeedService(userStore, blogStore)

	// Controllers
	authController := controllers.NewAuthController(userStore, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(userStore, socialGraph, engagement, feed)
	blogController := controllers.NewBlogController(userStore, blogStore, engagement)
	uploadController := controllers.NewUploadController(storage, cfg, userStore)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.POST("/logout", authController.Logout)
		auth.POST("/verify-code", authController.VerifyCode)
		auth.POST("/resend-verification", authController.ResendVerificationCode)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.GET("/dashboard", userController.GetDashboard)
			users.GET("/bookmarks", userController.GetBookmarks)
			users.GET("/reading-history", userController.GetReadingHistory)
			users.GET("/activity-feed", userController.GetActivityFeed)
			users.GET("/following", userController.GetFollowing)
			users.GET("/followers", userController.GetFollowers)
			users.GET("/search", userController.SearchUsers)
			users.POST("/follow/:id", userController.FollowUser)
			users.DELETE("/follow/:id", userController.UnfollowUser)
			users.GET("/:id", userController.GetUserProfile)
		}

		// Blog routes
		blogs := protected.Group("/blogs")
		{
			blogs.GET("/", blogController.GetBlogs)
			blogs.POST("/", blogController.CreateBlog)
			blogs.GET("/:id", blogController.GetBlog)
			blogs.PUT("/:id", blogController.UpdateBlog)
			blogs.DELETE("/:id", blogController.DeleteBlog)
			blogs.POST("/:id/like", blogController.LikeBlog)
			blogs.DELETE("/:id/unlike", blogController.UnlikeBlog)
			blogs.POST("/:id/comments", blogController.CreateComment)
			blogs.GET("/:id/comments", blogController.GetComments)
			blogs.POST("/:id/bookmark", blogController.ToggleBookmark)
			blogs.POST("/:id/read", blogController.ReadBlog)
		}

		// Upload routes
		upload := protected.Group("/upload")
		{
			upload.POST("/avatar", uploadController.UploadAvatar)
		}
	}
}
