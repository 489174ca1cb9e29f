// File: /controllers/user_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell-api/models"
	"inkwell-api/repositories"
	"inkwell-api/services"
)

type UserController struct {
	users       repositories.UserStore
	socialGraph *services.SocialGraphService
	engagement  *services.EngagementService
	feed        *services.FeedService
}

func NewUserController(users repositories.UserStore, socialGraph *services.SocialGraphService, engagement *services.EngagementService, feed *services.FeedService) *UserController {
	return &UserController{
		users:       users,
		socialGraph: socialGraph,
		engagement:  engagement,
		feed:        feed,
	}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.users.Get(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	user.Password = ""
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) GetUserProfile(c *gin.Context) {
	user, err := uc.users.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := uc.users.Get(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	user.LastActive = time.Now()

	if err := uc.users.Save(user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}

func (uc *UserController) GetDashboard(c *gin.Context) {
	stats, err := uc.feed.DashboardStats(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (uc *UserController) GetBookmarks(c *gin.Context) {
	blogs, err := uc.engagement.BookmarkedBlogs(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (uc *UserController) GetReadingHistory(c *gin.Context) {
	blogs, err := uc.engagement.ReadingHistoryBlogs(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (uc *UserController) GetActivityFeed(c *gin.Context) {
	events, err := uc.feed.ActivityFeed(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (uc *UserController) FollowUser(c *gin.Context) {
	if err := uc.socialGraph.Follow(c.GetString("user_id"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully followed user"})
}

func (uc *UserController) UnfollowUser(c *gin.Context) {
	if err := uc.socialGraph.Unfollow(c.GetString("user_id"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully unfollowed user"})
}

func (uc *UserController) GetFollowing(c *gin.Context) {
	users, err := uc.socialGraph.Following(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles(users))
}

func (uc *UserController) GetFollowers(c *gin.Context) {
	users, err := uc.socialGraph.Followers(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles(users))
}

func (uc *UserController) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	users, err := uc.users.Search(query, c.GetString("user_id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles(users))
}

func profiles(users []models.User) []models.Profile {
	out := make([]models.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out
}
