// File: /controllers/blog_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inkwell-api/models"
	"inkwell-api/repositories"
	"inkwell-api/services"
	"inkwell-api/utils"
)

type BlogController struct {
	users      repositories.UserStore
	blogs      repositories.BlogStore
	engagement *services.EngagementService
}

func NewBlogController(users repositories.UserStore, blogs repositories.BlogStore, engagement *services.EngagementService) *BlogController {
	return &BlogController{
		users:      users,
		blogs:      blogs,
		engagement: engagement,
	}
}

type CreateBlogRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	RichContent *string  `json:"rich_content"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
	CoverImage  *string  `json:"cover_image"`
}

type UpdateBlogRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	RichContent *string  `json:"rich_content"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
	CoverImage  *string  `json:"cover_image"`
}

func (bc *BlogController) GetBlogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	all, err := bc.blogs.FindAll()
	if err != nil {
		respondError(c, err)
		return
	}

	total := int64(len(all))
	offset := (page - 1) * limit
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	blogs, err := bc.withAuthors(all[offset:end])
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendPaginated(c, blogs, page, limit, total)
}

func (bc *BlogController) CreateBlog(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	blog := models.Blog{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		RichContent: req.RichContent,
		Categories:  models.StringSet(req.Categories),
		Tags:        models.StringSet(req.Tags),
		AuthorID:    userID,
		IsPublished: true,
		CoverImage:  req.CoverImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := bc.blogs.Create(&blog); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, blog)
}

func (bc *BlogController) GetBlog(c *gin.Context) {
	blog, err := bc.blogs.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resolved, err := bc.withAuthors([]models.Blog{*blog})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolved[0])
}

func (bc *BlogController) UpdateBlog(c *gin.Context) {
	userID := c.GetString("user_id")

	blog, err := bc.blogs.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if blog.AuthorID != userID {
		respondError(c, models.ErrUnauthorized)
		return
	}

	var req UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Description != nil {
		blog.Description = *req.Description
	}
	if req.RichContent != nil {
		blog.RichContent = req.RichContent
	}
	if req.Categories != nil {
		blog.Categories = models.StringSet(req.Categories)
	}
	if req.Tags != nil {
		blog.Tags = models.StringSet(req.Tags)
	}
	if req.CoverImage != nil {
		blog.CoverImage = req.CoverImage
	}
	blog.UpdatedAt = time.Now()

	if err := bc.blogs.Save(blog); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// DeleteBlog removes the blog row, and with it the embedded likes and
// comments. Bookmarks and reading-history entries pointing at it are left
// behind and filtered out at read time.
func (bc *BlogController) DeleteBlog(c *gin.Context) {
	userID := c.GetString("user_id")

	blog, err := bc.blogs.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if blog.AuthorID != userID {
		respondError(c, models.ErrUnauthorized)
		return
	}

	if err := bc.blogs.Delete(blog.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted"})
}

func (bc *BlogController) LikeBlog(c *gin.Context) {
	count, err := bc.engagement.Like(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": count})
}

func (bc *BlogController) UnlikeBlog(c *gin.Context) {
	count, err := bc.engagement.Unlike(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": count})
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

func (bc *BlogController) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comments, err := bc.engagement.AddComment(c.GetString("user_id"), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comments)
}

func (bc *BlogController) GetComments(c *gin.Context) {
	comments, err := bc.engagement.Comments(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (bc *BlogController) ToggleBookmark(c *gin.Context) {
	bookmarked, err := bc.engagement.ToggleBookmark(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

// ReadBlog records a view: the blog moves to the front of the reader's
// history and the blog's read counter goes up.
func (bc *BlogController) ReadBlog(c *gin.Context) {
	if err := bc.engagement.RecordRead(c.GetString("user_id"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Read recorded"})
}

// withAuthors decorates blogs with their author profiles. Blogs whose
// author no longer exists are kept with an empty profile rather than
// dropped; the blog itself is still valid content.
func (bc *BlogController) withAuthors(blogs []models.Blog) ([]models.BlogWithAuthor, error) {
	out := make([]models.BlogWithAuthor, 0, len(blogs))
	for _, blog := range blogs {
		item := models.BlogWithAuthor{Blog: blog}
		author, err := bc.users.Get(blog.AuthorID)
		if err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				return nil, err
			}
		} else {
			item.Author = author.Profile()
		}
		out = append(out, item)
	}
	return out, nil
}
