// File: /controllers/upload_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"inkwell-api/config"
	"inkwell-api/repositories"
)

// UploadController pushes media into object storage. The core never parses
// or stores image bytes itself; it only keeps the resulting URL on the user
// or blog record.
type UploadController struct {
	storage *minio.Client
	cfg     *config.Config
	users   repositories.UserStore
}

func NewUploadController(storage *minio.Client, cfg *config.Config, users repositories.UserStore) *UploadController {
	return &UploadController{
		storage: storage,
		cfg:     cfg,
		users:   users,
	}
}

// UploadAvatar stores the uploaded image under a per-user unique key and
// saves the public URL on the profile.
func (up *UploadController) UploadAvatar(c *gin.Context) {
	userID := c.GetString("user_id")

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	user, err := up.users.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	objectName := fmt.Sprintf("avatars/%s_%s%s", userID, uuid.New().String(), ext)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx := c.Request.Context()
	_, err = up.storage.PutObject(ctx, up.cfg.StorageBucket, objectName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		respondError(c, fmt.Errorf("upload to object storage: %w", err))
		return
	}

	scheme := "http"
	if up.cfg.StorageUseSSL {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, up.cfg.StorageEndpoint, up.cfg.StorageBucket, objectName)

	user.AvatarURL = &url
	user.LastActive = time.Now()
	if err := up.users.Save(user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
