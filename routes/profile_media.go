package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"khadamati-server/config"
	"khadamati-server/database"
	"khadamati-server/middleware"
	"khadamati-server/models"
)

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// RegisterProfileMediaRoutes adds the avatar upload endpoint
func RegisterProfileMediaRoutes(router *gin.RouterGroup) {
	router.POST("/profile/avatar", middleware.AuthMiddleware(), UploadAvatar)
}

// UploadAvatar uploads the authenticated user's avatar to Cloudinary
func UploadAvatar(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid form data"})
		return
	}

	header, err := c.FormFile("avatar")
	if err != nil || header == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file provided"})
		return
	}

	if !validateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid image file"})
		return
	}

	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		log.Printf("❌ Cloudinary not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Media storage not configured"})
		return
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Media storage initialization failed"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read file"})
		return
	}
	defer file.Close()

	overwrite := true
	uniqueFilename := true
	up, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:         "avatars/" + strconv.Itoa(int(user.ID)),
		PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		Overwrite:      &overwrite,
		UniqueFilename: &uniqueFilename,
		ResourceType:   "image",
	})
	if err != nil {
		log.Printf("❌ Avatar upload failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Avatar upload failed"})
		return
	}

	user.AvatarURL = &up.SecureURL
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save profile"})
		return
	}

	log.Printf("✅ Avatar uploaded for user %d: %s", user.ID, up.SecureURL)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"avatar_url": up.SecureURL,
	})
}
