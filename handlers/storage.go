package handlers

import (
	"net/http"

	"github.com/msutyak/careconnect/services/storage"
	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Upload folders are allow-listed so clients cannot write outside the
// app's media namespaces.
var allowedFolders = map[string]bool{
	"avatars":        true,
	"messages":       true,
	"certifications": true,
}

// UploadFileHandler stores a media file and returns its public id and URL.
func UploadFileHandler(store storage.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		if authedProfileID(c) == "" {
			return
		}

		folder := c.PostForm("folder")
		if !allowedFolders[folder] {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "folder must be one of avatars, messages, certifications")
			return
		}
		fileHeader, err := c.FormFile("file")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "file is required")
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "could not read uploaded file")
			return
		}
		defer file.Close()

		publicID, err := store.UploadFile(c.Request.Context(), file, folder)
		if err != nil {
			logger.Error("file upload failed", zap.String("folder", folder), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Upload failed", "please try again")
			return
		}
		url, err := store.GetDownloadURL(c.Request.Context(), c.PostForm("resourceType"), publicID)
		if err != nil {
			logger.Error("url resolution failed", zap.String("public_id", publicID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Upload failed", "please try again")
			return
		}
		c.JSON(http.StatusOK, gin.H{"publicId": publicID, "url": url})
	}
}

// GetDownloadURLHandler resolves a stored asset to a delivery URL.
func GetDownloadURLHandler(store storage.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authedProfileID(c) == "" {
			return
		}

		publicID := c.Query("publicId")
		if publicID == "" {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "publicId is required")
			return
		}
		url, err := store.GetDownloadURL(c.Request.Context(), c.Query("resourceType"), publicID)
		if err != nil {
			getLogger(c).Error("url resolution failed", zap.String("public_id", publicID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to resolve URL", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
