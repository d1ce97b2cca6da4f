package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"decorhub/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedFolders defines permitted destinations for image uploads.
var allowedFolders = map[string]bool{
	"services":   true,
	"decorators": true,
}

// StorageHandler uploads service and decorator photos.
type StorageHandler struct {
	Store storage.ImageStore
}

func NewStorageHandler(store storage.ImageStore) *StorageHandler {
	return &StorageHandler{Store: store}
}

// UploadImage handles POST /uploads/image (multipart field "file", form field "folder").
func (h *StorageHandler) UploadImage(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}
	folder := c.DefaultPostForm("folder", "services")
	if !allowedFolders[folder] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder; allowed values are 'services' and 'decorators'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	img, err := h.Store.UploadImage(c.Request.Context(), tempFilePath, "decorhub/"+folder)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to upload file", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, img)
}
