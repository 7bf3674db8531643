package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/clients/gcs"
)

// maxUploadBytes caps catalog image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

var allowedImageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// UploadHandler pushes catalog and review imagery to the bucket and returns
// the public URL the client stores on the product or rating.
type UploadHandler struct {
	bucketService gcs.BucketService
}

func NewUploadHandler(bucketService gcs.BucketService) *UploadHandler {
	return &UploadHandler{bucketService: bucketService}
}

func (uh *UploadHandler) UploadImage(c *gin.Context) {
	if uh.bucketService == nil {
		RespondError(c, http.StatusServiceUnavailable, "uploads_disabled", fmt.Errorf("image uploads are not configured"))
		return
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("image file required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", fmt.Errorf("image exceeds %d bytes", maxUploadBytes))
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedImageExtensions[ext]
	if !ok {
		RespondError(c, http.StatusBadRequest, "unsupported_type", fmt.Errorf("unsupported image extension %q", ext))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	defer file.Close()

	folder := c.DefaultQuery("folder", "catalog")
	if folder != "catalog" && folder != "rating" {
		RespondError(c, http.StatusBadRequest, "invalid_folder", fmt.Errorf("unknown upload folder %q", folder))
		return
	}
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)
	if err := uh.bucketService.UploadFile(c.Request.Context(), key, contentType, file); err != nil {
		RespondError(c, http.StatusInternalServerError, "upload_failed", err)
		return
	}
	RespondOK(c, gin.H{"key": key, "url": uh.bucketService.GetPublicURL(key)})
}
