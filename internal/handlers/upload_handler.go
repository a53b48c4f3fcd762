package handlers

import (
	"net/http"

	"resolvenow_backend/internal/middleware"
	"resolvenow_backend/internal/services"
	"resolvenow_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	upload := rg.Group("/upload")
	upload.Use(middleware.AuthMiddleware())
	{
		upload.POST("", h.Upload)
	}
}

// Upload accepts multipart form files under the "files" field and
// returns the stored attachment descriptors.
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	files := form.File["files"]
	attachments, err := h.uploadService.UploadAttachments(c.Request.Context(), files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"attachments": attachments})
}
