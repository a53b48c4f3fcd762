package handlers

import (
	"net/http"
	"strings"

	"resolvenow_backend/internal/middleware"
	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"
	"resolvenow_backend/internal/services"
	"resolvenow_backend/internal/services/dto"
	"resolvenow_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	*BaseHandler
	complaintService services.ComplaintService
	uploadService    services.UploadService
}

func NewComplaintHandler(base *BaseHandler, complaintService services.ComplaintService, uploadService services.UploadService) *ComplaintHandler {
	return &ComplaintHandler{
		BaseHandler:      base,
		complaintService: complaintService,
		uploadService:    uploadService,
	}
}

func (h *ComplaintHandler) RegisterRoutes(rg *gin.RouterGroup) {
	complaints := rg.Group("/complaints")
	complaints.Use(middleware.AuthMiddleware())
	{
		complaints.POST("", h.Create)
		complaints.GET("/my", h.My)
		complaints.GET("/:id", h.Get)
		complaints.POST("/:id/feedback", h.SubmitFeedback)
		complaints.POST("/:id/suggestion", h.AddSuggestion)

		staff := complaints.Group("")
		staff.Use(middleware.RequireRoles(models.UserRoleAgent, models.UserRoleAdmin))
		{
			staff.GET("/list", h.List)
			staff.PUT("/:id/status", h.UpdateStatus)
		}

		admin := complaints.Group("")
		admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
		{
			admin.PUT("/:id/assign", h.Assign)
		}
	}
}

// Create accepts either a JSON body or a multipart form with up to
// five files under the "attachments" field.
func (h *ComplaintHandler) Create(c *gin.Context) {
	userID, _, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.CreateComplaintRequest
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if !h.bindMultipartCreate(c, &req) {
			return
		}
	} else if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.complaintService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ComplaintHandler) bindMultipartCreate(c *gin.Context, req *dto.CreateComplaintRequest) bool {
	if err := c.ShouldBind(req); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return false
	}

	if files := form.File["attachments"]; len(files) > 0 {
		attachments, err := h.uploadService.UploadAttachments(c.Request.Context(), files)
		if err != nil {
			h.HandleServiceError(c, err)
			return false
		}
		req.Attachments = attachments
	}
	return true
}

func (h *ComplaintHandler) My(c *gin.Context) {
	userID, _, ok := h.Identity(c)
	if !ok {
		return
	}

	resp, err := h.complaintService.My(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": resp})
}

func (h *ComplaintHandler) Get(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	resp, err := h.complaintService.Get(userID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ComplaintHandler) List(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	var criteria repositories.ComplaintCriteria
	if !h.BindQuery(c, &criteria) {
		return
	}

	resp, err := h.complaintService.List(userID, role, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ComplaintHandler) Assign(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.AssignComplaintRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.complaintService.Assign(userID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.complaintService.UpdateStatus(userID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ComplaintHandler) SubmitFeedback(c *gin.Context) {
	userID, _, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.FeedbackRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.complaintService.SubmitFeedback(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ComplaintHandler) AddSuggestion(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.SuggestionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.complaintService.AddSuggestion(userID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
