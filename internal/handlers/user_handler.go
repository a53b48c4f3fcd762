package handlers

import (
	"net/http"

	"resolvenow_backend/internal/middleware"
	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/services"
	"resolvenow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		users.GET("/all", h.List)
		users.GET("/stats", h.Stats)
		users.GET("/agents", h.ListAgents)
		users.POST("/agents", h.CreateAgent)
		users.PUT("/:id/approve", h.ApproveAgent)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	userID, _, ok := h.Identity(c)
	if !ok {
		return
	}

	resp, err := h.userService.ListUsers(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": resp})
}

func (h *UserHandler) ListAgents(c *gin.Context) {
	resp, err := h.userService.ListAgents()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"agents": resp})
}

func (h *UserHandler) CreateAgent(c *gin.Context) {
	var req dto.CreateAgentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.CreateAgent(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) ApproveAgent(c *gin.Context) {
	resp, err := h.userService.ApproveAgent(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Stats(c *gin.Context) {
	resp, err := h.userService.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
