package handlers

import (
	"net/http"

	"resolvenow_backend/internal/middleware"
	"resolvenow_backend/internal/services"
	"resolvenow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    base,
		messageService: messageService,
	}
}

func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	messages := rg.Group("/messages/:complaintId")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.GET("", h.GetMessages)
		messages.POST("", h.SendMessage)
	}
}

func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	resp, err := h.messageService.GetMessages(userID, role, c.Param("complaintId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": resp})
}

// SendMessage stores the message and queues the counterpart's
// notification. Live fan-out to the complaint channel happens only on
// the websocket path.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, _, err := h.messageService.SendMessage(userID, role, c.Param("complaintId"), req.Text)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
