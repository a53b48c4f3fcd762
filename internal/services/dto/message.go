package dto

import (
	"time"

	"resolvenow_backend/internal/models"
)

type SendMessageRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

type MessageResponse struct {
	ID          string    `json:"id"`
	ComplaintID string    `json:"complaintId"`
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"senderName,omitempty"`
	SenderRole  string    `json:"senderRole,omitempty"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToMessageResponse(m *models.Message) MessageResponse {
	resp := MessageResponse{
		ID:          m.ID,
		ComplaintID: m.ComplaintID,
		SenderID:    m.SenderID,
		Text:        m.Text,
		CreatedAt:   m.CreatedAt,
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.FullName
		resp.SenderRole = string(m.Sender.Role)
	}
	return resp
}

func ToMessageResponses(messages []models.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, ToMessageResponse(&messages[i]))
	}
	return out
}
