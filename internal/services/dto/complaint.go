package dto

import (
	"encoding/json"
	"time"

	"resolvenow_backend/internal/models"
)

type CreateComplaintRequest struct {
	Title        string              `json:"title" form:"title" binding:"required,min=3,max=200"`
	Description  string              `json:"description" form:"description" binding:"required,min=10"`
	Category     string              `json:"category" form:"category" binding:"omitempty,oneof=product service billing delivery technical other"`
	Priority     string              `json:"priority" form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Address      string              `json:"address" form:"address" binding:"omitempty,max=500"`
	ContactPhone string              `json:"contactPhone" form:"contactPhone" binding:"omitempty,max=20"`
	PurchaseDate *time.Time          `json:"purchaseDate" form:"purchaseDate" time_format:"2006-01-02"`
	Attachments  []models.Attachment `json:"attachments" form:"-" binding:"omitempty,max=5,dive"`
}

type AssignComplaintRequest struct {
	AgentID string `json:"agentId" binding:"required,uuid"`
}

type UpdateStatusRequest struct {
	Status     string `json:"status" binding:"required" validate:"is-complaint-status"`
	Resolution string `json:"resolution" binding:"omitempty,max=2000"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

type SuggestionRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

type SuggestionResponse struct {
	ID        string          `json:"id"`
	FromID    string          `json:"fromId"`
	FromName  string          `json:"fromName"`
	FromRole  models.UserRole `json:"fromRole"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"createdAt"`
}

type FeedbackResponse struct {
	Rating      *int       `json:"rating,omitempty"`
	Comment     string     `json:"comment,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

type ComplaintResponse struct {
	ID           string                   `json:"id"`
	ComplaintID  string                   `json:"complaintId"`
	UserID       string                   `json:"userId"`
	User         *UserResponse            `json:"user,omitempty"`
	Title        string                   `json:"title"`
	Description  string                   `json:"description"`
	Category     models.ComplaintCategory `json:"category"`
	Priority     models.ComplaintPriority `json:"priority"`
	Status       models.ComplaintStatus   `json:"status"`
	Address      string                   `json:"address,omitempty"`
	ContactPhone string                   `json:"contactPhone,omitempty"`
	PurchaseDate *time.Time               `json:"purchaseDate,omitempty"`
	Attachments  []models.Attachment      `json:"attachments"`
	AssignedToID *string                  `json:"assignedToId,omitempty"`
	AssignedTo   *UserResponse            `json:"assignedTo,omitempty"`
	AssignedAt   *time.Time               `json:"assignedAt,omitempty"`
	Resolution   string                   `json:"resolution,omitempty"`
	ResolvedAt   *time.Time               `json:"resolvedAt,omitempty"`
	ClosedAt     *time.Time               `json:"closedAt,omitempty"`
	Feedback     *FeedbackResponse        `json:"feedback,omitempty"`
	Suggestions  []SuggestionResponse     `json:"suggestions,omitempty"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

type ComplaintListResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Pages      int                 `json:"pages"`
}

func ToComplaintResponse(c *models.Complaint) ComplaintResponse {
	resp := ComplaintResponse{
		ID:           c.ID,
		ComplaintID:  c.ComplaintID,
		UserID:       c.UserID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		Priority:     c.Priority,
		Status:       c.Status,
		Address:      c.Address,
		ContactPhone: c.ContactPhone,
		PurchaseDate: c.PurchaseDate,
		Attachments:  decodeAttachments(c.Attachments),
		AssignedToID: c.AssignedToID,
		AssignedAt:   c.AssignedAt,
		Resolution:   c.Resolution,
		ResolvedAt:   c.ResolvedAt,
		ClosedAt:     c.ClosedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	if c.User != nil {
		u := ToUserResponse(c.User)
		resp.User = &u
	}
	if c.AssignedTo != nil {
		a := ToUserResponse(c.AssignedTo)
		resp.AssignedTo = &a
	}
	if c.Feedback.Rating != nil {
		resp.Feedback = &FeedbackResponse{
			Rating:      c.Feedback.Rating,
			Comment:     c.Feedback.Comment,
			SubmittedAt: c.Feedback.SubmittedAt,
		}
	}
	for _, s := range c.Suggestions {
		resp.Suggestions = append(resp.Suggestions, SuggestionResponse{
			ID:        s.ID,
			FromID:    s.FromID,
			FromName:  s.FromName,
			FromRole:  s.FromRole,
			Text:      s.Text,
			CreatedAt: s.CreatedAt,
		})
	}
	return resp
}

func decodeAttachments(raw []byte) []models.Attachment {
	if len(raw) == 0 {
		return []models.Attachment{}
	}
	var attachments []models.Attachment
	if err := json.Unmarshal(raw, &attachments); err != nil {
		return []models.Attachment{}
	}
	return attachments
}

func ToComplaintResponses(complaints []models.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		out = append(out, ToComplaintResponse(&complaints[i]))
	}
	return out
}
