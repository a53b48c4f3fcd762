package models

import "time"

const (
	NotificationTypeSubmitted    = "complaint_submitted"
	NotificationTypeAssigned     = "complaint_assigned"
	NotificationTypeStatusUpdate = "status_update"
	NotificationTypeNewMessage   = "new_message"
	NotificationTypeSuggestion   = "suggestion"
	NotificationTypeBroadcast    = "admin_broadcast"
	NotificationTypeGeneral      = "general"
)

// Notification is a durable, per-user record. It is only ever mutated to
// flip the read flag.
type Notification struct {
	BaseModel
	UserID      string     `gorm:"not null;index" json:"userId"`
	Type        string     `gorm:"not null" json:"type"`
	Title       string     `gorm:"not null" json:"title"`
	Message     string     `json:"message"`
	ComplaintID *string    `gorm:"index" json:"complaintId,omitempty"`
	Read        bool       `gorm:"default:false;index" json:"read"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
}
