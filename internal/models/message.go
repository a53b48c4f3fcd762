package models

// Message belongs to exactly one complaint thread. Append-only, ordered
// by creation time ascending.
type Message struct {
	BaseModel
	ComplaintID string `gorm:"not null;index:idx_messages_thread,priority:1" json:"complaintId"`
	SenderID    string `gorm:"not null" json:"senderId"`
	Sender      *User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Text        string `gorm:"not null" json:"text"`
}
