package models

import (
	"time"

	"gorm.io/datatypes"
)

type ComplaintStatus string

const (
	StatusSubmitted  ComplaintStatus = "submitted"
	StatusAssigned   ComplaintStatus = "assigned"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusClosed     ComplaintStatus = "closed"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusAssigned, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Terminal reports whether the status allows feedback to be attached.
func (s ComplaintStatus) Terminal() bool {
	return s == StatusResolved || s == StatusClosed
}

type ComplaintCategory string

const (
	CategoryProduct   ComplaintCategory = "product"
	CategoryService   ComplaintCategory = "service"
	CategoryBilling   ComplaintCategory = "billing"
	CategoryDelivery  ComplaintCategory = "delivery"
	CategoryTechnical ComplaintCategory = "technical"
	CategoryOther     ComplaintCategory = "other"
)

type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "low"
	PriorityMedium ComplaintPriority = "medium"
	PriorityHigh   ComplaintPriority = "high"
	PriorityUrgent ComplaintPriority = "urgent"
)

// Feedback is embedded into the complaint row; it is not addressable on
// its own. A nil Rating means no feedback has been submitted yet.
type Feedback struct {
	Rating      *int       `json:"rating,omitempty"`
	Comment     string     `json:"comment,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

// Suggestion is an append-only internal note on a complaint. Entries are
// owned by the complaint and immutable once written.
type Suggestion struct {
	BaseModel
	ComplaintID string   `gorm:"not null;index" json:"-"`
	FromID      string   `gorm:"not null" json:"fromId"`
	FromName    string   `gorm:"not null" json:"fromName"`
	FromRole    UserRole `gorm:"type:varchar(20);not null" json:"fromRole"`
	Text        string   `gorm:"not null" json:"text"`
}

type Complaint struct {
	BaseModel
	// Human-readable identifier, format RN-XXXXXXXX.
	ComplaintID string `gorm:"uniqueIndex;not null" json:"complaintId"`

	UserID string `gorm:"not null;index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Title       string            `gorm:"not null" json:"title"`
	Description string            `gorm:"not null" json:"description"`
	Category    ComplaintCategory `gorm:"type:varchar(20);default:'other'" json:"category"`
	Priority    ComplaintPriority `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	Status      ComplaintStatus   `gorm:"type:varchar(20);default:'submitted';index" json:"status"`

	Address      string     `json:"address,omitempty"`
	ContactPhone string     `json:"contactPhone,omitempty"`
	PurchaseDate *time.Time `json:"purchaseDate,omitempty"`

	// url+name pairs, stored as a jsonb array.
	Attachments datatypes.JSON `gorm:"type:jsonb" json:"attachments,omitempty"`

	AssignedToID *string    `gorm:"index" json:"assignedToId,omitempty"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	AssignedAt   *time.Time `json:"assignedAt,omitempty"`

	Resolution string     `json:"resolution,omitempty"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	ClosedAt   *time.Time `json:"closedAt,omitempty"`

	Feedback    Feedback     `gorm:"embedded;embeddedPrefix:feedback_" json:"feedback"`
	Suggestions []Suggestion `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE" json:"suggestions,omitempty"`
}

// Attachment is the shape of one element of Complaint.Attachments.
type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// IsOwner reports whether the given user owns the complaint.
func (c *Complaint) IsOwner(userID string) bool {
	return c.UserID == userID
}

// IsAssignedAgent reports whether the given user is the currently
// assigned agent.
func (c *Complaint) IsAssignedAgent(userID string) bool {
	return c.AssignedToID != nil && *c.AssignedToID == userID
}

// CanAccess reports whether the user may read or act on the complaint:
// the owner, the assigned agent, or an admin.
func (c *Complaint) CanAccess(userID string, role UserRole) bool {
	return c.IsOwner(userID) || c.IsAssignedAgent(userID) || role == UserRoleAdmin
}
