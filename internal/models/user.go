package models

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAgent UserRole = "agent"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRoleAgent, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	BaseModel
	FullName     string   `gorm:"not null" json:"fullName"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	// Agents are created unapproved and cannot log in until an admin
	// flips the flag. Users and admins are approved at registration.
	IsApproved bool `gorm:"default:true" json:"isApproved"`
	IsVerified bool `gorm:"default:false" json:"isVerified"`

	VerificationToken string `json:"-"`
	Phone             string `json:"phone,omitempty"`
	Avatar            string `json:"avatar,omitempty"`
}
