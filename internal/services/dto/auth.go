package dto

import "resolvenow_backend/internal/models"

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" validate:"is-user-role"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	// The role the caller claims to hold. Login fails when it does not
	// match the stored one.
	Role string `json:"role" binding:"required" validate:"is-user-role"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"fullName" binding:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Avatar   *string `json:"avatar" binding:"omitempty,url"`
}

type UserResponse struct {
	ID         string          `json:"id"`
	FullName   string          `json:"fullName"`
	Email      string          `json:"email"`
	Role       models.UserRole `json:"role"`
	IsApproved bool            `json:"isApproved"`
	IsVerified bool            `json:"isVerified"`
	Phone      string          `json:"phone,omitempty"`
	Avatar     string          `json:"avatar,omitempty"`
	CreatedAt  string          `json:"createdAt"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Role:       u.Role,
		IsApproved: u.IsApproved,
		IsVerified: u.IsVerified,
		Phone:      u.Phone,
		Avatar:     u.Avatar,
		CreatedAt:  u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
