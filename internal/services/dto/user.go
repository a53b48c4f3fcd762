package dto

type CreateAgentRequest struct {
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
}

type UserStatsResponse struct {
	TotalComplaints int64            `json:"totalComplaints"`
	TotalUsers      int64            `json:"totalUsers"`
	TotalAgents     int64            `json:"totalAgents"`
	ByStatus        map[string]int64 `json:"byStatus"`
	ByCategory      map[string]int64 `json:"byCategory"`
}
