package dto

import "resolvenow_backend/internal/repositories"

type AnalyticsResponse struct {
	TotalComplaints      int64                              `json:"totalComplaints"`
	ResolvedPercentage   float64                            `json:"resolvedPercentage"`
	PendingPercentage    float64                            `json:"pendingPercentage"`
	AvgResolutionSeconds float64                            `json:"avgResolutionTime"`
	AgentPerformance     []repositories.AgentPerformanceRow `json:"agentPerformance"`
	MonthlyTrends        []repositories.MonthlyTrendRow     `json:"monthlyTrends"`
}
