package repositories

import (
	"time"

	"resolvenow_backend/internal/models"

	"gorm.io/gorm"
)

// AgentPerformanceRow is one agent's rollup, joined against the users
// table for the display name.
type AgentPerformanceRow struct {
	AgentID              string  `json:"agentId"`
	AgentName            string  `json:"agentName"`
	TotalAssigned        int64   `json:"totalAssigned"`
	ResolvedCount        int64   `json:"resolvedCount"`
	AvgResolutionSeconds float64 `json:"avgResolutionTime"`
}

// MonthlyTrendRow is one calendar month's submission/resolution counts.
type MonthlyTrendRow struct {
	Month    string `json:"month"` // YYYY-MM
	Count    int64  `json:"count"`
	Resolved int64  `json:"resolved"`
}

type StatusCountRow struct {
	Status string
	Count  int64
}

type CategoryCountRow struct {
	Category string
	Count    int64
}

type AnalyticsRepository interface {
	CountComplaints() (int64, error)
	CountByStatus(statuses ...models.ComplaintStatus) (int64, error)
	AverageResolutionSeconds() (float64, error)
	AgentPerformance() ([]AgentPerformanceRow, error)
	MonthlyTrends(since time.Time) ([]MonthlyTrendRow, error)
	GroupByStatus() ([]StatusCountRow, error)
	GroupByCategory() ([]CategoryCountRow, error)
}

type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

func (r *AnalyticsRepositoryImpl) CountComplaints() (int64, error) {
	var count int64
	err := r.db.Model(&models.Complaint{}).Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) CountByStatus(statuses ...models.ComplaintStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Complaint{}).Where("status IN ?", statuses).Count(&count).Error
	return count, err
}

// AverageResolutionSeconds averages resolved_at - created_at over
// resolved and closed complaints. Zero when none exist.
func (r *AnalyticsRepositoryImpl) AverageResolutionSeconds() (float64, error) {
	var avg float64
	err := r.db.Raw(`
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (resolved_at - created_at))), 0)
		FROM complaints
		WHERE status IN ('resolved', 'closed') AND resolved_at IS NOT NULL
	`).Scan(&avg).Error
	return avg, err
}

func (r *AnalyticsRepositoryImpl) AgentPerformance() ([]AgentPerformanceRow, error) {
	var rows []AgentPerformanceRow
	err := r.db.Raw(`
		SELECT
			u.id AS agent_id,
			u.full_name AS agent_name,
			COUNT(c.id) AS total_assigned,
			COUNT(c.id) FILTER (WHERE c.status IN ('resolved', 'closed')) AS resolved_count,
			COALESCE(AVG(EXTRACT(EPOCH FROM (c.resolved_at - c.created_at)))
				FILTER (WHERE c.status IN ('resolved', 'closed') AND c.resolved_at IS NOT NULL), 0) AS avg_resolution_seconds
		FROM complaints c
		JOIN users u ON u.id = c.assigned_to_id
		WHERE c.assigned_to_id IS NOT NULL
		GROUP BY u.id, u.full_name
		ORDER BY total_assigned DESC
	`).Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) MonthlyTrends(since time.Time) ([]MonthlyTrendRow, error) {
	var rows []MonthlyTrendRow
	err := r.db.Raw(`
		SELECT
			to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
			COUNT(*) AS count,
			COUNT(*) FILTER (WHERE status IN ('resolved', 'closed')) AS resolved
		FROM complaints
		WHERE created_at >= ?
		GROUP BY date_trunc('month', created_at)
		ORDER BY date_trunc('month', created_at) ASC
	`, since).Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) GroupByStatus() ([]StatusCountRow, error) {
	var rows []StatusCountRow
	err := r.db.Model(&models.Complaint{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) GroupByCategory() ([]CategoryCountRow, error) {
	var rows []CategoryCountRow
	err := r.db.Model(&models.Complaint{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&rows).Error
	return rows, err
}
