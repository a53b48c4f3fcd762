package services

import (
	"testing"
	"time"

	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnalyticsRepo returns canned rollups.
type stubAnalyticsRepo struct {
	total      int64
	terminal   int64
	avgSeconds float64
	agents     []repositories.AgentPerformanceRow
	trends     []repositories.MonthlyTrendRow
	byStatus   []repositories.StatusCountRow
	byCategory []repositories.CategoryCountRow

	trendsSince time.Time
}

func (s *stubAnalyticsRepo) CountComplaints() (int64, error) { return s.total, nil }

func (s *stubAnalyticsRepo) CountByStatus(statuses ...models.ComplaintStatus) (int64, error) {
	return s.terminal, nil
}

func (s *stubAnalyticsRepo) AverageResolutionSeconds() (float64, error) { return s.avgSeconds, nil }

func (s *stubAnalyticsRepo) AgentPerformance() ([]repositories.AgentPerformanceRow, error) {
	return s.agents, nil
}

func (s *stubAnalyticsRepo) MonthlyTrends(since time.Time) ([]repositories.MonthlyTrendRow, error) {
	s.trendsSince = since
	return s.trends, nil
}

func (s *stubAnalyticsRepo) GroupByStatus() ([]repositories.StatusCountRow, error) {
	return s.byStatus, nil
}

func (s *stubAnalyticsRepo) GroupByCategory() ([]repositories.CategoryCountRow, error) {
	return s.byCategory, nil
}

func TestAnalyticsDashboard(t *testing.T) {
	repo := &stubAnalyticsRepo{
		total:      10,
		terminal:   4,
		avgSeconds: 7200,
		agents: []repositories.AgentPerformanceRow{
			{AgentID: "a1", AgentName: "Andy", TotalAssigned: 6, ResolvedCount: 4, AvgResolutionSeconds: 7200},
		},
		trends: []repositories.MonthlyTrendRow{
			{Month: "2026-07", Count: 5, Resolved: 2},
			{Month: "2026-08", Count: 5, Resolved: 2},
		},
	}

	svc := NewAnalyticsService(repo)

	resp, err := svc.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.TotalComplaints)
	assert.InDelta(t, 40.0, resp.ResolvedPercentage, 0.001)
	assert.InDelta(t, 60.0, resp.PendingPercentage, 0.001)
	assert.Equal(t, 7200.0, resp.AvgResolutionSeconds)
	assert.Len(t, resp.AgentPerformance, 1)
	assert.Len(t, resp.MonthlyTrends, 2)

	// The trend window starts at the first day of the month, five
	// months back.
	now := time.Now()
	wantStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)
	assert.Equal(t, wantStart, repo.trendsSince)
}

func TestAnalyticsDashboardEmpty(t *testing.T) {
	svc := NewAnalyticsService(&stubAnalyticsRepo{})

	resp, err := svc.Dashboard()
	require.NoError(t, err)

	assert.Zero(t, resp.TotalComplaints)
	assert.Zero(t, resp.ResolvedPercentage)
	assert.Zero(t, resp.PendingPercentage)
	assert.Zero(t, resp.AvgResolutionSeconds)
}

func TestUserStats(t *testing.T) {
	users := newFakeUserRepo()
	users.add(&models.User{FullName: "U", Email: "u@example.com", Role: models.UserRoleUser})
	users.add(&models.User{FullName: "A", Email: "a@example.com", Role: models.UserRoleAgent})
	users.add(&models.User{FullName: "B", Email: "b@example.com", Role: models.UserRoleAgent})
	users.add(&models.User{FullName: "Adm", Email: "adm@example.com", Role: models.UserRoleAdmin})

	repo := &stubAnalyticsRepo{
		total: 7,
		byStatus: []repositories.StatusCountRow{
			{Status: "submitted", Count: 3},
			{Status: "resolved", Count: 4},
		},
		byCategory: []repositories.CategoryCountRow{
			{Category: "product", Count: 5},
			{Category: "billing", Count: 2},
		},
	}

	svc := NewUserService(users, repo)

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(7), stats.TotalComplaints)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalAgents)
	assert.Equal(t, int64(3), stats.ByStatus["submitted"])
	assert.Equal(t, int64(5), stats.ByCategory["product"])
}
