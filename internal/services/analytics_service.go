package services

import (
	"time"

	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"
	"resolvenow_backend/internal/services/dto"
	"resolvenow_backend/pkg/apperrors"
)

const trendMonths = 6

type AnalyticsService interface {
	Dashboard() (*dto.AnalyticsResponse, error)
}

type AnalyticsServiceImpl struct {
	analyticsRepo repositories.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo repositories.AnalyticsRepository) AnalyticsService {
	return &AnalyticsServiceImpl{analyticsRepo: analyticsRepo}
}

func (s *AnalyticsServiceImpl) Dashboard() (*dto.AnalyticsResponse, error) {
	total, err := s.analyticsRepo.CountComplaints()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resolved, err := s.analyticsRepo.CountByStatus(models.StatusResolved, models.StatusClosed)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	avgResolution, err := s.analyticsRepo.AverageResolutionSeconds()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	agentRows, err := s.analyticsRepo.AgentPerformance()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	since := monthFloor(time.Now()).AddDate(0, -(trendMonths - 1), 0)
	trends, err := s.analyticsRepo.MonthlyTrends(since)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.AnalyticsResponse{
		TotalComplaints:      total,
		AvgResolutionSeconds: avgResolution,
		AgentPerformance:     agentRows,
		MonthlyTrends:        trends,
	}
	if total > 0 {
		resp.ResolvedPercentage = float64(resolved) / float64(total) * 100
		resp.PendingPercentage = float64(total-resolved) / float64(total) * 100
	}
	return resp, nil
}

func monthFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
