package services

import (
	"resolvenow_backend/internal/auth"
	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"
	"resolvenow_backend/internal/services/dto"
	"resolvenow_backend/pkg/apperrors"
)

type UserService interface {
	ListUsers(actorID string) ([]dto.UserResponse, error)
	ListAgents() ([]dto.UserResponse, error)
	CreateAgent(req *dto.CreateAgentRequest) (*dto.UserResponse, error)
	ApproveAgent(userID string) (*dto.UserResponse, error)
	Stats() (*dto.UserStatsResponse, error)
}

type UserServiceImpl struct {
	userRepo      repositories.UserRepository
	analyticsRepo repositories.AnalyticsRepository
}

func NewUserService(userRepo repositories.UserRepository, analyticsRepo repositories.AnalyticsRepository) UserService {
	return &UserServiceImpl{
		userRepo:      userRepo,
		analyticsRepo: analyticsRepo,
	}
}

// ListUsers returns everyone except the calling admin.
func (s *UserServiceImpl) ListUsers(actorID string) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAllExcept(actorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.ToUserResponse(&users[i]))
	}
	return out, nil
}

func (s *UserServiceImpl) ListAgents() ([]dto.UserResponse, error) {
	agents, err := s.userRepo.FindByRole(models.UserRoleAgent)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.UserResponse, 0, len(agents))
	for i := range agents {
		out = append(out, dto.ToUserResponse(&agents[i]))
	}
	return out, nil
}

// CreateAgent provisions a pre-approved agent account. Only reachable
// by admins, so no approval round trip is needed.
func (s *UserServiceImpl) CreateAgent(req *dto.CreateAgentRequest) (*dto.UserResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	agent := &models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleAgent,
		IsApproved:   true,
		IsVerified:   true,
		Phone:        req.Phone,
	}

	if err := s.userRepo.Create(agent); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToUserResponse(agent)
	return &resp, nil
}

func (s *UserServiceImpl) ApproveAgent(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Role != models.UserRoleAgent {
		return nil, apperrors.ErrInvalidAgent
	}

	if !user.IsApproved {
		user.IsApproved = true
		if err := s.userRepo.Update(user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *UserServiceImpl) Stats() (*dto.UserStatsResponse, error) {
	totalComplaints, err := s.analyticsRepo.CountComplaints()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalUsers, err := s.userRepo.CountByRole(models.UserRoleUser)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalAgents, err := s.userRepo.CountByRole(models.UserRoleAgent)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	statusRows, err := s.analyticsRepo.GroupByStatus()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byStatus := make(map[string]int64, len(statusRows))
	for _, row := range statusRows {
		byStatus[row.Status] = row.Count
	}

	categoryRows, err := s.analyticsRepo.GroupByCategory()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byCategory := make(map[string]int64, len(categoryRows))
	for _, row := range categoryRows {
		byCategory[row.Category] = row.Count
	}

	return &dto.UserStatsResponse{
		TotalComplaints: totalComplaints,
		TotalUsers:      totalUsers,
		TotalAgents:     totalAgents,
		ByStatus:        byStatus,
		ByCategory:      byCategory,
	}, nil
}
