package services

import (
	"fmt"

	"resolvenow_backend/internal/auth"
	"resolvenow_backend/internal/email"
	"resolvenow_backend/internal/logger"
	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"
	"resolvenow_backend/internal/services/dto"
	"resolvenow_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	VerifyEmail(token string) error
	Me(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	mailer      *email.Mailer
	frontendURL string
}

func NewAuthService(userRepo repositories.UserRepository, mailer *email.Mailer, frontendURL string) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// Register creates the account and returns a session token right away.
// Agents start unapproved and cannot log in again until an admin
// approves them, but the freshly issued token lets them see their
// pending state.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.UserRole(req.Role)
	if req.Role == "" {
		role = models.UserRoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewBadRequestError("invalid role")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	verificationToken, err := auth.GenerateEmailToken(req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		FullName:          req.FullName,
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              role,
		IsApproved:        role != models.UserRoleAgent,
		IsVerified:        false,
		VerificationToken: verificationToken,
		Phone:             req.Phone,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Delivery failures must not fail registration.
	go func(u models.User, vt string) {
		link := fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, vt)
		if err := s.mailer.SendVerification(u.Email, u.FullName, link); err != nil {
			logger.Warn("failed to send verification email", "user_id", u.ID, "error", err)
		}
	}(*user, verificationToken)

	return &dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

// Login authenticates the user. The declared role must match the
// stored one, and agents must be approved first.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Role != models.UserRole(req.Role) {
		return nil, apperrors.ErrRoleMismatch
	}

	if user.Role == models.UserRoleAgent && !user.IsApproved {
		return nil, apperrors.ErrPendingApproval
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) VerifyEmail(token string) error {
	emailAddr, err := auth.ParseEmailToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if user.IsVerified {
		return nil
	}

	user.IsVerified = true
	user.VerificationToken = ""

	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) Me(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("user no longer exists")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *AuthServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("user no longer exists")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}
