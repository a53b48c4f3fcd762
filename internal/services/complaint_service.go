package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"resolvenow_backend/internal/email"
	"resolvenow_backend/internal/logger"
	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"
	"resolvenow_backend/internal/services/dto"
	"resolvenow_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const shortCodeAttempts = 5

type ComplaintService interface {
	Create(userID string, req *dto.CreateComplaintRequest) (*dto.ComplaintResponse, error)
	Get(userID string, role models.UserRole, id string) (*dto.ComplaintResponse, error)
	My(userID string) ([]dto.ComplaintResponse, error)
	List(userID string, role models.UserRole, criteria repositories.ComplaintCriteria) (*dto.ComplaintListResponse, error)
	Assign(actorID string, role models.UserRole, complaintID string, req *dto.AssignComplaintRequest) (*dto.ComplaintResponse, error)
	UpdateStatus(actorID string, role models.UserRole, complaintID string, req *dto.UpdateStatusRequest) (*dto.ComplaintResponse, error)
	SubmitFeedback(userID string, complaintID string, req *dto.FeedbackRequest) (*dto.ComplaintResponse, error)
	AddSuggestion(actorID string, role models.UserRole, complaintID string, req *dto.SuggestionRequest) (*dto.SuggestionResponse, error)
}

type ComplaintServiceImpl struct {
	complaintRepo repositories.ComplaintRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
	mailer        *email.Mailer
}

func NewComplaintService(
	complaintRepo repositories.ComplaintRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
	mailer *email.Mailer,
) ComplaintService {
	return &ComplaintServiceImpl{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		notifications: notifications,
		mailer:        mailer,
	}
}

// newShortCode builds the public complaint identifier, RN- followed by
// eight uppercase hex characters.
func newShortCode() string {
	return "RN-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *ComplaintServiceImpl) generateShortCode() (string, error) {
	for i := 0; i < shortCodeAttempts; i++ {
		code := newShortCode()
		exists, err := s.complaintRepo.ShortCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique complaint id after %d attempts", shortCodeAttempts)
}

func (s *ComplaintServiceImpl) Create(userID string, req *dto.CreateComplaintRequest) (*dto.ComplaintResponse, error) {
	owner, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("user no longer exists")
		}
		return nil, apperrors.InternalError(err)
	}

	code, err := s.generateShortCode()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	category := models.ComplaintCategory(req.Category)
	if req.Category == "" {
		category = models.CategoryOther
	}
	priority := models.ComplaintPriority(req.Priority)
	if req.Priority == "" {
		priority = models.PriorityMedium
	}

	complaint := &models.Complaint{
		ComplaintID:  code,
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     category,
		Priority:     priority,
		Status:       models.StatusSubmitted,
		Address:      req.Address,
		ContactPhone: req.ContactPhone,
		PurchaseDate: req.PurchaseDate,
	}

	if len(req.Attachments) > 0 {
		raw, err := json.Marshal(req.Attachments)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		complaint.Attachments = raw
	}

	if err := s.complaintRepo.Create(complaint); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.notifications.Notify(
		owner.ID,
		models.NotificationTypeSubmitted,
		"Complaint registered",
		fmt.Sprintf("Your complaint %s has been registered: %s", complaint.ComplaintID, complaint.Title),
		&complaint.ID,
	); err != nil {
		logger.Warn("failed to notify owner about new complaint", "complaint_id", complaint.ComplaintID, "error", err)
	}

	go func(to, name, code, title string) {
		if err := s.mailer.SendComplaintConfirmation(to, name, code, title); err != nil {
			logger.Warn("failed to send complaint confirmation", "complaint_id", code, "error", err)
		}
	}(owner.Email, owner.FullName, complaint.ComplaintID, complaint.Title)

	complaint.User = owner
	resp := dto.ToComplaintResponse(complaint)
	return &resp, nil
}

func (s *ComplaintServiceImpl) Get(userID string, role models.UserRole, id string) (*dto.ComplaintResponse, error) {
	complaint, err := s.findComplaint(id)
	if err != nil {
		return nil, err
	}

	if !complaint.CanAccess(userID, role) {
		return nil, apperrors.ErrComplaintAccessDenied
	}

	resp := dto.ToComplaintResponse(complaint)
	return &resp, nil
}

func (s *ComplaintServiceImpl) My(userID string) ([]dto.ComplaintResponse, error) {
	complaints, err := s.complaintRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.ToComplaintResponses(complaints), nil
}

// List serves the staff view. Agents only ever see their own
// assignments regardless of the filter they send.
func (s *ComplaintServiceImpl) List(userID string, role models.UserRole, criteria repositories.ComplaintCriteria) (*dto.ComplaintListResponse, error) {
	if role == models.UserRoleAgent {
		criteria.AssignedTo = userID
	}

	complaints, total, err := s.complaintRepo.List(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = 20
	}
	page := criteria.Page
	if page <= 0 {
		page = 1
	}

	return &dto.ComplaintListResponse{
		Complaints: dto.ToComplaintResponses(complaints),
		Total:      total,
		Page:       page,
		Pages:      int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *ComplaintServiceImpl) Assign(actorID string, role models.UserRole, complaintID string, req *dto.AssignComplaintRequest) (*dto.ComplaintResponse, error) {
	if role != models.UserRoleAdmin {
		return nil, apperrors.ErrAdminOnly
	}

	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}

	agent, err := s.userRepo.FindByID(req.AgentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidAgent
		}
		return nil, apperrors.InternalError(err)
	}
	if agent.Role != models.UserRoleAgent {
		return nil, apperrors.ErrInvalidAgent
	}

	now := time.Now()
	complaint.AssignedToID = &agent.ID
	complaint.AssignedTo = agent
	complaint.AssignedAt = &now
	complaint.Status = models.StatusAssigned

	if err := s.complaintRepo.Save(complaint); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.notifications.Notify(
		complaint.UserID,
		models.NotificationTypeAssigned,
		"Complaint assigned",
		fmt.Sprintf("Your complaint %s has been assigned to %s", complaint.ComplaintID, agent.FullName),
		&complaint.ID,
	); err != nil {
		logger.Warn("failed to notify owner about assignment", "complaint_id", complaint.ComplaintID, "error", err)
	}

	resp := dto.ToComplaintResponse(complaint)
	return &resp, nil
}

func (s *ComplaintServiceImpl) UpdateStatus(actorID string, role models.UserRole, complaintID string, req *dto.UpdateStatusRequest) (*dto.ComplaintResponse, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}

	if role != models.UserRoleAdmin && !complaint.IsAssignedAgent(actorID) {
		return nil, apperrors.ErrComplaintAccessDenied
	}

	newStatus := models.ComplaintStatus(req.Status)
	if !newStatus.Valid() {
		return nil, apperrors.NewBadRequestError("unknown status: " + req.Status)
	}

	now := time.Now()
	complaint.Status = newStatus
	if req.Resolution != "" {
		complaint.Resolution = req.Resolution
	}
	// ResolvedAt reflects the first time the complaint reached a
	// terminal status.
	if newStatus.Terminal() && complaint.ResolvedAt == nil {
		complaint.ResolvedAt = &now
	}
	if newStatus == models.StatusClosed && complaint.ClosedAt == nil {
		complaint.ClosedAt = &now
	}

	if err := s.complaintRepo.Save(complaint); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.notifications.Notify(
		complaint.UserID,
		models.NotificationTypeStatusUpdate,
		"Complaint status updated",
		fmt.Sprintf("Your complaint %s is now %s", complaint.ComplaintID, newStatus),
		&complaint.ID,
	); err != nil {
		logger.Warn("failed to notify owner about status change", "complaint_id", complaint.ComplaintID, "error", err)
	}

	if complaint.User != nil {
		go func(to, name, code, status, resolution string) {
			if err := s.mailer.SendStatusUpdate(to, name, code, status, resolution); err != nil {
				logger.Warn("failed to send status update email", "complaint_id", code, "error", err)
			}
		}(complaint.User.Email, complaint.User.FullName, complaint.ComplaintID, string(newStatus), complaint.Resolution)
	}

	resp := dto.ToComplaintResponse(complaint)
	return &resp, nil
}

// SubmitFeedback lets the owner rate a resolved or closed complaint.
// Submitting again overwrites the previous rating.
func (s *ComplaintServiceImpl) SubmitFeedback(userID string, complaintID string, req *dto.FeedbackRequest) (*dto.ComplaintResponse, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}

	if !complaint.IsOwner(userID) {
		return nil, apperrors.ErrComplaintAccessDenied
	}
	if !complaint.Status.Terminal() {
		return nil, apperrors.ErrFeedbackNotAllowed
	}

	now := time.Now()
	rating := req.Rating
	complaint.Feedback = models.Feedback{
		Rating:      &rating,
		Comment:     req.Comment,
		SubmittedAt: &now,
	}

	if err := s.complaintRepo.Save(complaint); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToComplaintResponse(complaint)
	return &resp, nil
}

func (s *ComplaintServiceImpl) AddSuggestion(actorID string, role models.UserRole, complaintID string, req *dto.SuggestionRequest) (*dto.SuggestionResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.ErrSuggestionTextRequired
	}

	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}

	if !complaint.CanAccess(actorID, role) {
		return nil, apperrors.ErrComplaintAccessDenied
	}

	author, err := s.userRepo.FindByID(actorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("user no longer exists")
		}
		return nil, apperrors.InternalError(err)
	}

	suggestion := &models.Suggestion{
		ComplaintID: complaint.ID,
		FromID:      author.ID,
		FromName:    author.FullName,
		FromRole:    author.Role,
		Text:        text,
	}

	if err := s.complaintRepo.AddSuggestion(suggestion); err != nil {
		return nil, apperrors.InternalError(err)
	}

	adminIDs, err := s.userRepo.FindIDsByRole(models.UserRoleAdmin)
	if err != nil {
		logger.Warn("failed to load admins for suggestion fan-out", "complaint_id", complaint.ComplaintID, "error", err)
		adminIDs = nil
	}

	recipients := SuggestionRecipients(author.ID, author.Role, complaint.IsOwner(author.ID), complaint.AssignedToID, adminIDs)
	if err := s.notifications.NotifyMany(
		recipients,
		models.NotificationTypeSuggestion,
		"New suggestion",
		fmt.Sprintf("%s left a suggestion on complaint %s", author.FullName, complaint.ComplaintID),
		&complaint.ID,
	); err != nil {
		logger.Warn("failed to fan out suggestion notifications", "complaint_id", complaint.ComplaintID, "error", err)
	}

	return &dto.SuggestionResponse{
		ID:        suggestion.ID,
		FromID:    suggestion.FromID,
		FromName:  suggestion.FromName,
		FromRole:  suggestion.FromRole,
		Text:      suggestion.Text,
		CreatedAt: suggestion.CreatedAt,
	}, nil
}

func (s *ComplaintServiceImpl) findComplaint(id string) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrComplaintNotFound) {
			return nil, apperrors.ErrComplaintNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return complaint, nil
}
