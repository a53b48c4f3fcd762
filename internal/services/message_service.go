package services

import (
	"fmt"
	"strings"

	"resolvenow_backend/internal/logger"
	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"
	"resolvenow_backend/internal/services/dto"
	"resolvenow_backend/pkg/apperrors"
)

type MessageService interface {
	GetMessages(userID string, role models.UserRole, complaintID string) ([]dto.MessageResponse, error)

	// SendMessage appends to the thread and notifies the counterpart.
	// The returned recipient id is empty when nobody is on the other
	// side yet.
	SendMessage(userID string, role models.UserRole, complaintID, text string) (*dto.MessageResponse, string, error)
}

type MessageServiceImpl struct {
	messageRepo   repositories.MessageRepository
	complaintRepo repositories.ComplaintRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	complaintRepo repositories.ComplaintRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) MessageService {
	return &MessageServiceImpl{
		messageRepo:   messageRepo,
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *MessageServiceImpl) GetMessages(userID string, role models.UserRole, complaintID string) ([]dto.MessageResponse, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}

	if !complaint.CanAccess(userID, role) {
		return nil, apperrors.ErrComplaintAccessDenied
	}

	messages, err := s.messageRepo.FindByComplaint(complaint.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.ToMessageResponses(messages), nil
}

func (s *MessageServiceImpl) SendMessage(userID string, role models.UserRole, complaintID, text string) (*dto.MessageResponse, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", apperrors.NewBadRequestError("message text required")
	}

	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, "", err
	}

	if !complaint.CanAccess(userID, role) {
		return nil, "", apperrors.ErrComplaintAccessDenied
	}

	sender, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", apperrors.NewUnauthorizedError("user no longer exists")
		}
		return nil, "", apperrors.InternalError(err)
	}

	message := &models.Message{
		ComplaintID: complaint.ID,
		SenderID:    sender.ID,
		Text:        text,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	message.Sender = sender

	recipientID := counterpart(complaint, sender.ID)
	if recipientID != "" {
		if err := s.notifications.Notify(
			recipientID,
			models.NotificationTypeNewMessage,
			"New message",
			fmt.Sprintf("%s sent a message on complaint %s", sender.FullName, complaint.ComplaintID),
			&complaint.ID,
		); err != nil {
			logger.Warn("failed to notify message recipient", "complaint_id", complaint.ComplaintID, "error", err)
		}
	}

	resp := dto.ToMessageResponse(message)
	return &resp, recipientID, nil
}

// counterpart resolves the other side of a complaint conversation. The
// owner talks to the assigned agent and anyone on the staff side talks
// to the owner. An unassigned complaint has no counterpart for the
// owner.
func counterpart(complaint *models.Complaint, senderID string) string {
	if complaint.IsOwner(senderID) {
		if complaint.AssignedToID != nil {
			return *complaint.AssignedToID
		}
		return ""
	}
	return complaint.UserID
}

func (s *MessageServiceImpl) findComplaint(id string) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrComplaintNotFound) {
			return nil, apperrors.ErrComplaintNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return complaint, nil
}
