package services

import (
	"resolvenow_backend/internal/logger"
	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"
	"resolvenow_backend/internal/services/dto"
	"resolvenow_backend/pkg/apperrors"
)

// Pusher delivers realtime events to connected clients. The websocket
// manager implements it; a nil-safe noop is used in tests.
type Pusher interface {
	PushToUser(userID string, event string, payload interface{})
}

// NoopPusher satisfies Pusher without delivering anything.
type NoopPusher struct{}

func (NoopPusher) PushToUser(string, string, interface{}) {}

type NotificationService interface {
	List(userID string, criteria repositories.NotificationCriteria) ([]dto.NotificationResponse, error)
	UnreadCount(userID string) (int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error

	// Notify persists one notification and pushes it to the user's
	// personal channel.
	Notify(userID, notificationType, title, message string, complaintID *string) error

	// NotifyMany fans one notification out to several users.
	NotifyMany(userIDs []string, notificationType, title, message string, complaintID *string) error

	// SendGlobalNotification stores an admin broadcast for every user
	// except the sender. Returns the number of recipients.
	SendGlobalNotification(senderID string, req *dto.BroadcastRequest) (int, error)
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	pusher           Pusher
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	pusher Pusher,
) NotificationService {
	if pusher == nil {
		pusher = NoopPusher{}
	}
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		pusher:           pusher,
	}
}

func (s *NotificationServiceImpl) List(userID string, criteria repositories.NotificationCriteria) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindUserNotifications(userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.ToNotificationResponses(notifications), nil
}

func (s *NotificationServiceImpl) UnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) MarkAsRead(userID, notificationID string) error {
	err := s.notificationRepo.MarkAsRead(userID, notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllAsRead(userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) Notify(userID, notificationType, title, message string, complaintID *string) error {
	notification := &models.Notification{
		UserID:      userID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
		ComplaintID: complaintID,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return apperrors.InternalError(err)
	}

	s.pusher.PushToUser(userID, "new_notification", dto.ToNotificationResponse(notification))
	return nil
}

func (s *NotificationServiceImpl) NotifyMany(userIDs []string, notificationType, title, message string, complaintID *string) error {
	if len(userIDs) == 0 {
		return nil
	}

	notifications := make([]*models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, &models.Notification{
			UserID:      id,
			Type:        notificationType,
			Title:       title,
			Message:     message,
			ComplaintID: complaintID,
		})
	}

	if err := s.notificationRepo.CreateBulk(notifications); err != nil {
		return apperrors.InternalError(err)
	}

	for _, n := range notifications {
		s.pusher.PushToUser(n.UserID, "new_notification", dto.ToNotificationResponse(n))
	}
	return nil
}

// SendGlobalNotification is durable only. Recipients see it on their
// next notification fetch rather than as a live event.
func (s *NotificationServiceImpl) SendGlobalNotification(senderID string, req *dto.BroadcastRequest) (int, error) {
	recipientIDs, err := s.userRepo.FindIDsExcept(senderID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	if len(recipientIDs) == 0 {
		return 0, nil
	}

	notifications := make([]*models.Notification, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		notifications = append(notifications, &models.Notification{
			UserID:  id,
			Type:    models.NotificationTypeBroadcast,
			Title:   req.Title,
			Message: req.Message,
		})
	}

	if err := s.notificationRepo.CreateBulk(notifications); err != nil {
		return 0, apperrors.InternalError(err)
	}

	logger.Info("admin broadcast stored", "sender_id", senderID, "recipients", len(recipientIDs))
	return len(recipientIDs), nil
}
