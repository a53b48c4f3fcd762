package handlers

import (
	"resolvenow_backend/internal/services"
	"resolvenow_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Complaint    *ComplaintHandler
	Message      *MessageHandler
	Notification *NotificationHandler
	Analytics    *AnalyticsHandler
	Upload       *UploadHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, container.Auth),
		User:         NewUserHandler(base, container.User),
		Complaint:    NewComplaintHandler(base, container.Complaint, container.Upload),
		Message:      NewMessageHandler(base, container.Message),
		Notification: NewNotificationHandler(base, container.Notification),
		Analytics:    NewAnalyticsHandler(base, container.Analytics),
		Upload:       NewUploadHandler(base, container.Upload),
	}
}
