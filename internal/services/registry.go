package services

import (
	"resolvenow_backend/internal/config"
	"resolvenow_backend/internal/email"
	"resolvenow_backend/internal/repositories"
	"resolvenow_backend/internal/storage"

	"gorm.io/gorm"
)

// ServiceContainer wires every service with its repositories. Built
// once at startup and handed to the handler layer.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Complaint    ComplaintService
	Message      MessageService
	Notification NotificationService
	Analytics    AnalyticsService
	Upload       UploadService
}

func NewServiceContainer(db *gorm.DB, cfg *config.Config, mailer *email.Mailer, store storage.Storage, pusher Pusher) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	complaintRepo := repositories.NewComplaintRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	notificationService := NewNotificationService(notificationRepo, userRepo, pusher)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, mailer, cfg.FrontendURL),
		User:         NewUserService(userRepo, analyticsRepo),
		Complaint:    NewComplaintService(complaintRepo, userRepo, notificationService, mailer),
		Message:      NewMessageService(messageRepo, complaintRepo, userRepo, notificationService),
		Notification: notificationService,
		Analytics:    NewAnalyticsService(analyticsRepo),
		Upload:       NewUploadService(store, cfg.Upload.MaxSize, cfg.Upload.AllowedExtensions),
	}
}
