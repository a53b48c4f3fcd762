package repositories

import (
	"resolvenow_backend/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *models.Message) error
	FindByComplaint(complaintID string) ([]models.Message, error)
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByComplaint returns the full thread, oldest first.
func (r *MessageRepositoryImpl) FindByComplaint(complaintID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Preload("Sender").
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
