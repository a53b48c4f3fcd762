package repositories

import (
	"errors"

	"resolvenow_backend/internal/models"

	"gorm.io/gorm"
)

var ErrComplaintNotFound = errors.New("complaint not found")

// ComplaintCriteria filters the admin/agent listing. Page and Limit are
// applied after the filters.
type ComplaintCriteria struct {
	Status     string `form:"status"`
	AssignedTo string `form:"assignedTo"`
	Category   string `form:"category"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type ComplaintRepository interface {
	Create(complaint *models.Complaint) error
	FindByID(id string) (*models.Complaint, error)
	FindByUser(userID string) ([]models.Complaint, error)
	List(criteria ComplaintCriteria) ([]models.Complaint, int64, error)
	Save(complaint *models.Complaint) error
	AddSuggestion(suggestion *models.Suggestion) error
	ShortCodeExists(code string) (bool, error)
}

type ComplaintRepositoryImpl struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &ComplaintRepositoryImpl{db: db}
}

func (r *ComplaintRepositoryImpl) Create(complaint *models.Complaint) error {
	return r.db.Create(complaint).Error
}

func (r *ComplaintRepositoryImpl) FindByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.
		Preload("User").
		Preload("AssignedTo").
		Preload("Suggestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&complaint, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

func (r *ComplaintRepositoryImpl) FindByUser(userID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.
		Preload("AssignedTo").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&complaints).Error
	return complaints, err
}

func (r *ComplaintRepositoryImpl) List(criteria ComplaintCriteria) ([]models.Complaint, int64, error) {
	query := r.db.Model(&models.Complaint{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.AssignedTo != "" {
		query = query.Where("assigned_to_id = ?", criteria.AssignedTo)
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = 20
	}
	page := criteria.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	var complaints []models.Complaint
	err := query.
		Preload("User").
		Preload("AssignedTo").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&complaints).Error

	return complaints, total, err
}

func (r *ComplaintRepositoryImpl) Save(complaint *models.Complaint) error {
	return r.db.Save(complaint).Error
}

func (r *ComplaintRepositoryImpl) AddSuggestion(suggestion *models.Suggestion) error {
	return r.db.Create(suggestion).Error
}

func (r *ComplaintRepositoryImpl) ShortCodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Complaint{}).Where("complaint_id = ?", code).Count(&count).Error
	return count > 0, err
}
