package repositories

import (
	"errors"
	"strings"

	"resolvenow_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	FindAllExcept(userID string) ([]models.User, error)
	FindByRole(role models.UserRole) ([]models.User, error)
	FindIDsByRole(role models.UserRole) ([]string, error)
	FindIDsExcept(userID string) ([]string, error)
	CountByRole(role models.UserRole) (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}

	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) FindAllExcept(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id <> ?", userID).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) FindByRole(role models.UserRole) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", role).Order("full_name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) FindIDsByRole(role models.UserRole) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.User{}).Where("role = ?", role).Pluck("id", &ids).Error
	return ids, err
}

func (r *UserRepositoryImpl) FindIDsExcept(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.User{}).Where("id <> ?", userID).Pluck("id", &ids).Error
	return ids, err
}

func (r *UserRepositoryImpl) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
