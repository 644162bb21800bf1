package persistent

import (
	"campus-market/internal/entity"
	"campus-market/pkg/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) (*entity.User, error) {
	userModel := &models.User{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Password: user.Password,
		Campus:   user.Campus,
		Role:     models.UserRole(user.Role),
		IsActive: true,
	}
	if err := r.db.Create(userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(userModel), nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel models.User
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel models.User
	if err := r.db.Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Update(user *entity.User) error {
	return r.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"username": user.Username,
		"campus":   user.Campus,
	}).Error
}
