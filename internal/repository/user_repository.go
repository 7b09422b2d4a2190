package repository

import (
	"time"

	"sical_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// FindByResetToken 按哈希后的重置令牌查找未过期的用户
func (r *UserRepository) FindByResetToken(hashedToken string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("reset_password_token = ? AND reset_password_expire > ?", hashedToken, time.Now()).
		First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("last_login", time.Now()).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("last_seen", time.Now()).Error
}

func (r *UserRepository) ListProgress(userID uint) ([]model.LearningProgress, error) {
	var items []model.LearningProgress
	err := r.DB.Where("user_id = ?", userID).
		Preload("Knowledge", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, title, category")
		}).
		Order("last_accessed desc").
		Find(&items).Error
	return items, err
}

func (r *UserRepository) FindProgress(userID, knowledgeID uint) (*model.LearningProgress, error) {
	var item model.LearningProgress
	err := r.DB.Where("user_id = ? AND knowledge_id = ?", userID, knowledgeID).First(&item).Error
	return &item, err
}

func (r *UserRepository) SaveProgress(item *model.LearningProgress) error {
	return r.DB.Save(item).Error
}
