package repository

import (
	"sical_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) Create(p *model.LearningPath) error {
	return r.DB.Create(p).Error
}

func (r *LearningPathRepository) FindByID(id uint) (*model.LearningPath, error) {
	var p model.LearningPath
	err := r.DB.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("path_steps.`order` asc")
	}).Preload("Steps.Knowledge", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, title, description, category, difficulty")
	}).First(&p, id).Error
	return &p, err
}

// ListPublished 公开列表，仅返回已发布的路径
func (r *LearningPathRepository) ListPublished(page, limit int, category, difficulty, sort string) ([]model.LearningPath, int64, error) {
	var items []model.LearningPath
	var total int64

	query := r.DB.Model(&model.LearningPath{}).Where("is_published = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if sort == "" {
		sort = "created_at desc"
	}
	offset := (page - 1) * limit
	err := query.Order(sort).Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

func (r *LearningPathRepository) Update(p *model.LearningPath) error {
	return r.DB.Save(p).Error
}

func (r *LearningPathRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("path_id = ?", id).Delete(&model.PathStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.LearningPath{}, id).Error
	})
}

func (r *LearningPathRepository) ReplaceSteps(pathID uint, steps []model.PathStep) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("path_id = ?", pathID).Delete(&model.PathStep{}).Error; err != nil {
			return err
		}
		for i := range steps {
			steps[i].ID = 0
			steps[i].PathID = pathID
		}
		if len(steps) == 0 {
			return nil
		}
		return tx.Create(&steps).Error
	})
}

func (r *LearningPathRepository) FindEnrollment(pathID, userID uint) (*model.PathEnrollment, error) {
	var e model.PathEnrollment
	err := r.DB.Where("path_id = ? AND user_id = ?", pathID, userID).First(&e).Error
	return &e, err
}

func (r *LearningPathRepository) CreateEnrollment(e *model.PathEnrollment) error {
	return r.DB.Create(e).Error
}

func (r *LearningPathRepository) UpdateEnrollment(e *model.PathEnrollment) error {
	return r.DB.Save(e).Error
}

// ListEnrolled 用户已报名的路径
func (r *LearningPathRepository) ListEnrolled(userID uint) ([]model.LearningPath, error) {
	var items []model.LearningPath
	err := r.DB.Joins("JOIN path_enrollments ON path_enrollments.path_id = learning_paths.id").
		Where("path_enrollments.user_id = ? AND path_enrollments.deleted_at IS NULL", userID).
		Order("path_enrollments.created_at desc").
		Find(&items).Error
	return items, err
}
