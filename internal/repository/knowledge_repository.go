package repository

import (
	"sical_backend/internal/model"

	"gorm.io/gorm"
)

type KnowledgeRepository struct {
	DB *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) *KnowledgeRepository {
	return &KnowledgeRepository{DB: db}
}

func (r *KnowledgeRepository) Create(k *model.Knowledge) error {
	return r.DB.Create(k).Error
}

func (r *KnowledgeRepository) FindByID(id uint) (*model.Knowledge, error) {
	var k model.Knowledge
	err := r.DB.Preload("Creator", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, username, avatar")
	}).First(&k, id).Error
	return &k, err
}

// List 分页列表，支持类别/难度筛选与排序
func (r *KnowledgeRepository) List(page, limit int, category, difficulty, sort string) ([]model.Knowledge, int64, error) {
	var items []model.Knowledge
	var total int64

	query := r.DB.Model(&model.Knowledge{})
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

func (r *KnowledgeRepository) ListByCategory(category string) ([]model.Knowledge, error) {
	var items []model.Knowledge
	err := r.DB.Where("category = ?", category).Order("created_at desc").Find(&items).Error
	return items, err
}

// Search 标题/描述/标签上的关键字检索
func (r *KnowledgeRepository) Search(keyword string) ([]model.Knowledge, error) {
	var items []model.Knowledge
	like := "%" + keyword + "%"
	err := r.DB.Where("title LIKE ? OR description LIKE ? OR tags LIKE ?", like, like, like).
		Order("view_count desc").
		Find(&items).Error
	return items, err
}

func (r *KnowledgeRepository) Update(k *model.Knowledge) error {
	return r.DB.Save(k).Error
}

func (r *KnowledgeRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Knowledge{}, id).Error
}

// AddViews 批量累加浏览次数（后台任务从Redis回写）
func (r *KnowledgeRepository) AddViews(id uint, delta int64) error {
	return r.DB.Model(&model.Knowledge{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", delta)).Error
}
