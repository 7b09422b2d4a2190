package repository

import (
	"sical_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("assessment_questions.`order` asc, assessment_questions.created_at asc")
	}).First(&a, id).Error
	return &a, err
}

// ListPublished 公开列表，支持类别/难度/类型筛选
func (r *AssessmentRepository) ListPublished(page, limit int, category, difficulty, typ, sort string) ([]model.Assessment, int64, error) {
	var items []model.Assessment
	var total int64

	query := r.DB.Model(&model.Assessment{}).Where("is_published = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if typ != "" {
		query = query.Where("type = ?", typ)
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

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

func (r *AssessmentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&model.AssessmentQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assessment{}, id).Error
	})
}

func (r *AssessmentRepository) ReplaceQuestions(assessmentID uint, questions []model.AssessmentQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", assessmentID).Delete(&model.AssessmentQuestion{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].AssessmentID = assessmentID
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *AssessmentRepository) CreateRecord(rec *model.AssessmentRecord) error {
	return r.DB.Create(rec).Error
}

// ListRecordsByUser 用户已完成的测评记录
func (r *AssessmentRepository) ListRecordsByUser(userID uint) ([]model.AssessmentRecord, error) {
	var recs []model.AssessmentRecord
	err := r.DB.Where("user_id = ?", userID).
		Preload("Assessment", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, title, type, category, passing_score")
		}).
		Order("created_at desc").
		Find(&recs).Error
	return recs, err
}
