package service

import (
	"errors"
	"strings"
	"time"

	"sical_backend/internal/model"
	"sical_backend/internal/repository"
	"sical_backend/internal/scoring"
	"sical_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LearningPathService struct {
	Repo *repository.LearningPathRepository
	DB   *gorm.DB
}

func NewLearningPathService(repo *repository.LearningPathRepository, db *gorm.DB) *LearningPathService {
	return &LearningPathService{Repo: repo, DB: db}
}

type PathStepRequest struct {
	Order         int    `json:"order"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	KnowledgeID   uint   `json:"knowledgeId"`
	EstimatedTime int    `json:"estimatedTime"`
	QuizIDs       []uint `json:"quizIds"`
}

type LearningPathRequest struct {
	Title         string            `json:"title" binding:"required"`
	Description   string            `json:"description" binding:"required"`
	Category      string            `json:"category" binding:"required"`
	Difficulty    string            `json:"difficulty" binding:"required"`
	EstimatedTime int               `json:"estimatedTime"`
	Tags          []string          `json:"tags"`
	IsPublished   bool              `json:"isPublished"`
	Steps         []PathStepRequest `json:"steps"`
}

func (s *LearningPathService) Create(creatorID uint, req LearningPathRequest) (*model.LearningPath, error) {
	p := &model.LearningPath{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		EstimatedTime: req.EstimatedTime,
		Tags:          strings.Join(req.Tags, ","),
		IsPublished:   req.IsPublished,
		CreatorID:     creatorID,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	if len(req.Steps) > 0 {
		if err := s.Repo.ReplaceSteps(p.ID, buildSteps(req.Steps)); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(p.ID)
}

func (s *LearningPathService) List(page, limit int, category, difficulty, sortParam string) ([]model.LearningPath, int64, error) {
	sort := util.ParseSort(sortParam, map[string]string{
		"createdAt":     "created_at",
		"title":         "title",
		"averageRating": "average_rating",
	})
	return s.Repo.ListPublished(page, limit, category, difficulty, sort)
}

// Get 未发布的路径仅创建者和管理员可见
func (s *LearningPathService) Get(id uint, userID uint, isManager bool) (*model.LearningPath, error) {
	p, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !p.IsPublished && p.CreatorID != userID && !isManager {
		return nil, util.ErrNotPublished
	}
	return p, nil
}

func (s *LearningPathService) Update(id uint, req LearningPathRequest) (*model.LearningPath, error) {
	p, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	p.Title = req.Title
	p.Description = req.Description
	p.Category = req.Category
	p.Difficulty = req.Difficulty
	p.EstimatedTime = req.EstimatedTime
	p.Tags = strings.Join(req.Tags, ",")
	p.IsPublished = req.IsPublished
	p.Steps = nil

	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	if req.Steps != nil {
		if err := s.Repo.ReplaceSteps(id, buildSteps(req.Steps)); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(id)
}

func (s *LearningPathService) Delete(id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *LearningPathService) Enroll(pathID, userID uint) (*model.PathEnrollment, error) {
	p, err := s.Repo.FindByID(pathID)
	if err != nil {
		return nil, err
	}
	if !p.IsPublished {
		return nil, util.ErrNotPublished
	}

	if _, err := s.Repo.FindEnrollment(pathID, userID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	e := &model.PathEnrollment{PathID: pathID, UserID: userID}
	if err := s.Repo.CreateEnrollment(e); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}
	return e, nil
}

func (s *LearningPathService) Complete(pathID, userID uint) (*model.PathEnrollment, error) {
	e, err := s.Repo.FindEnrollment(pathID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}
	if e.CompletedAt != nil {
		return nil, util.ErrAlreadyCompleted
	}

	now := time.Now()
	e.CompletedAt = &now
	if err := s.Repo.UpdateEnrollment(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *LearningPathService) ListEnrolled(userID uint) ([]model.LearningPath, error) {
	return s.Repo.ListEnrolled(userID)
}

// Rate 完成路径后才能评分；评分折叠同知识点，行锁防并发丢更新
func (s *LearningPathService) Rate(pathID, userID uint, rating int) (*model.LearningPath, error) {
	e, err := s.Repo.FindEnrollment(pathID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}
	if e.CompletedAt == nil {
		return nil, util.ErrMustComplete
	}

	var p model.LearningPath
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, pathID).Error; err != nil {
			return err
		}

		newAvg, newCount, err := scoring.FoldRating(p.AverageRating, p.RatingsCount, rating)
		if err != nil {
			return err
		}

		p.AverageRating = newAvg
		p.RatingsCount = newCount
		return tx.Model(&model.LearningPath{}).Where("id = ?", pathID).Updates(map[string]interface{}{
			"average_rating": newAvg,
			"ratings_count":  newCount,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func buildSteps(reqs []PathStepRequest) []model.PathStep {
	steps := make([]model.PathStep, 0, len(reqs))
	for i, r := range reqs {
		order := r.Order
		if order == 0 {
			order = i + 1
		}
		step := model.PathStep{
			Order:         order,
			Title:         r.Title,
			Description:   r.Description,
			KnowledgeID:   r.KnowledgeID,
			EstimatedTime: r.EstimatedTime,
		}
		if len(r.QuizIDs) > 0 {
			step.QuizIDs = util.MustJSON(r.QuizIDs)
		}
		steps = append(steps, step)
	}
	return steps
}
