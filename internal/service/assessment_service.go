package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"sical_backend/internal/model"
	"sical_backend/internal/repository"
	"sical_backend/internal/scoring"
	"sical_backend/internal/util"
	"sical_backend/pkg/monitoring"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentService struct {
	Repo *repository.AssessmentRepository
	DB   *gorm.DB
}

func NewAssessmentService(repo *repository.AssessmentRepository, db *gorm.DB) *AssessmentService {
	return &AssessmentService{Repo: repo, DB: db}
}

type QuestionRequest struct {
	QuestionType string          `json:"questionType" binding:"required"`
	Content      string          `json:"content" binding:"required"`
	Options      json.RawMessage `json:"options"`
	Answer       json.RawMessage `json:"answer"`
	Points       int             `json:"points"`
	Order        int             `json:"order"`
	Explanation  string          `json:"explanation"`
}

type AssessmentRequest struct {
	Title        string            `json:"title" binding:"required"`
	Description  string            `json:"description"`
	Type         string            `json:"type" binding:"required"`
	Category     string            `json:"category" binding:"required"`
	Difficulty   string            `json:"difficulty"`
	TimeLimit    int               `json:"timeLimit"`
	PassingScore *int              `json:"passingScore"`
	Tags         []string          `json:"tags"`
	IsPublished  bool              `json:"isPublished"`
	Questions    []QuestionRequest `json:"questions"`
}

func (s *AssessmentService) Create(creatorID uint, req AssessmentRequest) (*model.Assessment, error) {
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	passing := 60
	if req.PassingScore != nil {
		passing = *req.PassingScore
	}
	a := &model.Assessment{
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		TimeLimit:    req.TimeLimit,
		PassingScore: passing,
		Tags:         strings.Join(req.Tags, ","),
		IsPublished:  req.IsPublished,
		CreatorID:    creatorID,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	if len(questions) > 0 {
		if err := s.Repo.ReplaceQuestions(a.ID, questions); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(a.ID)
}

func (s *AssessmentService) List(page, limit int, category, difficulty, typ, sortParam string) ([]model.Assessment, int64, error) {
	sort := util.ParseSort(sortParam, map[string]string{
		"createdAt":    "created_at",
		"title":        "title",
		"averageScore": "average_score",
	})
	return s.Repo.ListPublished(page, limit, category, difficulty, typ, sort)
}

// Get 普通用户拿到的题目不含答案和解析；创建者和管理员可见完整内容
func (s *AssessmentService) Get(id uint, userID uint, isManager bool) (*model.Assessment, error) {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !a.IsPublished && a.CreatorID != userID && !isManager {
		return nil, util.ErrNotPublished
	}
	if !isManager && a.CreatorID != userID {
		for i := range a.Questions {
			a.Questions[i].Answer = nil
			a.Questions[i].Explanation = ""
		}
	}
	return a, nil
}

func (s *AssessmentService) Update(id uint, req AssessmentRequest) (*model.Assessment, error) {
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	a, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	a.Title = req.Title
	a.Description = req.Description
	a.Type = req.Type
	a.Category = req.Category
	a.Difficulty = req.Difficulty
	a.TimeLimit = req.TimeLimit
	if req.PassingScore != nil {
		a.PassingScore = *req.PassingScore
	}
	a.Tags = strings.Join(req.Tags, ",")
	a.IsPublished = req.IsPublished
	a.Questions = nil

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	if req.Questions != nil {
		if err := s.Repo.ReplaceQuestions(id, questions); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(id)
}

func (s *AssessmentService) Delete(id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// Submit 对一次提交判分并落库。
// 判分本身是纯计算；完成数与平均分的 读取-折叠-写回 放在行锁事务里，
// 并发提交不会丢失统计更新。
func (s *AssessmentService) Submit(id, userID uint, rawAnswers json.RawMessage) (*model.AssessmentRecord, error) {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !a.IsPublished {
		return nil, util.ErrNotPublished
	}

	answers, err := scoring.ParseAnswers(rawAnswers)
	if err != nil {
		return nil, err
	}

	questions := make([]scoring.Question, 0, len(a.Questions))
	for _, q := range a.Questions {
		correct := scoring.Absent()
		if len(q.Answer) > 0 {
			if err := json.Unmarshal(q.Answer, &correct); err != nil {
				return nil, err
			}
		}
		questions = append(questions, scoring.Question{
			ID:            strconv.FormatUint(uint64(q.ID), 10),
			Type:          scoring.QuestionType(q.QuestionType),
			CorrectAnswer: correct,
			Points:        q.Points,
		})
	}

	result, err := scoring.Score(questions, answers, a.PassingScore)
	if err != nil {
		return nil, err
	}

	resultsJSON, err := json.Marshal(result.Results)
	if err != nil {
		return nil, err
	}

	rec := &model.AssessmentRecord{
		UserID:       userID,
		AssessmentID: id,
		Answers:      rawAnswers,
		Results:      resultsJSON,
		Score:        result.Score,
		Passed:       result.Passed,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		var locked model.Assessment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, id).Error; err != nil {
			return err
		}

		newAvg, newCount, err := scoring.FoldScore(locked.AverageScore, locked.CompletedCount, result.Score)
		if err != nil {
			return err
		}
		return tx.Model(&model.Assessment{}).Where("id = ?", id).Updates(map[string]interface{}{
			"average_score":   newAvg,
			"completed_count": newCount,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	monitoring.ObserveSubmission(result.Passed)
	return rec, nil
}

func (s *AssessmentService) ListMyRecords(userID uint) ([]model.AssessmentRecord, error) {
	return s.Repo.ListRecordsByUser(userID)
}

// buildQuestions 未填分值默认1分；负分在入库前拒绝，避免把总分拉到0以下
func buildQuestions(reqs []QuestionRequest) ([]model.AssessmentQuestion, error) {
	questions := make([]model.AssessmentQuestion, 0, len(reqs))
	for i, r := range reqs {
		if r.Points < 0 {
			return nil, util.ErrNegativePoints
		}
		points := r.Points
		if points == 0 {
			points = 1
		}
		order := r.Order
		if order == 0 {
			order = i + 1
		}
		questions = append(questions, model.AssessmentQuestion{
			QuestionType: r.QuestionType,
			Content:      r.Content,
			Options:      r.Options,
			Answer:       r.Answer,
			Points:       points,
			Order:        order,
			Explanation:  r.Explanation,
		})
	}
	return questions, nil
}
