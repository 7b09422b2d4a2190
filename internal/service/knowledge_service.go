package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"sical_backend/internal/model"
	"sical_backend/internal/repository"
	"sical_backend/internal/scoring"
	"sical_backend/internal/util"
	"sical_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	knowledgeCacheTTL      = 10 * time.Minute
	knowledgeCachePrefix   = "knowledge:detail:"
	knowledgeViewsPrefix   = "knowledge:views:"
	knowledgeViewsScanGlob = "knowledge:views:*"
)

type KnowledgeService struct {
	Repo    *repository.KnowledgeRepository
	Storage *StorageService
	DB      *gorm.DB
	RDB     *redis.Client
}

func NewKnowledgeService(repo *repository.KnowledgeRepository, storage *StorageService, db *gorm.DB, rdb *redis.Client) *KnowledgeService {
	return &KnowledgeService{Repo: repo, Storage: storage, DB: db, RDB: rdb}
}

type KnowledgeRequest struct {
	Title          string            `json:"title" binding:"required"`
	Description    string            `json:"description" binding:"required"`
	Content        string            `json:"content" binding:"required"`
	Category       string            `json:"category" binding:"required"`
	Subcategory    string            `json:"subcategory"`
	Difficulty     string            `json:"difficulty" binding:"required"`
	Tags           []string          `json:"tags"`
	Visualizations []model.Visualization `json:"visualizations"`
	References     []model.Reference `json:"references"`
}

func (s *KnowledgeService) Create(creatorID uint, req KnowledgeRequest) (*model.Knowledge, error) {
	k := &model.Knowledge{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Difficulty:  req.Difficulty,
		Tags:        strings.Join(req.Tags, ","),
		CreatorID:   creatorID,
	}
	if len(req.Visualizations) > 0 {
		k.Visualizations, _ = json.Marshal(req.Visualizations)
	}
	if len(req.References) > 0 {
		k.References, _ = json.Marshal(req.References)
	}

	if err := s.Repo.Create(k); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *KnowledgeService) List(page, limit int, category, difficulty, sortParam string) ([]model.Knowledge, int64, error) {
	sort := util.ParseSort(sortParam, map[string]string{
		"createdAt":     "created_at",
		"title":         "title",
		"viewCount":     "view_count",
		"averageRating": "average_rating",
	})
	return s.Repo.List(page, limit, category, difficulty, sort)
}

// Get 返回知识点详情并累计浏览次数。
// 详情在Redis缓存10分钟；浏览计数先进Redis，由后台任务批量回写MySQL。
func (s *KnowledgeService) Get(ctx context.Context, id uint) (*model.Knowledge, error) {
	cacheKey := fmt.Sprintf("%s%d", knowledgeCachePrefix, id)

	if cached, err := s.RDB.Get(ctx, cacheKey).Result(); err == nil {
		var k model.Knowledge
		if err := json.Unmarshal([]byte(cached), &k); err == nil {
			s.countView(ctx, id)
			return &k, nil
		}
	}

	k, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(k); err == nil {
		s.RDB.Set(ctx, cacheKey, data, knowledgeCacheTTL)
	}
	s.countView(ctx, id)
	return k, nil
}

func (s *KnowledgeService) countView(ctx context.Context, id uint) {
	if err := s.RDB.Incr(ctx, fmt.Sprintf("%s%d", knowledgeViewsPrefix, id)).Err(); err != nil {
		logger.Log.Warn("failed to count knowledge view", zap.Uint("id", id), zap.Error(err))
	}
}

// FlushViews 把Redis中的浏览计数回写数据库，由后台定时任务调用
func (s *KnowledgeService) FlushViews(ctx context.Context) error {
	iter := s.RDB.Scan(ctx, 0, knowledgeViewsScanGlob, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		val, err := s.RDB.GetDel(ctx, key).Result()
		if err != nil {
			continue
		}

		var id uint
		var delta int64
		if _, err := fmt.Sscanf(key, knowledgeViewsPrefix+"%d", &id); err != nil {
			continue
		}
		if _, err := fmt.Sscanf(val, "%d", &delta); err != nil || delta == 0 {
			continue
		}

		if err := s.Repo.AddViews(id, delta); err != nil {
			logger.Log.Error("failed to flush knowledge views", zap.Uint("id", id), zap.Error(err))
		}
	}
	return iter.Err()
}

func (s *KnowledgeService) ListByCategory(category string) ([]model.Knowledge, error) {
	return s.Repo.ListByCategory(category)
}

func (s *KnowledgeService) Search(keyword string) ([]model.Knowledge, error) {
	return s.Repo.Search(keyword)
}

func (s *KnowledgeService) Update(ctx context.Context, id uint, req KnowledgeRequest) (*model.Knowledge, error) {
	k, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	k.Title = req.Title
	k.Description = req.Description
	k.Content = req.Content
	k.Category = req.Category
	k.Subcategory = req.Subcategory
	k.Difficulty = req.Difficulty
	k.Tags = strings.Join(req.Tags, ",")
	if req.Visualizations != nil {
		k.Visualizations, _ = json.Marshal(req.Visualizations)
	}
	if req.References != nil {
		k.References, _ = json.Marshal(req.References)
	}

	if err := s.Repo.Update(k); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return k, nil
}

func (s *KnowledgeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Rate 把一次1-5评分折叠进平均分。
// 行锁保证同一知识点上的 读取-折叠-写回 串行执行，并发评分不会丢失更新。
func (s *KnowledgeService) Rate(ctx context.Context, id uint, rating int) (*model.Knowledge, error) {
	var k model.Knowledge
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&k, id).Error; err != nil {
			return err
		}

		newAvg, newCount, err := scoring.FoldRating(k.AverageRating, k.RatingsCount, rating)
		if err != nil {
			return err
		}

		k.AverageRating = newAvg
		k.RatingsCount = newCount
		return tx.Model(&model.Knowledge{}).Where("id = ?", id).Updates(map[string]interface{}{
			"average_rating": newAvg,
			"ratings_count":  newCount,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return &k, nil
}

// UploadVisualization 上传可视化资源文件并追加到知识点；视频会探测时长
func (s *KnowledgeService) UploadVisualization(ctx context.Context, id uint, vizType, title, filename, contentType string, reader io.Reader, size int64) (*model.Visualization, error) {
	k, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("knowledge/%d/%s_%s", id, uuid.New().String(), filename)
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	viz := model.Visualization{
		Type:  vizType,
		Title: title,
		URL:   url,
	}

	if strings.HasPrefix(contentType, util.MimeVideo) {
		if local := s.Storage.LocalFilePath(objectName); local != "" {
			if info, err := util.ProbeVideo(local); err == nil {
				viz.Duration = info.Duration
			} else {
				logger.Log.Warn("video probe failed", zap.String("file", objectName), zap.Error(err))
			}
		}
	}

	var vizzes []model.Visualization
	if len(k.Visualizations) > 0 {
		_ = json.Unmarshal(k.Visualizations, &vizzes)
	}
	vizzes = append(vizzes, viz)
	k.Visualizations, _ = json.Marshal(vizzes)

	if err := s.Repo.Update(k); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return &viz, nil
}

func (s *KnowledgeService) invalidate(ctx context.Context, id uint) {
	s.RDB.Del(ctx, fmt.Sprintf("%s%d", knowledgeCachePrefix, id))
}
