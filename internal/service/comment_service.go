package service

import (
	"errors"
	"time"

	"sical_backend/internal/model"
	"sical_backend/internal/repository"
	"sical_backend/internal/util"

	"gorm.io/gorm"
)

type CommentService struct {
	Repo *repository.CommentRepository
}

func NewCommentService(repo *repository.CommentRepository) *CommentService {
	return &CommentService{Repo: repo}
}

type CommentRequest struct {
	Content     string  `json:"content" binding:"required,max=1000"`
	KnowledgeID *uint   `json:"knowledgeId"`
	PathID      *uint   `json:"pathId"`
	ParentID    *string `json:"parentId"`
}

// Create 评论必须恰好关联知识点或学习路径其一；回复继承父评论的关联目标
func (s *CommentService) Create(authorID uint, req CommentRequest) (*model.Comment, error) {
	c := &model.Comment{
		Content:     req.Content,
		AuthorID:    authorID,
		KnowledgeID: req.KnowledgeID,
		PathID:      req.PathID,
		ParentID:    req.ParentID,
	}

	if req.ParentID != nil {
		parent, err := s.Repo.FindByID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		// 不支持多级嵌套，回复的回复挂到顶层评论下
		if parent.ParentID != nil {
			c.ParentID = parent.ParentID
		}
		c.KnowledgeID = parent.KnowledgeID
		c.PathID = parent.PathID
	}

	if (c.KnowledgeID == nil) == (c.PathID == nil) {
		return nil, util.ErrCommentTarget
	}

	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(c.ID)
}

func (s *CommentService) Get(id string) (*model.Comment, error) {
	return s.Repo.FindByID(id)
}

func (s *CommentService) ListByKnowledge(knowledgeID uint) ([]model.Comment, error) {
	return s.Repo.ListByKnowledge(knowledgeID)
}

func (s *CommentService) ListByPath(pathID uint) ([]model.Comment, error) {
	return s.Repo.ListByPath(pathID)
}

// Update 仅作者本人可编辑，编辑后打上 isEdited 标记
func (s *CommentService) Update(id string, userID uint, content string) (*model.Comment, error) {
	c, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != userID {
		return nil, util.ErrPermissionDenied
	}

	now := time.Now()
	c.Content = content
	c.IsEdited = true
	c.EditedAt = &now
	c.Replies = nil

	if err := s.Repo.Update(c); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(id)
}

// Delete 作者本人或管理员可删除，回复一并删除
func (s *CommentService) Delete(id string, userID uint, isAdmin bool) error {
	c, err := s.Repo.FindByID(id)
	if err != nil {
		return err
	}
	if c.AuthorID != userID && !isAdmin {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(id)
}

func (s *CommentService) Like(id string, userID uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		return err
	}
	if err := s.Repo.Like(userID, id); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrAlreadyLiked
		}
		return err
	}
	return nil
}

func (s *CommentService) Unlike(id string, userID uint) error {
	return s.Repo.Unlike(userID, id)
}
