package repository

import (
	"sical_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(c *model.Comment) error {
	return r.DB.Create(c).Error
}

func (r *CommentRepository) FindByID(id string) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.Preload("Author", selectAuthor).
		Preload("Replies", orderByCreated).
		Preload("Replies.Author", selectAuthor).
		Where("id = ?", id).First(&c).Error
	return &c, err
}

// ListByKnowledge 知识点下的顶层评论及回复
func (r *CommentRepository) ListByKnowledge(knowledgeID uint) ([]model.Comment, error) {
	var cs []model.Comment
	err := r.DB.Where("knowledge_id = ? AND parent_id IS NULL", knowledgeID).
		Preload("Author", selectAuthor).
		Preload("Replies", orderByCreated).
		Preload("Replies.Author", selectAuthor).
		Order("created_at desc").
		Find(&cs).Error
	return cs, err
}

// ListByPath 学习路径下的顶层评论及回复
func (r *CommentRepository) ListByPath(pathID uint) ([]model.Comment, error) {
	var cs []model.Comment
	err := r.DB.Where("path_id = ? AND parent_id IS NULL", pathID).
		Preload("Author", selectAuthor).
		Preload("Replies", orderByCreated).
		Preload("Replies.Author", selectAuthor).
		Order("created_at desc").
		Find(&cs).Error
	return cs, err
}

func (r *CommentRepository) Update(c *model.Comment) error {
	return r.DB.Save(c).Error
}

func (r *CommentRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Comment{}).Error
	})
}

// Like 点赞，重复点赞返回 gorm.ErrDuplicatedKey 由上层处理
func (r *CommentRepository) Like(userID uint, commentID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		like := &model.CommentLike{UserID: userID, CommentID: commentID}
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		return tx.Model(&model.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
}

func (r *CommentRepository) Unlike(userID uint, commentID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).
			Delete(&model.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.Comment{}).Where("id = ? AND likes > 0", commentID).
			UpdateColumn("likes", gorm.Expr("likes - 1")).Error
	})
}

func selectAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id, username, avatar")
}

func orderByCreated(db *gorm.DB) *gorm.DB {
	return db.Order("comments.created_at asc")
}
