package model

import "time"

// Comment 知识点或学习路径下的评论，二者必须恰好关联其一
// swagger:model Comment
type Comment struct {
	UUIDBase
	Content     string     `gorm:"size:1000;not null" json:"content"`
	AuthorID    uint       `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author      *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	KnowledgeID *uint      `gorm:"index;type:bigint unsigned" json:"knowledgeId,omitempty"`
	PathID      *uint      `gorm:"index;type:bigint unsigned" json:"pathId,omitempty"`
	ParentID    *string    `gorm:"index;type:varchar(36)" json:"parentId,omitempty"`
	Replies     []Comment  `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	Likes       int        `gorm:"default:0" json:"likes"`
	IsEdited    bool       `gorm:"default:false" json:"isEdited"`
	EditedAt    *time.Time `json:"editedAt,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

// CommentLike 点赞去重表
type CommentLike struct {
	BaseModel
	UserID    uint   `gorm:"uniqueIndex:idx_user_comment;type:bigint unsigned" json:"userId"`
	CommentID string `gorm:"uniqueIndex:idx_user_comment;size:36" json:"commentId"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
