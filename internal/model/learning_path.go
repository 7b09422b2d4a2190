package model

import (
	"encoding/json"
	"time"
)

// LearningPath 学习路径
// swagger:model LearningPath
type LearningPath struct {
	BaseModel
	Title         string     `gorm:"size:100;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Category      string     `gorm:"size:50;index" json:"category"`
	Difficulty    string     `gorm:"size:20;index" json:"difficulty"`
	EstimatedTime int        `gorm:"default:0" json:"estimatedTime"` // 小时
	Steps         []PathStep `gorm:"foreignKey:PathID" json:"steps,omitempty"`
	Tags          string     `gorm:"size:255" json:"tags"`
	IsPublished   bool       `gorm:"default:false;index" json:"isPublished"`
	CreatorID     uint       `gorm:"index;type:bigint unsigned" json:"creatorId"`
	Creator       *User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	AverageRating float64    `gorm:"default:0" json:"averageRating"`
	RatingsCount  int        `gorm:"default:0" json:"ratingsCount"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// PathStep 学习路径中的一个步骤，按 order 排序
// swagger:model PathStep
type PathStep struct {
	BaseModel
	PathID        uint            `gorm:"index;type:bigint unsigned" json:"pathId"`
	Order         int             `gorm:"default:0" json:"order"`
	Title         string          `gorm:"size:100;not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	KnowledgeID   uint            `gorm:"index;type:bigint unsigned" json:"knowledgeId"`
	Knowledge     *Knowledge      `gorm:"foreignKey:KnowledgeID" json:"knowledge,omitempty"`
	EstimatedTime int             `gorm:"default:0" json:"estimatedTime"` // 小时
	QuizIDs       json.RawMessage `gorm:"type:json" json:"quizIds,omitempty"` // JSON: []uint，关联评估
}

func (PathStep) TableName() string {
	return "path_steps"
}

// PathEnrollment 报名记录；CompletedAt 非空表示已完成
// swagger:model PathEnrollment
type PathEnrollment struct {
	BaseModel
	PathID      uint       `gorm:"uniqueIndex:idx_path_user;type:bigint unsigned" json:"pathId"`
	UserID      uint       `gorm:"uniqueIndex:idx_path_user;type:bigint unsigned" json:"userId"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (PathEnrollment) TableName() string {
	return "path_enrollments"
}
