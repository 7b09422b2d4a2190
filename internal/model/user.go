package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Username            string     `gorm:"size:50;unique;not null" json:"username"`
	Email               string     `gorm:"size:100;unique;not null" json:"email"`
	Password            string     `gorm:"size:100;not null" json:"-"`
	Role                UserRole   `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	Avatar              string     `gorm:"size:255" json:"avatar"`
	Bio                 string     `gorm:"size:500" json:"bio"`
	Language            string     `gorm:"size:10;default:'zh-CN'" json:"language"`
	Disabled            bool       `gorm:"default:false" json:"disabled"`
	ResetPasswordToken  string     `gorm:"size:64;index" json:"-"` // sha256(原始令牌)
	ResetPasswordExpire *time.Time `json:"-"`
	LastLogin           time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen            time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// LearningProgress 用户对单个知识点的学习进度
// swagger:model LearningProgress
type LearningProgress struct {
	BaseModel
	UserID       uint       `gorm:"uniqueIndex:idx_user_knowledge;type:bigint unsigned" json:"userId"`
	KnowledgeID  uint       `gorm:"uniqueIndex:idx_user_knowledge;type:bigint unsigned" json:"knowledgeId"`
	Knowledge    *Knowledge `gorm:"foreignKey:KnowledgeID" json:"knowledge,omitempty"`
	Progress     int        `gorm:"default:0" json:"progress"` // 0-100
	LastAccessed time.Time  `json:"lastAccessed"`
}

func (LearningProgress) TableName() string {
	return "learning_progresses"
}
