package model

import "encoding/json"

// Assessment 测评（测验/作业/考试）
// swagger:model Assessment
type Assessment struct {
	BaseModel
	Title          string               `gorm:"size:100;not null" json:"title"`
	Description    string               `gorm:"type:text" json:"description"`
	Type           string               `gorm:"size:20;index" json:"type"` // quiz, assignment, exam
	Category       string               `gorm:"size:50;index" json:"category"`
	Difficulty     string               `gorm:"size:20;index" json:"difficulty"`
	TimeLimit      int                  `gorm:"default:0" json:"timeLimit"` // 分钟
	PassingScore   int                  `gorm:"default:60" json:"passingScore"` // 百分比 0-100
	Questions      []AssessmentQuestion `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
	Tags           string               `gorm:"size:255" json:"tags"`
	IsPublished    bool                 `gorm:"default:false;index" json:"isPublished"`
	CreatorID      uint                 `gorm:"index;type:bigint unsigned" json:"creatorId"`
	CompletedCount int                  `gorm:"default:0" json:"completedCount"`
	AverageScore   float64              `gorm:"default:0" json:"averageScore"` // 完成者平均得分 0-100
}

func (Assessment) TableName() string {
	return "assessments"
}

// AssessmentQuestion 测评题目，按 order 与提交答案按下标对齐
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	BaseModel
	AssessmentID uint            `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	QuestionType string          `gorm:"size:20;not null" json:"questionType"` // single-choice, multi-choice, fill-blank, true-false, short-answer
	Content      string          `gorm:"type:text;not null" json:"content"`    // 题干
	Options      json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	Answer       json.RawMessage `gorm:"type:json" json:"answer,omitempty"` // string 或 []string；简答题为空
	Points       int             `gorm:"default:1" json:"points"`
	Order        int             `gorm:"default:0" json:"order"`
	Explanation  string          `gorm:"type:text" json:"explanation,omitempty"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// AssessmentRecord 一次判分后的提交记录
// swagger:model AssessmentRecord
type AssessmentRecord struct {
	BaseModel
	UserID       uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	AssessmentID uint            `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	Assessment   *Assessment     `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`
	Answers      json.RawMessage `gorm:"type:json" json:"answers"` // 原始提交
	Results      json.RawMessage `gorm:"type:json" json:"results"` // 逐题判分
	Score        int             `gorm:"default:0" json:"score"`
	Passed       bool            `gorm:"default:false" json:"passed"`
}

func (AssessmentRecord) TableName() string {
	return "assessment_records"
}
