package model

import "encoding/json"

const (
	DifficultyBeginner     = "初级"
	DifficultyIntermediate = "中级"
	DifficultyAdvanced     = "高级"
)

// Knowledge 知识点文章
// swagger:model Knowledge
type Knowledge struct {
	BaseModel
	Title          string          `gorm:"size:100;not null" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	Content        string          `gorm:"type:longtext" json:"content"`
	Category       string          `gorm:"size:50;index" json:"category"`
	Subcategory    string          `gorm:"size:50" json:"subcategory"`
	Difficulty     string          `gorm:"size:20;index" json:"difficulty"` // 初级/中级/高级
	Tags           string          `gorm:"size:255" json:"tags"`            // 逗号分隔
	Visualizations json.RawMessage `gorm:"type:json" json:"visualizations,omitempty"` // JSON: []Visualization
	References     json.RawMessage `gorm:"type:json" json:"references,omitempty"`
	PrerequisiteID *uint           `gorm:"index;type:bigint unsigned" json:"prerequisiteId,omitempty"`
	CreatorID      uint            `gorm:"index;type:bigint unsigned" json:"creatorId"`
	Creator        *User           `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	AverageRating  float64         `gorm:"default:0" json:"averageRating"` // ratingsCount>0 时落在[1,5]
	RatingsCount   int             `gorm:"default:0" json:"ratingsCount"`
	ViewCount      int             `gorm:"default:0" json:"viewCount"`
}

func (Knowledge) TableName() string {
	return "knowledges"
}

// Visualization 知识点可视化资源（Visualizations JSON 列的元素）
type Visualization struct {
	Type        string  `json:"type"` // chart, image, video, 3d_model, interactive
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
	Duration    float64 `json:"duration,omitempty"` // 视频时长（秒），上传时探测
}

// Reference 知识点参考文献
type Reference struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Source string `json:"source,omitempty"`
	URL    string `json:"url,omitempty"`
	Year   int    `json:"year,omitempty"`
}
