package model

// Quiz 测验元数据，创建后不可变更
// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title          string `gorm:"size:255;not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	PassingScore   int    `gorm:"not null" json:"passingScore"` // 及格线百分比 0-100
	TotalQuestions int    `gorm:"not null" json:"totalQuestions"`
	TimeLimit      int    `gorm:"not null" json:"timeLimit"` // Minutes
}

func (Quiz) TableName() string {
	return "quizzes"
}
