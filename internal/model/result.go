package model

import "encoding/json"

// Result 一次提交的判分结果，写入后永不更新或删除
// swagger:model Result
type Result struct {
	BaseModel
	UserID         uint            `gorm:"index;not null" json:"userId"`
	QuizID         uint            `gorm:"index;not null" json:"quizId"`
	Score          int             `gorm:"not null" json:"score"`
	TotalQuestions int             `gorm:"not null" json:"totalQuestions"` // 提交时的题目数快照
	Percentage     int             `gorm:"not null" json:"percentage"`
	Passed         bool            `gorm:"not null" json:"passed"`
	TimeTaken      int             `gorm:"not null" json:"timeTaken"` // Seconds
	Answers        json.RawMessage `gorm:"type:json" json:"answers"`
}

func (Result) TableName() string {
	return "results"
}
