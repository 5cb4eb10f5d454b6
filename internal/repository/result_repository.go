package repository

import (
	"time"

	"cert_portal_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// Create 结果记录只在提交时写入一次，之后不存在任何更新或删除路径
func (r *ResultRepository) Create(result *model.Result) error {
	return r.DB.Create(result).Error
}

// ResultSummary 用户结果列表行。只挑选概要列，不带答案明细和外键
type ResultSummary struct {
	ID             uint      `json:"id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	Passed         bool      `json:"passed"`
	TimeTaken      int       `json:"timeTaken"`
	CreatedAt      time.Time `json:"createdAt"`
	QuizTitle      string    `gorm:"column:quiz_title" json:"quizTitle"`
}

func (r *ResultRepository) ListByUser(userID uint) ([]ResultSummary, error) {
	var rows []ResultSummary
	err := r.DB.Table("results").
		Select("results.id, results.score, results.total_questions, results.percentage, results.passed, results.time_taken, results.created_at, quizzes.title as quiz_title").
		Joins("JOIN quizzes ON results.quiz_id = quizzes.id").
		Where("results.user_id = ?", userID).
		Where("results.deleted_at IS NULL").
		Order("results.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// ResultDetail 单条结果详情，关联测验标题与持有者姓名
type ResultDetail struct {
	model.Result
	QuizTitle string `gorm:"column:quiz_title" json:"quizTitle"`
	UserName  string `gorm:"column:user_name" json:"userName"`
	UserEmail string `gorm:"column:user_email" json:"userEmail"`
}

// FindByIDForUser 归属校验并入查询条件：他人的结果与不存在的结果同样返回
// gorm.ErrRecordNotFound，不泄露记录是否存在
func (r *ResultRepository) FindByIDForUser(resultID, userID uint) (*ResultDetail, error) {
	var row ResultDetail
	err := r.DB.Table("results").
		Select("results.*, quizzes.title as quiz_title, users.name as user_name, users.email as user_email").
		Joins("JOIN quizzes ON results.quiz_id = quizzes.id").
		Joins("JOIN users ON results.user_id = users.id").
		Where("results.id = ? AND results.user_id = ?", resultID, userID).
		Where("results.deleted_at IS NULL").
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
