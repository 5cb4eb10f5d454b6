package service

import (
	"math"

	"cert_portal_backend/internal/model"
)

// AnswerDetail 单题判分明细，保留给结果回顾使用，不参与二次判分
type AnswerDetail struct {
	QuestionID    uint               `json:"questionId"`
	UserAnswer    model.OptionLetter `json:"userAnswer"`
	CorrectAnswer model.OptionLetter `json:"correctAnswer"`
	IsCorrect     bool               `json:"isCorrect"`
}

// GradeOutcome 一次提交的判分结果
type GradeOutcome struct {
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Percentage     int            `json:"percentage"`
	Passed         bool           `json:"passed"`
	Details        []AnswerDetail `json:"detailedResults"`
}

// Grade 对一组题目判分。纯函数：相同的 (quiz, questions, answers) 必然得到相同结果。
// 未作答或不在 A-D 集合内的答案一律判错，不会报错。
func Grade(quiz *model.Quiz, questions []model.Question, answers map[uint]model.OptionLetter) GradeOutcome {
	outcome := GradeOutcome{
		TotalQuestions: len(questions),
		Details:        make([]AnswerDetail, 0, len(questions)),
	}

	for _, q := range questions {
		userAnswer := answers[q.ID]
		isCorrect := userAnswer.Valid() && userAnswer == q.CorrectAnswer

		if isCorrect {
			outcome.Score++
		}

		outcome.Details = append(outcome.Details, AnswerDetail{
			QuestionID:    q.ID,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
		})
	}

	// 空测验没有可用的百分比，按 0% 处理而不是除零
	if outcome.TotalQuestions > 0 {
		outcome.Percentage = int(math.Round(float64(outcome.Score) / float64(outcome.TotalQuestions) * 100))
	}

	outcome.Passed = outcome.Percentage >= quiz.PassingScore

	return outcome
}
