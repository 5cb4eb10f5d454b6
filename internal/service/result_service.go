package service

import (
	"cert_portal_backend/internal/model"
	"cert_portal_backend/internal/repository"
	"cert_portal_backend/internal/util"
	"cert_portal_backend/pkg/monitoring"
	"encoding/json"
	"errors"
	"strconv"

	"gorm.io/gorm"
)

type ResultService struct {
	QuizRepo   *repository.QuizRepository
	ResultRepo *repository.ResultRepository
}

func NewResultService(quizRepo *repository.QuizRepository, resultRepo *repository.ResultRepository) *ResultService {
	return &ResultService{QuizRepo: quizRepo, ResultRepo: resultRepo}
}

type SubmitRequest struct {
	Answers   map[uint]model.OptionLetter `json:"answers"`
	TimeTaken int                         `json:"timeTaken" binding:"min=0"`
}

// SubmitResponse 与前端约定的判分响应
type SubmitResponse struct {
	ResultID        uint           `json:"resultId"`
	Score           int            `json:"score"`
	TotalQuestions  int            `json:"totalQuestions"`
	Percentage      int            `json:"percentage"`
	Passed          bool           `json:"passed"`
	PassingScore    int            `json:"passingScore"`
	TimeTaken       int            `json:"timeTaken"`
	QuizTitle       string         `json:"quizTitle"`
	DetailedResults []AnswerDetail `json:"detailedResults"`
}

// Submit 判分并落库。判分完成前不产生任何写入，落库是单条插入，
// 失败时不会留下部分写入的结果行。
func (s *ResultService) Submit(userID, quizID uint, req SubmitRequest) (*SubmitResponse, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	// 服务端校验用时，超出测验时限的提交直接拒绝
	if quiz.TimeLimit > 0 && req.TimeTaken > quiz.TimeLimit*60 {
		return nil, util.ErrTimeLimitExceeded
	}

	questions, err := s.QuizRepo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	outcome := Grade(quiz, questions, req.Answers)

	rawAnswers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, err
	}

	result := &model.Result{
		UserID:         userID,
		QuizID:         quiz.ID,
		Score:          outcome.Score,
		TotalQuestions: outcome.TotalQuestions,
		Percentage:     outcome.Percentage,
		Passed:         outcome.Passed,
		TimeTaken:      req.TimeTaken,
		Answers:        rawAnswers,
	}

	if err := s.ResultRepo.Create(result); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(quiz.Title, strconv.FormatBool(outcome.Passed)).Inc()

	return &SubmitResponse{
		ResultID:        result.ID,
		Score:           outcome.Score,
		TotalQuestions:  outcome.TotalQuestions,
		Percentage:      outcome.Percentage,
		Passed:          outcome.Passed,
		PassingScore:    quiz.PassingScore,
		TimeTaken:       req.TimeTaken,
		QuizTitle:       quiz.Title,
		DetailedResults: outcome.Details,
	}, nil
}

func (s *ResultService) ListForUser(userID uint) ([]repository.ResultSummary, error) {
	return s.ResultRepo.ListByUser(userID)
}

func (s *ResultService) GetByID(resultID, userID uint) (*repository.ResultDetail, error) {
	detail, err := s.ResultRepo.FindByIDForUser(resultID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return detail, nil
}
