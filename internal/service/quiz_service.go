package service

import (
	"cert_portal_backend/internal/config"
	"cert_portal_backend/internal/model"
	"cert_portal_backend/internal/repository"
	"cert_portal_backend/internal/util"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type QuizService struct {
	Repo  *repository.QuizRepository
	Redis *redis.Client
	Cfg   *config.Config
}

func NewQuizService(repo *repository.QuizRepository, rdb *redis.Client, cfg *config.Config) *QuizService {
	return &QuizService{Repo: repo, Redis: rdb, Cfg: cfg}
}

// PublicQuestion 目录读取路径的题目视图，不含正确答案
type PublicQuestion struct {
	ID           uint   `json:"id"`
	QuestionText string `json:"questionText"`
	OptionA      string `json:"optionA"`
	OptionB      string `json:"optionB"`
	OptionC      string `json:"optionC"`
	OptionD      string `json:"optionD"`
}

type QuizDetail struct {
	Quiz      model.Quiz       `json:"quiz"`
	Questions []PublicQuestion `json:"questions"`
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	if s.cacheEnabled() {
		var quizzes []model.Quiz
		if s.cacheGet(ctx, "catalog:quizzes", &quizzes) {
			return quizzes, nil
		}
		quizzes, err := s.Repo.ListQuizzes()
		if err != nil {
			return nil, err
		}
		s.cacheSet(ctx, "catalog:quizzes", quizzes)
		return quizzes, nil
	}

	return s.Repo.ListQuizzes()
}

func (s *QuizService) GetQuizWithQuestions(ctx context.Context, quizID uint) (*QuizDetail, error) {
	cacheKey := fmt.Sprintf("catalog:quiz:%d", quizID)
	if s.cacheEnabled() {
		var detail QuizDetail
		if s.cacheGet(ctx, cacheKey, &detail) {
			return &detail, nil
		}
	}

	quiz, err := s.Repo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	questions, err := s.Repo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	detail := &QuizDetail{
		Quiz:      *quiz,
		Questions: make([]PublicQuestion, len(questions)),
	}
	for i, q := range questions {
		detail.Questions[i] = PublicQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			OptionA:      q.OptionA,
			OptionB:      q.OptionB,
			OptionC:      q.OptionC,
			OptionD:      q.OptionD,
		}
	}

	if s.cacheEnabled() {
		s.cacheSet(ctx, cacheKey, detail)
	}

	return detail, nil
}

func (s *QuizService) cacheEnabled() bool {
	return s.Redis != nil && s.Cfg.Cache.Enabled
}

// 缓存只是旁路优化，读写失败一律静默回退到数据库
func (s *QuizService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	payload, err := s.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, dest) == nil
}

func (s *QuizService) cacheSet(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	ttl := time.Duration(s.Cfg.Cache.TTLMinutes) * time.Minute
	s.Redis.Set(ctx, key, payload, ttl)
}
