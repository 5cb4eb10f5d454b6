package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"cert_portal_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Quiz{}, &model.Question{}, &model.Result{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func seedQuiz(t *testing.T, db *gorm.DB, title string, passingScore, timeLimit int, correct []model.OptionLetter) *model.Quiz {
	t.Helper()

	quiz := &model.Quiz{
		Title:          title,
		Description:    "seeded",
		PassingScore:   passingScore,
		TotalQuestions: len(correct),
		TimeLimit:      timeLimit,
	}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("seed quiz: %v", err)
	}

	for i, answer := range correct {
		q := &model.Question{
			QuizID:        quiz.ID,
			QuestionText:  fmt.Sprintf("question %d", i+1),
			OptionA:       "alpha",
			OptionB:       "beta",
			OptionC:       "gamma",
			OptionD:       "delta",
			CorrectAnswer: answer,
		}
		if err := db.Create(q).Error; err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}

	return quiz
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()

	user := &model.User{Name: name, Email: email, Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
