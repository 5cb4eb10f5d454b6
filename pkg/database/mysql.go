package database

import (
	"cert_portal_backend/internal/config"
	"cert_portal_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Quiz{},
		&model.Question{},
		&model.Result{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")

	return SeedCatalog(db)
}

// SeedCatalog 目录为空时写入默认测验题库
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Quiz{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, seed := range defaultCatalog() {
		quiz := seed.quiz
		quiz.TotalQuestions = len(seed.questions)
		if err := db.Create(&quiz).Error; err != nil {
			return err
		}
		for _, q := range seed.questions {
			q.QuizID = quiz.ID
			if err := db.Create(&q).Error; err != nil {
				return err
			}
		}
	}

	log.Println("Default quiz catalog seeded")
	return nil
}

type quizSeed struct {
	quiz      model.Quiz
	questions []model.Question
}

func defaultCatalog() []quizSeed {
	return []quizSeed{
		{
			quiz: model.Quiz{
				Title:        "JavaScript Fundamentals",
				Description:  "Test your knowledge of JavaScript basics including variables, functions, and operators.",
				PassingScore: 70,
				TimeLimit:    15,
			},
			questions: []model.Question{
				{
					QuestionText:  "Which keyword declares a block-scoped variable that cannot be reassigned?",
					OptionA:       "var",
					OptionB:       "let",
					OptionC:       "const",
					OptionD:       "static",
					CorrectAnswer: model.OptionC,
				},
				{
					QuestionText:  "What does `typeof null` evaluate to?",
					OptionA:       "\"null\"",
					OptionB:       "\"object\"",
					OptionC:       "\"undefined\"",
					OptionD:       "\"number\"",
					CorrectAnswer: model.OptionB,
				},
				{
					QuestionText:  "Which method converts a JSON string into a JavaScript object?",
					OptionA:       "JSON.parse()",
					OptionB:       "JSON.stringify()",
					OptionC:       "JSON.toObject()",
					OptionD:       "Object.fromJSON()",
					CorrectAnswer: model.OptionA,
				},
				{
					QuestionText:  "What is the result of `2 + \"2\"` in JavaScript?",
					OptionA:       "4",
					OptionB:       "NaN",
					OptionC:       "\"22\"",
					OptionD:       "TypeError",
					CorrectAnswer: model.OptionC,
				},
				{
					QuestionText:  "Which array method creates a new array with elements that pass a test?",
					OptionA:       "map()",
					OptionB:       "forEach()",
					OptionC:       "reduce()",
					OptionD:       "filter()",
					CorrectAnswer: model.OptionD,
				},
			},
		},
		{
			quiz: model.Quiz{
				Title:        "React Basics",
				Description:  "Understanding React components, JSX, hooks, and state management fundamentals.",
				PassingScore: 75,
				TimeLimit:    20,
			},
			questions: []model.Question{
				{
					QuestionText:  "Which hook manages local state in a function component?",
					OptionA:       "useEffect",
					OptionB:       "useState",
					OptionC:       "useContext",
					OptionD:       "useReducer",
					CorrectAnswer: model.OptionB,
				},
				{
					QuestionText:  "What does JSX compile to?",
					OptionA:       "HTML strings",
					OptionB:       "Template literals",
					OptionC:       "React.createElement calls",
					OptionD:       "Virtual DOM nodes directly",
					CorrectAnswer: model.OptionC,
				},
				{
					QuestionText:  "How are props passed to a child component?",
					OptionA:       "As attributes in JSX",
					OptionB:       "Through global variables",
					OptionC:       "Via the DOM",
					OptionD:       "With useProps()",
					CorrectAnswer: model.OptionA,
				},
				{
					QuestionText:  "When does useEffect with an empty dependency array run?",
					OptionA:       "On every render",
					OptionB:       "Never",
					OptionC:       "Only when state changes",
					OptionD:       "Once after the first render",
					CorrectAnswer: model.OptionD,
				},
				{
					QuestionText:  "Which prop is required when rendering a list of elements?",
					OptionA:       "id",
					OptionB:       "key",
					OptionC:       "ref",
					OptionD:       "index",
					CorrectAnswer: model.OptionB,
				},
			},
		},
	}
}
