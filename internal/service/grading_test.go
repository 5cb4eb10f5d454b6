package service

import (
	"reflect"
	"testing"

	"cert_portal_backend/internal/model"
)

func fiveQuestions() []model.Question {
	qs := make([]model.Question, 5)
	for i := range qs {
		qs[i] = model.Question{
			QuestionText:  "q",
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectAnswer: model.OptionA,
		}
		qs[i].ID = uint(i + 1)
	}
	return qs
}

func TestGradeFourOfFivePasses(t *testing.T) {
	quiz := &model.Quiz{PassingScore: 70}
	answers := map[uint]model.OptionLetter{
		1: model.OptionA,
		2: model.OptionA,
		3: model.OptionA,
		4: model.OptionA,
		5: model.OptionB, // 错一题
	}

	outcome := Grade(quiz, fiveQuestions(), answers)

	if outcome.Score != 4 {
		t.Errorf("score = %d, want 4", outcome.Score)
	}
	if outcome.TotalQuestions != 5 {
		t.Errorf("totalQuestions = %d, want 5", outcome.TotalQuestions)
	}
	if outcome.Percentage != 80 {
		t.Errorf("percentage = %d, want 80", outcome.Percentage)
	}
	if !outcome.Passed {
		t.Error("passed = false, want true")
	}
}

func TestGradeThreeOfFiveFails(t *testing.T) {
	quiz := &model.Quiz{PassingScore: 70}
	answers := map[uint]model.OptionLetter{
		1: model.OptionA,
		2: model.OptionA,
		3: model.OptionA,
		4: model.OptionC,
		5: model.OptionD,
	}

	outcome := Grade(quiz, fiveQuestions(), answers)

	if outcome.Score != 3 {
		t.Errorf("score = %d, want 3", outcome.Score)
	}
	if outcome.Percentage != 60 {
		t.Errorf("percentage = %d, want 60", outcome.Percentage)
	}
	if outcome.Passed {
		t.Error("passed = true, want false")
	}
}

func TestGradeUnansweredNeverCorrect(t *testing.T) {
	quiz := &model.Quiz{PassingScore: 0}

	outcome := Grade(quiz, fiveQuestions(), nil)

	if outcome.Score != 0 {
		t.Errorf("score = %d, want 0", outcome.Score)
	}
	for _, d := range outcome.Details {
		if d.IsCorrect {
			t.Errorf("question %d marked correct without an answer", d.QuestionID)
		}
		if d.UserAnswer != "" {
			t.Errorf("question %d userAnswer = %q, want empty", d.QuestionID, d.UserAnswer)
		}
	}
}

func TestGradeOutOfSetAnswerIncorrect(t *testing.T) {
	quiz := &model.Quiz{PassingScore: 70}
	answers := map[uint]model.OptionLetter{
		1: "E",
		2: "a", // 小写不属于选项集合
		3: "AB",
	}

	outcome := Grade(quiz, fiveQuestions(), answers)

	if outcome.Score != 0 {
		t.Errorf("score = %d, want 0", outcome.Score)
	}
}

func TestGradeScoreWithinBounds(t *testing.T) {
	quiz := &model.Quiz{PassingScore: 70}
	answers := map[uint]model.OptionLetter{
		1: model.OptionA,
		// 99 不存在，不应计入
		99: model.OptionA,
	}

	outcome := Grade(quiz, fiveQuestions(), answers)

	if outcome.Score < 0 || outcome.Score > outcome.TotalQuestions {
		t.Errorf("score %d out of bounds [0, %d]", outcome.Score, outcome.TotalQuestions)
	}
	if outcome.Score != 1 {
		t.Errorf("score = %d, want 1", outcome.Score)
	}
	if len(outcome.Details) != 5 {
		t.Errorf("details length = %d, want 5", len(outcome.Details))
	}
}

func TestGradeRounding(t *testing.T) {
	cases := []struct {
		name    string
		correct int
		total   int
		want    int
	}{
		{"one of three", 1, 3, 33},
		{"two of three", 2, 3, 67},
		{"one of six", 1, 6, 17},
		{"five of six", 5, 6, 83},
		{"half", 1, 2, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qs := make([]model.Question, tc.total)
			answers := map[uint]model.OptionLetter{}
			for i := range qs {
				qs[i] = model.Question{CorrectAnswer: model.OptionA}
				qs[i].ID = uint(i + 1)
				if i < tc.correct {
					answers[qs[i].ID] = model.OptionA
				}
			}

			outcome := Grade(&model.Quiz{PassingScore: 100}, qs, answers)
			if outcome.Percentage != tc.want {
				t.Errorf("percentage = %d, want %d", outcome.Percentage, tc.want)
			}
		})
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	outcome := Grade(&model.Quiz{PassingScore: 70}, nil, map[uint]model.OptionLetter{1: model.OptionA})

	if outcome.Percentage != 0 {
		t.Errorf("percentage = %d, want 0", outcome.Percentage)
	}
	if outcome.Passed {
		t.Error("passed = true, want false")
	}

	// 及格线为 0 时空测验视为通过
	outcome = Grade(&model.Quiz{PassingScore: 0}, nil, nil)
	if !outcome.Passed {
		t.Error("passed = false with passing score 0, want true")
	}
}

func TestGradeIsPure(t *testing.T) {
	quiz := &model.Quiz{PassingScore: 75}
	qs := fiveQuestions()
	answers := map[uint]model.OptionLetter{
		1: model.OptionA,
		2: model.OptionB,
		3: model.OptionA,
	}

	first := Grade(quiz, qs, answers)
	second := Grade(quiz, qs, answers)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("grading not deterministic: %+v != %+v", first, second)
	}
}

func TestGradeDetailFields(t *testing.T) {
	quiz := &model.Quiz{PassingScore: 70}
	qs := fiveQuestions()
	answers := map[uint]model.OptionLetter{1: model.OptionA, 2: model.OptionD}

	outcome := Grade(quiz, qs, answers)

	if outcome.Details[0].QuestionID != 1 || !outcome.Details[0].IsCorrect {
		t.Errorf("detail[0] = %+v, want correct answer on question 1", outcome.Details[0])
	}
	if outcome.Details[1].UserAnswer != model.OptionD || outcome.Details[1].IsCorrect {
		t.Errorf("detail[1] = %+v, want incorrect D on question 2", outcome.Details[1])
	}
	if outcome.Details[1].CorrectAnswer != model.OptionA {
		t.Errorf("detail[1].CorrectAnswer = %q, want A", outcome.Details[1].CorrectAnswer)
	}
}
