package model

// OptionLetter 固定的四选一选项集合
type OptionLetter string

const (
	OptionA OptionLetter = "A"
	OptionB OptionLetter = "B"
	OptionC OptionLetter = "C"
	OptionD OptionLetter = "D"
)

// AllOptionLetters 按展示顺序排列
var AllOptionLetters = []OptionLetter{OptionA, OptionB, OptionC, OptionD}

func (l OptionLetter) Valid() bool {
	switch l {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID        uint         `gorm:"index;not null" json:"quizId"`
	QuestionText  string       `gorm:"type:text;not null" json:"questionText"`
	OptionA       string       `gorm:"size:500;not null" json:"optionA"`
	OptionB       string       `gorm:"size:500;not null" json:"optionB"`
	OptionC       string       `gorm:"size:500;not null" json:"optionC"`
	OptionD       string       `gorm:"size:500;not null" json:"optionD"`
	CorrectAnswer OptionLetter `gorm:"size:1;not null" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionText 通过显式查表取选项文本，选项集合固定为 A-D
func (q *Question) OptionText(l OptionLetter) (string, bool) {
	switch l {
	case OptionA:
		return q.OptionA, true
	case OptionB:
		return q.OptionB, true
	case OptionC:
		return q.OptionC, true
	case OptionD:
		return q.OptionD, true
	}
	return "", false
}
