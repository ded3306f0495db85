package model

// swagger:model Quiz
type Quiz struct {
	BaseModel
	LessonCategoryID uint   `gorm:"index;not null" json:"lessonCategoryId"`
	Title            string `gorm:"size:150;not null" json:"title"`
	Description      string `gorm:"type:text" json:"description"`
	TotalMarks       int    `gorm:"not null" json:"totalMarks"` // declared total, may differ from the sum of question marks
	Duration         int    `gorm:"not null" json:"duration"`   // minutes
	Order            int    `gorm:"column:sort_order;default:0" json:"order"`

	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID uint   `gorm:"index;not null" json:"quizId"`
	Text   string `gorm:"type:text;not null" json:"text"`
	Marks  int    `gorm:"default:1" json:"marks"`

	Answers []Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Answer
type Answer struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Answer) TableName() string {
	return "answers"
}
