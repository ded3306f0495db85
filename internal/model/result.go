package model

// QuizResult is the permanent record of a graded attempt: the percentage
// score and the awarded letter grade.
// swagger:model QuizResult
type QuizResult struct {
	BaseModel
	StudentID    uint    `gorm:"index;not null" json:"studentId"`
	QuizID       uint    `gorm:"index;not null" json:"quizId"`
	Score        float64 `gorm:"not null" json:"score"` // percentage, 0..100
	GradeAwarded string  `gorm:"size:10;not null" json:"gradeAwarded"`

	Quiz *Quiz `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
