package model

// swagger:model Feedback
type Feedback struct {
	BaseModel
	CourseID  uint   `gorm:"index;not null" json:"courseId"`
	StudentID uint   `gorm:"index;not null" json:"studentId"`
	Comments  string `gorm:"type:text" json:"comments"`
	Rating    int    `gorm:"not null" json:"rating"` // 1..5

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
