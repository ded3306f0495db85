package model

// LessonCategory groups a course's lessons and quizzes into ordered sections.
// swagger:model LessonCategory
type LessonCategory struct {
	BaseModel
	CourseID    uint   `gorm:"index;not null" json:"courseId"`
	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"column:sort_order;default:0" json:"order"`

	Lessons []Lesson `gorm:"foreignKey:CategoryID" json:"lessons,omitempty"`
	Quizzes []Quiz   `gorm:"foreignKey:LessonCategoryID" json:"quizzes,omitempty"`
}

func (LessonCategory) TableName() string {
	return "lesson_categories"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID   uint   `gorm:"index;not null" json:"courseId"`
	CategoryID *uint  `gorm:"index" json:"categoryId"` // optional section
	Title      string `gorm:"size:150;not null" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	VideoURL   string `gorm:"size:255" json:"videoUrl"`
	Order      int    `gorm:"column:sort_order;default:0" json:"order"`

	Files []LessonFile `gorm:"foreignKey:LessonID" json:"files,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// swagger:model LessonFile
type LessonFile struct {
	BaseModel
	LessonID  uint   `gorm:"index;not null" json:"lessonId"`
	Title     string `gorm:"size:150;not null" json:"title"`
	FileURL   string `gorm:"size:255" json:"fileUrl"`
	ObjectKey string `gorm:"size:255" json:"-"` // storage provider key, empty for external URLs
}

func (LessonFile) TableName() string {
	return "lesson_files"
}
