package model

// swagger:model CourseCategory
type CourseCategory struct {
	BaseModel
	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}

func (CourseCategory) TableName() string {
	return "course_categories"
}

// swagger:model Course
type Course struct {
	BaseModel
	CategoryID  uint    `gorm:"index;not null" json:"categoryId"`
	TeacherID   uint    `gorm:"index;not null" json:"teacherId"` // owning teacher's user id
	Code        string  `gorm:"size:20;unique;not null" json:"code"`
	Title       string  `gorm:"size:150;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);default:0" json:"price"`
	IsAvailable bool    `gorm:"default:true" json:"isAvailable"`

	Category         *CourseCategory  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Teacher          *User            `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Lessons          []Lesson         `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
	LessonCategories []LessonCategory `gorm:"foreignKey:CourseID" json:"lessonCategories,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
