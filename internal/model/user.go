package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

// Role is fixed at registration time; profile shape depends on it.
// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('student','teacher');default:'student'" json:"role"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`

	StudentProfile *StudentProfile `gorm:"foreignKey:UserID" json:"studentProfile,omitempty"`
	TeacherProfile *TeacherProfile `gorm:"foreignKey:UserID" json:"teacherProfile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// swagger:model TeacherProfile
type TeacherProfile struct {
	BaseModel
	UserID        uint   `gorm:"uniqueIndex;not null" json:"userId"`
	Qualification string `gorm:"size:200" json:"qualification"`
	MobileNo      string `gorm:"size:20" json:"mobileNo"`
	Experience    int    `gorm:"default:0" json:"experience"` // years
	Expertise     string `gorm:"type:text" json:"expertise"`
}

func (TeacherProfile) TableName() string {
	return "teacher_profiles"
}

// swagger:model StudentProfile
type StudentProfile struct {
	BaseModel
	UserID               uint   `gorm:"uniqueIndex;not null" json:"userId"`
	Qualification        string `gorm:"size:200" json:"qualification"`
	MobileNo             string `gorm:"size:20" json:"mobileNo"`
	Address              string `gorm:"type:text" json:"address"`
	InterestedCategories string `gorm:"type:text" json:"interestedCategories"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
