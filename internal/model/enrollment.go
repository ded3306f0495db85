package model

import "time"

// Enrollment is the join record granting a student access to a course's
// gated content. Removed by a hard delete on unenroll.
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	StudentID    uint      `gorm:"uniqueIndex:idx_enrollment_student_course;not null" json:"studentId"`
	CourseID     uint      `gorm:"uniqueIndex:idx_enrollment_student_course;not null" json:"courseId"`
	Status       string    `gorm:"size:50;default:'active'" json:"status"`
	EnrolledDate time.Time `gorm:"not null" json:"enrolledDate"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
