package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(feedback *model.Feedback) error {
	return r.DB.Create(feedback).Error
}

func (r *FeedbackRepository) ListByCourse(courseID uint) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.DB.Preload("Student").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}
