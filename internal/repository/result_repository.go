package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *ResultRepository) ListByStudent(studentID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Preload("Quiz").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}
