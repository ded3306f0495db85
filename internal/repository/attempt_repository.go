package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.First(&attempt, id).Error
	return &attempt, err
}

func (r *AttemptRepository) FindOpen(studentID, quizID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.
		Where("student_id = ? AND quiz_id = ? AND status = ?", studentID, quizID, model.AttemptInProgress).
		First(&attempt).Error
	return &attempt, err
}

// Finalize writes the graded attempt, but only while it is still in
// progress. Returns false when another submission won the race, which is the
// exactly-once guard shared by manual submits and the expiry sweeper.
func (r *AttemptRepository) Finalize(attempt *model.QuizAttempt, status model.AttemptStatus) (bool, error) {
	res := r.DB.Model(&model.QuizAttempt{}).
		Where("id = ? AND status = ?", attempt.ID, model.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":       status,
			"selections":   attempt.Selections,
			"raw_score":    attempt.RawScore,
			"total_marks":  attempt.TotalMarks,
			"percentage":   attempt.Percentage,
			"scaled_marks": attempt.ScaledMarks,
			"grade":        attempt.Grade,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AttemptRepository) ListExpiredInProgress(now time.Time) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("status = ? AND expires_at <= ?", model.AttemptInProgress, now).
		Find(&attempts).Error
	return attempts, err
}
