package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.DB.Create(payment).Error
}

func (r *PaymentRepository) FindByIdempotencyKey(key string) (*model.Payment, error) {
	var payment model.Payment
	err := r.DB.Where("idempotency_key = ?", key).First(&payment).Error
	return &payment, err
}

// FindCompleted returns the newest completed payment for the pair, the
// precondition the enrollment gate checks for priced courses.
func (r *PaymentRepository) FindCompleted(studentID, courseID uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.DB.
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, model.PaymentCompleted).
		Order("created_at DESC").
		First(&payment).Error
	return &payment, err
}

func (r *PaymentRepository) ListByStudent(studentID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.DB.Where("student_id = ?", studentID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}
