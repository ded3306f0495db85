package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OTPRepository struct {
	DB *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{DB: db}
}

func (r *OTPRepository) FindByPhone(phoneNumber string) (*model.OTP, error) {
	var otp model.OTP
	err := r.DB.Where("phone_number = ?", phoneNumber).First(&otp).Error
	return &otp, err
}

// Upsert keeps one row per phone number: a re-send replaces code, expiry and
// counters in place.
func (r *OTPRepository) Upsert(otp *model.OTP) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "phone_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"code", "is_verified", "expires_at", "attempts", "max_attempts", "updated_at",
		}),
	}).Create(otp).Error
}

func (r *OTPRepository) Save(otp *model.OTP) error {
	return r.DB.Save(otp).Error
}
