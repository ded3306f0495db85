package model

import "time"

// OTP is the one-time code backing the Easypaisa payment gate. One row per
// phone number; re-sending overwrites code, expiry and attempt counters.
// swagger:model OTP
type OTP struct {
	BaseModel
	PhoneNumber string    `gorm:"size:20;uniqueIndex;not null" json:"phoneNumber"`
	Code        string    `gorm:"size:6;not null" json:"-"`
	IsVerified  bool      `gorm:"default:false" json:"isVerified"`
	ExpiresAt   time.Time `gorm:"not null" json:"expiresAt"`
	Attempts    int       `gorm:"default:0" json:"attempts"`
	MaxAttempts int       `gorm:"default:3" json:"maxAttempts"`
}

func (OTP) TableName() string {
	return "otps"
}
