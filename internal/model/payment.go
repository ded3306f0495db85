package model

import "time"

type PaymentMethod string

const (
	PaymentEasypaisa    PaymentMethod = "easypaisa"
	PaymentCreditCard   PaymentMethod = "credit-card"
	PaymentBankTransfer PaymentMethod = "bank-transfer"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment records a (mock) charge for a priced course. It exists to satisfy
// the enrollment precondition; no real settlement happens behind it.
// swagger:model Payment
type Payment struct {
	BaseModel
	StudentID      uint          `gorm:"index;not null" json:"studentId"`
	CourseID       uint          `gorm:"index;not null" json:"courseId"`
	Amount         float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method         PaymentMethod `gorm:"size:20;not null" json:"method"`
	Status         PaymentStatus `gorm:"size:20;not null" json:"status"`
	TransactionID  string        `gorm:"size:36" json:"transactionId"`
	IdempotencyKey *string       `gorm:"size:64;uniqueIndex" json:"-"` // nil when the client sent no key
	PaidAt         time.Time     `json:"paidAt"`
}

func (Payment) TableName() string {
	return "payments"
}
