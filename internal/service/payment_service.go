package service

import (
	"context"
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentGateway is the external-collaborator seam. The shipped
// implementation is a mock; a real provider slots in here without touching
// enrollment logic.
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64, method model.PaymentMethod, reference string) (model.PaymentStatus, string, error)
	Refund(ctx context.Context, transactionID string) error
}

// MockGateway settles every charge immediately. No funds move anywhere.
type MockGateway struct{}

func (MockGateway) Charge(ctx context.Context, amount float64, method model.PaymentMethod, reference string) (model.PaymentStatus, string, error) {
	return model.PaymentCompleted, uuid.New().String(), nil
}

func (MockGateway) Refund(ctx context.Context, transactionID string) error {
	return nil
}

type paymentStore interface {
	Create(payment *model.Payment) error
	FindByIdempotencyKey(key string) (*model.Payment, error)
	ListByStudent(studentID uint) ([]model.Payment, error)
}

type otpChecker interface {
	IsVerified(phoneNumber string) bool
}

// idempotencyReserver claims an idempotency key for the caller; false means
// another request already holds it.
type idempotencyReserver interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// RedisIdempotencyReserver claims keys with SETNX.
type RedisIdempotencyReserver struct {
	Client *redis.Client
}

func (r *RedisIdempotencyReserver) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.Client.SetNX(ctx, "idempotency:payment:"+key, 1, ttl).Result()
}

// PaymentService records the mock charge that gates paid enrollment.
type PaymentService struct {
	Payments paymentStore
	Courses  courseFinder
	Gateway  PaymentGateway
	Otp      otpChecker
	Keys     idempotencyReserver
	KeyTTL   time.Duration
}

func NewPaymentService(payments paymentStore, courses courseFinder, gateway PaymentGateway, otp otpChecker, keys idempotencyReserver, keyTTL time.Duration) *PaymentService {
	return &PaymentService{
		Payments: payments,
		Courses:  courses,
		Gateway:  gateway,
		Otp:      otp,
		Keys:     keys,
		KeyTTL:   keyTTL,
	}
}

// Create charges the course price and records the payment. Repeating a
// request with the same Idempotency-Key returns the original record instead
// of charging twice.
func (s *PaymentService) Create(ctx context.Context, studentID, courseID uint, method model.PaymentMethod, phoneNumber, idempotencyKey string) (*model.Payment, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	switch method {
	case model.PaymentEasypaisa:
		if !s.Otp.IsVerified(phoneNumber) {
			return nil, util.ErrOTPNotVerified
		}
	case model.PaymentCreditCard, model.PaymentBankTransfer:
		// Declared options in the UI, permanently disabled stubs here.
		return nil, util.ErrPaymentMethodUnavailable
	default:
		return nil, util.ErrPaymentMethodUnavailable
	}

	if idempotencyKey != "" {
		claimed, err := s.Keys.Reserve(ctx, idempotencyKey, s.KeyTTL)
		if err != nil {
			return nil, err
		}
		if !claimed {
			existing, err := s.Payments.FindByIdempotencyKey(idempotencyKey)
			if err == nil {
				return existing, nil
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Claimed but not yet recorded: a concurrent twin is mid-flight.
				return nil, util.ErrPaymentInProgress
			}
			return nil, err
		}
	}

	status, transactionID, err := s.Gateway.Charge(ctx, course.Price, method, uuid.New().String())
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		StudentID:     studentID,
		CourseID:      courseID,
		Amount:        course.Price,
		Method:        method,
		Status:        status,
		TransactionID: transactionID,
		PaidAt:        time.Now(),
	}
	if idempotencyKey != "" {
		payment.IdempotencyKey = &idempotencyKey
	}

	if err := s.Payments.Create(payment); err != nil {
		return nil, err
	}

	logger.Log.Info("payment recorded",
		zap.Uint("studentId", studentID),
		zap.Uint("courseId", courseID),
		zap.String("method", string(method)),
		zap.String("status", string(status)),
	)
	return payment, nil
}

func (s *PaymentService) ListMine(studentID uint) ([]model.Payment, error) {
	return s.Payments.ListByStudent(studentID)
}
