package service

import (
	"context"
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePaymentStore struct {
	rows []*model.Payment
}

func (s *fakePaymentStore) Create(payment *model.Payment) error {
	payment.ID = uint(len(s.rows) + 1)
	cp := *payment
	s.rows = append(s.rows, &cp)
	return nil
}

func (s *fakePaymentStore) FindByIdempotencyKey(key string) (*model.Payment, error) {
	for _, p := range s.rows {
		if p.IdempotencyKey != nil && *p.IdempotencyKey == key {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakePaymentStore) ListByStudent(studentID uint) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range s.rows {
		if p.StudentID == studentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type countingGateway struct {
	charges int
}

func (g *countingGateway) Charge(ctx context.Context, amount float64, method model.PaymentMethod, reference string) (model.PaymentStatus, string, error) {
	g.charges++
	return model.PaymentCompleted, "txn-1", nil
}

func (g *countingGateway) Refund(ctx context.Context, transactionID string) error { return nil }

type stubOtpChecker struct{ verified bool }

func (c stubOtpChecker) IsVerified(phoneNumber string) bool { return c.verified }

// memReserver claims each key exactly once.
type memReserver struct {
	claimed map[string]bool
}

func (r *memReserver) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if r.claimed == nil {
		r.claimed = make(map[string]bool)
	}
	if r.claimed[key] {
		return false, nil
	}
	r.claimed[key] = true
	return true, nil
}

func newTestPaymentService(otpVerified bool) (*PaymentService, *fakePaymentStore, *countingGateway) {
	store := &fakePaymentStore{}
	gateway := &countingGateway{}
	courses := &fakeCourseFinder{courses: map[uint]*model.Course{
		2: {BaseModel: model.BaseModel{ID: 2}, Title: "Advanced Go", TeacherID: 9, Price: 49.99, IsAvailable: true},
	}}
	svc := NewPaymentService(store, courses, gateway, stubOtpChecker{otpVerified}, &memReserver{}, time.Hour)
	return svc, store, gateway
}

func TestPaymentEasypaisaNeedsVerifiedOtp(t *testing.T) {
	svc, store, gateway := newTestPaymentService(false)

	_, err := svc.Create(context.Background(), 5, 2, model.PaymentEasypaisa, "03001234567", "")
	assert.ErrorIs(t, err, util.ErrOTPNotVerified)
	assert.Empty(t, store.rows)
	assert.Zero(t, gateway.charges)
}

func TestPaymentEasypaisaCharges(t *testing.T) {
	svc, store, gateway := newTestPaymentService(true)

	payment, err := svc.Create(context.Background(), 5, 2, model.PaymentEasypaisa, "03001234567", "")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, payment.Status)
	assert.Equal(t, 49.99, payment.Amount)
	assert.Equal(t, "txn-1", payment.TransactionID)
	assert.Nil(t, payment.IdempotencyKey)
	assert.Equal(t, 1, gateway.charges)
	assert.Len(t, store.rows, 1)
}

func TestPaymentStubMethodsUnavailable(t *testing.T) {
	svc, _, gateway := newTestPaymentService(true)

	for _, method := range []model.PaymentMethod{model.PaymentCreditCard, model.PaymentBankTransfer} {
		_, err := svc.Create(context.Background(), 5, 2, method, "", "")
		assert.ErrorIs(t, err, util.ErrPaymentMethodUnavailable)
	}
	assert.Zero(t, gateway.charges)
}

func TestPaymentUnknownMethodUnavailable(t *testing.T) {
	svc, _, _ := newTestPaymentService(true)

	_, err := svc.Create(context.Background(), 5, 2, model.PaymentMethod("paypal"), "", "")
	assert.ErrorIs(t, err, util.ErrPaymentMethodUnavailable)
}

func TestPaymentUnknownCourse(t *testing.T) {
	svc, _, _ := newTestPaymentService(true)

	_, err := svc.Create(context.Background(), 5, 99, model.PaymentEasypaisa, "03001234567", "")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestPaymentIdempotentReplay(t *testing.T) {
	svc, store, gateway := newTestPaymentService(true)
	ctx := context.Background()

	first, err := svc.Create(ctx, 5, 2, model.PaymentEasypaisa, "03001234567", "key-1")
	require.NoError(t, err)
	require.NotNil(t, first.IdempotencyKey)

	second, err := svc.Create(ctx, 5, 2, model.PaymentEasypaisa, "03001234567", "key-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, gateway.charges, "the charge must not repeat")
	assert.Len(t, store.rows, 1)
}

func TestPaymentKeyClaimedButUnrecorded(t *testing.T) {
	svc, _, _ := newTestPaymentService(true)
	ctx := context.Background()

	// The key is already claimed but no payment row exists yet, as when a
	// concurrent twin holds the claim mid-charge.
	_, err := svc.Keys.Reserve(ctx, "key-2", time.Hour)
	require.NoError(t, err)

	_, err = svc.Create(ctx, 5, 2, model.PaymentEasypaisa, "03001234567", "key-2")
	assert.ErrorIs(t, err, util.ErrPaymentInProgress)
}
