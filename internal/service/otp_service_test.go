package service

import (
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOtpStore struct {
	rows map[string]*model.OTP
}

func newFakeOtpStore() *fakeOtpStore {
	return &fakeOtpStore{rows: make(map[string]*model.OTP)}
}

func (s *fakeOtpStore) FindByPhone(phoneNumber string) (*model.OTP, error) {
	otp, ok := s.rows[phoneNumber]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *otp
	return &cp, nil
}

func (s *fakeOtpStore) Upsert(otp *model.OTP) error {
	cp := *otp
	s.rows[otp.PhoneNumber] = &cp
	return nil
}

func (s *fakeOtpStore) Save(otp *model.OTP) error {
	cp := *otp
	s.rows[otp.PhoneNumber] = &cp
	return nil
}

type recordingSender struct {
	emails []string
	codes  []string
}

func (r *recordingSender) SendCode(toEmail, phoneNumber, code string, ttlMinutes int) error {
	r.emails = append(r.emails, toEmail)
	r.codes = append(r.codes, code)
	return nil
}

func newTestOtpService() (*OtpService, *fakeOtpStore, *recordingSender) {
	store := newFakeOtpStore()
	sender := &recordingSender{}
	svc := NewOtpService(store, sender, config.OTPConfig{
		CodeLength:  6,
		TTLMinutes:  5,
		MaxAttempts: 3,
	})
	svc.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store, sender
}

func TestOtpSendRequiresEmail(t *testing.T) {
	svc, store, sender := newTestOtpService()

	err := svc.Send(&model.User{}, "03001234567")
	assert.ErrorIs(t, err, util.ErrEmailMissing)

	err = svc.Send(nil, "03001234567")
	assert.ErrorIs(t, err, util.ErrEmailMissing)

	assert.Empty(t, store.rows)
	assert.Empty(t, sender.codes)
}

func TestOtpSendStoresCodeAndMails(t *testing.T) {
	svc, store, sender := newTestOtpService()

	user := &model.User{Email: "student@example.com"}
	require.NoError(t, svc.Send(user, "03001234567"))

	otp, ok := store.rows["03001234567"]
	require.True(t, ok)
	assert.Len(t, otp.Code, 6)
	assert.False(t, otp.IsVerified)
	assert.Equal(t, 0, otp.Attempts)
	assert.Equal(t, 3, otp.MaxAttempts)
	assert.Equal(t, svc.Now().Add(5*time.Minute), otp.ExpiresAt)

	require.Len(t, sender.codes, 1)
	assert.Equal(t, otp.Code, sender.codes[0])
	assert.Equal(t, "student@example.com", sender.emails[0])
}

func TestOtpVerifyWithoutSend(t *testing.T) {
	svc, _, _ := newTestOtpService()

	err := svc.Verify("03001234567", "123456")
	require.Error(t, err)
	assert.Equal(t, "No OTP found for this phone number.", err.Error())
}

func TestOtpVerifyCorrectCode(t *testing.T) {
	svc, store, sender := newTestOtpService()

	require.NoError(t, svc.Send(&model.User{Email: "s@example.com"}, "03001234567"))
	require.NoError(t, svc.Verify("03001234567", sender.codes[0]))

	assert.True(t, store.rows["03001234567"].IsVerified)
	assert.True(t, svc.IsVerified("03001234567"))
}

func TestOtpVerifyWrongCodeCountsAttempts(t *testing.T) {
	svc, store, _ := newTestOtpService()

	require.NoError(t, svc.Send(&model.User{Email: "s@example.com"}, "03001234567"))
	store.rows["03001234567"].Code = "111111"

	err := svc.Verify("03001234567", "000000")
	require.Error(t, err)
	assert.Equal(t, "Invalid OTP. 2 attempts remaining.", err.Error())

	err = svc.Verify("03001234567", "000000")
	require.Error(t, err)
	assert.Equal(t, "Invalid OTP. 1 attempts remaining.", err.Error())

	err = svc.Verify("03001234567", "000000")
	require.Error(t, err)
	assert.Equal(t, "Invalid OTP. 0 attempts remaining.", err.Error())

	// Even the right code is refused once attempts are spent.
	err = svc.Verify("03001234567", "111111")
	require.Error(t, err)
	assert.Equal(t, "Maximum attempts exceeded. Please request a new OTP.", err.Error())
	assert.False(t, svc.IsVerified("03001234567"))
}

func TestOtpVerifyExpired(t *testing.T) {
	svc, store, _ := newTestOtpService()

	require.NoError(t, svc.Send(&model.User{Email: "s@example.com"}, "03001234567"))
	code := store.rows["03001234567"].Code

	svc.Now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 5, 1, 0, time.UTC)
	}

	err := svc.Verify("03001234567", code)
	require.Error(t, err)
	assert.Equal(t, "OTP has expired. Please request a new one.", err.Error())
}

func TestOtpResendResetsState(t *testing.T) {
	svc, store, sender := newTestOtpService()
	user := &model.User{Email: "s@example.com"}

	require.NoError(t, svc.Send(user, "03001234567"))
	require.NoError(t, svc.Verify("03001234567", sender.codes[0]))
	require.True(t, svc.IsVerified("03001234567"))

	// A new send invalidates the earlier verification and attempts.
	store.rows["03001234567"].Attempts = 2
	require.NoError(t, svc.Send(user, "03001234567"))

	otp := store.rows["03001234567"]
	assert.False(t, otp.IsVerified)
	assert.Equal(t, 0, otp.Attempts)
	assert.False(t, svc.IsVerified("03001234567"))
}

func TestOtpVerifiedButExpiredIsNotVerified(t *testing.T) {
	svc, store, sender := newTestOtpService()

	require.NoError(t, svc.Send(&model.User{Email: "s@example.com"}, "03001234567"))
	require.NoError(t, svc.Verify("03001234567", sender.codes[0]))
	require.True(t, store.rows["03001234567"].IsVerified)

	svc.Now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 10, 0, 0, time.UTC)
	}
	assert.False(t, svc.IsVerified("03001234567"))
}
