package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// otpStore is the slice of OTPRepository this service needs.
type otpStore interface {
	FindByPhone(phoneNumber string) (*model.OTP, error)
	Upsert(otp *model.OTP) error
	Save(otp *model.OTP) error
}

// OtpService owns the one-time-code cycle behind the Easypaisa payment
// gate: send a code to the student's email, verify what they type back.
// One row per phone number; a re-send resets verification and attempts.
type OtpService struct {
	Store  otpStore
	Sender OtpSender

	mu  sync.RWMutex
	cfg config.OTPConfig

	// Now is replaceable in tests.
	Now func() time.Time
}

func NewOtpService(store otpStore, sender OtpSender, cfg config.OTPConfig) *OtpService {
	return &OtpService{
		Store:  store,
		Sender: sender,
		cfg:    cfg,
		Now:    time.Now,
	}
}

// UpdateConfig swaps the OTP settings, used by the config hot-reload.
// In-flight codes keep the TTL and attempt budget they were issued with.
func (s *OtpService) UpdateConfig(cfg config.OTPConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *OtpService) config() config.OTPConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func generateCode(length int) (string, error) {
	const digits = "0123456789"
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = digits[int(buf[i])%len(digits)]
	}
	return string(buf), nil
}

// Send issues a fresh code for the phone number and mails it to the user.
// A known email on file is required; without one the transition fails and
// no code is stored.
func (s *OtpService) Send(user *model.User, phoneNumber string) error {
	if user == nil || user.Email == "" {
		return util.ErrEmailMissing
	}

	cfg := s.config()
	code, err := generateCode(cfg.CodeLength)
	if err != nil {
		return err
	}

	otp := &model.OTP{
		PhoneNumber: phoneNumber,
		Code:        code,
		IsVerified:  false,
		ExpiresAt:   s.Now().Add(time.Duration(cfg.TTLMinutes) * time.Minute),
		Attempts:    0,
		MaxAttempts: cfg.MaxAttempts,
	}
	if err := s.Store.Upsert(otp); err != nil {
		return err
	}

	return s.Sender.SendCode(user.Email, phoneNumber, code, cfg.TTLMinutes)
}

// Verify checks the submitted code. The returned error message is what the
// client shows verbatim.
func (s *OtpService) Verify(phoneNumber, code string) error {
	otp, err := s.Store.FindByPhone(phoneNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("No OTP found for this phone number.")
		}
		return err
	}

	if s.Now().After(otp.ExpiresAt) {
		return errors.New("OTP has expired. Please request a new one.")
	}

	if otp.Attempts >= otp.MaxAttempts {
		return errors.New("Maximum attempts exceeded. Please request a new OTP.")
	}

	if otp.Code != code {
		otp.Attempts++
		if err := s.Store.Save(otp); err != nil {
			return err
		}
		remaining := otp.MaxAttempts - otp.Attempts
		return fmt.Errorf("Invalid OTP. %d attempts remaining.", remaining)
	}

	otp.IsVerified = true
	return s.Store.Save(otp)
}

// IsVerified reports whether the phone number holds a live verified code.
// Used as the precondition for Easypaisa payments.
func (s *OtpService) IsVerified(phoneNumber string) bool {
	otp, err := s.Store.FindByPhone(phoneNumber)
	if err != nil {
		return false
	}
	return otp.IsVerified && !s.Now().After(otp.ExpiresAt)
}
