package service

import (
	"fmt"
	"net/http"

	"lms_backend/internal/config"
	"lms_backend/pkg/logger"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// OtpSender delivers a one-time code to the student.
type OtpSender interface {
	SendCode(toEmail, phoneNumber, code string, ttlMinutes int) error
}

// SendgridOtpSender mails the code through SendGrid.
type SendgridOtpSender struct {
	Key  string
	From *sgmail.Email
}

func NewSendgridOtpSender(cfg *config.MailConfig) *SendgridOtpSender {
	return &SendgridOtpSender{
		Key:  cfg.SendgridAPIKey,
		From: sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
	}
}

func (s *SendgridOtpSender) SendCode(toEmail, phoneNumber, code string, ttlMinutes int) error {
	subject := "LMS Payment Verification Code"
	plain := fmt.Sprintf(
		"Your LMS payment verification code is: %s\n\nThis code is valid for %d minutes only.\n\nIf you did not request this code, please ignore this email.",
		code, ttlMinutes,
	)
	html := fmt.Sprintf(
		`<h2>Payment Verification Code</h2><p>Your LMS payment verification code is:</p><h1>%s</h1><p>This code is valid for <strong>%d minutes</strong> only.</p>`,
		code, ttlMinutes,
	)

	message := sgmail.NewSingleEmail(s.From, subject, sgmail.NewEmail("", toEmail), plain, html)
	client := sendgrid.NewSendClient(s.Key)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	return nil
}

// ConsoleOtpSender logs the code instead of mailing it; the debug-mode
// backend so the flow works without a SendGrid account.
type ConsoleOtpSender struct{}

func (ConsoleOtpSender) SendCode(toEmail, phoneNumber, code string, ttlMinutes int) error {
	logger.Log.Info("OTP code issued",
		zap.String("email", toEmail),
		zap.String("phone", phoneNumber),
		zap.String("code", code),
	)
	return nil
}

// NewOtpSender picks the backend from config.
func NewOtpSender(cfg *config.MailConfig) OtpSender {
	if cfg.Backend == "sendgrid" && cfg.SendgridAPIKey != "" {
		return NewSendgridOtpSender(cfg)
	}
	return ConsoleOtpSender{}
}
