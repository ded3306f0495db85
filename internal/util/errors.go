package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrCourseNotFound    = errors.New("course not found")
	ErrCourseUnavailable = errors.New("course is not available for enrollment")
	ErrAlreadyEnrolled   = errors.New("already enrolled in this course")
	ErrNotEnrolled       = errors.New("not enrolled in this course")
	ErrPaymentRequired   = errors.New("payment required before enrollment")
	ErrStudentsOnly      = errors.New("only students can enroll in courses")

	ErrQuizNotFound            = errors.New("quiz not found")
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptAlreadySubmitted = errors.New("quiz already submitted")

	ErrPaymentMethodUnavailable = errors.New("payment method is not available")
	ErrPaymentInProgress        = errors.New("payment request already in progress")
	ErrOTPNotVerified           = errors.New("OTP verification required for this payment method")
	ErrEmailMissing             = errors.New("email address not found, please update your profile")
)
