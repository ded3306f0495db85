package controller

import (
	"errors"
	"net/http"

	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError dispatches a service error onto the response envelope.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied), errors.Is(err, util.ErrStudentsOnly):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrNotEnrolled):
		util.Error(ctx, http.StatusForbidden, "You are not enrolled in this course")
	case errors.Is(err, util.ErrAlreadyEnrolled):
		util.Conflict(ctx, "Already enrolled in this course")
	case errors.Is(err, util.ErrCourseUnavailable):
		util.Conflict(ctx, "Course is not available for enrollment")
	case errors.Is(err, util.ErrPaymentRequired):
		util.Error(ctx, http.StatusPaymentRequired, "Payment required before enrollment")
	case errors.Is(err, util.ErrPaymentMethodUnavailable):
		util.BadRequest(ctx, "This payment method is currently unavailable")
	case errors.Is(err, util.ErrOTPNotVerified):
		util.BadRequest(ctx, "Phone number has not been verified")
	case errors.Is(err, util.ErrPaymentInProgress):
		util.Conflict(ctx, "A payment with this key is already in progress")
	case errors.Is(err, util.ErrAttemptAlreadySubmitted):
		util.Conflict(ctx, "Attempt has already been submitted")
	case errors.Is(err, util.ErrEmailMissing):
		util.BadRequest(ctx, "No email address on file for this account")
	default:
		util.LogInternalError(ctx, err)
	}
}
