package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OtpController struct {
	OtpService  *service.OtpService
	UserService *service.UserService
}

func NewOtpController(otpService *service.OtpService, userService *service.UserService) *OtpController {
	return &OtpController{
		OtpService:  otpService,
		UserService: userService,
	}
}

type OtpSendRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,max=20"`
}

// Send godoc
// @Summary Send a verification code
// @Description Mails a fresh code to the account's email. A re-send replaces
// @Description the previous code and resets verification and attempts.
// @Tags otp
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body OtpSendRequest true "phone number"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/otp/send [post]
func (c *OtpController) Send(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req OtpSendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	user, err := c.UserService.GetUser(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := c.OtpService.Send(user, req.PhoneNumber); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "OTP sent to your email"})
}

type OtpVerifyRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,max=20"`
	Code        string `json:"otp" binding:"required"`
}

// Verify godoc
// @Summary Verify a code
// @Description The failure message carries the remaining attempt count and is
// @Description shown to the user as is.
// @Tags otp
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body OtpVerifyRequest true "phone number and code"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/otp/verify [post]
func (c *OtpController) Verify(ctx *gin.Context) {
	var req OtpVerifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	if err := c.OtpService.Verify(req.PhoneNumber, req.Code); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"verified": true})
}
