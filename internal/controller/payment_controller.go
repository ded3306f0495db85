package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{PaymentService: paymentService}
}

type PaymentCreateRequest struct {
	CourseID    uint   `json:"courseId" binding:"required"`
	Method      string `json:"method" binding:"required,oneof=easypaisa credit-card bank-transfer"`
	PhoneNumber string `json:"phoneNumber"`
}

// Create godoc
// @Summary Pay for a course
// @Description Easypaisa requires a verified OTP for the phone number; the
// @Description other methods are declared but unavailable. Repeating the
// @Description request with the same Idempotency-Key returns the original
// @Description payment instead of charging again.
// @Tags payments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   Idempotency-Key header string false "client-chosen replay key"
// @Param   body body PaymentCreateRequest true "payment data"
// @Success 201 {object} util.Response{data=model.Payment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/payments [post]
func (c *PaymentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req PaymentCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	payment, err := c.PaymentService.Create(
		ctx.Request.Context(),
		claims.UserID,
		req.CourseID,
		model.PaymentMethod(req.Method),
		req.PhoneNumber,
		ctx.GetHeader("Idempotency-Key"),
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, payment)
}

// ListMine godoc
// @Summary My payments
// @Tags payments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Payment}
// @Router /api/payments [get]
func (c *PaymentController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	payments, err := c.PaymentService.ListMine(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, payments)
}
