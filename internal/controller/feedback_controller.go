package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	FeedbackRepo *repository.FeedbackRepository
}

func NewFeedbackController(feedbackRepo *repository.FeedbackRepository) *FeedbackController {
	return &FeedbackController{FeedbackRepo: feedbackRepo}
}

type FeedbackCreateRequest struct {
	CourseID uint   `json:"courseId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comments string `json:"comments"`
}

// Create godoc
// @Summary Leave course feedback
// @Tags feedback
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body FeedbackCreateRequest true "feedback data"
// @Success 201 {object} util.Response{data=model.Feedback}
// @Router /api/feedback [post]
func (c *FeedbackController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req FeedbackCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	feedback := &model.Feedback{
		CourseID:  req.CourseID,
		StudentID: claims.UserID,
		Rating:    req.Rating,
		Comments:  req.Comments,
	}
	if err := c.FeedbackRepo.Create(feedback); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, feedback)
}

// ListByCourse godoc
// @Summary List a course's feedback
// @Tags feedback
// @Produce  json
// @Param   courseId path int true "course id"
// @Success 200 {object} util.Response{data=[]model.Feedback}
// @Router /api/courses/{courseId}/feedback [get]
func (c *FeedbackController) ListByCourse(ctx *gin.Context) {
	feedback, err := c.FeedbackRepo.ListByCourse(util.MustParseUint(ctx.Param("courseId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, feedback)
}
