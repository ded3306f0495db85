package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ResultController serves the results page. Results are normally written by
// attempt finalization; the create endpoint remains for clients recording
// externally graded scores.
type ResultController struct {
	ResultRepo *repository.ResultRepository
}

func NewResultController(resultRepo *repository.ResultRepository) *ResultController {
	return &ResultController{ResultRepo: resultRepo}
}

// ListMine godoc
// @Summary My quiz results
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuizResult}
// @Router /api/results [get]
func (c *ResultController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	results, err := c.ResultRepo.ListByStudent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

type ResultCreateRequest struct {
	QuizID       uint    `json:"quizId" binding:"required"`
	Score        float64 `json:"score" binding:"gte=0,lte=100"`
	GradeAwarded string  `json:"gradeAwarded" binding:"required,max=10"`
}

// Create godoc
// @Summary Record a quiz result
// @Tags results
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ResultCreateRequest true "result data"
// @Success 201 {object} util.Response{data=model.QuizResult}
// @Router /api/results [post]
func (c *ResultController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req ResultCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	result := &model.QuizResult{
		StudentID:    claims.UserID,
		QuizID:       req.QuizID,
		Score:        req.Score,
		GradeAwarded: req.GradeAwarded,
	}
	if err := c.ResultRepo.Create(result); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
