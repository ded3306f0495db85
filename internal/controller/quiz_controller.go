package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService    *service.QuizService
	AttemptService *service.AttemptService
}

func NewQuizController(quizService *service.QuizService, attemptService *service.AttemptService) *QuizController {
	return &QuizController{
		QuizService:    quizService,
		AttemptService: attemptService,
	}
}

// List godoc
// @Summary List quizzes
// @Tags quizzes
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	quizzes, err := c.QuizService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Get godoc
// @Summary Quiz detail with questions and answers
// @Tags quizzes
// @Produce  json
// @Param   id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	quiz, err := c.QuizService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

type QuizCreateRequest struct {
	LessonCategoryID uint   `json:"lessonCategoryId" binding:"required"`
	Title            string `json:"title" binding:"required,max=150"`
	Description      string `json:"description"`
	TotalMarks       int    `json:"totalMarks" binding:"required,gt=0"`
	Duration         int    `json:"duration" binding:"required,gt=0"`
	Order            int    `json:"order"`
}

// Create godoc
// @Summary Create a quiz
// @Description TotalMarks is the declared total the score is scaled against;
// @Description it may differ from the sum of question marks.
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body QuizCreateRequest true "quiz data"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 403 {object} util.Response
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req QuizCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	quiz := &model.Quiz{
		LessonCategoryID: req.LessonCategoryID,
		Title:            req.Title,
		Description:      req.Description,
		TotalMarks:       req.TotalMarks,
		Duration:         req.Duration,
		Order:            req.Order,
	}
	if err := c.QuizService.Create(claims.UserID, quiz); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

type QuizUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=150"`
	Description *string `json:"description"`
	TotalMarks  *int    `json:"totalMarks" binding:"omitempty,gt=0"`
	Duration    *int    `json:"duration" binding:"omitempty,gt=0"`
	Order       *int    `json:"order"`
}

// Update godoc
// @Summary Update a quiz
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "quiz id"
// @Param   body body QuizUpdateRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req QuizUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	quiz, err := c.QuizService.Update(claims.UserID, util.MustParseUint(ctx.Param("id")), service.QuizUpdate{
		Title:       req.Title,
		Description: req.Description,
		TotalMarks:  req.TotalMarks,
		Duration:    req.Duration,
		Order:       req.Order,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.QuizService.Delete(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type AnswerRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionCreateRequest struct {
	Text    string          `json:"text" binding:"required"`
	Marks   int             `json:"marks" binding:"required,gt=0"`
	Answers []AnswerRequest `json:"answers" binding:"omitempty,dive"`
}

// AddQuestion godoc
// @Summary Add a question with its answer options
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "quiz id"
// @Param   body body QuestionCreateRequest true "question data"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /api/quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	drafts := make([]service.AnswerDraft, 0, len(req.Answers))
	for _, a := range req.Answers {
		drafts = append(drafts, service.AnswerDraft{Text: a.Text, IsCorrect: a.IsCorrect})
	}

	question, err := c.QuizService.AddQuestion(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Text, req.Marks, drafts)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// AddAnswer godoc
// @Summary Add an answer option to a question
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "question id"
// @Param   body body AnswerRequest true "answer data"
// @Success 201 {object} util.Response{data=model.Answer}
// @Router /api/questions/{id}/answers [post]
func (c *QuizController) AddAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	answer, err := c.QuizService.AddAnswer(claims.UserID, util.MustParseUint(ctx.Param("id")), service.AnswerDraft{
		Text:      req.Text,
		IsCorrect: req.IsCorrect,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

// Attempts.

// StartAttempt godoc
// @Summary Start (or resume) a timed attempt
// @Description Returns the already-open attempt when one exists, so a page
// @Description reload never resets the clock.
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.QuizAttempt}
// @Failure 403 {object} util.Response
// @Router /api/quizzes/{id}/attempts [post]
func (c *QuizController) StartAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	attempt, err := c.AttemptService.Start(claims.UserID, claims.Role, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

type AttemptSubmitRequest struct {
	// Selections maps question id to the chosen answer id.
	Selections map[uint]uint `json:"selections" binding:"required"`
}

// SubmitAttempt godoc
// @Summary Submit an attempt for grading
// @Description Grades the selections and returns the scored attempt. A second
// @Description submit of the same attempt is rejected.
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "attempt id"
// @Param   body body AttemptSubmitRequest true "selected answers"
// @Success 200 {object} util.Response{data=model.QuizAttempt}
// @Failure 409 {object} util.Response
// @Router /api/attempts/{id}/submit [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req AttemptSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	attempt, err := c.AttemptService.Submit(claims.UserID, util.MustParseUint(ctx.Param("id")), model.SelectionMap(req.Selections))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}
