package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
	ProgressService   *service.ProgressService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService, progressService *service.ProgressService) *EnrollmentController {
	return &EnrollmentController{
		EnrollmentService: enrollmentService,
		ProgressService:   progressService,
	}
}

type EnrollRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Free courses enroll directly; a priced course needs a
// @Description completed payment on record first.
// @Tags enrollments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body EnrollRequest true "course to join"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 402 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	enrollment, err := c.EnrollmentService.Enroll(claims.UserID, req.CourseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// Unenroll godoc
// @Summary Leave a course
// @Description Removes the enrollment. Completion flags are kept, so
// @Description re-enrolling restores the previous progress.
// @Tags enrollments
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/{courseId} [delete]
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.EnrollmentService.Unenroll(claims.UserID, util.MustParseUint(ctx.Param("courseId"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListMine godoc
// @Summary My enrollments
// @Tags enrollments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	enrollments, err := c.EnrollmentService.ListMine(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// TeacherStats godoc
// @Summary Enrollment counts per owned course
// @Tags enrollments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.CourseStat}
// @Router /api/teacher/stats [get]
func (c *EnrollmentController) TeacherStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	stats, err := c.EnrollmentService.TeacherStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// Progress godoc
// @Summary My progress in a course
// @Tags enrollments
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "course id"
// @Success 200 {object} util.Response{data=service.Progress}
// @Router /api/courses/{courseId}/progress [get]
func (c *EnrollmentController) Progress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	if err := c.EnrollmentService.CanAccessContent(claims.UserID, claims.Role, courseID); err != nil {
		respondError(ctx, err)
		return
	}

	progress, err := c.ProgressService.Compute(ctx.Request.Context(), claims.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// ToggleLesson godoc
// @Summary Toggle a lesson's completion flag
// @Tags enrollments
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "course id"
// @Param   lessonId path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/lessons/{lessonId}/complete [post]
func (c *EnrollmentController) ToggleLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	if err := c.EnrollmentService.CanAccessContent(claims.UserID, claims.Role, courseID); err != nil {
		respondError(ctx, err)
		return
	}

	completed, err := c.ProgressService.ToggleLesson(ctx.Request.Context(), claims.UserID, courseID, util.MustParseUint(ctx.Param("lessonId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"completed": completed})
}

// ToggleQuiz godoc
// @Summary Toggle a quiz's completion flag
// @Tags enrollments
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "course id"
// @Param   quizId path int true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/quizzes/{quizId}/complete [post]
func (c *EnrollmentController) ToggleQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	if err := c.EnrollmentService.CanAccessContent(claims.UserID, claims.Role, courseID); err != nil {
		respondError(ctx, err)
		return
	}

	completed, err := c.ProgressService.ToggleQuiz(ctx.Request.Context(), claims.UserID, courseID, util.MustParseUint(ctx.Param("quizId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"completed": completed})
}
