package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService     *service.CourseService
	EnrollmentService *service.EnrollmentService
}

func NewCourseController(courseService *service.CourseService, enrollmentService *service.EnrollmentService) *CourseController {
	return &CourseController{
		CourseService:     courseService,
		EnrollmentService: enrollmentService,
	}
}

// List godoc
// @Summary List courses
// @Description Catalog listing, optionally filtered by category or teacher.
// @Tags courses
// @Produce  json
// @Param   categoryId query int false "filter by category"
// @Param   teacherId query int false "filter by owning teacher"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	filter := repository.CourseFilter{}
	if v := ctx.Query("categoryId"); v != "" {
		filter.CategoryID = util.MustParseUint(v)
	}
	if v := ctx.Query("teacherId"); v != "" {
		filter.TeacherID = util.MustParseUint(v)
	}

	courses, err := c.CourseService.List(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Get godoc
// @Summary Course detail
// @Description Full course detail with sections, lessons and quizzes. When a
// @Description signed-in student asks, the enrollment flag is included.
// @Tags courses
// @Produce  json
// @Param   courseId path int true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	course, err := c.CourseService.Get(util.MustParseUint(ctx.Param("courseId")))
	if err != nil {
		respondError(ctx, err)
		return
	}

	enrolled := false
	if claims := util.GetUserFromContext(ctx); claims != nil && claims.Role == model.Student {
		enrolled = c.EnrollmentService.IsEnrolled(claims.UserID, course.ID)
	}

	util.Success(ctx, gin.H{
		"course":   course,
		"enrolled": enrolled,
	})
}

type CourseCreateRequest struct {
	Title       string  `json:"title" binding:"required,max=150"`
	Code        string  `json:"code" binding:"required,max=20"`
	Description string  `json:"description"`
	CategoryID  uint    `json:"categoryId" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CourseCreateRequest true "course data"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req CourseCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	course := &model.Course{
		Title:       req.Title,
		Code:        req.Code,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		IsAvailable: true,
	}
	if err := c.CourseService.Create(claims.UserID, course); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

type CourseUpdateRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=150"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	IsAvailable *bool    `json:"isAvailable"`
	CategoryID  *uint    `json:"categoryId"`
}

// Update godoc
// @Summary Update a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "course id"
// @Param   body body CourseUpdateRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req CourseUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	course, err := c.CourseService.Update(claims.UserID, util.MustParseUint(ctx.Param("courseId")), service.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary Delete a course
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "course id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.CourseService.Delete(claims.UserID, util.MustParseUint(ctx.Param("courseId"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListCategories godoc
// @Summary List course categories
// @Tags courses
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.CourseCategory}
// @Router /api/categories [get]
func (c *CourseController) ListCategories(ctx *gin.Context) {
	categories, err := c.CourseService.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}
