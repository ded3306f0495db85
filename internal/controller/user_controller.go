package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetTeacher godoc
// @Summary Public teacher profile
// @Tags users
// @Produce  json
// @Param   id path int true "user id"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/teachers/{id} [get]
func (c *UserController) GetTeacher(ctx *gin.Context) {
	user, err := c.UserService.GetTeacher(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// GetStudent godoc
// @Summary Student profile
// @Tags users
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "user id"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/students/{id} [get]
func (c *UserController) GetStudent(ctx *gin.Context) {
	user, err := c.UserService.GetStudent(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type TeacherProfileRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=100"`
	Qualification *string `json:"qualification"`
	MobileNo      *string `json:"mobileNo" binding:"omitempty,max=20"`
	Experience    *int    `json:"experience" binding:"omitempty,gte=0"`
	Expertise     *string `json:"expertise"`
}

// UpdateTeacherProfile godoc
// @Summary Update own teacher profile
// @Tags users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body TeacherProfileRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 403 {object} util.Response
// @Router /api/profile/teacher [put]
func (c *UserController) UpdateTeacherProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req TeacherProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	user, err := c.UserService.UpdateTeacherProfile(claims.UserID, service.TeacherProfileUpdate{
		Name:          req.Name,
		Qualification: req.Qualification,
		MobileNo:      req.MobileNo,
		Experience:    req.Experience,
		Expertise:     req.Expertise,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type StudentProfileRequest struct {
	Name                 *string `json:"name" binding:"omitempty,max=100"`
	Qualification        *string `json:"qualification"`
	MobileNo             *string `json:"mobileNo" binding:"omitempty,max=20"`
	Address              *string `json:"address"`
	InterestedCategories *string `json:"interestedCategories"`
}

// UpdateStudentProfile godoc
// @Summary Update own student profile
// @Tags users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body StudentProfileRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 403 {object} util.Response
// @Router /api/profile/student [put]
func (c *UserController) UpdateStudentProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req StudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	user, err := c.UserService.UpdateStudentProfile(claims.UserID, service.StudentProfileUpdate{
		Name:                 req.Name,
		Qualification:        req.Qualification,
		MobileNo:             req.MobileNo,
		Address:              req.Address,
		InterestedCategories: req.InterestedCategories,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
