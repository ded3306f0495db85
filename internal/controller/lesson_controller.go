package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// Sections.

// ListSections godoc
// @Summary List a course's sections
// @Tags lessons
// @Produce  json
// @Param   courseId path int true "course id"
// @Success 200 {object} util.Response{data=[]model.LessonCategory}
// @Router /api/courses/{courseId}/sections [get]
func (c *LessonController) ListSections(ctx *gin.Context) {
	sections, err := c.LessonService.ListSections(util.MustParseUint(ctx.Param("courseId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}

type SectionCreateRequest struct {
	CourseID    uint   `json:"courseId" binding:"required"`
	Title       string `json:"title" binding:"required,max=150"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// CreateSection godoc
// @Summary Create a section
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SectionCreateRequest true "section data"
// @Success 201 {object} util.Response{data=model.LessonCategory}
// @Failure 403 {object} util.Response
// @Router /api/sections [post]
func (c *LessonController) CreateSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req SectionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	section := &model.LessonCategory{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := c.LessonService.CreateSection(claims.UserID, section); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, section)
}

type SectionUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=150"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

// UpdateSection godoc
// @Summary Update a section
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "section id"
// @Param   body body SectionUpdateRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.LessonCategory}
// @Router /api/sections/{id} [put]
func (c *LessonController) UpdateSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req SectionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	section, err := c.LessonService.UpdateSection(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Title, req.Description, req.Order)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, section)
}

// DeleteSection godoc
// @Summary Delete a section
// @Tags lessons
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "section id"
// @Success 200 {object} util.Response
// @Router /api/sections/{id} [delete]
func (c *LessonController) DeleteSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.LessonService.DeleteSection(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Lessons.

// ListByCourse godoc
// @Summary List a course's lessons
// @Tags lessons
// @Produce  json
// @Param   courseId path int true "course id"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /api/courses/{courseId}/lessons [get]
func (c *LessonController) ListByCourse(ctx *gin.Context) {
	lessons, err := c.LessonService.ListByCourse(util.MustParseUint(ctx.Param("courseId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

type LessonCreateRequest struct {
	CourseID   uint   `json:"courseId" binding:"required"`
	CategoryID *uint  `json:"categoryId"`
	Title      string `json:"title" binding:"required,max=150"`
	Content    string `json:"content"`
	VideoURL   string `json:"videoUrl"`
	Order      int    `json:"order"`
}

// Create godoc
// @Summary Create a lesson
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body LessonCreateRequest true "lesson data"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 403 {object} util.Response
// @Router /api/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req LessonCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	lesson := &model.Lesson{
		CourseID:   req.CourseID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Content:    req.Content,
		VideoURL:   req.VideoURL,
		Order:      req.Order,
	}
	if err := c.LessonService.Create(claims.UserID, lesson); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

type LessonUpdateRequest struct {
	Title      *string `json:"title" binding:"omitempty,max=150"`
	Content    *string `json:"content"`
	VideoURL   *string `json:"videoUrl"`
	CategoryID *uint   `json:"categoryId"`
	Order      *int    `json:"order"`
}

// Update godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Param   body body LessonUpdateRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req LessonUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	lesson, err := c.LessonService.Update(claims.UserID, util.MustParseUint(ctx.Param("id")), service.LessonUpdate{
		Title:      req.Title,
		Content:    req.Content,
		VideoURL:   req.VideoURL,
		CategoryID: req.CategoryID,
		Order:      req.Order,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// Delete godoc
// @Summary Delete a lesson
// @Tags lessons
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.LessonService.Delete(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Files.

// UploadFile godoc
// @Summary Upload a lesson file
// @Description Multipart upload; the file lands in object storage.
// @Tags lessons
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Param   title formData string true "display title"
// @Param   file formData file true "content"
// @Success 201 {object} util.Response{data=model.LessonFile}
// @Router /api/lessons/{id}/files [post]
func (c *LessonController) UploadFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	file, err := c.LessonService.UploadFile(
		ctx.Request.Context(),
		claims.UserID,
		util.MustParseUint(ctx.Param("id")),
		title,
		fileHeader.Filename,
		src,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, file)
}

type FileAttachRequest struct {
	Title   string `json:"title" binding:"required,max=150"`
	FileURL string `json:"fileUrl" binding:"required,url"`
}

// AttachFile godoc
// @Summary Attach an external file link
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Param   body body FileAttachRequest true "file link"
// @Success 201 {object} util.Response{data=model.LessonFile}
// @Router /api/lessons/{id}/files/link [post]
func (c *LessonController) AttachFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req FileAttachRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	file, err := c.LessonService.AttachFile(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Title, req.FileURL)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, file)
}

type FileUpdateRequest struct {
	Title *string `json:"title" binding:"omitempty,max=150"`
}

// UpdateFile godoc
// @Summary Rename a lesson file
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "file id"
// @Param   body body FileUpdateRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.LessonFile}
// @Router /api/files/{id} [put]
func (c *LessonController) UpdateFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req FileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}

	file, err := c.LessonService.UpdateFile(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Title)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, file)
}

// DeleteFile godoc
// @Summary Delete a lesson file
// @Tags lessons
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "file id"
// @Success 200 {object} util.Response
// @Router /api/files/{id} [delete]
func (c *LessonController) DeleteFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.LessonService.DeleteFile(ctx.Request.Context(), claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DownloadFile godoc
// @Summary Resolve a gated file URL
// @Description Enrollment (or course ownership) is required.
// @Tags lessons
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "file id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/files/{id}/download [get]
func (c *LessonController) DownloadFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	file, err := c.LessonService.FileForDownload(claims.UserID, claims.Role, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"title": file.Title,
		"url":   file.FileURL,
	})
}

// VideoURL godoc
// @Summary Resolve a gated lesson video URL
// @Tags lessons
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/lessons/{id}/video [get]
func (c *LessonController) VideoURL(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	url, err := c.LessonService.VideoURL(claims.UserID, claims.Role, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
