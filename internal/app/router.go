package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerAuthenticatedRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

// Catalog browsing works without an account. TryAuth lets the course detail
// carry the enrollment flag for a signed-in student.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/courses", c.course.List)
		public.GET("/courses/:courseId", middleware.TryAuthMiddleware(cfg), c.course.Get)
		public.GET("/categories", c.course.ListCategories)
		public.GET("/courses/:courseId/sections", c.lesson.ListSections)
		public.GET("/courses/:courseId/lessons", c.lesson.ListByCourse)
		public.GET("/courses/:courseId/feedback", c.feedback.ListByCourse)
		public.GET("/quizzes", c.quiz.List)
		public.GET("/quizzes/:id", c.quiz.Get)
		public.GET("/teachers/:id", c.user.GetTeacher)
	}
}

func (a *App) registerAuthenticatedRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/me", c.auth.Me)
	group.PUT("/profile/teacher", c.user.UpdateTeacherProfile)
	group.PUT("/profile/student", c.user.UpdateStudentProfile)
	group.GET("/students/:id", c.user.GetStudent)

	group.GET("/files/:id/download", c.lesson.DownloadFile)
	group.GET("/lessons/:id/video", c.lesson.VideoURL)
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	student := group.Group("")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/enrollments", c.enrollment.ListMine)
		student.POST("/enrollments", c.enrollment.Enroll)
		student.DELETE("/enrollments/:courseId", c.enrollment.Unenroll)

		student.GET("/courses/:courseId/progress", c.enrollment.Progress)
		student.POST("/courses/:courseId/lessons/:lessonId/complete", c.enrollment.ToggleLesson)
		student.POST("/courses/:courseId/quizzes/:quizId/complete", c.enrollment.ToggleQuiz)

		student.POST("/quizzes/:id/attempts", c.quiz.StartAttempt)
		student.POST("/attempts/:id/submit", c.quiz.SubmitAttempt)

		student.POST("/payments", c.payment.Create)
		student.GET("/payments", c.payment.ListMine)
		student.POST("/otp/send", c.otp.Send)
		student.POST("/otp/verify", c.otp.Verify)

		student.GET("/results", c.result.ListMine)
		student.POST("/results", c.result.Create)
		student.POST("/feedback", c.feedback.Create)
	}
}

func (a *App) registerTeacherRoutes(group *gin.RouterGroup, c *controllers) {
	teacher := group.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/courses", c.course.Create)
		teacher.PUT("/courses/:courseId", c.course.Update)
		teacher.DELETE("/courses/:courseId", c.course.Delete)

		teacher.POST("/sections", c.lesson.CreateSection)
		teacher.PUT("/sections/:id", c.lesson.UpdateSection)
		teacher.DELETE("/sections/:id", c.lesson.DeleteSection)

		teacher.POST("/lessons", c.lesson.Create)
		teacher.PUT("/lessons/:id", c.lesson.Update)
		teacher.DELETE("/lessons/:id", c.lesson.Delete)
		teacher.POST("/lessons/:id/files", c.lesson.UploadFile)
		teacher.POST("/lessons/:id/files/link", c.lesson.AttachFile)
		teacher.PUT("/files/:id", c.lesson.UpdateFile)
		teacher.DELETE("/files/:id", c.lesson.DeleteFile)

		teacher.POST("/quizzes", c.quiz.Create)
		teacher.PUT("/quizzes/:id", c.quiz.Update)
		teacher.DELETE("/quizzes/:id", c.quiz.Delete)
		teacher.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
		teacher.POST("/questions/:id/answers", c.quiz.AddAnswer)

		teacher.GET("/teacher/stats", c.enrollment.TeacherStats)
	}
}
