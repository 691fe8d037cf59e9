package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mkowalski/coursehub/internal/app/controllers"
	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	editionController *controllers.EditionController,
	courseController *controllers.CourseController,
	lessonController *controllers.LessonController,
	catalogController *controllers.CatalogController,
	enrollmentController *controllers.EnrollmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Edition routes: readable by anyone authenticated, managed by
		// instructors
		editions := authenticated.Group("/editions")
		{
			editions.GET("", editionController.GetAllEditions)

			editionsInstructorProtected := editions.Group("")
			editionsInstructorProtected.Use(authMiddleware.RoleRequired(string(models.RoleInstructor)))
			{
				editionsInstructorProtected.POST("", editionController.CreateEdition)
				editionsInstructorProtected.PUT("/:editionId", editionController.UpdateEdition)
				editionsInstructorProtected.DELETE("/:editionId", editionController.DeleteEdition)
			}
		}

		// Student-facing catalog routes
		catalog := authenticated.Group("")
		catalog.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			catalog.GET("/courses", catalogController.GetCatalog)
			catalog.GET("/courses/:courseId", catalogController.GetCourseDetail)
			catalog.GET("/courses/:courseId/lessons/:lessonId", catalogController.GetLessonDetail)
			catalog.GET("/courses/:courseId/lessons/:lessonId/attachments/:attachmentId/download", catalogController.DownloadAttachment)
			catalog.POST("/courses/:courseId/enroll", catalogController.Enroll)
			catalog.GET("/my-courses", catalogController.GetMyCourses)
		}

		// Instructor management routes
		instructor := authenticated.Group("/instructor")
		instructor.Use(authMiddleware.RoleRequired(string(models.RoleInstructor)))
		{
			instructorCourses := instructor.Group("/courses")
			{
				instructorCourses.GET("", courseController.GetCourses)
				instructorCourses.POST("", courseController.CreateCourse)
				instructorCourses.GET("/:courseId", courseController.GetCourse)
				instructorCourses.PUT("/:courseId", courseController.UpdateCourse)
				instructorCourses.DELETE("/:courseId", courseController.DeleteCourse)

				// Lessons
				instructorCourses.GET("/:courseId/lessons", lessonController.GetLessons)
				instructorCourses.POST("/:courseId/lessons", lessonController.CreateLesson)
				instructorCourses.GET("/:courseId/lessons/:lessonId", lessonController.GetLesson)
				instructorCourses.PUT("/:courseId/lessons/:lessonId", lessonController.UpdateLesson)
				instructorCourses.DELETE("/:courseId/lessons/:lessonId", lessonController.DeleteLesson)

				// Attachments
				instructorCourses.POST("/:courseId/lessons/:lessonId/attachments", lessonController.UploadAttachment)
				instructorCourses.DELETE("/:courseId/lessons/:lessonId/attachments/:attachmentId", lessonController.DeleteAttachment)

				// Enrollments
				instructorCourses.GET("/:courseId/enrollments", enrollmentController.GetEnrollments)
				instructorCourses.POST("/:courseId/enrollments/bulk-update", enrollmentController.BulkUpdateEnrollments)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
