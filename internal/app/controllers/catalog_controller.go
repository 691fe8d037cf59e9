package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/app/services"
	"github.com/mkowalski/coursehub/internal/middleware"
	"github.com/mkowalski/coursehub/internal/pkg/helpers"
)

// CatalogController handles the student-facing course catalog
type CatalogController struct {
	catalogService    services.CatalogService
	enrollmentService services.EnrollmentService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService, enrollmentService services.EnrollmentService) *CatalogController {
	return &CatalogController{
		catalogService:    catalogService,
		enrollmentService: enrollmentService,
	}
}

// GetCatalog godoc
// @Summary Browse the course catalog
// @Description List visible courses annotated with the student's enrollment status
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.CatalogListResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /courses [get]
func (c *CatalogController) GetCatalog(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	catalog, err := c.catalogService.GetCatalog(ctx, studentID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(catalog))
}

// GetCourseDetail godoc
// @Summary Get course details
// @Description Get a visible course with its published lessons. Requires an approved enrollment
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CatalogCourseDetailResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /courses/{courseId} [get]
func (c *CatalogController) GetCourseDetail(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	course, err := c.catalogService.GetCourseDetail(ctx, studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// GetLessonDetail godoc
// @Summary Get lesson details
// @Description Get a published lesson with its attachments. Requires an approved enrollment
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=dto.LessonDetailResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /courses/{courseId}/lessons/{lessonId} [get]
func (c *CatalogController) GetLessonDetail(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	lessonID, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	lesson, err := c.catalogService.GetLessonDetail(ctx, studentID, courseID, lessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lesson))
}

// DownloadAttachment godoc
// @Summary Download an attachment
// @Description Download a lesson attachment and bump its download counter. Requires an approved enrollment
// @Tags catalog
// @Produce octet-stream
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param lessonId path int true "Lesson ID"
// @Param attachmentId path int true "Attachment ID"
// @Success 200 {file} binary
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /courses/{courseId}/lessons/{lessonId}/attachments/{attachmentId}/download [get]
func (c *CatalogController) DownloadAttachment(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	lessonID, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	attachmentID, ok := parseIDParam(ctx, "attachmentId")
	if !ok {
		return
	}

	attachment, fullPath, err := c.catalogService.DownloadAttachment(ctx, studentID, courseID, lessonID, attachmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.FileAttachment(fullPath, attachment.OriginalFilename)
}

// Enroll godoc
// @Summary Request enrollment in a course
// @Description Create a pending enrollment for the calling student
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /courses/{courseId}/enroll [post]
func (c *CatalogController) Enroll(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx, studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(enrollment))
}

// GetMyCourses godoc
// @Summary List enrolled courses
// @Description List the visible courses the student holds an approved enrollment for
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=[]dto.MyCourseResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /my-courses [get]
func (c *CatalogController) GetMyCourses(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	courses, pagination, err := c.catalogService.GetMyCourses(ctx, studentID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"courses":    courses,
		"pagination": pagination,
	}))
}
