package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/app/services"
	"github.com/mkowalski/coursehub/internal/middleware"
)

// LessonController handles instructor lesson and attachment management
type LessonController struct {
	lessonService     services.LessonService
	attachmentService services.AttachmentService
}

// NewLessonController creates a new LessonController
func NewLessonController(lessonService services.LessonService, attachmentService services.AttachmentService) *LessonController {
	return &LessonController{
		lessonService:     lessonService,
		attachmentService: attachmentService,
	}
}

// GetLessons godoc
// @Summary List lessons of a course
// @Description List all lessons of one of the instructor's courses, including drafts
// @Tags instructor-lessons
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.LessonResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId}/lessons [get]
func (c *LessonController) GetLessons(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	lessons, err := c.lessonService.GetLessons(ctx, instructorID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lessons))
}

// CreateLesson godoc
// @Summary Create a lesson
// @Tags instructor-lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.CreateLessonRequest true "Lesson data"
// @Success 201 {object} dto.APIResponse{data=dto.LessonResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId}/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: middleware.BindingErrorDetail(err),
		})
		return
	}

	lesson, err := c.lessonService.CreateLesson(ctx, instructorID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lesson))
}

// GetLesson godoc
// @Summary Get a lesson with its attachments
// @Tags instructor-lessons
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=dto.LessonDetailResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId}/lessons/{lessonId} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
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

	lesson, err := c.lessonService.GetLesson(ctx, instructorID, courseID, lessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lesson))
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags instructor-lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param lessonId path int true "Lesson ID"
// @Param request body dto.UpdateLessonRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.LessonResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId}/lessons/{lessonId} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
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

	var req dto.UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: middleware.BindingErrorDetail(err),
		})
		return
	}

	lesson, err := c.lessonService.UpdateLesson(ctx, instructorID, courseID, lessonID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lesson))
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Description Delete a lesson together with its attachments
// @Tags instructor-lessons
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId}/lessons/{lessonId} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
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

	if err := c.lessonService.DeleteLesson(ctx, instructorID, courseID, lessonID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Lesson deleted successfully"}))
}

// UploadAttachment godoc
// @Summary Upload an attachment
// @Description Attach a file to a lesson. At most 10 attachments per lesson, 10 MiB each, allowed extensions only
// @Tags instructor-lessons
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param lessonId path int true "Lesson ID"
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.APIResponse{data=dto.AttachmentResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId}/lessons/{lessonId}/attachments [post]
func (c *LessonController) UploadAttachment(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
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

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid or missing file"),
		})
		return
	}

	attachment, err := c.attachmentService.UploadAttachment(ctx, instructorID, courseID, lessonID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(attachment))
}

// DeleteAttachment godoc
// @Summary Delete an attachment
// @Tags instructor-lessons
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param lessonId path int true "Lesson ID"
// @Param attachmentId path int true "Attachment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId}/lessons/{lessonId}/attachments/{attachmentId} [delete]
func (c *LessonController) DeleteAttachment(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
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

	if err := c.attachmentService.DeleteAttachment(ctx, instructorID, courseID, lessonID, attachmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Attachment deleted successfully"}))
}
