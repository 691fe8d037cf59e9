package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/app/services"
	"github.com/mkowalski/coursehub/internal/middleware"
	"github.com/mkowalski/coursehub/internal/pkg/helpers"
)

// CourseController handles instructor course management
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// GetCourses godoc
// @Summary List own courses
// @Description List the instructor's own courses, visible or not
// @Tags instructor-courses
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	courses, err := c.courseService.GetCourses(ctx, instructorID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// CreateCourse godoc
// @Summary Create a course
// @Tags instructor-courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: middleware.BindingErrorDetail(err),
		})
		return
	}

	course, err := c.courseService.CreateCourse(ctx, instructorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetCourse godoc
// @Summary Get one of own courses
// @Tags instructor-courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx, instructorID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags instructor-courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: middleware.BindingErrorDetail(err),
		})
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, instructorID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Delete a course with its lessons, attachments and enrollments
// @Tags instructor-courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, instructorID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Course deleted successfully"}))
}
