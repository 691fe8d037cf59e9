package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/app/services"
	"github.com/mkowalski/coursehub/internal/middleware"
	"github.com/mkowalski/coursehub/internal/pkg/helpers"
)

// EnrollmentController handles instructor enrollment management
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// GetEnrollments godoc
// @Summary List enrollments of a course
// @Description List enrollments of one of the instructor's courses, optionally filtered by status
// @Tags instructor-enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId}/enrollments [get]
func (c *EnrollmentController) GetEnrollments(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	statusFilter := ctx.Query("status")
	page, size := helpers.ParsePaginationParams(ctx)

	enrollments, err := c.enrollmentService.GetEnrollments(ctx, instructorID, courseID, statusFilter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollments))
}

// BulkUpdateEnrollments godoc
// @Summary Apply a bulk action to enrollments
// @Description Approve, reject, restore or delete a batch of enrollments atomically. If any ID does not belong to the course, nothing changes
// @Tags instructor-enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.BulkUpdateRequest true "Action and enrollment IDs"
// @Success 200 {object} dto.APIResponse{data=dto.BulkUpdateResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /instructor/courses/{courseId}/enrollments/bulk-update [post]
func (c *EnrollmentController) BulkUpdateEnrollments(ctx *gin.Context) {
	instructorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.BulkUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: middleware.BindingErrorDetail(err),
		})
		return
	}

	result, err := c.enrollmentService.BulkUpdate(ctx, instructorID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
