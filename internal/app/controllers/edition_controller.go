package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/app/services"
	"github.com/mkowalski/coursehub/internal/middleware"
)

// EditionController handles course edition operations
type EditionController struct {
	editionService services.EditionService
}

// NewEditionController creates a new EditionController
func NewEditionController(editionService services.EditionService) *EditionController {
	return &EditionController{
		editionService: editionService,
	}
}

// GetAllEditions godoc
// @Summary List course editions
// @Tags editions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EditionResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /editions [get]
func (c *EditionController) GetAllEditions(ctx *gin.Context) {
	editions, err := c.editionService.GetAllEditions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(editions))
}

// CreateEdition godoc
// @Summary Create a course edition
// @Tags editions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateEditionRequest true "Edition data"
// @Success 201 {object} dto.APIResponse{data=dto.EditionResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /editions [post]
func (c *EditionController) CreateEdition(ctx *gin.Context) {
	var req dto.CreateEditionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: middleware.BindingErrorDetail(err),
		})
		return
	}

	edition, err := c.editionService.CreateEdition(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(edition))
}

// UpdateEdition godoc
// @Summary Rename a course edition
// @Tags editions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param editionId path int true "Edition ID"
// @Param request body dto.UpdateEditionRequest true "Edition data"
// @Success 200 {object} dto.APIResponse{data=dto.EditionResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /editions/{editionId} [put]
func (c *EditionController) UpdateEdition(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "editionId")
	if !ok {
		return
	}

	var req dto.UpdateEditionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: middleware.BindingErrorDetail(err),
		})
		return
	}

	edition, err := c.editionService.UpdateEdition(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(edition))
}

// DeleteEdition godoc
// @Summary Delete a course edition
// @Description Delete an edition that no course references
// @Tags editions
// @Produce json
// @Security ApiKeyAuth
// @Param editionId path int true "Edition ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /editions/{editionId} [delete]
func (c *EditionController) DeleteEdition(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "editionId")
	if !ok {
		return
	}

	if err := c.editionService.DeleteEdition(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Edition deleted successfully"}))
}
