package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/middleware"
)

// ApplicationController handles a student's resource applications
type ApplicationController struct {
	applicationService ApplicationAPI
	lgr                zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService ApplicationAPI, lgr zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		lgr:                lgr,
	}
}

// ListMyApplications returns the caller's applications
// @Summary List my applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Router /student/applications [get]
func (c *ApplicationController) ListMyApplications(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	rows, err := c.applicationService.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rows, ""))
}

// Apply applies the caller to a resource
// @Summary Apply for a resource
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateApplicationRequest true "Resource to apply for"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 403 {object} dto.ErrorResponse "Not eligible"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /student/applications [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.CreateApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	resourceID, err := uuid.Parse(req.ResourceID)
	if err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	resp, err := c.applicationService.Apply(ctx.Request.Context(), userID, resourceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Application submitted"))
}

// Withdraw deletes the caller's application for a resource
// @Summary Withdraw an application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param resourceId path string true "Resource ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /student/applications/{resourceId} [delete]
func (c *ApplicationController) Withdraw(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(ctx, "resourceId")
	if !ok {
		return
	}

	if err := c.applicationService.Withdraw(ctx.Request.Context(), userID, resourceID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Application withdrawn"))
}
