package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/middleware"
)

// ResourceController handles resource and condition endpoints
type ResourceController struct {
	resourceService ResourceAPI
	lgr             zerolog.Logger
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService ResourceAPI, lgr zerolog.Logger) *ResourceController {
	return &ResourceController{
		resourceService: resourceService,
		lgr:             lgr,
	}
}

// CreateResource publishes a resource
// @Summary Create a resource
// @Description Publishes a resource for the caller's department or company. It opens once a condition is added.
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateResourceRequest true "Resource"
// @Success 201 {object} dto.APIResponse{data=dto.CreatedResourceResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a department or company"
// @Router /resources [post]
func (c *ResourceController) CreateResource(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.CreateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	id, err := c.resourceService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.CreatedResourceResponse{ResourceID: id}, "Resource created"))
}

// ListResources lists every open resource
// @Summary List available resources
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ResourceResponse}
// @Router /resources [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	resources, err := c.resourceService.ListAvailable(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resources, ""))
}

// ListMyResources lists the resources the caller supplies
// @Summary List my resources
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ResourceResponse}
// @Router /resources/my [get]
func (c *ResourceController) ListMyResources(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	resources, err := c.resourceService.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resources, ""))
}

// GetResource returns one resource
// @Summary Get a resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse}
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /resources/{id} [get]
func (c *ResourceController) GetResource(ctx *gin.Context) {
	resourceID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	resource, err := c.resourceService.Get(ctx.Request.Context(), resourceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resource, ""))
}

func (c *ResourceController) bindCondition(ctx *gin.Context) (*dto.UpsertConditionRequest, bool) {
	var req dto.UpsertConditionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return nil, false
	}
	return &req, true
}

// AddCondition adds a department condition and opens the resource
// @Summary Add a condition
// @Description Sets the eligibility condition of one department. Rejected when no student would qualify.
// @Tags conditions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body dto.UpsertConditionRequest true "Condition"
// @Success 201 {object} dto.APIResponse{data=dto.ConditionAddedResponse}
// @Failure 422 {object} dto.ErrorResponse "No students meet the criteria"
// @Router /resources/{id}/conditions [post]
func (c *ResourceController) AddCondition(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	req, ok := c.bindCondition(ctx)
	if !ok {
		return
	}

	resp, err := c.resourceService.AddCondition(ctx.Request.Context(), userID, resourceID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Condition added"))
}

// UpsertCondition replaces a department condition
// @Summary Create or replace a condition
// @Tags conditions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body dto.UpsertConditionRequest true "Condition"
// @Success 200 {object} dto.APIResponse{data=dto.ConditionResponse}
// @Router /resources/{id}/conditions [put]
func (c *ResourceController) UpsertCondition(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	req, ok := c.bindCondition(ctx)
	if !ok {
		return
	}

	resp, err := c.resourceService.UpsertCondition(ctx.Request.Context(), userID, resourceID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Condition saved"))
}

// ListConditions lists the conditions of a resource
// @Summary List conditions
// @Tags conditions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ConditionResponse}
// @Router /resources/{id}/conditions [get]
func (c *ResourceController) ListConditions(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	conds, err := c.resourceService.ListConditions(ctx.Request.Context(), userID, resourceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(conds, ""))
}

// DeleteCondition removes the condition of one department
// @Summary Delete a condition
// @Tags conditions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param departmentId path string true "Department ID"
// @Success 200 {object} dto.APIResponse
// @Router /resources/{id}/conditions/{departmentId} [delete]
func (c *ResourceController) DeleteCondition(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.resourceService.DeleteCondition(ctx.Request.Context(), userID, resourceID, ctx.Param("departmentId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Condition deleted"))
}

// DeleteConditions removes every condition of a resource
// @Summary Delete all conditions
// @Tags conditions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.APIResponse
// @Router /resources/{id}/conditions [delete]
func (c *ResourceController) DeleteConditions(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	n, err := c.resourceService.DeleteConditions(ctx.Request.Context(), userID, resourceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"deleted": n}, "Conditions deleted"))
}
