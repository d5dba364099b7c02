package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/middleware"
)

// StudentController serves a student's own record
type StudentController struct {
	studentService StudentAPI
	lgr            zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService StudentAPI, lgr zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		lgr:            lgr,
	}
}

// GetProfile returns the caller's profile
// @Summary Get my student profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse}
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /student/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	profile, err := c.studentService.Profile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile, ""))
}

// UpsertProfile creates or replaces the caller's profile
// @Summary Save my student profile
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertStudentProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID or unknown department"
// @Router /student/profile [put]
func (c *StudentController) UpsertProfile(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.UpsertStudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	profile, err := c.studentService.UpsertProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile, "Profile saved"))
}

// ListGPA returns the caller's semester GPAs
// @Summary List my semester GPAs
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SemesterGPAResponse}
// @Router /student/gpa [get]
func (c *StudentController) ListGPA(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	rows, err := c.studentService.GPA(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rows, ""))
}

// ListAchievements returns the caller's achievements
// @Summary List my achievements
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AchievementResponse}
// @Router /student/achievements [get]
func (c *StudentController) ListAchievements(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	rows, err := c.studentService.Achievements(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rows, ""))
}
